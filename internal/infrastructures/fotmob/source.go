package fotmob

import (
	"context"
	"fmt"

	"github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/domain/models"
	"github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/infrastructures/fotmob/http/client"
	"github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/infrastructures/fotmob/mappers"
)

type Source struct {
	client *client.Client
}

func NewSource(client *client.Client) *Source {
	return &Source{
		client: client,
	}
}

// FetchLeagueTable loads the league payload and builds its match table.
// The builder never runs when the fetch fails.
func (s *Source) FetchLeagueTable(ctx context.Context, id models.LeagueID) (models.Table, error) {
	payload, err := s.client.GetLeague(ctx, id)
	if err != nil {
		return models.Table{}, fmt.Errorf("get league %s: %w", id, err)
	}

	table, err := mappers.ToMatchTable(payload)
	if err != nil {
		return models.Table{}, fmt.Errorf("build match table: %w", err)
	}

	return table, nil
}
