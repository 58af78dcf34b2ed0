package ports

import (
	"context"
	"time"

	"github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/domain/models"
)

type LeagueSource interface {
	FetchLeagueTable(ctx context.Context, id models.LeagueID) (models.Table, error)
}

type ExportStore interface {
	Save(ctx context.Context, table models.Table, ttl time.Duration) (models.ExportToken, error)
	Get(ctx context.Context, token models.ExportToken) (models.Table, error)
}

type FetchHistory interface {
	Append(ctx context.Context, record models.FetchRecord) error
	ListRecent(ctx context.Context, limit int) ([]models.FetchRecord, error)
}
