package mappers

import (
	"fmt"

	derr "github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/domain/errors"
	"github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/domain/models"
)

const matchNameSeparator = " vs "

// ToMatchTable builds the match table from a league payload. Rows follow
// the order of matches.allMatches. A single unparsable kickoff fails the
// whole table.
func ToMatchTable(payload map[string]any) (models.Table, error) {
	matches, ok := object(payload, "matches")
	if !ok {
		return models.Table{}, fmt.Errorf("%w: missing matches", derr.ErrMalformedResponse)
	}
	all, ok := matches["allMatches"].([]any)
	if !ok {
		return models.Table{}, fmt.Errorf("%w: missing matches.allMatches", derr.ErrMalformedResponse)
	}

	details, _ := object(payload, "details")
	leagueID := optString(scalar(details, "id"))
	seasonID := optString(scalar(details, "selectedSeason"))

	rows := make([]models.Match, 0, len(all))
	for i, item := range all {
		raw, ok := item.(map[string]any)
		if !ok {
			return models.Table{}, fmt.Errorf("%w: match %d is not an object", derr.ErrMalformedResponse, i)
		}

		row, err := ToMatch(raw)
		if err != nil {
			return models.Table{}, fmt.Errorf("match %d: %w", i, err)
		}
		row.LeagueID = leagueID
		row.SeasonID = seasonID
		rows = append(rows, row)
	}

	return models.Table{Matches: rows}, nil
}

// ToMatch maps one upstream match object. League and season ids are left
// for the caller since they come from the payload root.
func ToMatch(raw map[string]any) (models.Match, error) {
	status, _ := object(raw, "status")
	home, _ := object(raw, "home")
	away, _ := object(raw, "away")

	utc, ok := scalar(status, "utcTime")
	if !ok {
		return models.Match{}, fmt.Errorf("%w: missing status.utcTime", derr.ErrParse)
	}
	kickoff, err := NormalizeKickoff(utc)
	if err != nil {
		return models.Match{}, err
	}

	homeName, _ := scalar(home, "name")
	awayName, _ := scalar(away, "name")

	return models.Match{
		Name:         homeName + matchNameSeparator + awayName,
		ID:           optString(scalar(raw, "id")),
		KickoffLocal: kickoff,
		HomeTeam:     optString(scalar(home, "name")),
		HomeTeamID:   optString(scalar(home, "id")),
		AwayTeam:     optString(scalar(away, "name")),
		AwayTeamID:   optString(scalar(away, "id")),
		Round:        optString(scalar(raw, "round")),
		MatchURI:     optString(scalar(raw, "pageUrl")),
		Finished:     optBool(flag(status, "finished")),
		Started:      optBool(flag(status, "started")),
		Cancelled:    optBool(flag(status, "cancelled")),
	}, nil
}
