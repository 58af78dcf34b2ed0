package csvexport

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/domain/models"
)

const (
	FileName    = "league_matches.csv"
	ContentType = "text/csv"
)

// Write encodes table as CSV with a header row and no index column.
func Write(w io.Writer, table models.Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(models.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, m := range table.Matches {
		if err := cw.Write(Record(m)); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}

// Encode returns the CSV document for table.
func Encode(table models.Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, table); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Record renders m in column order. Absent values become empty cells and
// flags are written as True/False.
func Record(m models.Match) []string {
	return []string{
		m.Name,
		text(m.ID),
		m.KickoffLocal,
		text(m.HomeTeam),
		text(m.HomeTeamID),
		text(m.AwayTeam),
		text(m.AwayTeamID),
		text(m.LeagueID),
		text(m.SeasonID),
		text(m.Round),
		text(m.MatchURI),
		flag(m.Finished),
		flag(m.Started),
		flag(m.Cancelled),
	}
}

func text(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func flag(v *bool) string {
	switch {
	case v == nil:
		return ""
	case *v:
		return "True"
	default:
		return "False"
	}
}
