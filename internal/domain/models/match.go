package models

type LeagueID string

type ExportToken string

// Match is one normalized fixture row. Pointer fields are nil when the
// upstream payload did not carry the value.
type Match struct {
	Name         string  `json:"match_name"`
	ID           *string `json:"id"`
	KickoffLocal string  `json:"match_datetime"`
	HomeTeam     *string `json:"home_team"`
	HomeTeamID   *string `json:"home_team_id"`
	AwayTeam     *string `json:"away_team"`
	AwayTeamID   *string `json:"away_team_id"`
	LeagueID     *string `json:"league_id"`
	SeasonID     *string `json:"season_id"`
	Round        *string `json:"Round"`
	MatchURI     *string `json:"match_uri"`
	Finished     *bool   `json:"finished"`
	Started      *bool   `json:"started"`
	Cancelled    *bool   `json:"cancelled"`
}

// Table keeps matches in upstream order.
type Table struct {
	Matches []Match `json:"matches"`
}

func (t Table) Len() int {
	return len(t.Matches)
}

func (t Table) Empty() bool {
	return len(t.Matches) == 0
}

// Columns is the fixed CSV column order.
var Columns = []string{
	"match_name",
	"id",
	"match_datetime",
	"home_team",
	"home_team_id",
	"away_team",
	"away_team_id",
	"league_id",
	"season_id",
	"Round",
	"match_uri",
	"finished",
	"started",
	"cancelled",
}
