package models

import "time"

type FetchStatus string

const (
	FetchStatusOK        FetchStatus = "ok"
	FetchStatusInvalid   FetchStatus = "invalid_input"
	FetchStatusTransport FetchStatus = "transport_error"
	FetchStatusFailed    FetchStatus = "failed"
)

// FetchRecord describes one pipeline run. It never carries match data.
type FetchRecord struct {
	LeagueID  LeagueID    `json:"league_id"`
	LeagueURL string      `json:"league_url"`
	Rows      int         `json:"rows"`
	Status    FetchStatus `json:"status"`
	Error     string      `json:"error,omitempty"`
	FetchedAt time.Time   `json:"fetched_at"`
}
