package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	derr "github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/domain/errors"
	"github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/domain/models"
	"github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/domain/ports"
	"github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/infrastructures/fotmob"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// LeagueResult is what a single submission produces. LeagueID is set as
// soon as the URL was accepted, even when the fetch later fails.
type LeagueResult struct {
	LeagueID    models.LeagueID
	Table       models.Table
	ExportToken models.ExportToken
}

type LeagueService struct {
	log       *zap.Logger
	source    ports.LeagueSource
	exports   ports.ExportStore
	history   ports.FetchHistory
	exportTTL time.Duration
	now       func() time.Time
}

// NewLeagueService wires the pipeline. exports and history may be nil.
func NewLeagueService(log *zap.Logger, source ports.LeagueSource, exports ports.ExportStore, history ports.FetchHistory, exportTTL time.Duration) *LeagueService {
	return &LeagueService{
		log:       log,
		source:    source,
		exports:   exports,
		history:   history,
		exportTTL: exportTTL,
		now:       time.Now,
	}
}

// FetchLeagueTable runs extract, fetch and build for one league URL.
//
// ErrInvalidInput halts before any network call. On ErrTransport the result
// carries the league id and an empty table. Decode, malformed-response and
// parse failures are returned without a table.
func (s *LeagueService) FetchLeagueTable(ctx context.Context, leagueURL string) (LeagueResult, error) {
	const op = "service.FetchLeagueTable"

	ctx, span := otel.Tracer("league-service").Start(ctx, op)
	defer span.End()

	logger := s.log.With(
		zap.String("op", op),
		zap.String("league_url", leagueURL),
	)

	id, err := fotmob.LeagueIDFromURL(leagueURL)
	if err != nil {
		logger.Info("league url rejected", zap.Error(err))
		s.record(ctx, logger, models.FetchRecord{LeagueURL: leagueURL, Status: models.FetchStatusInvalid, Error: err.Error()})
		span.SetStatus(codes.Error, err.Error())
		return LeagueResult{}, fmt.Errorf("%s: %w", op, err)
	}

	span.SetAttributes(attribute.String("league_id", string(id)))
	logger = logger.With(zap.String("league_id", string(id)))
	result := LeagueResult{LeagueID: id}

	table, err := s.source.FetchLeagueTable(ctx, id)
	if err != nil {
		status := models.FetchStatusFailed
		if errors.Is(err, derr.ErrTransport) {
			status = models.FetchStatusTransport
			logger.Warn("league fetch failed", zap.Error(err))
		} else {
			logger.Error("league table build failed", zap.Error(err))
		}
		s.record(ctx, logger, models.FetchRecord{LeagueID: id, LeagueURL: leagueURL, Status: status, Error: err.Error()})
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		if status == models.FetchStatusTransport {
			result.Table = models.Table{Matches: []models.Match{}}
			return result, fmt.Errorf("%s: %w", op, err)
		}
		return LeagueResult{LeagueID: id}, fmt.Errorf("%s: %w", op, err)
	}

	result.Table = table
	s.record(ctx, logger, models.FetchRecord{LeagueID: id, LeagueURL: leagueURL, Rows: table.Len(), Status: models.FetchStatusOK})
	span.SetAttributes(attribute.Int("rows", table.Len()))

	if s.exports != nil && !table.Empty() {
		token, err := s.exports.Save(ctx, table, s.exportTTL)
		if err != nil {
			logger.Warn("export store write failed", zap.Error(err))
		} else {
			result.ExportToken = token
		}
	}

	logger.Info("league table built", zap.Int("rows", table.Len()), zap.String("export_token", string(result.ExportToken)))
	return result, nil
}

// Export returns a table stored by an earlier FetchLeagueTable call.
func (s *LeagueService) Export(ctx context.Context, token models.ExportToken) (models.Table, error) {
	const op = "service.Export"

	if s.exports == nil {
		return models.Table{}, fmt.Errorf("%s: %w", op, derr.ErrExportNotFound)
	}

	table, err := s.exports.Get(ctx, token)
	if err != nil {
		return models.Table{}, fmt.Errorf("%s: %w", op, err)
	}

	return table, nil
}

// History lists recent pipeline runs, newest first.
func (s *LeagueService) History(ctx context.Context, limit int) ([]models.FetchRecord, error) {
	const op = "service.History"

	if s.history == nil {
		return []models.FetchRecord{}, nil
	}

	records, err := s.history.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return records, nil
}

func (s *LeagueService) record(ctx context.Context, logger *zap.Logger, rec models.FetchRecord) {
	if s.history == nil {
		return
	}

	rec.FetchedAt = s.now().UTC()
	if err := s.history.Append(ctx, rec); err != nil {
		logger.Warn("fetch history write failed", zap.Error(err))
	}
}
