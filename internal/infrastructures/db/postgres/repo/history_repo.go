package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/domain/models"
)

const defaultHistoryLimit = 20

// Column order in both queries matches the FetchRecord scan order.
const (
	insertHistoryQuery = `
		INSERT INTO fetch_history (
			league_id,
			league_url,
			row_count,
			status,
			error,
			fetched_at
		)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	listHistoryQuery = `
		SELECT
			league_id,
			league_url,
			row_count,
			status,
			error,
			fetched_at
		FROM fetch_history
		ORDER BY fetched_at DESC, id DESC
		LIMIT $1
	`
)

type Repository struct {
	db *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*Repository, error) {
	poolCfg, err := buildPoolConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &Repository{db: pool}, nil
}

func buildPoolConfig(dsn string) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pgx pool config: %w", err)
	}
	poolCfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	poolCfg.ConnConfig.StatementCacheCapacity = 0
	poolCfg.ConnConfig.DescriptionCacheCapacity = 0

	return poolCfg, nil
}

func (r *Repository) Close() {
	r.db.Close()
}

func (r *Repository) Append(ctx context.Context, record models.FetchRecord) error {
	_, err := r.db.Exec(ctx, insertHistoryQuery,
		string(record.LeagueID),
		record.LeagueURL,
		record.Rows,
		string(record.Status),
		record.Error,
		record.FetchedAt,
	)
	if err != nil {
		return fmt.Errorf("insert fetch history: %w", err)
	}

	return nil
}

func (r *Repository) ListRecent(ctx context.Context, limit int) ([]models.FetchRecord, error) {
	limit = normalizeLimit(limit)

	rows, err := r.db.Query(ctx, listHistoryQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("query fetch history: %w", err)
	}
	defer rows.Close()

	records := make([]models.FetchRecord, 0, limit)
	for rows.Next() {
		var (
			leagueID string
			status   string
			record   models.FetchRecord
		)

		if err := rows.Scan(
			&leagueID,
			&record.LeagueURL,
			&record.Rows,
			&status,
			&record.Error,
			&record.FetchedAt,
		); err != nil {
			return nil, fmt.Errorf("scan fetch history: %w", err)
		}

		record.LeagueID = models.LeagueID(leagueID)
		record.Status = models.FetchStatus(status)
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fetch history: %w", err)
	}

	return records, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultHistoryLimit
	}
	if limit > 100 {
		return 100
	}
	return limit
}
