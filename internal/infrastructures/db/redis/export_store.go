package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	derr "github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/domain/errors"
	"github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/domain/models"
	"github.com/redis/go-redis/v9"
)

type ExportStore struct {
	redis *redis.Client
}

func NewExportStore(redis *redis.Client) *ExportStore {
	return &ExportStore{redis: redis}
}

func (s *ExportStore) Save(ctx context.Context, table models.Table, ttl time.Duration) (models.ExportToken, error) {
	if ttl <= 0 {
		return "", fmt.Errorf("export ttl must be positive, got %s", ttl)
	}

	data, err := json.Marshal(table)
	if err != nil {
		return "", fmt.Errorf("marshal table for export: %w", err)
	}

	token := models.ExportToken(uuid.NewString())
	if err := s.redis.Set(ctx, exportKey(token), data, ttl).Err(); err != nil {
		return "", fmt.Errorf("redis set export: %w", err)
	}

	return token, nil
}

func (s *ExportStore) Get(ctx context.Context, token models.ExportToken) (models.Table, error) {
	data, err := s.redis.Get(ctx, exportKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.Table{}, derr.ErrExportNotFound
		}
		return models.Table{}, fmt.Errorf("redis get export: %w", err)
	}

	var table models.Table
	if err := json.Unmarshal([]byte(data), &table); err != nil {
		return models.Table{}, fmt.Errorf("unmarshal stored export: %w", err)
	}

	return table, nil
}

func exportKey(token models.ExportToken) string {
	return fmt.Sprintf("export:%s", token)
}
