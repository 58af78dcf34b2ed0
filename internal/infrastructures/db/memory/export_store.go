package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	derr "github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/domain/errors"
	"github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/domain/models"
)

type exportEntry struct {
	table     models.Table
	expiresAt time.Time
}

// ExportStore keeps session exports in process memory. Expired entries are
// dropped when read or on the next Save.
type ExportStore struct {
	mu      sync.Mutex
	entries map[models.ExportToken]exportEntry
	now     func() time.Time
}

func NewExportStore() *ExportStore {
	return &ExportStore{
		entries: make(map[models.ExportToken]exportEntry),
		now:     time.Now,
	}
}

func (s *ExportStore) Save(_ context.Context, table models.Table, ttl time.Duration) (models.ExportToken, error) {
	if ttl <= 0 {
		return "", fmt.Errorf("export ttl must be positive, got %s", ttl)
	}

	token := models.ExportToken(uuid.NewString())
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, k)
		}
	}
	s.entries[token] = exportEntry{table: table, expiresAt: now.Add(ttl)}

	return token, nil
}

func (s *ExportStore) Get(_ context.Context, token models.ExportToken) (models.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[token]
	if !ok {
		return models.Table{}, derr.ErrExportNotFound
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, token)
		return models.Table{}, derr.ErrExportNotFound
	}

	return e.table, nil
}
