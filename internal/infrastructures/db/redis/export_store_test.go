package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	derr "github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/domain/errors"
	"github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/domain/models"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*ExportStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})

	return NewExportStore(client), mr
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestExportStore_SaveGet(t *testing.T) {
	store, mr := newTestStore(t)
	table := models.Table{Matches: []models.Match{
		{
			Name:         "Al Ahly vs Zamalek",
			ID:           strPtr("4506263"),
			KickoffLocal: "2024-03-10 17:00:00",
			HomeTeam:     strPtr("Al Ahly"),
			Round:        strPtr("1"),
			Finished:     boolPtr(false),
			Started:      boolPtr(true),
		},
		{
			Name:         " vs Pyramids",
			KickoffLocal: "2024-03-11 19:00:00",
			AwayTeam:     strPtr("Pyramids"),
		},
	}}

	token, err := store.Save(context.Background(), table, 10*time.Minute)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !mr.Exists("export:" + string(token)) {
		t.Fatalf("expected key export:%s to exist", token)
	}
	if ttl := mr.TTL("export:" + string(token)); ttl != 10*time.Minute {
		t.Fatalf("expected ttl 10m, got %v", ttl)
	}

	got, err := store.Get(context.Background(), token)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", got.Len())
	}

	first := got.Matches[0]
	if first.Name != "Al Ahly vs Zamalek" || *first.ID != "4506263" || *first.Round != "1" {
		t.Fatalf("unexpected first row %+v", first)
	}
	if first.Finished == nil || *first.Finished {
		t.Fatalf("expected finished=false to survive, got %v", first.Finished)
	}
	if first.Started == nil || !*first.Started {
		t.Fatalf("expected started=true to survive, got %v", first.Started)
	}
	if first.Cancelled != nil || first.AwayTeam != nil {
		t.Fatalf("expected absent fields to stay nil, got %+v", first)
	}

	second := got.Matches[1]
	if second.ID != nil || second.HomeTeam != nil || second.Finished != nil {
		t.Fatalf("expected absent fields to stay nil, got %+v", second)
	}
	if second.AwayTeam == nil || *second.AwayTeam != "Pyramids" {
		t.Fatalf("unexpected away team %v", second.AwayTeam)
	}
}

func TestExportStore_UnknownToken(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, derr.ErrExportNotFound) {
		t.Fatalf("expected ErrExportNotFound, got %v", err)
	}
}

func TestExportStore_Expiry(t *testing.T) {
	store, mr := newTestStore(t)

	token, err := store.Save(context.Background(), models.Table{Matches: []models.Match{{Name: "A vs B"}}}, 5*time.Minute)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	mr.FastForward(4 * time.Minute)
	if _, err := store.Get(context.Background(), token); err != nil {
		t.Fatalf("expected entry before ttl, got %v", err)
	}

	mr.FastForward(time.Minute)
	if _, err := store.Get(context.Background(), token); !errors.Is(err, derr.ErrExportNotFound) {
		t.Fatalf("expected ErrExportNotFound after ttl, got %v", err)
	}
}

func TestExportStore_ServerErrorIsNotNotFound(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	store := NewExportStore(client)
	mr.Close()

	_, err = store.Get(context.Background(), "any")
	if err == nil || errors.Is(err, derr.ErrExportNotFound) {
		t.Fatalf("expected connection error, got %v", err)
	}
}

func TestSave_RejectsNonPositiveTTL(t *testing.T) {
	store, mr := newTestStore(t)

	if _, err := store.Save(context.Background(), models.Table{}, 0); err == nil {
		t.Fatal("expected error for zero ttl")
	}
	if keys := mr.Keys(); len(keys) != 0 {
		t.Fatalf("expected nothing stored, got %v", keys)
	}
}

func TestExportKey(t *testing.T) {
	if got := exportKey("abc"); got != "export:abc" {
		t.Fatalf("unexpected key %q", got)
	}
}
