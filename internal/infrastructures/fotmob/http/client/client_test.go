package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"time"

	derr "github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/domain/errors"
)

func TestGetLeague_SendsPooledUserAgentAndQuery(t *testing.T) {
	var gotUA []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/api/leagues" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("id") != "47" || r.URL.Query().Get("ccode3") != "EGY" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		if r.Header.Get("Authorization") != "" || r.Header.Get("Cookie") != "" {
			t.Fatal("expected no credentials")
		}
		gotUA = append(gotUA, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"details":{"id":47,"selectedSeason":"2024/2025"},"matches":{"allMatches":[]}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", srv.Client())
	for i := 0; i < 10; i++ {
		payload, err := c.GetLeague(context.Background(), "47")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		details, ok := payload["details"].(map[string]any)
		if !ok {
			t.Fatalf("expected details object, got %T", payload["details"])
		}
		if id, ok := details["id"].(json.Number); !ok || id.String() != "47" {
			t.Fatalf("expected league id as json number 47, got %#v", details["id"])
		}
	}

	pool := UserAgents()
	if len(pool) != 7 {
		t.Fatalf("expected 7 user agents, got %d", len(pool))
	}
	for _, ua := range gotUA {
		if !slices.Contains(pool, ua) {
			t.Fatalf("user agent %q is not from the pool", ua)
		}
	}
}

func TestLeagueURL(t *testing.T) {
	c := NewClient("https://api.test/", "egy", nil)

	got := c.LeagueURL("47")
	if got != "https://api.test/api/leagues?ccode3=EGY&id=47" {
		t.Fatalf("unexpected league url: %s", got)
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("", "", nil)

	if got := c.LeagueURL("47"); got != "https://www.fotmob.com/api/leagues?ccode3=EGY&id=47" {
		t.Fatalf("unexpected default league url: %s", got)
	}
	if c.httpClient.Timeout <= 0 {
		t.Fatal("expected default http timeout")
	}
}

func TestGetLeague_NonSuccessStatusIsTransportError(t *testing.T) {
	for _, code := range []int{http.StatusNotFound, http.StatusForbidden, http.StatusInternalServerError, http.StatusTooManyRequests} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(code)
		}))

		c := NewClient(srv.URL, "EGY", srv.Client())
		_, err := c.GetLeague(context.Background(), "47")
		srv.Close()

		if !errors.Is(err, derr.ErrTransport) {
			t.Fatalf("status %d: expected ErrTransport, got %v", code, err)
		}
	}
}

func TestGetLeague_ConnectionFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	c := NewClient(addr, "EGY", &http.Client{Timeout: time.Second})
	_, err := c.GetLeague(context.Background(), "47")
	if !errors.Is(err, derr.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestGetLeague_InvalidJSONIsDecodeError(t *testing.T) {
	bodies := []string{
		`<html>blocked</html>`,
		`{"matches":{"allMatches":[]}}<html>blocked</html>`,
		`{"matches":{}} {"matches":{}}`,
		`[{"matches":{}}]`,
		``,
	}

	for _, body := range bodies {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(body))
		}))

		c := NewClient(srv.URL, "EGY", srv.Client())
		_, err := c.GetLeague(context.Background(), "47")
		srv.Close()

		if !errors.Is(err, derr.ErrDecode) {
			t.Fatalf("body %q: expected ErrDecode, got %v", body, err)
		}
		if errors.Is(err, derr.ErrTransport) {
			t.Fatalf("body %q: decode failure must not be reported as transport error", body)
		}
	}
}

func TestGetLeague_TrailingWhitespaceIsAccepted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{\"matches\":{\"allMatches\":[]}}\n  \n"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "EGY", srv.Client())
	payload, err := c.GetLeague(context.Background(), "47")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := payload["matches"]; !ok {
		t.Fatalf("expected matches key, got %v", payload)
	}
}

func TestGetLeague_CanceledContextIsReturnedAsIs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, "EGY", srv.Client())
	_, err := c.GetLeague(ctx, "47")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
