package wikidata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientFetchEntity(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api.php" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("action") != "wbgetentities" || q.Get("ids") != "Q146" || q.Get("languages") != "de" || q.Get("format") != "json" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("missing user agent")
		}
		fmt.Fprintf(w, `{"entities": {"Q146": %s}, "success": 1}`, catEntity)
	})

	c := NewClient(NewClientParams{BaseURL: srv.URL, Language: "de"})
	e, err := c.FetchEntity(context.Background(), "Q146")
	if err != nil {
		t.Fatalf("FetchEntity failed: %v", err)
	}
	if e.ID != "Q146" || e.Claims.Len() != 3 {
		t.Fatalf("unexpected entity: id=%s claims=%d", e.ID, e.Claims.Len())
	}
}

func TestClientStatusError(t *testing.T) {
	var calls atomic.Int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	c := NewClient(NewClientParams{BaseURL: srv.URL})
	_, err := c.FetchEntity(context.Background(), "Q146")

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %v", err)
	}
	if fe.StatusCode != http.StatusServiceUnavailable || fe.ID != "Q146" {
		t.Fatalf("unexpected fetch error: %+v", fe)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single attempt by default, got %d", calls.Load())
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `{"entities": {"Q1": {"id": "Q1", "labels": [], "claims": []}}}`)
	})

	c := NewClient(NewClientParams{BaseURL: srv.URL, MaxRetries: 3})
	if _, err := c.FetchEntity(context.Background(), "Q1"); err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	})

	c := NewClient(NewClientParams{BaseURL: srv.URL, MaxRetries: 3})
	if _, err := c.FetchEntity(context.Background(), "Q1"); err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected 1 attempt for 403, got %d", calls.Load())
	}
}

func TestClientEntityNotFound(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing entity", body: `{"entities": {"Q0": {"id": "Q0", "missing": ""}}}`},
		{name: "api error", body: `{"error": {"code": "no-such-entity", "info": "Could not find an entity with the ID \"Q0\"."}}`},
		{name: "empty entities", body: `{"entities": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			})
			c := NewClient(NewClientParams{BaseURL: srv.URL})
			_, err := c.FetchEntity(context.Background(), "Q0")
			if !errors.Is(err, ErrEntityNotFound) {
				t.Fatalf("expected ErrEntityNotFound, got %v", err)
			}
		})
	}
}

func TestLoadMapFetcher(t *testing.T) {
	dump := `{"entities": {"Q146": ` + catEntity + `, "Q0": {"id": "Q0", "missing": ""}}}`
	m, err := LoadMapFetcher(strings.NewReader(dump))
	if err != nil {
		t.Fatalf("LoadMapFetcher failed: %v", err)
	}

	if _, err := m.FetchEntity(context.Background(), "Q146"); err != nil {
		t.Fatalf("expected Q146, got %v", err)
	}
	if _, err := m.FetchEntity(context.Background(), "Q0"); !errors.Is(err, ErrEntityNotFound) {
		t.Fatalf("expected ErrEntityNotFound for missing entity, got %v", err)
	}
	if m.Calls("Q146") != 1 || m.TotalCalls() != 2 {
		t.Fatalf("unexpected call counts: Q146=%d total=%d", m.Calls("Q146"), m.TotalCalls())
	}

	boom := errors.New("boom")
	m.FailWith("Q146", boom)
	if _, err := m.FetchEntity(context.Background(), "Q146"); !errors.Is(err, boom) {
		t.Fatalf("expected injected failure, got %v", err)
	}
}
