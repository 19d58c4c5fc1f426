package catalog

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gridironhq/roster-api/internal/platform/resilience"
)

const sampleCSV = `RK,PLAYER NAME,TEAM,POS,BYE
1,Josh Allen,BUF,QB1,12
2,"Ja'Marr Chase",CIN,WR1,10
n/a,Sam LaPorta,DET,TE,5
`

func TestClientFetchRankings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{URL: server.URL})

	records, err := client.FetchRankings(t.Context())
	if err != nil {
		t.Fatalf("fetch rankings failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	first := records[0]
	if first.Name != "Josh Allen" || first.RawPosition != "QB1" || first.NFLTeam != "BUF" || first.RawRank != "1" {
		t.Fatalf("unexpected first record: %+v", first)
	}

	// The quoted name survives CSV parsing and the bad rank stays raw.
	if records[1].Name != "Ja'Marr Chase" {
		t.Fatalf("unexpected quoted name: %q", records[1].Name)
	}
	if records[2].RawRank != "n/a" {
		t.Fatalf("expected raw rank passthrough, got %q", records[2].RawRank)
	}
}

func TestClientRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{URL: server.URL, MaxRetries: 2})

	records, err := client.FetchRankings(t.Context())
	if err != nil {
		t.Fatalf("fetch rankings failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", calls.Load())
	}
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{URL: server.URL, MaxRetries: 3})

	if _, err := client.FetchRankings(t.Context()); err == nil {
		t.Fatal("expected error for 403 response")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single upstream call for a client error, got %d", calls.Load())
	}
}

func TestClientCircuitBreakerOpens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		URL: server.URL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	if _, err := client.FetchRankings(t.Context()); err == nil {
		t.Fatal("expected first fetch to fail")
	}
	if _, err := client.FetchRankings(t.Context()); !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}
}

func TestClientRejectsMissingColumns(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("RK,NAME\n1,Josh Allen\n"))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{URL: server.URL})

	if _, err := client.FetchRankings(t.Context()); err == nil {
		t.Fatal("expected error for missing columns")
	}
}
