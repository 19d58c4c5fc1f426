package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/gridironhq/roster-api/internal/domain/player"
	"github.com/gridironhq/roster-api/internal/infrastructure/repository/memory"
)

type staticCatalogSource struct {
	records []player.CatalogRecord
	err     error
}

func (s staticCatalogSource) FetchRankings(_ context.Context) ([]player.CatalogRecord, error) {
	return s.records, s.err
}

func TestIngestionService_IngestCatalog(t *testing.T) {
	playerRepo := memory.NewPlayerRepository(nil)

	source := staticCatalogSource{records: []player.CatalogRecord{
		{Name: "Josh Allen", RawPosition: "QB1", NFLTeam: "BUF", RawRank: "1"},
		{Name: "Bijan Robinson", RawPosition: "rb2", NFLTeam: "ATL", RawRank: "4"},
		{Name: "Sam LaPorta", RawPosition: "TE", NFLTeam: "DET", RawRank: "n/a"},
		{Name: "Justin Tucker", RawPosition: "K", NFLTeam: "BAL", RawRank: "7"},
		{Name: "", RawPosition: "WR", NFLTeam: "MIN", RawRank: "2"},
	}}

	service := NewIngestionService(source, playerRepo, &sequenceIDGenerator{}, nil, 2)

	report, err := service.IngestCatalog(t.Context())
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}

	if report.Fetched != 5 {
		t.Fatalf("expected 5 fetched, got %d", report.Fetched)
	}
	if report.Created != 3 {
		t.Fatalf("expected 3 created, got %d", report.Created)
	}
	if report.Skipped != 2 {
		t.Fatalf("expected 2 skipped (kicker, nameless row), got %d", report.Skipped)
	}

	free, err := playerRepo.ListFree(t.Context(), "")
	if err != nil {
		t.Fatalf("list free failed: %v", err)
	}
	if len(free) != 3 {
		t.Fatalf("expected 3 pool players, got %d", len(free))
	}

	// The unparseable rank degraded to unranked, which sorts last.
	last := free[len(free)-1]
	if last.Name != "Sam LaPorta" || last.Rank != nil {
		t.Fatalf("expected unranked Sam LaPorta last, got %+v", last)
	}
}

func TestIngestionService_IngestCatalogIsIdempotent(t *testing.T) {
	playerRepo := memory.NewPlayerRepository(nil)

	source := staticCatalogSource{records: []player.CatalogRecord{
		{Name: "Ja'Marr Chase", RawPosition: "WR", NFLTeam: "CIN", RawRank: "1"},
	}}
	service := NewIngestionService(source, playerRepo, &sequenceIDGenerator{}, nil, 2)

	first, err := service.IngestCatalog(t.Context())
	if err != nil {
		t.Fatalf("first ingest failed: %v", err)
	}
	if first.Created != 1 || first.Updated != 0 {
		t.Fatalf("expected 1 created on first run, got %+v", first)
	}

	second, err := service.IngestCatalog(t.Context())
	if err != nil {
		t.Fatalf("second ingest failed: %v", err)
	}
	if second.Created != 0 || second.Updated != 1 {
		t.Fatalf("expected 1 updated on second run, got %+v", second)
	}

	free, err := playerRepo.ListFree(t.Context(), "")
	if err != nil {
		t.Fatalf("list free failed: %v", err)
	}
	if len(free) != 1 {
		t.Fatalf("expected a single pool entry after re-ingest, got %d", len(free))
	}
}

func TestIngestionService_RankUpdatePreservesOwnership(t *testing.T) {
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	if err := playerRepo.Assign(t.Context(), "nfl-qb-01", "team_0001"); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	source := staticCatalogSource{records: []player.CatalogRecord{
		{Name: "Josh Allen", RawPosition: "QB", NFLTeam: "BUF", RawRank: "9"},
	}}
	service := NewIngestionService(source, playerRepo, &sequenceIDGenerator{}, nil, 1)

	report, err := service.IngestCatalog(t.Context())
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	if report.Updated != 1 {
		t.Fatalf("expected existing row update, got %+v", report)
	}

	item, exists, err := playerRepo.GetByID(t.Context(), "nfl-qb-01")
	if err != nil || !exists {
		t.Fatalf("player lookup failed: exists=%t err=%v", exists, err)
	}
	if item.Rank == nil || *item.Rank != 9 {
		t.Fatalf("expected rank 9, got %v", item.Rank)
	}
	if item.TeamID == nil || *item.TeamID != "team_0001" {
		t.Fatalf("expected ownership preserved, got %v", item.TeamID)
	}
}

func TestIngestionService_SourceFailure(t *testing.T) {
	service := NewIngestionService(
		staticCatalogSource{err: errors.New("upstream timeout")},
		memory.NewPlayerRepository(nil),
		&sequenceIDGenerator{},
		nil,
		2,
	)

	if _, err := service.IngestCatalog(t.Context()); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
