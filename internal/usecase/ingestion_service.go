package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/gridironhq/roster-api/internal/domain/player"
	"github.com/gridironhq/roster-api/internal/platform/id"
	"github.com/gridironhq/roster-api/internal/platform/logging"
)

const defaultIngestWorkers = 4

// CatalogSource yields raw ranking rows from an external catalog.
type CatalogSource interface {
	FetchRankings(ctx context.Context) ([]player.CatalogRecord, error)
}

// IngestReport summarizes one catalog ingestion run.
type IngestReport struct {
	Fetched    int   `json:"fetched"`
	Created    int   `json:"created"`
	Updated    int   `json:"updated"`
	Skipped    int   `json:"skipped"`
	DurationMs int64 `json:"duration_ms"`
}

// IngestionService refreshes the player pool from the external rankings
// catalog. Rows are keyed by (name, position, nfl team); re-running the same
// catalog only bumps ranks and never duplicates players or touches ownership.
type IngestionService struct {
	source     CatalogSource
	playerRepo player.Repository
	idGen      id.Generator
	logger     *logging.Logger
	maxWorkers int
	now        func() time.Time
}

func NewIngestionService(
	source CatalogSource,
	playerRepo player.Repository,
	idGen id.Generator,
	logger *logging.Logger,
	maxWorkers int,
) *IngestionService {
	if logger == nil {
		logger = logging.NewNop()
	}
	if maxWorkers < 1 {
		maxWorkers = defaultIngestWorkers
	}

	return &IngestionService{
		source:     source,
		playerRepo: playerRepo,
		idGen:      idGen,
		logger:     logger,
		maxWorkers: maxWorkers,
		now:        time.Now,
	}
}

// IngestCatalog fetches the current rankings and upserts them into the player
// pool. Malformed rows are skipped, not fatal: an unparseable position drops
// the row, an unparseable rank degrades to an unranked player.
func (s *IngestionService) IngestCatalog(ctx context.Context) (IngestReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.IngestCatalog")
	defer span.End()

	start := s.now()

	records, err := s.source.FetchRankings(ctx)
	if err != nil {
		return IngestReport{}, fmt.Errorf("%w: fetch rankings: %v", ErrDependencyUnavailable, err)
	}

	workerCount := s.maxWorkers
	if workerCount > len(records) {
		workerCount = len(records)
	}
	if workerCount < 1 {
		workerCount = 1
	}

	var created, updated, skipped atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return IngestReport{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, record := range records {
		record := record
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			switch outcome := s.ingestRecord(ctx, record); outcome {
			case ingestOutcomeCreated:
				created.Add(1)
			case ingestOutcomeUpdated:
				updated.Add(1)
			default:
				skipped.Add(1)
			}
		}); err != nil {
			workers.Done()
			return IngestReport{}, fmt.Errorf("submit record to worker pool: %w", err)
		}
	}

	workers.Wait()

	report := IngestReport{
		Fetched:    len(records),
		Created:    int(created.Load()),
		Updated:    int(updated.Load()),
		Skipped:    int(skipped.Load()),
		DurationMs: time.Since(start).Milliseconds(),
	}

	s.logger.InfoContext(ctx, "catalog ingested",
		"fetched", report.Fetched,
		"created", report.Created,
		"updated", report.Updated,
		"skipped", report.Skipped,
		"duration_ms", report.DurationMs,
	)
	return report, nil
}

type ingestOutcome int

const (
	ingestOutcomeSkipped ingestOutcome = iota
	ingestOutcomeCreated
	ingestOutcomeUpdated
)

func (s *IngestionService) ingestRecord(ctx context.Context, record player.CatalogRecord) ingestOutcome {
	name := strings.TrimSpace(record.Name)
	nflTeam := strings.TrimSpace(record.NFLTeam)
	if name == "" || nflTeam == "" {
		s.logger.WarnContext(ctx, "catalog row missing identity", "name", record.Name, "nfl_team", record.NFLTeam)
		return ingestOutcomeSkipped
	}

	pos, err := player.ParsePosition(record.RawPosition)
	if err != nil {
		s.logger.WarnContext(ctx, "catalog row has unknown position",
			"name", name, "raw_position", record.RawPosition)
		return ingestOutcomeSkipped
	}

	rank := parseRank(record.RawRank)

	candidateID, err := s.idGen.NewID("ply")
	if err != nil {
		s.logger.ErrorContext(ctx, "generate player id failed", "error", err)
		return ingestOutcomeSkipped
	}

	createdRow, err := s.playerRepo.UpsertCatalog(ctx, candidateID, name, pos, nflTeam, rank)
	if err != nil {
		s.logger.ErrorContext(ctx, "upsert catalog row failed", "name", name, "error", err)
		return ingestOutcomeSkipped
	}
	if createdRow {
		return ingestOutcomeCreated
	}
	return ingestOutcomeUpdated
}

// parseRank returns nil for anything that is not a positive integer; the
// player is then stored unranked rather than dropped.
func parseRank(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return nil
	}

	return &value
}
