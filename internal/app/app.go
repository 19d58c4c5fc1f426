package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/gridironhq/roster-api/external/catalog"
	"github.com/gridironhq/roster-api/internal/config"
	"github.com/gridironhq/roster-api/internal/domain/player"
	"github.com/gridironhq/roster-api/internal/domain/roster"
	"github.com/gridironhq/roster-api/internal/domain/season"
	"github.com/gridironhq/roster-api/internal/domain/team"
	"github.com/gridironhq/roster-api/internal/domain/user"
	"github.com/gridironhq/roster-api/internal/infrastructure/repository/memory"
	"github.com/gridironhq/roster-api/internal/infrastructure/repository/postgres"
	"github.com/gridironhq/roster-api/internal/interfaces/httpapi"
	idgen "github.com/gridironhq/roster-api/internal/platform/id"
	"github.com/gridironhq/roster-api/internal/platform/logging"
	"github.com/gridironhq/roster-api/internal/platform/resilience"
	"github.com/gridironhq/roster-api/internal/usecase"
)

type repositories struct {
	users    user.Repository
	sessions user.SessionRepository
	teams    team.Repository
	players  player.Repository
}

// NewHTTPServer wires repositories, services and the router into a ready
// http.Server. The returned cleanup releases the database handle and must be
// called after the server has shut down.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, cleanup, err := newRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	window := season.NewWindow(cfg.SeasonStart)
	idGen := idgen.NewRandomGenerator()

	authSvc := usecase.NewAuthService(repos.users, repos.sessions, idGen, logger, cfg.SessionTTL)
	teamSvc := usecase.NewTeamService(repos.teams, repos.players, roster.DefaultRules(), window, idGen, logger)
	playerSvc := usecase.NewPlayerService(repos.players)

	catalogClient := catalog.NewClient(catalog.ClientConfig{
		URL:        cfg.CatalogURL,
		Timeout:    cfg.CatalogTimeout,
		MaxRetries: cfg.CatalogMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.CatalogCircuitEnabled,
			FailureThreshold: cfg.CatalogCircuitFailureCount,
			OpenTimeout:      cfg.CatalogCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.CatalogCircuitHalfOpenMaxReq,
		},
	})
	ingestionSvc := usecase.NewIngestionService(catalogClient, repos.players, idGen, logger, cfg.IngestMaxWorkers)

	handler := httpapi.NewHandler(authSvc, teamSvc, playerSvc, ingestionSvc, logger)
	router := httpapi.NewRouter(handler, authSvc, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func newRepositories(cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDB(cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		logger.Info("storage ready", "driver", cfg.StorageDriver, "db_name", dbNameFromURL(cfg.DBURL))
		return repositories{
			users:    postgres.NewUserRepository(db),
			sessions: postgres.NewSessionRepository(db),
			teams:    postgres.NewTeamRepository(db),
			players:  postgres.NewPlayerRepository(db),
		}, db.Close, nil
	default:
		playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
		logger.Info("storage ready", "driver", cfg.StorageDriver)
		return repositories{
			users:    memory.NewUserRepository(),
			sessions: memory.NewSessionRepository(),
			teams:    memory.NewTeamRepository(playerRepo),
			players:  playerRepo,
		}, func() error { return nil }, nil
	}
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	return db, nil
}
