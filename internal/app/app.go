package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/futdados/soccergraph/internal/config"
	"github.com/futdados/soccergraph/internal/domain/competition"
	"github.com/futdados/soccergraph/internal/domain/match"
	"github.com/futdados/soccergraph/internal/domain/player"
	"github.com/futdados/soccergraph/internal/domain/team"
	"github.com/futdados/soccergraph/internal/infrastructure/repository/memory"
	"github.com/futdados/soccergraph/internal/infrastructure/repository/postgres"
	"github.com/futdados/soccergraph/internal/interfaces/httpapi"
	"github.com/futdados/soccergraph/internal/platform/cache"
	"github.com/futdados/soccergraph/internal/usecase"
)

const dbPingTimeout = 5 * time.Second

// Repositories bundles the entity stores behind their domain interfaces so
// the API server and the loader share the same store selection.
type Repositories struct {
	Teams        team.Repository
	Matches      match.Repository
	Players      player.Repository
	Competitions competition.Repository
}

// NewRepositories picks the backing store: Postgres when DB_URL is set,
// otherwise seeded in-memory fixtures for local development. The returned
// close function releases the store and is always non-nil on success.
func NewRepositories(ctx context.Context, cfg config.Config, logger *slog.Logger) (Repositories, func() error, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Info("DB_URL not set, serving seeded in-memory data")
		return Repositories{
			Teams:        memory.NewTeamRepository(memory.SeedTeams()),
			Matches:      memory.NewMatchRepository(memory.SeedMatches()),
			Players:      memory.NewPlayerRepository(memory.SeedPlayers()),
			Competitions: memory.NewCompetitionRepository(memory.SeedCompetitions()),
		}, func() error { return nil }, nil
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return Repositories{}, nil, err
	}
	logger.Info("connected to postgres", "database", dbNameFromURL(cfg.DBURL))

	return Repositories{
		Teams:        postgres.NewTeamRepository(db),
		Matches:      postgres.NewMatchRepository(db),
		Players:      postgres.NewPlayerRepository(db),
		Competitions: postgres.NewCompetitionRepository(db),
	}, db.Close, nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *slog.Logger) (*http.Server, func() error, error) {
	repos, closeStore, err := NewRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var standingsCache *cache.Store
	if cfg.CacheEnabled {
		standingsCache = cache.NewStore(cfg.CacheTTL)
	}

	handler := httpapi.NewHandler(
		usecase.NewTeamService(repos.Teams, repos.Matches),
		usecase.NewMatchService(repos.Teams, repos.Matches),
		usecase.NewPlayerService(repos.Players),
		usecase.NewCompetitionService(repos.Competitions, repos.Matches, standingsCache),
		logger,
	)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = closeStore()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, closeStore, nil
}
