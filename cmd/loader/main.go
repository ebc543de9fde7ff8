// Command loader rebuilds the canonical store from the raw CSV datasets.
// It parses the source files in parallel, then feeds them through the
// entity builder in a fixed source order so reruns are deterministic.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	sonic "github.com/bytedance/sonic"
	"github.com/panjf2000/ants/v2"

	"github.com/futdados/soccergraph/internal/app"
	"github.com/futdados/soccergraph/internal/config"
	"github.com/futdados/soccergraph/internal/infrastructure/dataset"
	"github.com/futdados/soccergraph/internal/loader"
	"github.com/futdados/soccergraph/internal/platform/id"
	"github.com/futdados/soccergraph/internal/platform/logging"
	"github.com/futdados/soccergraph/internal/platform/resilience"
)

type parsedSource struct {
	matches []loader.RawMatch
	players []loader.RawPlayer
	err     error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	platformLogger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(platformLogger)
	defer func() { _ = platformLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("load failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	sources := loader.DefaultSources()

	if cfg.DatasetEnabled {
		client := dataset.NewClient(dataset.ClientConfig{
			BaseURL:    cfg.DatasetBaseURL,
			Timeout:    cfg.DatasetTimeout,
			MaxRetries: cfg.DatasetMaxRetries,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.DatasetCircuitEnabled,
				FailureThreshold: cfg.DatasetCircuitFailureCount,
				OpenTimeout:      cfg.DatasetCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.DatasetCircuitHalfOpenMaxReq,
			},
		})

		names := make([]string, 0, len(sources))
		for _, src := range sources {
			names = append(names, src.File)
		}
		if _, err := client.FetchAll(ctx, names, cfg.DataDir); err != nil {
			return fmt.Errorf("fetch datasets: %w", err)
		}
		logger.Info("datasets fetched", "dir", cfg.DataDir, "files", len(names))
	}

	repos, closeStore, err := app.NewRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	parsed, err := parseSources(cfg, sources)
	if err != nil {
		return err
	}

	builder, err := loader.NewBuilder(loader.Config{
		Teams:          repos.Teams,
		Matches:        repos.Matches,
		Players:        repos.Players,
		Competitions:   repos.Competitions,
		SourcePriority: cfg.SourcePriority,
		IDs:            id.NewRandomGenerator(),
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	if err := builder.Init(ctx); err != nil {
		return fmt.Errorf("init store: %w", err)
	}

	for i, src := range sources {
		for _, raw := range parsed[i].matches {
			if err := builder.AddMatch(ctx, raw); err != nil {
				return fmt.Errorf("add match from %s: %w", src.Name, err)
			}
		}
		for _, raw := range parsed[i].players {
			if err := builder.AddPlayer(ctx, raw); err != nil {
				return fmt.Errorf("add player from %s: %w", src.Name, err)
			}
		}
	}

	report, err := builder.Finish(ctx)
	if err != nil {
		return fmt.Errorf("finish load: %w", err)
	}

	if report.HasConflicts() {
		logger.Warn("load finished with unresolved score conflicts", "conflicts", len(report.Conflicts))
	}

	out, err := sonic.ConfigDefault.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	fmt.Println(string(out))

	return nil
}

// parseSources reads every CSV concurrently; results keep the source order
// so the builder sees a stable sequence regardless of scheduling.
func parseSources(cfg config.Config, sources []loader.Source) ([]parsedSource, error) {
	pool, err := ants.NewPool(cfg.LoaderWorkers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	parsed := make([]parsedSource, len(sources))
	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			matches, players, readErr := src.Read(cfg.DataDir)
			parsed[i] = parsedSource{matches: matches, players: players, err: readErr}
		})
		if submitErr != nil {
			wg.Done()
			return nil, fmt.Errorf("submit parse task: %w", submitErr)
		}
	}
	wg.Wait()

	for i, p := range parsed {
		if p.err != nil {
			return nil, fmt.Errorf("read %s: %w", sources[i].Name, p.err)
		}
	}

	return parsed, nil
}
