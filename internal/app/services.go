package app

import (
	"context"
	"fmt"

	"github.com/yungbote/healthtrack-backend/internal/config"
	"github.com/yungbote/healthtrack-backend/internal/data/graph"
	"github.com/yungbote/healthtrack-backend/internal/diagnosis"
	"github.com/yungbote/healthtrack-backend/internal/observability"
	"github.com/yungbote/healthtrack-backend/internal/platform/logger"
	"github.com/yungbote/healthtrack-backend/internal/providers"
	"github.com/yungbote/healthtrack-backend/internal/services"
)

type Services struct {
	Store     *graph.Store
	Engine    *diagnosis.Engine
	Suggest   services.SuggestService
	Directory providers.Directory
}

func wireServices(ctx context.Context, log *logger.Logger, cfg *config.Config, clients Clients, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")

	breaker := graph.DefaultBreakerSettings()
	breaker.MaxRequests = cfg.Breaker.MaxRequests
	breaker.Interval = cfg.Breaker.Interval
	breaker.Timeout = cfg.Breaker.Timeout
	breaker.FailureThreshold = cfg.Breaker.FailureThreshold
	breaker.MinRequests = cfg.Breaker.MinRequests

	opts := graph.Options{Breaker: breaker}
	if metrics != nil {
		opts.Observer = metrics
	}
	store := graph.NewStore(clients.Neo4j, log, opts)
	if store.Available() {
		if err := store.Ping(ctx); err != nil {
			log.Warn("knowledge store ping failed (continuing)", "error", err)
		}
	}

	engine := diagnosis.New(store, log, diagnosis.Options{
		MaxCandidates:        cfg.Engine.MaxCandidates,
		ProjectionConditions: cfg.Engine.ProjectionConditions,
		ProjectionEdges:      cfg.Engine.ProjectionEdges,
	})
	if metrics != nil {
		engine.WithRecorder(metrics)
	}

	var suggestObs services.SuggestObserver
	if metrics != nil {
		suggestObs = metrics
	}
	suggest := services.NewSuggestService(log, store, clients.Redis, cfg.Redis.SuggestTTL, suggestObs)

	dir, err := wireDirectory(ctx, log, cfg, clients)
	if err != nil {
		return Services{}, err
	}

	return Services{
		Store:     store,
		Engine:    engine,
		Suggest:   suggest,
		Directory: dir,
	}, nil
}

func wireDirectory(ctx context.Context, log *logger.Logger, cfg *config.Config, clients Clients) (providers.Directory, error) {
	if cfg.Providers.Source != config.ProvidersPostgres {
		dir, err := providers.LoadStaticDirectory()
		if err != nil {
			return nil, fmt.Errorf("load provider directory: %w", err)
		}
		return dir, nil
	}
	if clients.Postgres == nil {
		return nil, fmt.Errorf("provider directory: postgres not connected")
	}
	dir := providers.NewGormDirectory(clients.Postgres.DB(), log)
	if cfg.Providers.SeedOnStart {
		seed, err := providers.SeedProviders()
		if err != nil {
			return nil, fmt.Errorf("load provider seed: %w", err)
		}
		if err := dir.Seed(ctx, seed); err != nil {
			return nil, fmt.Errorf("seed providers: %w", err)
		}
		log.Info("Seeded provider directory", "count", len(seed))
	}
	return dir, nil
}
