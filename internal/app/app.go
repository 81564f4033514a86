package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/healthtrack-backend/internal/config"
	httpx "github.com/yungbote/healthtrack-backend/internal/http"
	"github.com/yungbote/healthtrack-backend/internal/observability"
	"github.com/yungbote/healthtrack-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	Router   *gin.Engine
	Cfg      *config.Config
	Clients  Clients
	Services Services
	Metrics  *observability.Metrics

	otelShutdown func(context.Context) error
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: config required")
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if env := strings.ToLower(cfg.Env); env == "production" || env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: cfg.Otel.ServiceName,
		Environment: cfg.Env,
		Version:     cfg.Otel.Version,
	})

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics()
	}

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}

	serviceset, err := wireServices(ctx, log, cfg, clients, metrics)
	if err != nil {
		clients.Close(ctx)
		log.Sync()
		return nil, err
	}

	handlerset := wireHandlers(log, cfg, serviceset)
	router := wireRouter(log, cfg, handlerset, metrics)
	if metrics != nil && strings.TrimSpace(cfg.Metrics.Addr) == "" {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	return &App{
		Log:          log,
		Router:       router,
		Cfg:          cfg,
		Clients:      clients,
		Services:     serviceset,
		Metrics:      metrics,
		otelShutdown: otelShutdown,
	}, nil
}

// Run serves the API, and the metrics endpoint when it has its own address, until ctx is
// cancelled or either server fails.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	g, gctx := errgroup.WithContext(ctx)

	api := httpx.NewServer(httpx.ServerConfig{
		Addr:              a.Cfg.HTTP.Addr,
		ReadHeaderTimeout: a.Cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       a.Cfg.HTTP.IdleTimeout,
		ShutdownTimeout:   a.Cfg.HTTP.ShutdownTimeout,
	}, a.Router)
	g.Go(func() error {
		a.Log.Info("HTTP server listening", "addr", api.Addr())
		return api.Run(gctx)
	})

	if addr := strings.TrimSpace(a.Cfg.Metrics.Addr); a.Metrics != nil && addr != "" {
		g.Go(func() error {
			return a.runMetrics(gctx, addr)
		})
	}

	return g.Wait()
}

func (a *App) runMetrics(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.Metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("Metrics server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	return <-errCh
}

func (a *App) Close() {
	if a == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	a.Clients.Close(ctx)
	if a.otelShutdown != nil {
		_ = a.otelShutdown(ctx)
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
