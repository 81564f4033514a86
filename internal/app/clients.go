package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/healthtrack-backend/internal/config"
	"github.com/yungbote/healthtrack-backend/internal/data/db"
	"github.com/yungbote/healthtrack-backend/internal/platform/logger"
	"github.com/yungbote/healthtrack-backend/internal/platform/neo4jdb"
)

type Clients struct {
	Neo4j    *neo4jdb.Client
	Redis    *goredis.Client
	Postgres *db.PostgresService
}

// wireClients connects the optional backends. Neo4j and Redis failures are logged and the
// app degrades; a configured Postgres provider directory that cannot connect is fatal.
func wireClients(ctx context.Context, log *logger.Logger, cfg *config.Config) (Clients, error) {
	log.Info("Wiring clients...")
	var out Clients

	// Neo4j
	client, err := neo4jdb.New(ctx, log, neo4jdb.Config{
		URI:         cfg.Neo4j.URI,
		User:        cfg.Neo4j.User,
		Password:    cfg.Neo4j.Password,
		Database:    cfg.Neo4j.Database,
		Timeout:     cfg.Neo4j.Timeout,
		MaxPoolSize: cfg.Neo4j.MaxPoolSize,
	})
	if err != nil {
		log.Warn("neo4j unavailable (continuing without knowledge store)", "error", err)
	}
	if client == nil && err == nil {
		log.Warn("NEO4J_URI not set (continuing without knowledge store)")
	}
	out.Neo4j = client

	// Redis
	if addr := strings.TrimSpace(cfg.Redis.Addr); addr != "" {
		rdb := goredis.NewClient(&goredis.Options{
			Addr:        addr,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			DialTimeout: 5 * time.Second,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			_ = rdb.Close()
			log.Warn("redis ping failed (autocomplete cache disabled)", "error", err)
		} else {
			out.Redis = rdb
		}
	}

	// Postgres
	if cfg.Providers.Source == config.ProvidersPostgres {
		pg, err := db.NewPostgresService(cfg.Providers.PostgresDSN, log)
		if err != nil {
			out.Close(ctx)
			return Clients{}, fmt.Errorf("init postgres: %w", err)
		}
		if err := db.AutoMigrateAll(pg.DB()); err != nil {
			_ = pg.Close()
			out.Close(ctx)
			return Clients{}, fmt.Errorf("postgres automigrate: %w", err)
		}
		out.Postgres = pg
	}

	return out, nil
}

func (c *Clients) Close(ctx context.Context) {
	if c == nil {
		return
	}
	if c.Neo4j != nil {
		_ = c.Neo4j.Close(ctx)
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.Postgres != nil {
		_ = c.Postgres.Close()
	}
}
