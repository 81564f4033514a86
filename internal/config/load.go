package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/healthtrack-backend/internal/platform/envutil"
)

const (
	ProvidersStatic   = "static"
	ProvidersPostgres = "postgres"
)

func defaultConfig() *Config {
	return &Config{
		Env: "development",
		HTTP: HTTPConfig{
			Addr:              ":8000",
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       2 * time.Minute,
			ShutdownTimeout:   15 * time.Second,
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://127.0.0.1:3000",
				"http://frontend:3000",
				"http://localhost",
			},
		},
		Neo4j: Neo4jConfig{
			User:        "neo4j",
			Timeout:     10 * time.Second,
			MaxPoolSize: 50,
		},
		Breaker: BreakerConfig{
			MaxRequests:      5,
			Interval:         30 * time.Second,
			Timeout:          60 * time.Second,
			FailureThreshold: 0.8,
			MinRequests:      5,
		},
		Redis: RedisConfig{
			SuggestTTL: 10 * time.Minute,
		},
		Providers: ProvidersConfig{
			Source:   ProvidersStatic,
			Location: "Haripur, Pakistan",
		},
		Engine: EngineConfig{
			MaxCandidates:        10,
			ProjectionConditions: 3,
			ProjectionEdges:      50,
		},
		Metrics: MetricsConfig{
			Addr: "",
		},
		Otel: OtelConfig{
			ServiceName: "healthtrack",
			Version:     "2.0",
		},
	}
}

// Load resolves configuration from defaults, an optional YAML file (HEALTHTRACK_CONFIG),
// an optional .env file, and finally the process environment.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	if path := strings.TrimSpace(os.Getenv("HEALTHTRACK_CONFIG")); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Env = envutil.String("LOG_MODE", cfg.Env)

	cfg.HTTP.Addr = envutil.String("HTTP_ADDR", cfg.HTTP.Addr)
	if port := envutil.String("PORT", ""); port != "" {
		cfg.HTTP.Addr = ":" + strings.TrimPrefix(port, ":")
	}
	cfg.HTTP.ShutdownTimeout = envutil.Duration("HTTP_SHUTDOWN_TIMEOUT", cfg.HTTP.ShutdownTimeout)
	if origins := envutil.String("CORS_ALLOWED_ORIGINS", ""); origins != "" {
		cfg.HTTP.AllowedOrigins = splitList(origins)
	}

	cfg.Neo4j.URI = envutil.String("NEO4J_URI", cfg.Neo4j.URI)
	cfg.Neo4j.User = envutil.String("NEO4J_USER", cfg.Neo4j.User)
	cfg.Neo4j.Password = envutil.String("NEO4J_PASSWORD", cfg.Neo4j.Password)
	cfg.Neo4j.Database = envutil.String("NEO4J_DATABASE", cfg.Neo4j.Database)
	cfg.Neo4j.Timeout = envutil.Duration("NEO4J_TIMEOUT_SECONDS", cfg.Neo4j.Timeout)
	cfg.Neo4j.MaxPoolSize = envutil.Int("NEO4J_MAX_POOL_SIZE", cfg.Neo4j.MaxPoolSize)

	cfg.Breaker.Timeout = envutil.Duration("STORE_BREAKER_TIMEOUT", cfg.Breaker.Timeout)
	cfg.Breaker.FailureThreshold = envutil.Float("STORE_BREAKER_FAILURE_RATIO", cfg.Breaker.FailureThreshold)

	cfg.Redis.Addr = envutil.String("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = envutil.String("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = envutil.Int("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.SuggestTTL = envutil.Duration("SUGGEST_CACHE_TTL", cfg.Redis.SuggestTTL)

	cfg.Providers.Source = strings.ToLower(envutil.String("PROVIDERS_SOURCE", cfg.Providers.Source))
	cfg.Providers.PostgresDSN = envutil.String("PROVIDERS_POSTGRES_DSN", cfg.Providers.PostgresDSN)
	cfg.Providers.SeedOnStart = envutil.Bool("PROVIDERS_SEED_ON_START", cfg.Providers.SeedOnStart)

	cfg.Engine.MaxCandidates = envutil.Int("ENGINE_MAX_CANDIDATES", cfg.Engine.MaxCandidates)
	cfg.Engine.ProjectionConditions = envutil.Int("ENGINE_PROJECTION_CONDITIONS", cfg.Engine.ProjectionConditions)
	cfg.Engine.ProjectionEdges = envutil.Int("ENGINE_PROJECTION_EDGES", cfg.Engine.ProjectionEdges)

	cfg.Metrics.Enabled = envutil.Bool("METRICS_ENABLED", cfg.Metrics.Enabled)
	cfg.Metrics.Addr = envutil.String("METRICS_ADDR", cfg.Metrics.Addr)

	cfg.Otel.ServiceName = envutil.String("OTEL_SERVICE_NAME", cfg.Otel.ServiceName)
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		return errors.New("config: http.addr is required")
	}
	switch c.Providers.Source {
	case ProvidersStatic:
	case ProvidersPostgres:
		if strings.TrimSpace(c.Providers.PostgresDSN) == "" {
			return errors.New("config: providers.postgres_dsn is required when providers.source=postgres")
		}
	default:
		return fmt.Errorf("config: unknown providers.source %q", c.Providers.Source)
	}
	if c.Engine.MaxCandidates <= 0 || c.Engine.ProjectionConditions <= 0 || c.Engine.ProjectionEdges <= 0 {
		return errors.New("config: engine limits must be positive")
	}
	if c.Breaker.FailureThreshold <= 0 || c.Breaker.FailureThreshold > 1 {
		return fmt.Errorf("config: breaker.failure_threshold %v out of range (0,1]", c.Breaker.FailureThreshold)
	}
	return nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
