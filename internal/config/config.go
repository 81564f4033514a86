package config

import "time"

type HTTPConfig struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
	AllowedOrigins    []string      `yaml:"allowed_origins"`
}

type Neo4jConfig struct {
	URI         string        `yaml:"uri"`
	User        string        `yaml:"user"`
	Password    string        `yaml:"password"`
	Database    string        `yaml:"database"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxPoolSize int           `yaml:"max_pool_size"`
}

// BreakerConfig tunes the circuit breaker in front of the knowledge store.
type BreakerConfig struct {
	MaxRequests      uint32        `yaml:"max_requests"`
	Interval         time.Duration `yaml:"interval"`
	Timeout          time.Duration `yaml:"timeout"`
	FailureThreshold float64       `yaml:"failure_threshold"`
	MinRequests      uint32        `yaml:"min_requests"`
}

type RedisConfig struct {
	Addr       string        `yaml:"addr"`
	Password   string        `yaml:"password"`
	DB         int           `yaml:"db"`
	SuggestTTL time.Duration `yaml:"suggest_ttl"`
}

type ProvidersConfig struct {
	// Source is "static" (embedded directory) or "postgres".
	Source      string `yaml:"source"`
	PostgresDSN string `yaml:"postgres_dsn"`
	SeedOnStart bool   `yaml:"seed_on_start"`
	Location    string `yaml:"location"`
}

type EngineConfig struct {
	MaxCandidates        int `yaml:"max_candidates"`
	ProjectionConditions int `yaml:"projection_conditions"`
	ProjectionEdges      int `yaml:"projection_edges"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

type OtelConfig struct {
	ServiceName string `yaml:"service_name"`
	Version     string `yaml:"version"`
}

type Config struct {
	Env       string          `yaml:"env"`
	HTTP      HTTPConfig      `yaml:"http"`
	Neo4j     Neo4jConfig     `yaml:"neo4j"`
	Breaker   BreakerConfig   `yaml:"breaker"`
	Redis     RedisConfig     `yaml:"redis"`
	Providers ProvidersConfig `yaml:"providers"`
	Engine    EngineConfig    `yaml:"engine"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Otel      OtelConfig      `yaml:"otel"`
}
