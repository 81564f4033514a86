package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"HEALTHTRACK_CONFIG", "LOG_MODE", "HTTP_ADDR", "PORT", "NEO4J_URI", "NEO4J_TIMEOUT_SECONDS",
		"PROVIDERS_SOURCE", "PROVIDERS_POSTGRES_DSN", "ENGINE_MAX_CANDIDATES", "SUGGEST_CACHE_TTL",
		"STORE_BREAKER_FAILURE_RATIO",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != ":8000" {
		t.Fatalf("addr=%q", cfg.HTTP.Addr)
	}
	if cfg.Engine.MaxCandidates != 10 || cfg.Engine.ProjectionConditions != 3 || cfg.Engine.ProjectionEdges != 50 {
		t.Fatalf("unexpected engine defaults: %+v", cfg.Engine)
	}
	if cfg.Providers.Source != ProvidersStatic {
		t.Fatalf("providers source=%q", cfg.Providers.Source)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "healthtrack.yaml")
	body := []byte(`
env: production
http:
  addr: ":9090"
neo4j:
  uri: neo4j://graph:7687
  timeout: 3s
redis:
  suggest_ttl: 90s
engine:
  max_candidates: 5
`)
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("HEALTHTRACK_CONFIG", path)
	t.Setenv("PORT", "7000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Env != "production" {
		t.Fatalf("env=%q", cfg.Env)
	}
	if cfg.HTTP.Addr != ":7000" {
		t.Fatalf("PORT should override file addr, got %q", cfg.HTTP.Addr)
	}
	if cfg.Neo4j.URI != "neo4j://graph:7687" || cfg.Neo4j.Timeout != 3*time.Second {
		t.Fatalf("neo4j=%+v", cfg.Neo4j)
	}
	if cfg.Redis.SuggestTTL != 90*time.Second {
		t.Fatalf("suggest ttl=%v", cfg.Redis.SuggestTTL)
	}
	if cfg.Engine.MaxCandidates != 5 || cfg.Engine.ProjectionEdges != 50 {
		t.Fatalf("engine=%+v", cfg.Engine)
	}
}

func TestLoadRejectsPostgresWithoutDSN(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROVIDERS_SOURCE", "postgres")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for postgres source without dsn")
	}
}

func TestLoadRejectsUnknownSource(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROVIDERS_SOURCE", "ldap")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown providers source")
	}
}
