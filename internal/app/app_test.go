package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/healthtrack-backend/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Env: "test",
		HTTP: config.HTTPConfig{
			Addr:           ":0",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Breaker: config.BreakerConfig{
			MaxRequests:      1,
			FailureThreshold: 0.5,
			MinRequests:      1,
		},
		Providers: config.ProvidersConfig{Source: config.ProvidersStatic},
		Engine: config.EngineConfig{
			MaxCandidates:        10,
			ProjectionConditions: 3,
			ProjectionEdges:      50,
		},
		Metrics: config.MetricsConfig{Enabled: true},
		Otel:    config.OtelConfig{ServiceName: "healthtrack-test", Version: "test"},
	}
}

func TestAppWithoutKnowledgeStore(t *testing.T) {
	a, err := New(context.Background(), testConfig())
	require.NoError(t, err)
	t.Cleanup(a.Close)

	assert.False(t, a.Services.Store.Available())

	serve := func(method, target, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body != "" {
			req = httptest.NewRequest(method, target, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		} else {
			req = httptest.NewRequest(method, target, nil)
		}
		rec := httptest.NewRecorder()
		a.Router.ServeHTTP(rec, req)
		return rec
	}

	var health map[string]any
	require.NoError(t, json.Unmarshal(serve(http.MethodGet, "/health", "").Body.Bytes(), &health))
	assert.Equal(t, "disconnected", health["neo4j"])

	// The static emergency tier needs no store.
	var res map[string]any
	rec := serve(http.MethodPost, "/analyze", `{"symptoms":["Chest Pain"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "emergency", res["status"])
	assert.Contains(t, res["emergency_warning"], "Chest pain")

	rec = serve(http.MethodPost, "/analyze", `{"symptoms":["itching"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "store_unavailable", res["status"])
	assert.Empty(t, res["predictions"])

	assert.Equal(t, http.StatusServiceUnavailable, serve(http.MethodGet, "/graph-stats", "").Code)

	rec = serve(http.MethodGet, "/doctors/recommend/Migraine", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Neurologist")

	rec = serve(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthtrack_analyses_total")
}

func TestNewRejectsMissingPostgres(t *testing.T) {
	cfg := testConfig()
	cfg.Providers.Source = config.ProvidersPostgres
	cfg.Providers.PostgresDSN = "host=127.0.0.1 port=1 user=x dbname=x sslmode=disable connect_timeout=1"

	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}
