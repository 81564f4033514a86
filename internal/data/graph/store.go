package graph

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/healthtrack-backend/internal/domain"
	"github.com/yungbote/healthtrack-backend/internal/platform/logger"
	"github.com/yungbote/healthtrack-backend/internal/platform/neo4jdb"
)

// ErrUnavailable is returned (wrapped) when there is no usable store: no client, an open
// breaker, or a connectivity failure.
var ErrUnavailable = domain.ErrStoreUnavailable

const (
	DefaultSuggestLimit = 10
	maxSuggestLimit     = 50
)

// Observer receives per-query outcomes and breaker transitions.
type Observer interface {
	ObserveStoreQuery(op, status string, elapsed time.Duration)
	ObserveBreakerState(name, state string)
}

type Options struct {
	Breaker  BreakerSettings
	Observer Observer
}

// Store is the read-only knowledge store backed by Neo4j. Every query opens its own read
// session and closes it before returning.
type Store struct {
	client *neo4jdb.Client
	log    *logger.Logger
	cb     *gobreaker.CircuitBreaker
	tracer trace.Tracer
	obs    Observer
}

// NewStore accepts a nil client; every query then fails with ErrUnavailable.
func NewStore(client *neo4jdb.Client, log *logger.Logger, opts Options) *Store {
	if log == nil {
		log = logger.NewNop()
	}
	log = log.With("repo", "GraphStore")
	return &Store{
		client: client,
		log:    log,
		cb:     newBreaker(opts.Breaker, log, opts.Observer),
		tracer: otel.Tracer("healthtrack/graph"),
		obs:    opts.Observer,
	}
}

func (s *Store) Available() bool {
	return s != nil && s.client != nil && s.client.Driver != nil
}

func (s *Store) EmergencySymptoms(ctx context.Context, names []string) ([]domain.Symptom, error) {
	if len(names) == 0 {
		return []domain.Symptom{}, nil
	}
	rows, err := s.read(ctx, "emergency_symptoms", emergencySymptomsCypher, map[string]any{"names": names})
	if err != nil {
		return nil, err
	}
	return decodeEmergencySymptoms(rows), nil
}

func (s *Store) ConditionProfiles(ctx context.Context, names []string) ([]domain.ConditionProfile, error) {
	if len(names) == 0 {
		return []domain.ConditionProfile{}, nil
	}
	rows, err := s.read(ctx, "condition_profiles", conditionProfilesCypher, map[string]any{"names": names})
	if err != nil {
		return nil, err
	}
	return decodeConditionProfiles(rows), nil
}

func (s *Store) ProjectionRows(ctx context.Context, conditions []string, limit int) ([]domain.ProjectionRow, error) {
	if len(conditions) == 0 || limit <= 0 {
		return []domain.ProjectionRow{}, nil
	}
	rows, err := s.read(ctx, "projection_rows", projectionRowsCypher, map[string]any{
		"conditions": conditions,
		"limit":      int64(limit),
	})
	if err != nil {
		return nil, err
	}
	return decodeProjectionRows(rows), nil
}

// SuggestSymptoms returns symptom names containing q, case-insensitively, sorted.
func (s *Store) SuggestSymptoms(ctx context.Context, q string, limit int) ([]string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []string{}, nil
	}
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}
	if limit > maxSuggestLimit {
		limit = maxSuggestLimit
	}
	rows, err := s.read(ctx, "suggest_symptoms", suggestSymptomsCypher, map[string]any{
		"q":     q,
		"limit": int64(limit),
	})
	if err != nil {
		return nil, err
	}
	return decodeNames(rows), nil
}

func (s *Store) NodeCount(ctx context.Context) (int64, error) {
	rows, err := s.read(ctx, "node_count", nodeCountCypher, nil)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	if n := asIntPtr(rows[0]["count"]); n != nil {
		return *n, nil
	}
	return 0, nil
}

func (s *Store) Stats(ctx context.Context) (domain.GraphStats, error) {
	labels, err := s.read(ctx, "label_counts", labelCountsCypher, nil)
	if err != nil {
		return domain.GraphStats{}, err
	}
	rels, err := s.read(ctx, "relationship_counts", relationshipCountsCypher, nil)
	if err != nil {
		return domain.GraphStats{}, err
	}
	total, err := s.NodeCount(ctx)
	if err != nil {
		return domain.GraphStats{}, err
	}
	return domain.GraphStats{
		NodeCounts:         decodeCounts(labels, "label"),
		RelationshipCounts: decodeCounts(rels, "type"),
		TotalNodes:         total,
	}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if !s.Available() {
		return fmt.Errorf("graph: ping: %w", ErrUnavailable)
	}
	if err := s.client.Ping(ctx); err != nil {
		return fmt.Errorf("graph: ping: %w: %w", ErrUnavailable, err)
	}
	return nil
}

func (s *Store) read(ctx context.Context, op, cypher string, params map[string]any) ([]map[string]any, error) {
	if !s.Available() {
		s.observe(op, "unavailable", 0)
		return nil, fmt.Errorf("graph: %s: %w", op, ErrUnavailable)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, span := s.tracer.Start(ctx, "graph."+op, trace.WithAttributes(
		attribute.String("db.system", "neo4j"),
		attribute.String("db.operation", op),
	))
	defer span.End()

	start := time.Now()
	// Auto-commit query: one attempt, no driver-side retry loop.
	out, err := s.cb.Execute(func() (interface{}, error) {
		session := s.client.ReadSession(ctx)
		defer session.Close(ctx)
		res, err := session.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			rows = append(rows, rec.AsMap())
		}
		return rows, nil
	})
	elapsed := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, op)
		if isBreakerRejection(err) || isConnectivityFailure(err) {
			s.observe(op, "unavailable", elapsed)
			return nil, fmt.Errorf("graph: %s: %w: %w", op, ErrUnavailable, err)
		}
		s.observe(op, "error", elapsed)
		return nil, fmt.Errorf("graph: %s: %w", op, err)
	}

	rows, _ := out.([]map[string]any)
	span.SetAttributes(attribute.Int("db.rows", len(rows)))
	s.observe(op, "ok", elapsed)
	return rows, nil
}

func (s *Store) observe(op, status string, elapsed time.Duration) {
	if s == nil || s.obs == nil {
		return
	}
	s.obs.ObserveStoreQuery(op, status, elapsed)
}
