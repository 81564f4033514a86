package graph

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/sony/gobreaker"

	"github.com/yungbote/healthtrack-backend/internal/diagnosis"
	"github.com/yungbote/healthtrack-backend/internal/domain"
	"github.com/yungbote/healthtrack-backend/internal/platform/logger"
	"github.com/yungbote/healthtrack-backend/internal/platform/neo4jdb"
)

var _ diagnosis.KnowledgeStore = (*Store)(nil)

type countingObserver struct {
	mu      sync.Mutex
	queries map[string]int
	states  []string
}

func (o *countingObserver) ObserveStoreQuery(op, status string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.queries == nil {
		o.queries = map[string]int{}
	}
	o.queries[op+":"+status]++
}

func (o *countingObserver) ObserveBreakerState(_, state string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.states = append(o.states, state)
}

func TestStoreWithoutClientIsUnavailable(t *testing.T) {
	obs := &countingObserver{}
	s := NewStore(nil, logger.NewNop(), Options{Observer: obs})
	ctx := context.Background()

	if _, err := s.ConditionProfiles(ctx, []string{"cough"}); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
	if _, err := s.EmergencySymptoms(ctx, []string{"cough"}); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
	if err := s.Ping(ctx); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected unavailable ping, got %v", err)
	}
	if _, err := s.Stats(ctx); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected unavailable stats, got %v", err)
	}
	if obs.queries["condition_profiles:unavailable"] != 1 {
		t.Fatalf("observer=%v", obs.queries)
	}
}

func TestStoreEmptyInputsSkipQueries(t *testing.T) {
	s := NewStore(nil, logger.NewNop(), Options{})
	ctx := context.Background()

	if got, err := s.ConditionProfiles(ctx, nil); err != nil || len(got) != 0 {
		t.Fatalf("got=%v err=%v", got, err)
	}
	if got, err := s.ProjectionRows(ctx, []string{"Flu"}, 0); err != nil || len(got) != 0 {
		t.Fatalf("got=%v err=%v", got, err)
	}
	if got, err := s.SuggestSymptoms(ctx, "   ", 5); err != nil || len(got) != 0 {
		t.Fatalf("got=%v err=%v", got, err)
	}
}

func TestBreakerIgnoresQueryErrors(t *testing.T) {
	if isConnectivityFailure(errors.New("syntax error")) {
		t.Fatalf("plain errors must not count as connectivity failures")
	}
	if !isConnectivityFailure(context.DeadlineExceeded) {
		t.Fatalf("deadline should count as a connectivity failure")
	}
	if !isConnectivityFailure(fmt.Errorf("wrapped: %w", &neo4j.ConnectivityError{Inner: io.EOF})) {
		t.Fatalf("wrapped connectivity error should count")
	}
}

func TestRetryLimitClassifiedByLastAttempt(t *testing.T) {
	lost := &neo4j.TransactionExecutionLimit{
		Cause:  "timeout (exceeded max retry time: 30s)",
		Errors: []error{errors.New("transient"), &neo4j.ConnectivityError{Inner: io.EOF}},
	}
	if !isConnectivityFailure(lost) {
		t.Fatalf("retry limit ending in a connectivity error should count")
	}
	failed := &neo4j.TransactionExecutionLimit{
		Cause:  "timeout (exceeded max retry time: 30s)",
		Errors: []error{errors.New("Neo.ClientError.Statement.SyntaxError")},
	}
	if isConnectivityFailure(failed) {
		t.Fatalf("retry limit ending in a query error must not count")
	}
}

// unreachableClient points a driver at a port nothing listens on, skipping the
// connectivity check neo4jdb.New would do.
func unreachableClient(t *testing.T) *neo4jdb.Client {
	t.Helper()
	driver, err := neo4j.NewDriverWithContext("bolt://127.0.0.1:1", neo4j.NoAuth(), func(c *neo4j.Config) {
		c.SocketConnectTimeout = time.Second
		c.ConnectionAcquisitionTimeout = time.Second
		c.MaxTransactionRetryTime = 0
	})
	if err != nil {
		t.Fatalf("driver: %v", err)
	}
	client := &neo4jdb.Client{Driver: driver}
	t.Cleanup(func() { _ = client.Close(context.Background()) })
	return client
}

func TestUnreachableStoreFailsFastAndOpensBreaker(t *testing.T) {
	obs := &countingObserver{}
	s := NewStore(unreachableClient(t), logger.NewNop(), Options{
		Breaker: BreakerSettings{
			MaxRequests:      1,
			Timeout:          time.Minute,
			FailureThreshold: 0.5,
			MinRequests:      3,
		},
		Observer: obs,
	})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		start := time.Now()
		_, err := s.ConditionProfiles(ctx, []string{"itching"})
		elapsed := time.Since(start)
		if !errors.Is(err, ErrUnavailable) {
			t.Fatalf("call %d: expected unavailable, got %v", i, err)
		}
		if elapsed > 2*time.Second {
			t.Fatalf("call %d took %v", i, elapsed)
		}
	}

	if got := s.cb.State(); got != gobreaker.StateOpen {
		t.Fatalf("breaker state=%v after 3 connectivity failures", got)
	}
	if len(obs.states) == 0 || obs.states[len(obs.states)-1] != "open" {
		t.Fatalf("observer states=%v", obs.states)
	}

	start := time.Now()
	_, err := s.EmergencySymptoms(ctx, []string{"itching"})
	if !errors.Is(err, ErrUnavailable) || !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("open breaker should reject as unavailable, got %v", err)
	}
	if time.Since(start) > 100*time.Millisecond {
		t.Fatalf("open breaker should not touch the network")
	}
	if obs.queries["condition_profiles:unavailable"] != 3 || obs.queries["emergency_symptoms:unavailable"] != 1 {
		t.Fatalf("observer=%v", obs.queries)
	}
}

// Integration: NEO4J_TEST_URI=neo4j://localhost:7687 NEO4J_TEST_PASSWORD=... go test ./internal/data/graph
func TestStoreAgainstNeo4j(t *testing.T) {
	uri := strings.TrimSpace(os.Getenv("NEO4J_TEST_URI"))
	if uri == "" {
		t.Skip("NEO4J_TEST_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log := logger.NewNop()
	client, err := neo4jdb.New(ctx, log, neo4jdb.Config{
		URI:      uri,
		User:     os.Getenv("NEO4J_TEST_USER"),
		Password: os.Getenv("NEO4J_TEST_PASSWORD"),
	})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close(ctx)

	seed(t, ctx, client)
	s := NewStore(client, log, Options{})

	profiles, err := s.ConditionProfiles(ctx, []string{"ht_itching"})
	if err != nil {
		t.Fatalf("ConditionProfiles: %v", err)
	}
	if len(profiles) != 1 || len(profiles[0].Associations) != 2 {
		t.Fatalf("profiles=%+v", profiles)
	}

	flagged, err := s.EmergencySymptoms(ctx, []string{"ht_itching", "ht_coma"})
	if err != nil {
		t.Fatalf("EmergencySymptoms: %v", err)
	}
	if len(flagged) != 1 || flagged[0].Name != "ht_coma" {
		t.Fatalf("flagged=%+v", flagged)
	}

	rows, err := s.ProjectionRows(ctx, []string{"HT Fungal infection"}, 1)
	if err != nil {
		t.Fatalf("ProjectionRows: %v", err)
	}
	if len(rows) != 1 || rows[0].Symptom.Name != "ht_skin_rash" {
		t.Fatalf("rows=%+v", rows)
	}

	names, err := s.SuggestSymptoms(ctx, "HT_SKIN", 10)
	if err != nil || len(names) != 1 {
		t.Fatalf("suggest=%v err=%v", names, err)
	}
	if err := s.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}

func seed(t *testing.T, ctx context.Context, client *neo4jdb.Client) {
	t.Helper()
	session := client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: client.Database,
	})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MATCH (n) WHERE n.name STARTS WITH 'ht_' OR n.name STARTS WITH 'HT ' DETACH DELETE n
WITH count(*) AS _
MERGE (d:Disease {name: 'HT Fungal infection'})
MERGE (a:Symptom {name: 'ht_itching'})
MERGE (b:Symptom {name: 'ht_skin_rash'})
MERGE (c:Symptom {name: 'ht_coma', emergency: true})
MERGE (d)-[:ASSOCIATED_WITH {severity: 2}]->(a)
MERGE (d)-[:ASSOCIATED_WITH {severity: 3}]->(b)
`, nil)
		if err != nil {
			return nil, err
		}
		_, err = res.Consume(ctx)
		return nil, err
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
}
