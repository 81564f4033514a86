package diagnosis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/healthtrack-backend/internal/domain"
	"github.com/yungbote/healthtrack-backend/internal/platform/logger"
	"github.com/yungbote/healthtrack-backend/internal/platform/pointers"
)

func row(cond, sym string, severity *float64) domain.ProjectionRow {
	return domain.ProjectionRow{
		Condition:   domain.Condition{ID: cond, Name: cond},
		Association: domain.Association{SymptomName: sym, Severity: severity},
		Symptom:     domain.Symptom{ID: sym, Name: sym},
	}
}

func TestBuildProjectionDedupsNodes(t *testing.T) {
	rows := []domain.ProjectionRow{
		row("Flu", "cough", pointers.Float64(2)),
		row("Flu", "high_fever", pointers.Float64(3)),
		row("Cold", "cough", nil),
		row("Flu", "cough", pointers.Float64(2)),
	}
	g := BuildProjection([]string{"cough"}, rows, 50)

	ids := map[string]int{}
	for _, n := range g.Nodes {
		ids[n.ID]++
	}
	for id, n := range ids {
		if n != 1 {
			t.Fatalf("node %s appears %d times", id, n)
		}
	}
	assert.Len(t, g.Nodes, 4)
	assert.Len(t, g.Links, 3)
	for _, l := range g.Links {
		assert.Contains(t, ids, l.Source)
		assert.Contains(t, ids, l.Target)
		assert.Equal(t, domain.RelationshipAssociatedWith, l.Relationship)
	}
}

func TestBuildProjectionInputFlag(t *testing.T) {
	g := BuildProjection([]string{"Skin Rash"}, []domain.ProjectionRow{
		row("Fungal infection", "skin_rash", nil),
		row("Fungal infection", "itching", nil),
	}, 50)

	flags := map[string]bool{}
	for _, n := range g.Nodes {
		if n.Type == domain.NodeTypeSymptom {
			require.NotNil(t, n.IsInput)
			flags[n.ID] = *n.IsInput
		} else {
			assert.Nil(t, n.IsInput)
		}
	}
	assert.Equal(t, map[string]bool{"symptom_skin_rash": true, "symptom_itching": false}, flags)
}

func TestBuildProjectionOrderAndCap(t *testing.T) {
	rows := []domain.ProjectionRow{
		row("B", "s1", nil),
		row("A", "s2", pointers.Float64(5)),
		row("A", "s1", pointers.Float64(5)),
		row("A", "s3", pointers.Float64(0.5)),
	}
	g := BuildProjection(nil, rows, 3)
	require.Len(t, g.Links, 3)
	assert.Equal(t, "symptom_s1", g.Links[0].Target)
	assert.Equal(t, "symptom_s2", g.Links[1].Target)
	assert.Equal(t, "condition_B", g.Links[2].Source)
	assert.Equal(t, 1.0, g.Links[2].Properties["severity"])
}

func TestBuildProjectionEmpty(t *testing.T) {
	g := BuildProjection([]string{"cough"}, nil, 50)
	assert.NotNil(t, g.Nodes)
	assert.NotNil(t, g.Links)
	assert.Empty(t, g.Nodes)
}

func TestProjectScopesTopCandidates(t *testing.T) {
	store := newFakeStore().add("A", "cough", 1).add("B", "cough", 1).add("C", "cough", 1).add("D", "cough", 1)
	b := NewProjectionBuilder(store, logger.NewNop(), DefaultOptions())
	candidates := []domain.Candidate{{Condition: "A"}, {Condition: "B"}, {Condition: "C"}, {Condition: "D"}}

	g := b.Project(context.Background(), []string{"cough"}, candidates)
	assert.Equal(t, []string{"A", "B", "C"}, store.lastConditions)
	assert.Equal(t, DefaultProjectionEdges, store.lastLimit)
	assert.Len(t, g.Links, 3)
}

func TestProjectNoCandidatesNoQuery(t *testing.T) {
	store := newFakeStore()
	b := NewProjectionBuilder(store, logger.NewNop(), DefaultOptions())

	g := b.Project(context.Background(), nil, nil)
	assert.Empty(t, g.Nodes)
	assert.Empty(t, g.Links)
	_, _, proj := store.calls()
	assert.Zero(t, proj)
}

func TestProjectStoreFailureIsEmpty(t *testing.T) {
	store := newFakeStore()
	store.err = errors.New("query failed")
	b := NewProjectionBuilder(store, logger.NewNop(), DefaultOptions())

	g := b.Project(context.Background(), []string{"cough"}, []domain.Candidate{{Condition: "A"}})
	assert.Empty(t, g.Nodes)
	assert.NotNil(t, g.Links)
}
