package diagnosis

import (
	"context"
	"sort"
	"sync"

	"github.com/yungbote/healthtrack-backend/internal/domain"
	"github.com/yungbote/healthtrack-backend/internal/platform/pointers"
)

type fakeEdge struct {
	condition string
	symptom   string
	severity  *float64
}

// fakeStore answers the three engine queries from an in-memory edge list and counts calls.
type fakeStore struct {
	mu sync.Mutex

	edges      []fakeEdge
	emergency  map[string]bool
	conditionE map[string]bool
	err        error

	emergencyCalls  int
	profileCalls    int
	projectionCalls int
	lastLimit       int
	lastConditions  []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{emergency: map[string]bool{}, conditionE: map[string]bool{}}
}

func (f *fakeStore) add(condition, symptom string, severity float64) *fakeStore {
	f.edges = append(f.edges, fakeEdge{condition: condition, symptom: symptom, severity: pointers.Float64(severity)})
	return f
}

func (f *fakeStore) addNoSeverity(condition, symptom string) *fakeStore {
	f.edges = append(f.edges, fakeEdge{condition: condition, symptom: symptom})
	return f
}

func (f *fakeStore) EmergencySymptoms(_ context.Context, names []string) ([]domain.Symptom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emergencyCalls++
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Symptom
	for _, n := range names {
		if f.emergency[n] {
			out = append(out, domain.Symptom{ID: n, Name: n, Emergency: pointers.Bool(true)})
		}
	}
	return out, nil
}

func (f *fakeStore) ConditionProfiles(_ context.Context, names []string) ([]domain.ConditionProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profileCalls++
	if f.err != nil {
		return nil, f.err
	}
	want := toSet(names)
	hit := map[string]bool{}
	for _, e := range f.edges {
		if _, ok := want[e.symptom]; ok {
			hit[e.condition] = true
		}
	}
	var conds []string
	for c := range hit {
		conds = append(conds, c)
	}
	// Map iteration order leaks into the result on purpose; ranking must not depend on it.
	var out []domain.ConditionProfile
	for _, c := range conds {
		p := domain.ConditionProfile{Condition: domain.Condition{ID: c, Name: c, Emergency: pointers.Bool(f.conditionE[c])}}
		for _, e := range f.edges {
			if e.condition == c {
				p.Associations = append(p.Associations, domain.Association{SymptomName: e.symptom, Severity: e.severity})
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeStore) ProjectionRows(_ context.Context, conditions []string, limit int) ([]domain.ProjectionRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projectionCalls++
	f.lastLimit = limit
	f.lastConditions = append([]string(nil), conditions...)
	if f.err != nil {
		return nil, f.err
	}
	want := toSet(conditions)
	var out []domain.ProjectionRow
	for _, e := range f.edges {
		if _, ok := want[e.condition]; !ok {
			continue
		}
		out = append(out, domain.ProjectionRow{
			Condition:   domain.Condition{ID: e.condition, Name: e.condition},
			Association: domain.Association{SymptomName: e.symptom, Severity: e.severity},
			Symptom:     domain.Symptom{ID: e.symptom, Name: e.symptom},
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Symptom.Name > out[j].Symptom.Name })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) calls() (int, int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.emergencyCalls, f.profileCalls, f.projectionCalls
}
