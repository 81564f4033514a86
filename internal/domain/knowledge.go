package domain

import "errors"

// ErrStoreUnavailable marks knowledge-store failures that mean "no store right now"
// (not configured, unreachable, or breaker open) as opposed to a failed query.
var ErrStoreUnavailable = errors.New("knowledge store unavailable")

const (
	DefaultAssociationSeverity  = 1.0
	DefaultAssociationFrequency = 1.0
)

// Symptom is a Symptom node as read from the store. Optional properties are pointers;
// use the accessors for the documented defaults.
type Symptom struct {
	ID        string
	Name      string
	Severity  *int64
	Frequency *int64
	Emergency *bool
}

func (s Symptom) SeverityOrDefault() int64 {
	if s.Severity == nil {
		return 1
	}
	return *s.Severity
}

func (s Symptom) FrequencyOrDefault() int64 {
	if s.Frequency == nil {
		return 1
	}
	return *s.Frequency
}

func (s Symptom) IsEmergency() bool { return s.Emergency != nil && *s.Emergency }

// Condition is a Disease node as read from the store.
type Condition struct {
	ID        string
	Name      string
	Code      string
	Type      string
	Emergency *bool
}

func (c Condition) IsEmergency() bool { return c.Emergency != nil && *c.Emergency }

// Association is one ASSOCIATED_WITH edge from a condition to a symptom.
type Association struct {
	SymptomName string
	Severity    *float64
	Frequency   *float64
	Confidence  *float64
}

// SeverityOrDefault applies the store contract: an edge without severity weighs 1.
func (a Association) SeverityOrDefault() float64 {
	if a.Severity == nil {
		return DefaultAssociationSeverity
	}
	return *a.Severity
}

func (a Association) FrequencyOrDefault() float64 {
	if a.Frequency == nil {
		return DefaultAssociationFrequency
	}
	return *a.Frequency
}

// ConditionProfile is a condition together with every one of its associations,
// not only those touching the input.
type ConditionProfile struct {
	Condition    Condition
	Associations []Association
}

// ProjectionRow is one (condition, association, symptom) triple returned for the
// visualization subgraph.
type ProjectionRow struct {
	Condition   Condition
	Association Association
	Symptom     Symptom
}

type GraphStats struct {
	NodeCounts         map[string]int64 `json:"node_counts"`
	RelationshipCounts map[string]int64 `json:"relationship_counts"`
	TotalNodes         int64            `json:"total_nodes"`
}
