package diagnosis

// Scoring and limit constants. The severity bonus is min(severity_score*2, 20).
const (
	DefaultMaxCandidates        = 10
	DefaultProjectionConditions = 3
	DefaultProjectionEdges      = 50

	SeverityBonusFactor = 2.0
	SeverityBonusCap    = 20.0
	ConfidenceCeiling   = 99.9
)

type Options struct {
	// MaxCandidates truncates the ranked list.
	MaxCandidates int
	// ProjectionConditions is how many top-ranked candidates the subgraph covers.
	ProjectionConditions int
	// ProjectionEdges caps the number of links in the subgraph.
	ProjectionEdges int
}

func DefaultOptions() Options {
	return Options{
		MaxCandidates:        DefaultMaxCandidates,
		ProjectionConditions: DefaultProjectionConditions,
		ProjectionEdges:      DefaultProjectionEdges,
	}
}

func (o Options) withDefaults() Options {
	if o.MaxCandidates <= 0 {
		o.MaxCandidates = DefaultMaxCandidates
	}
	if o.ProjectionConditions <= 0 {
		o.ProjectionConditions = DefaultProjectionConditions
	}
	if o.ProjectionEdges <= 0 {
		o.ProjectionEdges = DefaultProjectionEdges
	}
	return o
}
