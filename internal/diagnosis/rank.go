package diagnosis

import (
	"context"
	"math"
	"sort"

	"github.com/yungbote/healthtrack-backend/internal/domain"
	"github.com/yungbote/healthtrack-backend/internal/platform/logger"
)

type Ranker struct {
	store KnowledgeStore
	log   *logger.Logger
	opts  Options
}

func NewRanker(store KnowledgeStore, log *logger.Logger, opts Options) *Ranker {
	return &Ranker{store: store, log: log.With("component", "CandidateRanker"), opts: opts.withDefaults()}
}

// Rank returns at most MaxCandidates scored conditions for the raw symptoms. Store
// failures yield an empty slice.
func (r *Ranker) Rank(ctx context.Context, raw []string) []domain.Candidate {
	candidates, _ := r.rank(ctx, NormalizeAll(raw))
	return candidates
}

func (r *Ranker) rank(ctx context.Context, normalized []string) ([]domain.Candidate, error) {
	if len(normalized) == 0 {
		return []domain.Candidate{}, nil
	}
	if r.store == nil {
		return []domain.Candidate{}, domain.ErrStoreUnavailable
	}

	profiles, err := r.store.ConditionProfiles(ctx, normalized)
	if err != nil {
		r.log.Error("condition query failed", "error", err, "symptoms", normalized)
		return []domain.Candidate{}, err
	}

	input := toSet(normalized)
	candidates := make([]domain.Candidate, 0, len(profiles))
	for _, p := range profiles {
		if c, ok := scoreProfile(p, input); ok {
			candidates = append(candidates, c)
		}
	}
	sortCandidates(candidates)
	if len(candidates) > r.opts.MaxCandidates {
		candidates = candidates[:r.opts.MaxCandidates]
	}
	r.log.Debug("ranked candidates", "symptoms", normalized, "profiles", len(profiles), "candidates", len(candidates))
	return candidates, nil
}

// scoreProfile turns one condition and all its associations into a candidate. It reports
// false when none of the associations touch the input.
func scoreProfile(p domain.ConditionProfile, input map[string]struct{}) (domain.Candidate, bool) {
	all := make(map[string]struct{}, len(p.Associations))
	matched := make([]string, 0, len(p.Associations))
	severity := 0.0
	for _, a := range p.Associations {
		if a.SymptomName == "" {
			continue
		}
		if _, dup := all[a.SymptomName]; dup {
			continue
		}
		all[a.SymptomName] = struct{}{}
		if _, ok := input[a.SymptomName]; ok {
			matched = append(matched, a.SymptomName)
			severity += a.SeverityOrDefault()
		}
	}
	if len(matched) == 0 {
		return domain.Candidate{}, false
	}
	sort.Strings(matched)

	total := len(all)
	pct := float64(len(matched)) / float64(total) * 100
	return domain.Candidate{
		Condition:       p.Condition.Name,
		Confidence:      Confidence(pct, severity),
		MatchedSymptoms: matched,
		TotalSymptoms:   total,
		SeverityScore:   severity,
		MatchPercentage: round1(pct),
		Emergency:       p.Condition.IsEmergency(),
	}, true
}

// Confidence is min(match% + min(severity*2, 20), 99.9), floored at 0 and rounded to one
// decimal place.
func Confidence(matchPercentage, severityScore float64) float64 {
	bonus := math.Min(severityScore*SeverityBonusFactor, SeverityBonusCap)
	c := math.Min(matchPercentage+bonus, ConfidenceCeiling)
	if c < 0 || math.IsNaN(c) {
		c = 0
	}
	return round1(c)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func sortCandidates(cs []domain.Candidate) {
	sort.SliceStable(cs, func(i, j int) bool {
		a, b := cs[i], cs[j]
		if len(a.MatchedSymptoms) != len(b.MatchedSymptoms) {
			return len(a.MatchedSymptoms) > len(b.MatchedSymptoms)
		}
		if a.SeverityScore != b.SeverityScore {
			return a.SeverityScore > b.SeverityScore
		}
		return a.Condition < b.Condition
	})
}
