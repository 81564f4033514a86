package diagnosis

import (
	"context"

	"github.com/yungbote/healthtrack-backend/internal/domain"
)

// KnowledgeStore is the read-only slice of the graph store the engine needs.
// Implementations return domain.ErrStoreUnavailable (possibly wrapped) when there is no
// usable store, and any other error for a failed query.
type KnowledgeStore interface {
	// EmergencySymptoms returns the symptoms among names flagged emergency=true.
	EmergencySymptoms(ctx context.Context, names []string) ([]domain.Symptom, error)
	// ConditionProfiles returns every condition with at least one association to names,
	// each with all of its associations.
	ConditionProfiles(ctx context.Context, names []string) ([]domain.ConditionProfile, error)
	// ProjectionRows returns up to limit associations of the named conditions.
	ProjectionRows(ctx context.Context, conditions []string, limit int) ([]domain.ProjectionRow, error)
}
