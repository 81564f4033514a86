package diagnosis

import (
	"context"
	"sort"

	"github.com/yungbote/healthtrack-backend/internal/domain"
	"github.com/yungbote/healthtrack-backend/internal/platform/logger"
)

type ProjectionBuilder struct {
	store KnowledgeStore
	log   *logger.Logger
	opts  Options
}

func NewProjectionBuilder(store KnowledgeStore, log *logger.Logger, opts Options) *ProjectionBuilder {
	return &ProjectionBuilder{store: store, log: log.With("component", "GraphProjection"), opts: opts.withDefaults()}
}

// Project builds the visualization subgraph for the top-ranked candidates. Any failure
// degrades to an empty projection.
func (b *ProjectionBuilder) Project(ctx context.Context, inputs []string, candidates []domain.Candidate) domain.GraphProjection {
	if len(candidates) == 0 || b.store == nil {
		return domain.EmptyProjection()
	}
	k := b.opts.ProjectionConditions
	if k > len(candidates) {
		k = len(candidates)
	}
	names := make([]string, 0, k)
	for _, c := range candidates[:k] {
		names = append(names, c.Condition)
	}

	rows, err := b.store.ProjectionRows(ctx, names, b.opts.ProjectionEdges)
	if err != nil {
		b.log.Warn("projection query failed", "error", err, "conditions", names)
		return domain.EmptyProjection()
	}
	return BuildProjection(inputs, rows, b.opts.ProjectionEdges)
}

// BuildProjection converts store rows into nodes and links. Rows are ordered by edge
// severity desc (absent counts as 1), then condition name, then symptom name, and cut at
// maxEdges. Node ids are unique and every link endpoint is a node.
func BuildProjection(inputs []string, rows []domain.ProjectionRow, maxEdges int) domain.GraphProjection {
	out := domain.EmptyProjection()
	if len(rows) == 0 {
		return out
	}

	ordered := make([]domain.ProjectionRow, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		sa, sb := a.Association.SeverityOrDefault(), b.Association.SeverityOrDefault()
		if sa != sb {
			return sa > sb
		}
		if a.Condition.Name != b.Condition.Name {
			return a.Condition.Name < b.Condition.Name
		}
		return a.Symptom.Name < b.Symptom.Name
	})
	if maxEdges > 0 && len(ordered) > maxEdges {
		ordered = ordered[:maxEdges]
	}

	input := toSet(NormalizeAll(inputs))
	seen := make(map[string]struct{}, len(ordered)*2)
	links := make(map[[2]string]struct{}, len(ordered))
	for _, row := range ordered {
		condID := conditionNodeID(row.Condition)
		symID := symptomNodeID(row.Symptom)
		if condID == "" || symID == "" {
			continue
		}
		if _, ok := seen[condID]; !ok {
			seen[condID] = struct{}{}
			out.Nodes = append(out.Nodes, conditionNode(condID, row.Condition))
		}
		if _, ok := seen[symID]; !ok {
			seen[symID] = struct{}{}
			_, isInput := input[row.Symptom.Name]
			out.Nodes = append(out.Nodes, symptomNode(symID, row.Symptom, isInput))
		}
		key := [2]string{condID, symID}
		if _, dup := links[key]; dup {
			continue
		}
		links[key] = struct{}{}
		out.Links = append(out.Links, associationLink(condID, symID, row.Association))
	}
	return out
}

func conditionNodeID(c domain.Condition) string {
	key := c.ID
	if key == "" {
		key = c.Name
	}
	if key == "" {
		return ""
	}
	return domain.NodeTypeCondition + "_" + key
}

func symptomNodeID(s domain.Symptom) string {
	key := s.ID
	if key == "" {
		key = s.Name
	}
	if key == "" {
		return ""
	}
	return domain.NodeTypeSymptom + "_" + key
}

func conditionNode(id string, c domain.Condition) domain.GraphNode {
	props := map[string]any{
		"name":      c.Name,
		"emergency": c.IsEmergency(),
	}
	if c.Code != "" {
		props["code"] = c.Code
	}
	if c.Type != "" {
		props["type"] = c.Type
	}
	return domain.GraphNode{ID: id, Label: c.Name, Type: domain.NodeTypeCondition, Properties: props}
}

func symptomNode(id string, s domain.Symptom, isInput bool) domain.GraphNode {
	props := map[string]any{
		"name":      s.Name,
		"severity":  s.SeverityOrDefault(),
		"frequency": s.FrequencyOrDefault(),
		"emergency": s.IsEmergency(),
	}
	flag := isInput
	return domain.GraphNode{ID: id, Label: s.Name, Type: domain.NodeTypeSymptom, Properties: props, IsInput: &flag}
}

func associationLink(source, target string, a domain.Association) domain.GraphLink {
	props := map[string]any{
		"severity":  a.SeverityOrDefault(),
		"frequency": a.FrequencyOrDefault(),
	}
	if a.Confidence != nil {
		props["confidence"] = *a.Confidence
	}
	return domain.GraphLink{Source: source, Target: target, Relationship: domain.RelationshipAssociatedWith, Properties: props}
}
