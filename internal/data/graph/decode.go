package graph

import (
	"strings"

	"github.com/yungbote/healthtrack-backend/internal/domain"
)

// Row decoding. The driver hands back int64/float64/bool/string/[]any/map[string]any;
// anything else (including nil) is treated as absent.

func decodeEmergencySymptoms(rows []map[string]any) []domain.Symptom {
	out := make([]domain.Symptom, 0, len(rows))
	for _, r := range rows {
		sym := domain.Symptom{
			ID:        asString(r["id"]),
			Name:      asString(r["name"]),
			Severity:  asIntPtr(r["severity"]),
			Frequency: asIntPtr(r["frequency"]),
			Emergency: asBoolPtr(r["emergency"]),
		}
		if sym.Name == "" {
			continue
		}
		out = append(out, sym)
	}
	return out
}

func decodeConditionProfiles(rows []map[string]any) []domain.ConditionProfile {
	out := make([]domain.ConditionProfile, 0, len(rows))
	for _, r := range rows {
		p := domain.ConditionProfile{
			Condition: domain.Condition{
				ID:        asString(r["id"]),
				Name:      asString(r["name"]),
				Code:      asString(r["code"]),
				Type:      asString(r["type"]),
				Emergency: asBoolPtr(r["emergency"]),
			},
		}
		if p.Condition.Name == "" {
			continue
		}
		list, _ := r["associations"].([]any)
		for _, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			a := domain.Association{
				SymptomName: asString(m["symptom"]),
				Severity:    asFloatPtr(m["severity"]),
				Frequency:   asFloatPtr(m["frequency"]),
				Confidence:  asFloatPtr(m["confidence"]),
			}
			if a.SymptomName == "" {
				continue
			}
			p.Associations = append(p.Associations, a)
		}
		out = append(out, p)
	}
	return out
}

func decodeProjectionRows(rows []map[string]any) []domain.ProjectionRow {
	out := make([]domain.ProjectionRow, 0, len(rows))
	for _, r := range rows {
		row := domain.ProjectionRow{
			Condition: domain.Condition{
				ID:        asString(r["condition_id"]),
				Name:      asString(r["condition_name"]),
				Code:      asString(r["condition_code"]),
				Type:      asString(r["condition_type"]),
				Emergency: asBoolPtr(r["condition_emergency"]),
			},
			Symptom: domain.Symptom{
				ID:        asString(r["symptom_id"]),
				Name:      asString(r["symptom_name"]),
				Severity:  asIntPtr(r["symptom_severity"]),
				Frequency: asIntPtr(r["symptom_frequency"]),
				Emergency: asBoolPtr(r["symptom_emergency"]),
			},
			Association: domain.Association{
				SymptomName: asString(r["symptom_name"]),
				Severity:    asFloatPtr(r["severity"]),
				Frequency:   asFloatPtr(r["frequency"]),
				Confidence:  asFloatPtr(r["confidence"]),
			},
		}
		if row.Condition.Name == "" || row.Symptom.Name == "" {
			continue
		}
		out = append(out, row)
	}
	return out
}

func decodeNames(rows []map[string]any) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		if name := asString(r["name"]); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func decodeCounts(rows []map[string]any, key string) map[string]int64 {
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		k := asString(r[key])
		if k == "" {
			continue
		}
		if n := asIntPtr(r["count"]); n != nil {
			out[k] += *n
		}
	}
	return out
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	default:
		return ""
	}
}

func asFloatPtr(v any) *float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int64:
		f = float64(t)
	case int:
		f = float64(t)
	default:
		return nil
	}
	return &f
}

func asIntPtr(v any) *int64 {
	var n int64
	switch t := v.(type) {
	case int64:
		n = t
	case int:
		n = int64(t)
	case float64:
		n = int64(t)
	default:
		return nil
	}
	return &n
}

func asBoolPtr(v any) *bool {
	b, ok := v.(bool)
	if !ok {
		return nil
	}
	return &b
}
