package diagnosis

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/healthtrack-backend/internal/domain"
	"github.com/yungbote/healthtrack-backend/internal/platform/logger"
)

const chestPainPhrase = "chest pain"

// staticEmergencyPhrases are matched against the raw input, case-insensitively, before
// any store access. Order matters: the first phrase present wins.
var staticEmergencyPhrases = []string{
	"difficulty breathing",
	"severe bleeding",
	"unconscious",
	"stroke",
	"heart attack",
	"paralysis",
	"severe headache",
}

const chestPainWarning = "EMERGENCY WARNING: Chest pain can indicate serious conditions like heart attack. Seek immediate medical attention!"

// Sentinel decides whether the input needs an immediate-attention response.
type Sentinel struct {
	store KnowledgeStore
	log   *logger.Logger
}

func NewSentinel(store KnowledgeStore, log *logger.Logger) *Sentinel {
	return &Sentinel{store: store, log: log.With("component", "EmergencySentinel")}
}

// CheckEmergency runs the static tier, then the store tier. A store failure is logged and
// never triggers.
func (s *Sentinel) CheckEmergency(ctx context.Context, raw []string) domain.EmergencyResult {
	if res := checkStaticEmergency(raw); res.Triggered {
		s.log.Warn("static emergency tier triggered", "symptoms", res.Symptoms)
		return res
	}
	if s.store == nil {
		return domain.EmergencyResult{}
	}

	normalized := NormalizeAll(raw)
	if len(normalized) == 0 {
		return domain.EmergencyResult{}
	}
	flagged, err := s.store.EmergencySymptoms(ctx, normalized)
	if err != nil {
		s.log.Warn("store emergency check failed (continuing)", "error", err)
		return domain.EmergencyResult{}
	}

	names := make([]string, 0, len(flagged))
	seen := make(map[string]struct{}, len(flagged))
	for _, sym := range flagged {
		if !sym.IsEmergency() || sym.Name == "" {
			continue
		}
		if _, dup := seen[sym.Name]; dup {
			continue
		}
		seen[sym.Name] = struct{}{}
		names = append(names, sym.Name)
	}
	if len(names) == 0 {
		return domain.EmergencyResult{}
	}

	s.log.Warn("store emergency tier triggered", "symptoms", names)
	return domain.EmergencyResult{
		Triggered: true,
		Tier:      domain.EmergencyTierStore,
		Symptoms:  names,
		Message:   fmt.Sprintf("URGENT: Symptoms '%s' require immediate medical attention.", strings.Join(names, ", ")),
	}
}

func checkStaticEmergency(raw []string) domain.EmergencyResult {
	lowered := make(map[string]struct{}, len(raw))
	for _, s := range raw {
		lowered[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}

	if _, ok := lowered[chestPainPhrase]; ok {
		return domain.EmergencyResult{
			Triggered: true,
			Tier:      domain.EmergencyTierStatic,
			Symptoms:  []string{chestPainPhrase},
			Message:   chestPainWarning,
		}
	}
	for _, phrase := range staticEmergencyPhrases {
		if _, ok := lowered[phrase]; ok {
			return domain.EmergencyResult{
				Triggered: true,
				Tier:      domain.EmergencyTierStatic,
				Symptoms:  []string{phrase},
				Message:   fmt.Sprintf("EMERGENCY: '%s' requires immediate medical attention!", phrase),
			}
		}
	}
	return domain.EmergencyResult{}
}
