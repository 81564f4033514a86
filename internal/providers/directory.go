package providers

import (
	"context"
	"strings"

	"github.com/yungbote/healthtrack-backend/internal/domain"
)

const (
	DefaultSpecialization = "General Physician"
	DefaultLocation       = "Haripur, Pakistan"
	RecommendLimit        = 3
	SearchLimit           = 10

	Disclaimer = "Doctor information is for reference only. Always verify details before visiting."
)

// Directory is the provider lookup the API depends on.
type Directory interface {
	// LookupBySpecialization returns providers whose specialization equals s
	// (case-insensitive), in directory order.
	LookupBySpecialization(ctx context.Context, specialization string) ([]domain.Provider, error)
	// Search returns at most filter.Limit matches and the total number of matches.
	Search(ctx context.Context, filter domain.ProviderFilter) ([]domain.Provider, int, error)
}

var conditionSpecialization = map[string]string{
	"heart attack":                 "Cardiologist",
	"hypertension":                 "Cardiologist",
	"fungal infection":             "Dermatologist",
	"allergy":                      "Dermatologist",
	"psoriasis":                    "Dermatologist",
	"acne":                         "Dermatologist",
	"arthritis":                    "Orthopedic Surgeon",
	"osteoarthristis":              "Orthopedic Surgeon",
	"back pain":                    "Orthopedic Surgeon",
	"common cold":                  "General Physician",
	"pneumonia":                    "General Physician",
	"malaria":                      "General Physician",
	"typhoid":                      "General Physician",
	"dengue":                       "General Physician",
	"migraine":                     "Neurologist",
	"paralysis (brain hemorrhage)": "Neurologist",
	"epilepsy":                     "Neurologist",
	"chicken pox":                  "Pediatrician",
	"impetigo":                     "Pediatrician",
	"gastroenteritis":              "Gastroenterologist",
	"peptic ulcer disease":         "Gastroenterologist",
	"cervical spondylosis":         "Gynecologist",
	"urinary tract infection":      "Gynecologist",
}

// SpecializationFor maps a condition name to the specialization that treats it, falling
// back to DefaultSpecialization.
func SpecializationFor(condition string) string {
	key := strings.ToLower(strings.Join(strings.Fields(condition), " "))
	if s, ok := conditionSpecialization[key]; ok {
		return s
	}
	return DefaultSpecialization
}

type Recommendation struct {
	Condition      string            `json:"condition"`
	Specialization string            `json:"specialization"`
	Providers      []domain.Provider `json:"recommended_doctors"`
	Location       string            `json:"location"`
	Disclaimer     string            `json:"disclaimer"`
}

// Recommend picks up to RecommendLimit providers for a condition. When nobody practices the
// mapped specialization it falls back to general physicians.
func Recommend(ctx context.Context, dir Directory, condition, location string) (Recommendation, error) {
	if strings.TrimSpace(location) == "" {
		location = DefaultLocation
	}
	spec := SpecializationFor(condition)
	out := Recommendation{
		Condition:      condition,
		Specialization: spec,
		Providers:      []domain.Provider{},
		Location:       location,
		Disclaimer:     Disclaimer,
	}

	found, err := dir.LookupBySpecialization(ctx, spec)
	if err != nil {
		return out, err
	}
	if len(found) == 0 && spec != DefaultSpecialization {
		found, err = dir.LookupBySpecialization(ctx, DefaultSpecialization)
		if err != nil {
			return out, err
		}
	}
	if len(found) > RecommendLimit {
		found = found[:RecommendLimit]
	}
	if found != nil {
		out.Providers = found
	}
	return out, nil
}

func normalizeFilter(f domain.ProviderFilter) domain.ProviderFilter {
	f.Specialization = strings.TrimSpace(f.Specialization)
	if f.Limit <= 0 || f.Limit > SearchLimit {
		f.Limit = SearchLimit
	}
	return f
}
