package providers

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/healthtrack-backend/internal/domain"
)

//go:embed doctors.yaml
var seedYAML []byte

type seedFile struct {
	Providers []domain.Provider `yaml:"providers"`
}

// SeedProviders decodes the embedded directory.
func SeedProviders() ([]domain.Provider, error) {
	return decodeSeed(seedYAML)
}

func decodeSeed(raw []byte) ([]domain.Provider, error) {
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("providers: decode seed: %w", err)
	}
	seen := make(map[string]struct{}, len(f.Providers))
	for i, p := range f.Providers {
		if strings.TrimSpace(p.ID) == "" || strings.TrimSpace(p.Specialization) == "" {
			return nil, fmt.Errorf("providers: seed entry %d: id and specialization required", i)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("providers: seed entry %d: duplicate id %q", i, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return f.Providers, nil
}

// StaticDirectory serves an immutable in-memory list.
type StaticDirectory struct {
	providers []domain.Provider
}

func NewStaticDirectory(list []domain.Provider) *StaticDirectory {
	cp := make([]domain.Provider, len(list))
	copy(cp, list)
	return &StaticDirectory{providers: cp}
}

// LoadStaticDirectory builds a directory from the embedded seed.
func LoadStaticDirectory() (*StaticDirectory, error) {
	list, err := SeedProviders()
	if err != nil {
		return nil, err
	}
	return NewStaticDirectory(list), nil
}

func (d *StaticDirectory) LookupBySpecialization(_ context.Context, specialization string) ([]domain.Provider, error) {
	specialization = strings.TrimSpace(specialization)
	out := []domain.Provider{}
	for _, p := range d.providers {
		if strings.EqualFold(p.Specialization, specialization) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (d *StaticDirectory) Search(_ context.Context, filter domain.ProviderFilter) ([]domain.Provider, int, error) {
	filter = normalizeFilter(filter)
	needle := strings.ToLower(filter.Specialization)
	matched := []domain.Provider{}
	for _, p := range d.providers {
		if needle != "" && !strings.Contains(strings.ToLower(p.Specialization), needle) {
			continue
		}
		if filter.MinRating != nil && p.Rating < *filter.MinRating {
			continue
		}
		matched = append(matched, p)
	}
	total := len(matched)
	if len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}
