package providers

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/healthtrack-backend/internal/domain"
	"github.com/yungbote/healthtrack-backend/internal/platform/logger"
)

// GormDirectory reads providers from the relational "provider" table.
type GormDirectory struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGormDirectory(db *gorm.DB, baseLog *logger.Logger) *GormDirectory {
	return &GormDirectory{db: db, log: baseLog.With("repo", "ProviderDirectory")}
}

func (d *GormDirectory) LookupBySpecialization(ctx context.Context, specialization string) ([]domain.Provider, error) {
	var results []domain.Provider
	specialization = strings.TrimSpace(specialization)
	if specialization == "" {
		return []domain.Provider{}, nil
	}
	if err := d.db.WithContext(ctx).
		Where("LOWER(specialization) = ?", strings.ToLower(specialization)).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (d *GormDirectory) Search(ctx context.Context, filter domain.ProviderFilter) ([]domain.Provider, int, error) {
	filter = normalizeFilter(filter)

	q := d.db.WithContext(ctx).Model(&domain.Provider{})
	if filter.Specialization != "" {
		q = q.Where("LOWER(specialization) LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(filter.Specialization))+"%")
	}
	if filter.MinRating != nil {
		q = q.Where("rating >= ?", *filter.MinRating)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []domain.Provider
	if err := q.Session(&gorm.Session{}).
		Order("id ASC").
		Limit(filter.Limit).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, int(total), nil
}

// Seed upserts providers by id.
func (d *GormDirectory) Seed(ctx context.Context, list []domain.Provider) error {
	if len(list) == 0 {
		return nil
	}
	err := d.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "specialization", "hospital", "address", "phone", "email",
				"rating", "experience", "conditions_treated", "availability", "fees", "updated_at",
			}),
		}).
		Create(&list).Error
	if err != nil {
		return err
	}
	d.log.Info("provider directory seeded", "count", len(list))
	return nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
