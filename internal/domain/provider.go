package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Provider is a directory entry for a practitioner.
type Provider struct {
	ID                string                      `gorm:"column:id;primaryKey" json:"id" yaml:"id"`
	Name              string                      `gorm:"column:name;not null" json:"name" yaml:"name"`
	Specialization    string                      `gorm:"column:specialization;not null;index" json:"specialization" yaml:"specialization"`
	Hospital          string                      `gorm:"column:hospital" json:"hospital" yaml:"hospital"`
	Address           string                      `gorm:"column:address" json:"address" yaml:"address"`
	Phone             string                      `gorm:"column:phone" json:"phone,omitempty" yaml:"phone"`
	Email             string                      `gorm:"column:email" json:"email,omitempty" yaml:"email"`
	Rating            float64                     `gorm:"column:rating;not null;default:0;index" json:"rating" yaml:"rating"`
	Experience        string                      `gorm:"column:experience" json:"experience" yaml:"experience"`
	ConditionsTreated datatypes.JSONSlice[string] `gorm:"column:conditions_treated" json:"conditions_treated" yaml:"conditions_treated"`
	Availability      string                      `gorm:"column:availability" json:"availability" yaml:"availability"`
	Fees              string                      `gorm:"column:fees" json:"fees" yaml:"fees"`
	CreatedAt         time.Time                   `gorm:"not null" json:"-" yaml:"-"`
	UpdatedAt         time.Time                   `gorm:"not null" json:"-" yaml:"-"`
}

func (Provider) TableName() string { return "provider" }

// ProviderFilter narrows a directory search. Zero values match everything.
type ProviderFilter struct {
	Specialization string
	MinRating      *float64
	Limit          int
}
