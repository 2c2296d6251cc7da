package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MinQualityGrades     = 1
	MaxQualityGrades     = 10
	DefaultQualityGrades = 4
)

// Product: catalog entry. QualityNames holds exactly Qualities names.
type Product struct {
	ID           string                      `gorm:"primaryKey;size:36" json:"id"`
	Name         string                      `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description  string                      `gorm:"size:1000" json:"description"`
	ImageURL     string                      `gorm:"size:500" json:"imageUrl"`
	Qualities    int                         `gorm:"not null" json:"qualities"`
	QualityNames datatypes.JSONSlice[string] `json:"qualityNames"`
	Active       bool                        `gorm:"not null;index" json:"active"`
	CreatedAt    time.Time                   `json:"createdAt"`
	UpdatedAt    time.Time                   `json:"updatedAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// DefaultQualityNames returns "Quality 1".."Quality n".
func DefaultQualityNames(n int) []string {
	names := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		names = append(names, fmt.Sprintf("Quality %d", i))
	}
	return names
}

// HasQuality reports whether name is one of the product's declared grades.
func (p *Product) HasQuality(name string) bool {
	for _, n := range p.QualityNames {
		if n == name {
			return true
		}
	}
	return false
}
