package models

import (
	"time"

	"github.com/nutriplan/nutriplan-backend/internal/nutrition"
)

// DietPreset is a stored macro-ratio template. The three ratios should sum
// to 100; the database does not enforce it and neither does the engine.
// Presets are edited by hand and a few legacy rows are off by a point or two.
type DietPreset struct {
	Code         string    `gorm:"size:30;primaryKey" json:"code"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	CarbRatio    float64   `gorm:"type:float;not null" json:"carb_ratio"`
	ProteinRatio float64   `gorm:"type:float;not null" json:"protein_ratio"`
	FatRatio     float64   `gorm:"type:float;not null" json:"fat_ratio"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (DietPreset) TableName() string {
	return "diet_presets"
}

// Preset converts the row into the engine's value type.
func (p *DietPreset) Preset() nutrition.DietPreset {
	return nutrition.DietPreset{
		Code:         p.Code,
		CarbRatio:    p.CarbRatio,
		ProteinRatio: p.ProteinRatio,
		FatRatio:     p.FatRatio,
	}
}
