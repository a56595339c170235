package models

import (
	"time"

	"github.com/nutriplan/nutriplan-backend/internal/nutrition"
	"gorm.io/gorm"
)

// Ingredient is a catalog entry. All nutrient values are per 100 grams.
// IDs are plain integers because the catalog predates this backend and the
// mobile clients key on them.
type Ingredient struct {
	ID             int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	Name           string         `gorm:"size:255;not null;index" json:"name"`
	Category       string         `gorm:"size:50" json:"category"`
	EnergyKcal     float64        `gorm:"type:float;not null;check:energy_kcal >= 0" json:"energy_kcal"`
	ProteinG       float64        `gorm:"type:float;not null;check:protein_g >= 0" json:"protein_g"`
	CarbG          float64        `gorm:"type:float;not null;check:carb_g >= 0" json:"carb_g"`
	FatG           float64        `gorm:"type:float;not null;check:fat_g >= 0" json:"fat_g"`
	FiberG         float64        `gorm:"type:float" json:"fiber_g"`
	Micronutrients JSONBMap       `gorm:"type:jsonb;not null;default:'{}'" json:"micronutrients"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}

// NutrientRecord converts the row into the engine's per-100g value type,
// coercing stored micronutrient values on the way.
func (i *Ingredient) NutrientRecord() nutrition.NutrientRecord {
	return nutrition.NutrientRecord{
		EnergyKcal: i.EnergyKcal,
		ProteinG:   i.ProteinG,
		CarbG:      i.CarbG,
		FatG:       i.FatG,
		FiberG:     i.FiberG,
		Micros:     nutrition.ParseMicros(i.Micronutrients),
	}
}
