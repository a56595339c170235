package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Food is a composed food built from weighted catalog ingredients. The
// totals columns are absolute values for the whole composition, written by
// the editing session on save; the ingredient lines remain the source the
// totals can be recomputed from, except for manually overridden fields.
type Food struct {
	ID              uuid.UUID            `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
	DeletedAt       gorm.DeletedAt       `gorm:"index" json:"-"`
	Name            string               `gorm:"size:255;not null" json:"name"`
	Description     string               `gorm:"type:text" json:"description"`
	Category        string               `gorm:"size:50" json:"category"`
	ImageURL        string               `gorm:"size:255" json:"image_url"`
	Lines           JSONBIngredientLines `gorm:"type:jsonb;not null;default:'[]'" json:"ingredient_lines"`
	TotalCalories   float64              `gorm:"type:float" json:"total_calories"`
	TotalProtein    float64              `gorm:"type:float" json:"total_protein"`
	TotalCarb       float64              `gorm:"type:float" json:"total_carb"`
	TotalFat        float64              `gorm:"type:float" json:"total_fat"`
	TotalFiber      float64              `gorm:"type:float" json:"total_fiber"`
	Micronutrients  JSONBMap             `gorm:"type:jsonb;not null;default:'{}'" json:"micronutrients"`
	DietTags        JSONBStringArray     `gorm:"type:jsonb;not null;default:'[]'" json:"diet_tags"`
	ManualOverrides JSONBOverrides       `gorm:"type:jsonb;not null;default:'{}'" json:"manual_overrides"`
	CreatedBy       uuid.UUID            `gorm:"type:uuid;not null" json:"created_by"`
}

func (Food) TableName() string {
	return "foods"
}
