package types

import (
	"github.com/nutriplan/nutriplan-backend/internal/nutrition"
)

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Gender   string `json:"gender" binding:"omitempty,oneof=male female"`
}

// LoginRequest is the payload for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries a freshly issued token.
type AuthResponse struct {
	Token string `json:"token"`
}

// IngredientRequest is the payload for creating or updating a catalog
// ingredient. Nutrient values are per 100 grams.
type IngredientRequest struct {
	Name           string         `json:"name" binding:"required"`
	Category       string         `json:"category"`
	EnergyKcal     float64        `json:"energy_kcal" binding:"gte=0"`
	ProteinG       float64        `json:"protein_g" binding:"gte=0"`
	CarbG          float64        `json:"carb_g" binding:"gte=0"`
	FatG           float64        `json:"fat_g" binding:"gte=0"`
	FiberG         float64        `json:"fiber_g" binding:"gte=0"`
	Micronutrients map[string]any `json:"micronutrients"`
}

// FoodRequest is the payload for creating or updating a composed food's
// descriptive fields. Nutrition totals are only ever written through an
// editing session.
type FoodRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// SetIngredientsRequest replaces a session's ingredient list.
type SetIngredientsRequest struct {
	Lines []nutrition.IngredientLine `json:"lines" binding:"required"`
}

// OverrideRequest manually edits one lockable totals field.
type OverrideRequest struct {
	Field nutrition.OverrideField `json:"field" binding:"required"`
	Value float64                 `json:"value"`
}

// BodyProfileRequest updates a user's body metrics.
type BodyProfileRequest struct {
	Gender        string   `json:"gender" binding:"omitempty,oneof=male female"`
	AgeYears      *int     `json:"age_years" binding:"omitempty,gte=0"`
	HeightCm      *float64 `json:"height_cm" binding:"omitempty,gte=0"`
	WeightKg      *float64 `json:"weight_kg" binding:"omitempty,gte=0"`
	ActivityLevel string   `json:"activity_level"`
	GoalType      string   `json:"goal_type"`
	PresetCode    string   `json:"preset_code"`
}

// OnboardingTargetsRequest is the mobile onboarding estimation payload. All
// body metrics are optional; missing ones are substituted with the
// onboarding defaults.
type OnboardingTargetsRequest struct {
	Gender        string   `json:"gender" binding:"omitempty,oneof=male female"`
	AgeYears      *int     `json:"age_years" binding:"omitempty,gte=0"`
	HeightCm      *float64 `json:"height_cm" binding:"omitempty,gte=0"`
	WeightKg      *float64 `json:"weight_kg" binding:"omitempty,gte=0"`
	ActivityLevel string   `json:"activity_level"`
	GoalType      string   `json:"goal_type"`
	PresetCode    string   `json:"preset_code"`
}
