package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/nutriplan/nutriplan-backend/internal/nutrition"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	IsAdmin      bool           `gorm:"not null;default:false" json:"is_admin"`
}

func (User) TableName() string {
	return "users"
}

// UserBodyProfile holds the body metrics the target computation runs on.
// Age, height and weight are pointers: onboarding creates the row before the
// user has entered anything, and the admin detail view must be able to tell
// "not entered" apart from zero.
type UserBodyProfile struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Gender        string         `gorm:"size:10;not null;default:'female'" json:"gender"`
	AgeYears      *int           `json:"age_years"`
	HeightCm      *float64       `json:"height_cm"`
	WeightKg      *float64       `json:"weight_kg"`
	ActivityLevel string         `gorm:"size:20" json:"activity_level"`
	GoalType      string         `gorm:"size:20" json:"goal_type"`
	PresetCode    string         `gorm:"size:30" json:"preset_code"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (UserBodyProfile) TableName() string {
	return "user_body_profiles"
}

// BodyProfile converts the row into the engine's input type. Missing metrics
// become zero values; the engine's strict path rejects those, the onboarding
// path substitutes its defaults.
func (p *UserBodyProfile) BodyProfile() nutrition.BodyProfile {
	bp := nutrition.BodyProfile{
		Gender:        nutrition.Gender(p.Gender),
		ActivityLevel: p.ActivityLevel,
		Goal:          p.GoalType,
	}
	if p.AgeYears != nil {
		bp.AgeYears = *p.AgeYears
	}
	if p.HeightCm != nil {
		bp.HeightCm = *p.HeightCm
	}
	if p.WeightKg != nil {
		bp.WeightKg = *p.WeightKg
	}
	return bp
}
