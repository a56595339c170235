package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nutriplan/nutriplan-backend/internal/models"
	"github.com/nutriplan/nutriplan-backend/internal/nutrition"
	"github.com/nutriplan/nutriplan-backend/internal/types"
	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("body profile not found")

// onboardingDefaultPreset is the fallback split the mobile onboarding flow
// uses when no preset is chosen. It differs from the admin default on
// purpose: the two surfaces shipped with different splits and stored targets
// reflect both.
var onboardingDefaultPreset = nutrition.DietPreset{
	Code:         "onboarding_default",
	CarbRatio:    45,
	ProteinRatio: 30,
	FatRatio:     25,
}

// TargetsService derives calorie/macro targets from stored body profiles and
// diet presets. Targets are never persisted; the profile and preset are the
// source of truth and the numbers are recomputed on every request.
type TargetsService struct {
	db *gorm.DB
}

// Ensure TargetsService implements ITargetsService
var _ ITargetsService = (*TargetsService)(nil)

// NewTargetsService creates a new TargetsService instance.
func NewTargetsService(db *gorm.DB) *TargetsService {
	return &TargetsService{db: db}
}

// GetBodyProfile returns a user's stored body profile.
func (s *TargetsService) GetBodyProfile(ctx context.Context, userID uuid.UUID) (*models.UserBodyProfile, error) {
	var profile models.UserBodyProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// UpdateBodyProfile patches the provided fields onto the stored profile.
func (s *TargetsService) UpdateBodyProfile(ctx context.Context, userID uuid.UUID, req *types.BodyProfileRequest) (*models.UserBodyProfile, error) {
	profile, err := s.GetBodyProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Gender != "" {
		profile.Gender = req.Gender
	}
	if req.AgeYears != nil {
		profile.AgeYears = req.AgeYears
	}
	if req.HeightCm != nil {
		profile.HeightCm = req.HeightCm
	}
	if req.WeightKg != nil {
		profile.WeightKg = req.WeightKg
	}
	if req.ActivityLevel != "" {
		profile.ActivityLevel = req.ActivityLevel
	}
	if req.GoalType != "" {
		profile.GoalType = req.GoalType
	}
	if req.PresetCode != "" {
		profile.PresetCode = req.PresetCode
	}

	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// AdminTargets computes targets for the admin user-detail view. Missing body
// metrics are an error (the UI shows a dash), never an estimate.
func (s *TargetsService) AdminTargets(ctx context.Context, userID uuid.UUID) (nutrition.Targets, error) {
	profile, err := s.GetBodyProfile(ctx, userID)
	if err != nil {
		return nutrition.Targets{}, err
	}
	preset := s.presetOrDefault(ctx, profile.PresetCode, nutrition.DefaultPreset)
	return nutrition.ComputeTargets(profile.BodyProfile(), preset)
}

// OnboardingTargets computes an estimate for the mobile onboarding flow from
// whatever the user has entered so far, substituting defaults for the rest.
func (s *TargetsService) OnboardingTargets(ctx context.Context, req *types.OnboardingTargetsRequest) nutrition.Targets {
	profile := nutrition.BodyProfile{
		Gender:        nutrition.Gender(req.Gender),
		ActivityLevel: req.ActivityLevel,
		Goal:          req.GoalType,
	}
	if req.AgeYears != nil {
		profile.AgeYears = *req.AgeYears
	}
	if req.HeightCm != nil {
		profile.HeightCm = *req.HeightCm
	}
	if req.WeightKg != nil {
		profile.WeightKg = *req.WeightKg
	}

	preset := s.presetOrDefault(ctx, req.PresetCode, onboardingDefaultPreset)
	return nutrition.ComputeOnboardingTargets(profile, preset)
}

// ListPresets returns all stored diet presets.
func (s *TargetsService) ListPresets(ctx context.Context) ([]models.DietPreset, error) {
	var presets []models.DietPreset
	if err := s.db.WithContext(ctx).Order("code").Find(&presets).Error; err != nil {
		return nil, err
	}
	return presets, nil
}

// GetPreset returns one stored diet preset by code.
func (s *TargetsService) GetPreset(ctx context.Context, code string) (*models.DietPreset, error) {
	var preset models.DietPreset
	if err := s.db.WithContext(ctx).First(&preset, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &preset, nil
}

func (s *TargetsService) presetOrDefault(ctx context.Context, code string, fallback nutrition.DietPreset) nutrition.DietPreset {
	if code == "" {
		return fallback
	}
	stored, err := s.GetPreset(ctx, code)
	if err != nil {
		return fallback
	}
	return stored.Preset()
}
