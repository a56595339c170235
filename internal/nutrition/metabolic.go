package nutrition

import (
	"errors"
	"fmt"
	"math"
)

// Gender selects the Mifflin-St Jeor constant and the calorie safety floor.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Activity levels accepted by the TDEE multiplier table.
const (
	ActivitySedentary  = "sedentary"
	ActivityLight      = "light"
	ActivityModerate   = "moderate"
	ActivityActive     = "active"
	ActivityVeryActive = "very_active"
)

// Goal types accepted by TargetCalories.
const (
	GoalLoseWeight = "lose_weight"
	GoalMaintain   = "maintain"
	GoalGainWeight = "gain_weight"
)

// Defaults substituted by the onboarding estimation path when the profile is
// incomplete. The admin read path never defaults, it errors instead.
const (
	defaultWeightKg = 70
	defaultHeightCm = 170
	defaultAgeYears = 25
)

// Calorie safety floors. A target below these is raised to the floor with no
// distinguishing signal; callers only ever see the clamped value.
const (
	calorieFloorMale   = 1500
	calorieFloorFemale = 1200
)

// ErrIncompleteProfile is returned by the strict target computation when age,
// height or weight is missing or non-positive.
var ErrIncompleteProfile = errors.New("body profile incomplete")

// activityMultipliers maps activity levels to their TDEE multiplier.
var activityMultipliers = map[string]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

// BodyProfile carries the inputs of the metabolic calculation. It is supplied
// by the profile service as plain data; the engine never fetches it.
type BodyProfile struct {
	Gender        Gender  `json:"gender"`
	AgeYears      int     `json:"age_years"`
	HeightCm      float64 `json:"height_cm"`
	WeightKg      float64 `json:"weight_kg"`
	ActivityLevel string  `json:"activity_level"`
	Goal          string  `json:"goal_type"`
}

// Targets is the derived energy/macro plan. It is recomputed on demand from
// the profile and preset and is never the source of truth.
type Targets struct {
	BMR            float64 `json:"bmr"`
	TDEE           float64 `json:"tdee"`
	TargetCalories float64 `json:"target_calories"`
	TargetProteinG float64 `json:"target_protein_g"`
	TargetCarbG    float64 `json:"target_carb_g"`
	TargetFatG     float64 `json:"target_fat_g"`
}

// BMR computes the basal metabolic rate via Mifflin-St Jeor. Height and
// weight must be positive and age must be set, otherwise the rate is
// undefined and an error is returned.
func BMR(p BodyProfile) (float64, error) {
	if p.WeightKg <= 0 {
		return 0, fmt.Errorf("%w: weight_kg = %v", ErrIncompleteProfile, p.WeightKg)
	}
	if p.HeightCm <= 0 {
		return 0, fmt.Errorf("%w: height_cm = %v", ErrIncompleteProfile, p.HeightCm)
	}
	if p.AgeYears <= 0 {
		return 0, fmt.Errorf("%w: age_years = %v", ErrIncompleteProfile, p.AgeYears)
	}

	bmr := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.AgeYears)
	if p.Gender == GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}
	return bmr, nil
}

// TDEE scales a BMR by the activity multiplier and rounds to a whole calorie.
// An unknown activity level falls back to sedentary rather than erroring;
// profiles created before the activity picker existed have none.
func TDEE(bmr float64, activityLevel string) float64 {
	mult, ok := activityMultipliers[activityLevel]
	if !ok {
		mult = activityMultipliers[ActivitySedentary]
	}
	return math.Round(bmr * mult)
}

// TargetCalories applies the goal adjustment and the gender safety floor.
// The floor is policy and holds for any input, however extreme.
func TargetCalories(tdee float64, goal string, gender Gender) float64 {
	target := tdee
	switch goal {
	case GoalLoseWeight:
		target = tdee - 500
	case GoalGainWeight:
		target = tdee + 500
	}

	floor := float64(calorieFloorFemale)
	if gender == GenderMale {
		floor = calorieFloorMale
	}
	if target < floor {
		target = floor
	}
	return target
}

// ComputeTargets derives the full target set from a complete profile. This is
// the strict path used by admin user-detail reads: missing body metrics are
// an error, not an estimate.
func ComputeTargets(p BodyProfile, preset DietPreset) (Targets, error) {
	bmr, err := BMR(p)
	if err != nil {
		return Targets{}, err
	}
	return targetsFrom(bmr, p, preset), nil
}

// ComputeOnboardingTargets derives targets for the mobile onboarding flow,
// substituting defaults (70kg, 170cm, 25y) for missing metrics so a user can
// see an estimate before finishing their profile. Admin reads must not use
// this; the two surfaces intentionally differ here.
func ComputeOnboardingTargets(p BodyProfile, preset DietPreset) Targets {
	if p.WeightKg <= 0 {
		p.WeightKg = defaultWeightKg
	}
	if p.HeightCm <= 0 {
		p.HeightCm = defaultHeightCm
	}
	if p.AgeYears <= 0 {
		p.AgeYears = defaultAgeYears
	}
	bmr, _ := BMR(p)
	return targetsFrom(bmr, p, preset)
}

func targetsFrom(bmr float64, p BodyProfile, preset DietPreset) Targets {
	tdee := TDEE(bmr, p.ActivityLevel)
	target := TargetCalories(tdee, p.Goal, p.Gender)
	split := preset.Allocate(target)
	return Targets{
		BMR:            bmr,
		TDEE:           tdee,
		TargetCalories: target,
		TargetProteinG: split.ProteinG,
		TargetCarbG:    split.CarbG,
		TargetFatG:     split.FatG,
	}
}
