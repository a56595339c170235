package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTargetsDeterministic(t *testing.T) {
	p := BodyProfile{
		Gender:        GenderMale,
		AgeYears:      25,
		WeightKg:      70,
		HeightCm:      175,
		ActivityLevel: ActivityModerate,
		Goal:          GoalLoseWeight,
	}

	targets, err := ComputeTargets(p, DefaultPreset)
	require.NoError(t, err)

	assert.Equal(t, 1673.75, targets.BMR) // 10*70 + 6.25*175 - 5*25 + 5
	assert.Equal(t, 2594.0, targets.TDEE) // round(1673.75 * 1.55)
	assert.Equal(t, 2094.0, targets.TargetCalories)
}

func TestComputeTargetsFemaleConstant(t *testing.T) {
	p := BodyProfile{
		Gender:        GenderFemale,
		AgeYears:      30,
		WeightKg:      60,
		HeightCm:      165,
		ActivityLevel: ActivityLight,
		Goal:          GoalMaintain,
	}

	bmr, err := BMR(p)
	require.NoError(t, err)
	assert.Equal(t, 1320.25, bmr) // 600 + 1031.25 - 150 - 161
}

func TestTargetCaloriesFloorClamp(t *testing.T) {
	p := BodyProfile{
		Gender:        GenderFemale,
		AgeYears:      70,
		WeightKg:      40,
		HeightCm:      150,
		ActivityLevel: ActivitySedentary,
		Goal:          GoalLoseWeight,
	}

	targets, err := ComputeTargets(p, DefaultPreset)
	require.NoError(t, err)

	// bmr 826.5, tdee 992, minus 500 would be 492, floor wins
	assert.Equal(t, 1200.0, targets.TargetCalories)
}

func TestTargetCaloriesMaleFloor(t *testing.T) {
	assert.Equal(t, 1500.0, TargetCalories(1800, GoalLoseWeight, GenderMale))
	assert.Equal(t, 1500.0, TargetCalories(100, GoalLoseWeight, GenderMale))
}

func TestTDEEUnknownActivityFallsBackToSedentary(t *testing.T) {
	assert.Equal(t, TDEE(1600, ActivitySedentary), TDEE(1600, "couch_surfing"))
	assert.Equal(t, 1920.0, TDEE(1600, ""))
}

func TestTargetCaloriesGoalAdjustment(t *testing.T) {
	assert.Equal(t, 2500.0, TargetCalories(2000, GoalGainWeight, GenderMale))
	assert.Equal(t, 2000.0, TargetCalories(2000, GoalMaintain, GenderMale))
	assert.Equal(t, 2000.0, TargetCalories(2000, "bulk???", GenderMale))
}

func TestComputeTargetsStrictRejectsIncompleteProfile(t *testing.T) {
	cases := []BodyProfile{
		{Gender: GenderMale, AgeYears: 25, HeightCm: 175},                // no weight
		{Gender: GenderMale, AgeYears: 25, WeightKg: 70},                 // no height
		{Gender: GenderMale, WeightKg: 70, HeightCm: 175},                // no age
		{Gender: GenderFemale, AgeYears: 25, WeightKg: -3, HeightCm: 160}, // negative
	}
	for _, p := range cases {
		_, err := ComputeTargets(p, DefaultPreset)
		assert.ErrorIs(t, err, ErrIncompleteProfile)
	}
}

func TestComputeOnboardingTargetsSubstitutesDefaults(t *testing.T) {
	// entirely empty profile: 70kg / 170cm / 25y are assumed
	targets := ComputeOnboardingTargets(BodyProfile{Gender: GenderMale}, DefaultPreset)

	assert.Equal(t, 1642.5, targets.BMR)  // 700 + 1062.5 - 125 + 5
	assert.Equal(t, 1971.0, targets.TDEE) // sedentary fallback, round(1642.5*1.2)
	assert.Equal(t, 1971.0, targets.TargetCalories)
	assert.Equal(t, 148.0, targets.TargetProteinG) // round(1971*0.30/4)
	assert.Equal(t, 197.0, targets.TargetCarbG)    // round(1971*0.40/4)
	assert.Equal(t, 66.0, targets.TargetFatG)      // round(1971*0.30/9)
}

func TestComputeOnboardingTargetsKeepsSuppliedValues(t *testing.T) {
	p := BodyProfile{
		Gender:        GenderMale,
		AgeYears:      25,
		WeightKg:      70,
		HeightCm:      175,
		ActivityLevel: ActivityModerate,
		Goal:          GoalLoseWeight,
	}
	strict, err := ComputeTargets(p, DefaultPreset)
	require.NoError(t, err)

	// with a complete profile the two paths agree
	assert.Equal(t, strict, ComputeOnboardingTargets(p, DefaultPreset))
}
