package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyKetoBoundary(t *testing.T) {
	// fat 77.8g of 1000 kcal = 70.02% > 70, carb 2g = 0.8% < 10
	r := NutrientRecord{EnergyKcal: 1000, FatG: 77.8, CarbG: 2, ProteinG: 20}
	assert.Contains(t, ClassifyDietTags(r), TagKeto)

	// fat 77.6g = 69.84%, just under the cutoff, no keto
	r.FatG = 77.6
	tags := ClassifyDietTags(r)
	assert.NotContains(t, tags, TagKeto)
	assert.Contains(t, tags, TagLowCarb)
}

func TestClassifyZeroCalories(t *testing.T) {
	r := NutrientRecord{EnergyKcal: 0, ProteinG: 30, CarbG: 40, FatG: 10}
	tags := ClassifyDietTags(r)
	assert.NotNil(t, tags)
	assert.Empty(t, tags)
}

func TestClassifyHighProtein(t *testing.T) {
	// protein 80g of 1000 kcal = 32% > 30
	r := NutrientRecord{EnergyKcal: 1000, ProteinG: 80, CarbG: 100, FatG: 20}
	assert.Contains(t, ClassifyDietTags(r), TagHighProtein)

	// exactly 30% is not high protein
	r.ProteinG = 75
	assert.NotContains(t, ClassifyDietTags(r), TagHighProtein)
}

func TestClassifyLowFat(t *testing.T) {
	// fat 20g of 1000 kcal = 18% < 20
	r := NutrientRecord{EnergyKcal: 1000, FatG: 20, CarbG: 150, ProteinG: 30}
	assert.Contains(t, ClassifyDietTags(r), TagLowFat)
}

func TestClassifyBalanced(t *testing.T) {
	// carb 45%, protein 28%, fat 25.02%: inside every balanced band
	r := NutrientRecord{EnergyKcal: 500, CarbG: 56.25, ProteinG: 35, FatG: 13.9}
	tags := ClassifyDietTags(r)
	assert.Equal(t, []string{TagBalanced}, tags)
}

func TestClassifyMultipleTags(t *testing.T) {
	// carb 8% and fat 18%: low_carb + low_fat + high_protein together
	r := NutrientRecord{EnergyKcal: 1000, CarbG: 20, FatG: 20, ProteinG: 180}
	tags := ClassifyDietTags(r)
	assert.ElementsMatch(t, []string{TagLowCarb, TagLowFat, TagHighProtein}, tags)
}
