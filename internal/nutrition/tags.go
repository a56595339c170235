package nutrition

import "sort"

// Diet-compatibility tags assigned by ClassifyDietTags.
const (
	TagKeto        = "keto"
	TagLowCarb     = "low_carb"
	TagHighProtein = "high_protein"
	TagLowFat      = "low_fat"
	TagBalanced    = "balanced"
)

// Calorie content per gram of each macro.
const (
	kcalPerGramProtein = 4
	kcalPerGramCarb    = 4
	kcalPerGramFat     = 9
)

// ClassifyDietTags maps aggregated totals to zero or more diet tags based on
// each macro's share of total calories. The thresholds are fixed policy:
// stored foods were tagged with exactly these cutoffs, and changing them
// would silently re-classify the whole catalog.
//
// A zero-calorie record has no defined macro distribution and gets no tags.
func ClassifyDietTags(r NutrientRecord) []string {
	if r.EnergyKcal == 0 {
		return []string{}
	}

	carbPct := r.CarbG * kcalPerGramCarb / r.EnergyKcal * 100
	proteinPct := r.ProteinG * kcalPerGramProtein / r.EnergyKcal * 100
	fatPct := r.FatG * kcalPerGramFat / r.EnergyKcal * 100

	var tags []string
	if fatPct > 70 && carbPct < 10 {
		tags = append(tags, TagKeto)
	}
	if carbPct < 25 {
		tags = append(tags, TagLowCarb)
	}
	if proteinPct > 30 {
		tags = append(tags, TagHighProtein)
	}
	if fatPct < 20 {
		tags = append(tags, TagLowFat)
	}
	if carbPct >= 40 && carbPct <= 50 &&
		proteinPct >= 25 && proteinPct <= 30 &&
		fatPct >= 20 && fatPct <= 30 {
		tags = append(tags, TagBalanced)
	}

	if tags == nil {
		return []string{}
	}
	sort.Strings(tags)
	return tags
}
