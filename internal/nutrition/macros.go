package nutrition

import "math"

// DietPreset is a named macro-ratio template, e.g. balanced or keto. The
// three ratios are percentages that should sum to 100, but the engine does
// not enforce that: presets are external data entry, some stored rows already
// violate the invariant, and normalizing here would silently change every
// target computed from them.
type DietPreset struct {
	Code         string  `json:"code"`
	CarbRatio    float64 `json:"carb_ratio"`
	ProteinRatio float64 `json:"protein_ratio"`
	FatRatio     float64 `json:"fat_ratio"`
}

// DefaultPreset is the split used when a caller has no stored preset.
// Callers may substitute their own default; this is a convenience, not an
// engine invariant.
var DefaultPreset = DietPreset{
	Code:         "balanced",
	CarbRatio:    40,
	ProteinRatio: 30,
	FatRatio:     30,
}

// MacroSplit is a calorie target divided into grams per macro.
type MacroSplit struct {
	ProteinG float64 `json:"protein_g"`
	CarbG    float64 `json:"carb_g"`
	FatG     float64 `json:"fat_g"`
}

// Allocate splits a calorie target into macro grams using the preset ratios
// and the 4/4/9 kcal-per-gram factors, rounding each to a whole gram.
func (p DietPreset) Allocate(targetCalories float64) MacroSplit {
	return MacroSplit{
		ProteinG: math.Round(targetCalories * p.ProteinRatio / 100 / kcalPerGramProtein),
		CarbG:    math.Round(targetCalories * p.CarbRatio / 100 / kcalPerGramCarb),
		FatG:     math.Round(targetCalories * p.FatRatio / 100 / kcalPerGramFat),
	}
}
