// Package nutrition is the shared nutrition engine used by both the admin
// catalog routes and the mobile onboarding routes. It aggregates weighted
// ingredient lists into composed-food totals, classifies macro profiles into
// diet-compatibility tags, and derives personalized calorie/macro targets.
// The package performs no I/O; callers supply nutrient records and persist
// the results.
package nutrition

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Micros holds arbitrary string-keyed micronutrient values (mg, µg or
// whatever unit the catalog stored; the engine never interprets units).
type Micros map[string]float64

// ParseMicros converts a raw JSON-decoded micronutrient map into Micros.
// Numeric values pass through, numeric strings are parsed, and anything
// non-numeric is treated as zero and excluded. Catalog data is messy enough
// that rejecting a whole ingredient over one bad trace value is not worth it.
func ParseMicros(raw map[string]any) Micros {
	m := Micros{}
	for key, val := range raw {
		switch v := val.(type) {
		case float64:
			m[key] = v
		case float32:
			m[key] = float64(v)
		case int:
			m[key] = float64(v)
		case int64:
			m[key] = float64(v)
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				m[key] = f
			}
		}
	}
	return m
}

// Keys returns the micronutrient names in sorted order.
func (m Micros) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NutrientRecord is a nutrient profile. For raw catalog ingredients the
// values are per 100 grams; for composed foods they are absolute totals.
type NutrientRecord struct {
	EnergyKcal float64 `json:"energy_kcal"`
	ProteinG   float64 `json:"protein_g"`
	CarbG      float64 `json:"carb_g"`
	FatG       float64 `json:"fat_g"`
	FiberG     float64 `json:"fiber_g"`
	Micros     Micros  `json:"micronutrients,omitempty"`
}

// Validate rejects negative nutrient values. Negative amounts are data-entry
// errors and must be caught at the boundary, not clamped away.
func (r NutrientRecord) Validate() error {
	fields := map[string]float64{
		"energy_kcal": r.EnergyKcal,
		"protein_g":   r.ProteinG,
		"carb_g":      r.CarbG,
		"fat_g":       r.FatG,
		"fiber_g":     r.FiberG,
	}
	for name, v := range fields {
		if v < 0 {
			return fmt.Errorf("%w: %s = %v", ErrNegativeValue, name, v)
		}
	}
	for key, v := range r.Micros {
		if v < 0 {
			return fmt.Errorf("%w: micronutrient %q = %v", ErrNegativeValue, key, v)
		}
	}
	return nil
}

// round2 rounds to 2 decimal places. Every aggregated output field is rounded
// independently so stored totals are stable across recomputations.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
