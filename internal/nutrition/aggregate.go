package nutrition

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrIngredientNotFound is returned by Resolver implementations when an
	// ingredient id has no catalog entry.
	ErrIngredientNotFound = errors.New("ingredient not found")

	// ErrNegativeAmount rejects negative ingredient quantities at the boundary.
	ErrNegativeAmount = errors.New("ingredient amount must not be negative")

	// ErrNegativeValue rejects negative nutrient fields.
	ErrNegativeValue = errors.New("nutrient value must not be negative")
)

// IngredientLine is one row of a composed food's ingredient list.
type IngredientLine struct {
	IngredientID int64   `json:"ingredient_id"`
	AmountGrams  float64 `json:"amount_in_grams"`
}

// Portion pairs an already-resolved per-100g record with an amount.
type Portion struct {
	Record      NutrientRecord
	AmountGrams float64
}

// LineError reports an ingredient line that could not contribute to the
// totals. The line is skipped, never silently counted as zero; callers must
// surface these alongside the aggregated result.
type LineError struct {
	IngredientID int64  `json:"ingredient_id"`
	Err          error  `json:"-"`
	Message      string `json:"error"`
}

func (e LineError) Error() string {
	return fmt.Sprintf("ingredient %d: %s", e.IngredientID, e.Message)
}

func (e LineError) Unwrap() error { return e.Err }

// Resolver looks up per-100g nutrient records by catalog id. The catalog
// service implements this; tests use an in-memory map.
type Resolver interface {
	NutrientRecordByID(ctx context.Context, id int64) (NutrientRecord, error)
}

// Aggregate sums resolved portions into one totals record. Each portion
// contributes field*amount/100; micronutrient keys are unioned. All output
// fields are rounded to 2 decimals independently of one another, so running
// the same input twice is bit-identical. An empty input yields an all-zero
// record with an empty (non-nil) micronutrient map.
func Aggregate(portions []Portion) (NutrientRecord, error) {
	total := NutrientRecord{Micros: Micros{}}
	micros := map[string]float64{}

	for _, p := range portions {
		if p.AmountGrams < 0 {
			return NutrientRecord{}, fmt.Errorf("%w: %v", ErrNegativeAmount, p.AmountGrams)
		}
		if err := p.Record.Validate(); err != nil {
			return NutrientRecord{}, err
		}
		mult := p.AmountGrams / 100
		total.EnergyKcal += p.Record.EnergyKcal * mult
		total.ProteinG += p.Record.ProteinG * mult
		total.CarbG += p.Record.CarbG * mult
		total.FatG += p.Record.FatG * mult
		total.FiberG += p.Record.FiberG * mult
		for key, v := range p.Record.Micros {
			micros[key] += v * mult
		}
	}

	total.EnergyKcal = round2(total.EnergyKcal)
	total.ProteinG = round2(total.ProteinG)
	total.CarbG = round2(total.CarbG)
	total.FatG = round2(total.FatG)
	total.FiberG = round2(total.FiberG)
	for key, v := range micros {
		total.Micros[key] = round2(v)
	}
	return total, nil
}

// AggregateLines resolves each ingredient line and aggregates the results.
// A line whose id cannot be resolved is skipped and reported in the returned
// LineError slice; the remaining lines still aggregate. A negative amount is
// a hard error: the whole aggregation is rejected rather than repaired.
func AggregateLines(ctx context.Context, resolver Resolver, lines []IngredientLine) (NutrientRecord, []LineError, error) {
	portions := make([]Portion, 0, len(lines))
	var lineErrs []LineError

	for _, line := range lines {
		if line.AmountGrams < 0 {
			return NutrientRecord{}, nil, fmt.Errorf("ingredient %d: %w: %v",
				line.IngredientID, ErrNegativeAmount, line.AmountGrams)
		}
		record, err := resolver.NutrientRecordByID(ctx, line.IngredientID)
		if err != nil {
			lineErrs = append(lineErrs, LineError{
				IngredientID: line.IngredientID,
				Err:          err,
				Message:      err.Error(),
			})
			continue
		}
		portions = append(portions, Portion{Record: record, AmountGrams: line.AmountGrams})
	}

	total, err := Aggregate(portions)
	if err != nil {
		return NutrientRecord{}, nil, err
	}
	return total, lineErrs, nil
}
