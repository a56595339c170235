package nutrition

import (
	"context"
	"fmt"
)

// SessionState tracks where an editing session is in its recompute cycle.
// Sessions are single-threaded: every mutation runs its recompute to
// completion before the caller sees the session again, so Computing is only
// ever observable from inside this package.
type SessionState string

const (
	StateEmpty     SessionState = "empty"
	StateComputing SessionState = "computing"
	StateSettled   SessionState = "settled"
)

// OverrideField names one of the four manually lockable totals fields.
type OverrideField string

const (
	FieldCalories OverrideField = "calories"
	FieldProtein  OverrideField = "protein"
	FieldCarb     OverrideField = "carb"
	FieldFat      OverrideField = "fat"
)

// ErrUnknownOverrideField rejects override requests for fields that are not
// manually lockable.
var ErrUnknownOverrideField = fmt.Errorf("unknown override field")

// Overrides flags which totals fields have been manually edited and are
// frozen against ingredient-driven recomputation.
type Overrides struct {
	Calories bool `json:"calories"`
	Protein  bool `json:"protein"`
	Carb     bool `json:"carb"`
	Fat      bool `json:"fat"`
}

// Session is the per-editing-session state for a composed food: the current
// ingredient list, the displayed totals (manual overrides applied), the diet
// tags derived from those displayed values, and any per-line resolution
// errors from the last recompute. One session belongs to one editor; nothing
// is shared across sessions.
type Session struct {
	ID         string           `json:"id"`
	FoodID     string           `json:"food_id,omitempty"`
	State      SessionState     `json:"state"`
	Lines      []IngredientLine `json:"lines"`
	Totals     NutrientRecord   `json:"totals"`
	DietTags   []string         `json:"diet_tags"`
	Overrides  Overrides        `json:"manual_overrides"`
	LineErrors []LineError      `json:"line_errors,omitempty"`
}

// NewSession creates an empty session. Totals start at zero with no tags.
func NewSession(id string) *Session {
	return &Session{
		ID:       id,
		State:    StateEmpty,
		Totals:   NutrientRecord{Micros: Micros{}},
		DietTags: []string{},
	}
}

// SetLines replaces the ingredient list and recomputes. Unresolvable lines
// end up in s.LineErrors; a negative amount rejects the whole mutation and
// leaves the session unchanged.
func (s *Session) SetLines(ctx context.Context, resolver Resolver, lines []IngredientLine) error {
	return s.recompute(ctx, resolver, lines)
}

// AddLine appends one ingredient line and recomputes.
func (s *Session) AddLine(ctx context.Context, resolver Resolver, line IngredientLine) error {
	lines := make([]IngredientLine, len(s.Lines), len(s.Lines)+1)
	copy(lines, s.Lines)
	return s.recompute(ctx, resolver, append(lines, line))
}

// RemoveLine drops every line for the given ingredient id and recomputes.
func (s *Session) RemoveLine(ctx context.Context, resolver Resolver, ingredientID int64) error {
	lines := make([]IngredientLine, 0, len(s.Lines))
	for _, l := range s.Lines {
		if l.IngredientID != ingredientID {
			lines = append(lines, l)
		}
	}
	return s.recompute(ctx, resolver, lines)
}

// SetOverride records a manual edit to one of the four lockable fields. The
// value becomes the displayed value immediately and the field is frozen:
// later ingredient-driven recomputes skip it until ResetCalculation. Diet
// tags are re-derived from the displayed values right away.
func (s *Session) SetOverride(field OverrideField, value float64) error {
	if value < 0 {
		return fmt.Errorf("%w: %s = %v", ErrNegativeValue, field, value)
	}
	switch field {
	case FieldCalories:
		s.Totals.EnergyKcal = value
		s.Overrides.Calories = true
	case FieldProtein:
		s.Totals.ProteinG = value
		s.Overrides.Protein = true
	case FieldCarb:
		s.Totals.CarbG = value
		s.Overrides.Carb = true
	case FieldFat:
		s.Totals.FatG = value
		s.Overrides.Fat = true
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOverrideField, field)
	}
	s.DietTags = ClassifyDietTags(s.Totals)
	return nil
}

// ResetCalculation clears every override flag and forces one recompute pass
// from the current ingredient list.
func (s *Session) ResetCalculation(ctx context.Context, resolver Resolver) error {
	s.Overrides = Overrides{}
	return s.recompute(ctx, resolver, s.Lines)
}

// recompute aggregates the given lines and settles the session. Fields whose
// override flag is set keep their manual value; everything else (unlocked
// macros, fiber, the micronutrient map) comes from the fresh aggregation.
// Diet tags are derived from the displayed totals, overrides included, since
// those are the values the food is actually presented with.
func (s *Session) recompute(ctx context.Context, resolver Resolver, lines []IngredientLine) error {
	prev := s.State
	s.State = StateComputing

	computed, lineErrs, err := AggregateLines(ctx, resolver, lines)
	if err != nil {
		s.State = prev
		return err
	}

	if !s.Overrides.Calories {
		s.Totals.EnergyKcal = computed.EnergyKcal
	}
	if !s.Overrides.Protein {
		s.Totals.ProteinG = computed.ProteinG
	}
	if !s.Overrides.Carb {
		s.Totals.CarbG = computed.CarbG
	}
	if !s.Overrides.Fat {
		s.Totals.FatG = computed.FatG
	}
	s.Totals.FiberG = computed.FiberG
	s.Totals.Micros = computed.Micros

	s.Lines = lines
	s.LineErrors = lineErrs
	s.DietTags = ClassifyDietTags(s.Totals)
	s.State = StateSettled
	return nil
}
