package nutrition

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	resolver := mapResolver{1: chickenBreast, 2: apple}

	s := NewSession("sess-1")
	assert.Equal(t, StateEmpty, s.State)
	assert.Empty(t, s.DietTags)

	err := s.SetLines(ctx, resolver, []IngredientLine{{IngredientID: 1, AmountGrams: 150}})
	require.NoError(t, err)
	assert.Equal(t, StateSettled, s.State)
	assert.Equal(t, 247.5, s.Totals.EnergyKcal) // 165*1.5
	assert.Contains(t, s.DietTags, TagHighProtein)
}

func TestSessionOverrideIndependence(t *testing.T) {
	ctx := context.Background()
	resolver := mapResolver{1: chickenBreast, 2: apple}

	s := NewSession("sess-2")
	require.NoError(t, s.SetLines(ctx, resolver, []IngredientLine{{IngredientID: 1, AmountGrams: 100}}))

	// lock protein at a manual value
	require.NoError(t, s.SetOverride(FieldProtein, 40))
	assert.True(t, s.Overrides.Protein)
	assert.Equal(t, 40.0, s.Totals.ProteinG)

	// ingredient change recomputes everything except the locked field
	require.NoError(t, s.AddLine(ctx, resolver, IngredientLine{IngredientID: 2, AmountGrams: 200}))
	assert.Equal(t, 40.0, s.Totals.ProteinG)    // frozen
	assert.Equal(t, 269.0, s.Totals.EnergyKcal) // 165 + 52*2
	assert.Equal(t, 28.0, s.Totals.CarbG)
	assert.Equal(t, 4.0, s.Totals.FatG) // 3.6 + 0.2*2
}

func TestSessionTagsFollowDisplayedValues(t *testing.T) {
	ctx := context.Background()
	resolver := mapResolver{1: {EnergyKcal: 100, ProteinG: 5, CarbG: 10, FatG: 4}}

	s := NewSession("sess-3")
	require.NoError(t, s.SetLines(ctx, resolver, []IngredientLine{{IngredientID: 1, AmountGrams: 100}}))

	// manually editing protein changes the macro distribution the food is
	// displayed with, so tags must be re-derived from the edited values
	require.NoError(t, s.SetOverride(FieldProtein, 50))
	assert.Contains(t, s.DietTags, TagHighProtein)
}

func TestSessionResetCalculation(t *testing.T) {
	ctx := context.Background()
	resolver := mapResolver{1: chickenBreast}

	s := NewSession("sess-4")
	require.NoError(t, s.SetLines(ctx, resolver, []IngredientLine{{IngredientID: 1, AmountGrams: 100}}))
	require.NoError(t, s.SetOverride(FieldCalories, 999))
	require.NoError(t, s.SetOverride(FieldFat, 1))

	require.NoError(t, s.ResetCalculation(ctx, resolver))
	assert.Equal(t, Overrides{}, s.Overrides)
	assert.Equal(t, 165.0, s.Totals.EnergyKcal)
	assert.Equal(t, 3.6, s.Totals.FatG)
}

func TestSessionRemoveLine(t *testing.T) {
	ctx := context.Background()
	resolver := mapResolver{1: chickenBreast, 2: apple}

	s := NewSession("sess-5")
	require.NoError(t, s.SetLines(ctx, resolver, []IngredientLine{
		{IngredientID: 1, AmountGrams: 100},
		{IngredientID: 2, AmountGrams: 100},
	}))
	require.NoError(t, s.RemoveLine(ctx, resolver, 2))

	assert.Len(t, s.Lines, 1)
	assert.Equal(t, 165.0, s.Totals.EnergyKcal)
}

func TestSessionSurfacesLineErrors(t *testing.T) {
	ctx := context.Background()
	resolver := mapResolver{1: chickenBreast}

	s := NewSession("sess-6")
	require.NoError(t, s.SetLines(ctx, resolver, []IngredientLine{
		{IngredientID: 1, AmountGrams: 100},
		{IngredientID: 42, AmountGrams: 50},
	}))

	require.Len(t, s.LineErrors, 1)
	assert.Equal(t, int64(42), s.LineErrors[0].IngredientID)
	assert.Equal(t, 165.0, s.Totals.EnergyKcal)
}

func TestSessionRejectsInvalidOverride(t *testing.T) {
	s := NewSession("sess-7")
	assert.ErrorIs(t, s.SetOverride(FieldProtein, -5), ErrNegativeValue)
	assert.ErrorIs(t, s.SetOverride("fiber", 10), ErrUnknownOverrideField)
}

func TestSessionNegativeAmountLeavesSessionUnchanged(t *testing.T) {
	ctx := context.Background()
	resolver := mapResolver{1: chickenBreast}

	s := NewSession("sess-8")
	require.NoError(t, s.SetLines(ctx, resolver, []IngredientLine{{IngredientID: 1, AmountGrams: 100}}))

	err := s.SetLines(ctx, resolver, []IngredientLine{{IngredientID: 1, AmountGrams: -10}})
	assert.ErrorIs(t, err, ErrNegativeAmount)
	assert.Equal(t, StateSettled, s.State)
	assert.Equal(t, 165.0, s.Totals.EnergyKcal)
	assert.Len(t, s.Lines, 1)
}
