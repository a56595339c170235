package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/nutriplan/nutriplan-backend/internal/models"
	"github.com/nutriplan/nutriplan-backend/internal/nutrition"
	"github.com/nutriplan/nutriplan-backend/internal/service"
	"github.com/nutriplan/nutriplan-backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type foodFixture struct {
	foods       *service.FoodService
	ingredients *service.IngredientService
	chickenID   int64
	appleID     int64
	userID      uuid.UUID
}

func setupFoodTest(t *testing.T) *foodFixture {
	db := testhelpers.SetupSQLiteDatabase(t)
	redisClient := testhelpers.SetupTestRedis(t)

	ingredients := service.NewIngredientService(db, redisClient)
	foods := service.NewFoodService(db, redisClient, ingredients)
	ctx := context.Background()

	chicken := &models.Ingredient{
		Name: "Chicken Breast", Category: "meat",
		EnergyKcal: 165, ProteinG: 31, CarbG: 0, FatG: 3.6,
	}
	require.NoError(t, ingredients.Create(ctx, chicken))
	apple := &models.Ingredient{
		Name: "Apple", Category: "fruit",
		EnergyKcal: 52, ProteinG: 0.3, CarbG: 14, FatG: 0.2,
	}
	require.NoError(t, ingredients.Create(ctx, apple))

	userID := uuid.New()
	require.NoError(t, db.Create(&models.User{
		ID: userID, Name: "Admin", Email: "admin@example.com", PasswordHash: "x", IsAdmin: true,
	}).Error)

	return &foodFixture{
		foods:       foods,
		ingredients: ingredients,
		chickenID:   chicken.ID,
		appleID:     apple.ID,
		userID:      userID,
	}
}

func TestFoodCRUD(t *testing.T) {
	f := setupFoodTest(t)
	ctx := context.Background()

	food, err := f.foods.CreateFood(ctx, &models.Food{
		Name: "Chicken Bowl", Category: "lunch", CreatedBy: f.userID,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, food.ID)

	got, err := f.foods.GetFood(ctx, food.ID)
	require.NoError(t, err)
	assert.Equal(t, "Chicken Bowl", got.Name)
	assert.Empty(t, got.Lines)

	updated, err := f.foods.UpdateFood(ctx, food.ID, "Chicken Bowl XL", "bigger", "lunch")
	require.NoError(t, err)
	assert.Equal(t, "Chicken Bowl XL", updated.Name)
	assert.Equal(t, "bigger", updated.Description)

	require.NoError(t, f.foods.DeleteFood(ctx, food.ID))
	_, err = f.foods.GetFood(ctx, food.ID)
	assert.ErrorIs(t, err, service.ErrFoodNotFound)

	assert.ErrorIs(t, f.foods.DeleteFood(ctx, food.ID), service.ErrFoodNotFound)
}

func TestSessionLifecycle(t *testing.T) {
	f := setupFoodTest(t)
	ctx := context.Background()

	food, err := f.foods.CreateFood(ctx, &models.Food{
		Name: "Chicken & Apple", CreatedBy: f.userID,
	})
	require.NoError(t, err)

	session, err := f.foods.StartSession(ctx, &food.ID)
	require.NoError(t, err)
	assert.Equal(t, food.ID.String(), session.FoodID)

	// 150g chicken + 200g apple
	session, err = f.foods.SetIngredients(ctx, session.ID, []nutrition.IngredientLine{
		{IngredientID: f.chickenID, AmountGrams: 150},
		{IngredientID: f.appleID, AmountGrams: 200},
	})
	require.NoError(t, err)
	assert.Equal(t, nutrition.StateSettled, session.State)
	assert.Equal(t, 351.5, session.Totals.EnergyKcal)
	assert.Equal(t, 47.1, session.Totals.ProteinG)
	assert.Equal(t, 28.0, session.Totals.CarbG)
	assert.Equal(t, 5.8, session.Totals.FatG)
	assert.Equal(t, []string{"high_protein", "low_fat"}, session.DietTags)

	// The session survives a round trip through Redis
	loaded, err := f.foods.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.Totals, loaded.Totals)
	assert.Equal(t, session.DietTags, loaded.DietTags)

	// Manual calorie edit freezes the field
	session, err = f.foods.SetOverride(ctx, session.ID, nutrition.FieldCalories, 500)
	require.NoError(t, err)
	assert.Equal(t, 500.0, session.Totals.EnergyKcal)
	assert.True(t, session.Overrides.Calories)

	// A recompute keeps the overridden calories but refreshes the rest
	session, err = f.foods.SetIngredients(ctx, session.ID, []nutrition.IngredientLine{
		{IngredientID: f.chickenID, AmountGrams: 100},
	})
	require.NoError(t, err)
	assert.Equal(t, 500.0, session.Totals.EnergyKcal)
	assert.Equal(t, 31.0, session.Totals.ProteinG)

	// Reset clears the lock and recomputes from the current lines
	session, err = f.foods.ResetCalculation(ctx, session.ID)
	require.NoError(t, err)
	assert.False(t, session.Overrides.Calories)
	assert.Equal(t, 165.0, session.Totals.EnergyKcal)

	// Save settles everything onto the food row and discards the session
	saved, err := f.foods.SaveSession(ctx, session.ID, food.ID)
	require.NoError(t, err)
	assert.Equal(t, 165.0, saved.TotalCalories)
	assert.Equal(t, 31.0, saved.TotalProtein)
	assert.Len(t, saved.Lines, 1)
	assert.NotEmpty(t, saved.DietTags)

	_, err = f.foods.GetSession(ctx, session.ID)
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
}

func TestSessionReportsUnresolvableLines(t *testing.T) {
	f := setupFoodTest(t)
	ctx := context.Background()

	session, err := f.foods.StartSession(ctx, nil)
	require.NoError(t, err)

	session, err = f.foods.SetIngredients(ctx, session.ID, []nutrition.IngredientLine{
		{IngredientID: f.chickenID, AmountGrams: 100},
		{IngredientID: 99999, AmountGrams: 50},
	})
	require.NoError(t, err)

	// The unknown line is reported, not silently dropped; totals come from
	// the resolvable lines only
	require.Len(t, session.LineErrors, 1)
	assert.Equal(t, int64(99999), session.LineErrors[0].IngredientID)
	assert.Equal(t, 165.0, session.Totals.EnergyKcal)
}

func TestSessionRejectsNegativeAmount(t *testing.T) {
	f := setupFoodTest(t)
	ctx := context.Background()

	session, err := f.foods.StartSession(ctx, nil)
	require.NoError(t, err)

	_, err = f.foods.SetIngredients(ctx, session.ID, []nutrition.IngredientLine{
		{IngredientID: f.chickenID, AmountGrams: -10},
	})
	assert.ErrorIs(t, err, nutrition.ErrNegativeAmount)

	// The stored session is untouched by the rejected mutation
	loaded, err := f.foods.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Lines)
	assert.Equal(t, 0.0, loaded.Totals.EnergyKcal)
}

func TestListFoodsByDietTag(t *testing.T) {
	f := setupFoodTest(t)
	ctx := context.Background()

	lean, err := f.foods.CreateFood(ctx, &models.Food{Name: "Lean Bowl", CreatedBy: f.userID})
	require.NoError(t, err)
	session, err := f.foods.StartSession(ctx, &lean.ID)
	require.NoError(t, err)
	_, err = f.foods.SetIngredients(ctx, session.ID, []nutrition.IngredientLine{
		{IngredientID: f.chickenID, AmountGrams: 200},
	})
	require.NoError(t, err)
	_, err = f.foods.SaveSession(ctx, session.ID, lean.ID)
	require.NoError(t, err)

	_, err = f.foods.CreateFood(ctx, &models.Food{Name: "Untagged", CreatedBy: f.userID})
	require.NoError(t, err)

	tagged, err := f.foods.ListFoods(ctx, "", "high_protein")
	require.NoError(t, err)
	require.Len(t, tagged, 1)
	assert.Equal(t, "Lean Bowl", tagged[0].Name)

	all, err := f.foods.ListFoods(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestStartSessionSeedsOverridesFromFood(t *testing.T) {
	f := setupFoodTest(t)
	ctx := context.Background()

	food, err := f.foods.CreateFood(ctx, &models.Food{Name: "Preset Bowl", CreatedBy: f.userID})
	require.NoError(t, err)

	// Compose, override, save
	session, err := f.foods.StartSession(ctx, &food.ID)
	require.NoError(t, err)
	_, err = f.foods.SetIngredients(ctx, session.ID, []nutrition.IngredientLine{
		{IngredientID: f.appleID, AmountGrams: 100},
	})
	require.NoError(t, err)
	_, err = f.foods.SetOverride(ctx, session.ID, nutrition.FieldProtein, 20)
	require.NoError(t, err)
	_, err = f.foods.SaveSession(ctx, session.ID, food.ID)
	require.NoError(t, err)

	// A fresh session on the same food carries the lock and the value
	reopened, err := f.foods.StartSession(ctx, &food.ID)
	require.NoError(t, err)
	assert.True(t, reopened.Overrides.Protein)
	assert.Equal(t, 20.0, reopened.Totals.ProteinG)
	assert.Equal(t, 52.0, reopened.Totals.EnergyKcal)
}
