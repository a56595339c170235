package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nutriplan/nutriplan-backend/internal/models"
	"github.com/nutriplan/nutriplan-backend/internal/nutrition"
	"github.com/nutriplan/nutriplan-backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newFoodRouter(isAdmin bool, svc *MockFoodService) *gin.Engine {
	return newTestRouter(isAdmin, func(group *gin.RouterGroup) {
		NewFoodHandler(svc).RegisterRoutes(group, nil)
	})
}

func settledSession(id string) *nutrition.Session {
	return &nutrition.Session{
		ID:       id,
		State:    nutrition.StateSettled,
		Lines:    []nutrition.IngredientLine{{IngredientID: 1, AmountGrams: 150}},
		Totals:   nutrition.NutrientRecord{EnergyKcal: 247.5, ProteinG: 46.5, FatG: 5.4, Micros: nutrition.Micros{}},
		DietTags: []string{"high_protein", "low_carb"},
	}
}

func TestCreateFoodSetsCreator(t *testing.T) {
	svc := new(MockFoodService)
	svc.On("CreateFood", mock.Anything, mock.MatchedBy(func(f *models.Food) bool {
		return f.Name == "Chicken Bowl" && f.CreatedBy != uuid.Nil
	})).Return(&models.Food{Name: "Chicken Bowl"}, nil)

	router := newFoodRouter(true, svc)
	w := performRequest(router, http.MethodPost, "/api/v1/foods", gin.H{"name": "Chicken Bowl"})

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestFoodWritesRequireAdmin(t *testing.T) {
	svc := new(MockFoodService)
	router := newFoodRouter(false, svc)

	w := performRequest(router, http.MethodPost, "/api/v1/foods", gin.H{"name": "Nope"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = performRequest(router, http.MethodPost, "/api/v1/sessions", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	svc.AssertNotCalled(t, "CreateFood")
	svc.AssertNotCalled(t, "StartSession")
}

func TestGetFoodNotFound(t *testing.T) {
	svc := new(MockFoodService)
	id := uuid.New()
	svc.On("GetFood", mock.Anything, id).Return(nil, service.ErrFoodNotFound)

	router := newFoodRouter(false, svc)
	w := performRequest(router, http.MethodGet, "/api/v1/foods/"+id.String(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListFoodsByTag(t *testing.T) {
	svc := new(MockFoodService)
	svc.On("ListFoods", mock.Anything, "", "keto").Return([]models.Food{{Name: "Fat Bomb"}}, nil)

	router := newFoodRouter(false, svc)
	w := performRequest(router, http.MethodGet, "/api/v1/foods?diet_tag=keto", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Foods []models.Food `json:"foods"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Foods, 1)
	assert.Equal(t, "Fat Bomb", resp.Foods[0].Name)
}

func TestStartSessionForFood(t *testing.T) {
	svc := new(MockFoodService)
	foodID := uuid.New()
	svc.On("StartSession", mock.Anything, &foodID).Return(settledSession("sess-1"), nil)

	router := newFoodRouter(true, svc)
	w := performRequest(router, http.MethodPost, "/api/v1/foods/"+foodID.String()+"/session", nil)

	require.Equal(t, http.StatusCreated, w.Code)
	var session nutrition.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	assert.Equal(t, "sess-1", session.ID)
	assert.Equal(t, []string{"high_protein", "low_carb"}, session.DietTags)
}

func TestSetIngredients(t *testing.T) {
	svc := new(MockFoodService)
	lines := []nutrition.IngredientLine{{IngredientID: 1, AmountGrams: 150}}
	svc.On("SetIngredients", mock.Anything, "sess-1", lines).Return(settledSession("sess-1"), nil)

	router := newFoodRouter(true, svc)
	w := performRequest(router, http.MethodPut, "/api/v1/sessions/sess-1/ingredients", gin.H{
		"lines": []gin.H{{"ingredient_id": 1, "amount_in_grams": 150}},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestSetIngredientsNegativeAmount(t *testing.T) {
	svc := new(MockFoodService)
	svc.On("SetIngredients", mock.Anything, "sess-1", mock.Anything).
		Return(nil, nutrition.ErrNegativeAmount)

	router := newFoodRouter(true, svc)
	w := performRequest(router, http.MethodPut, "/api/v1/sessions/sess-1/ingredients", gin.H{
		"lines": []gin.H{{"ingredient_id": 1, "amount_in_grams": -5}},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetOverride(t *testing.T) {
	svc := new(MockFoodService)
	svc.On("SetOverride", mock.Anything, "sess-1", nutrition.FieldCalories, 500.0).
		Return(settledSession("sess-1"), nil)

	router := newFoodRouter(true, svc)
	w := performRequest(router, http.MethodPost, "/api/v1/sessions/sess-1/overrides", gin.H{
		"field": "calories",
		"value": 500,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestSetOverrideUnknownField(t *testing.T) {
	svc := new(MockFoodService)
	svc.On("SetOverride", mock.Anything, "sess-1", nutrition.OverrideField("fiber"), 10.0).
		Return(nil, nutrition.ErrUnknownOverrideField)

	router := newFoodRouter(true, svc)
	w := performRequest(router, http.MethodPost, "/api/v1/sessions/sess-1/overrides", gin.H{
		"field": "fiber",
		"value": 10,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResetCalculationSessionNotFound(t *testing.T) {
	svc := new(MockFoodService)
	svc.On("ResetCalculation", mock.Anything, "gone").Return(nil, service.ErrSessionNotFound)

	router := newFoodRouter(true, svc)
	w := performRequest(router, http.MethodPost, "/api/v1/sessions/gone/reset", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSaveSession(t *testing.T) {
	svc := new(MockFoodService)
	foodID := uuid.New()
	svc.On("SaveSession", mock.Anything, "sess-1", foodID).
		Return(&models.Food{ID: foodID, Name: "Chicken Bowl", TotalCalories: 247.5}, nil)

	router := newFoodRouter(true, svc)
	w := performRequest(router, http.MethodPost, "/api/v1/sessions/sess-1/save", gin.H{
		"food_id": foodID.String(),
	})

	require.Equal(t, http.StatusOK, w.Code)
	var food models.Food
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &food))
	assert.Equal(t, 247.5, food.TotalCalories)
}

func TestSaveSessionRequiresFoodID(t *testing.T) {
	router := newFoodRouter(true, new(MockFoodService))
	w := performRequest(router, http.MethodPost, "/api/v1/sessions/sess-1/save", gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
