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

func newTargetsRouter(isAdmin bool, svc *MockTargetsService) *gin.Engine {
	return newTestRouter(isAdmin, func(group *gin.RouterGroup) {
		NewTargetsHandler(svc).RegisterRoutes(group)
	})
}

func TestAdminTargets(t *testing.T) {
	svc := new(MockTargetsService)
	userID := uuid.New()
	svc.On("AdminTargets", mock.Anything, userID).Return(nutrition.Targets{
		BMR:            1780,
		TDEE:           2759,
		TargetCalories: 2259,
		TargetProteinG: 169,
		TargetCarbG:    226,
		TargetFatG:     75,
	}, nil)

	router := newTargetsRouter(true, svc)
	w := performRequest(router, http.MethodGet, "/api/v1/users/"+userID.String()+"/targets", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var targets nutrition.Targets
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &targets))
	assert.Equal(t, 2259.0, targets.TargetCalories)
}

func TestAdminTargetsIncompleteProfileIs422(t *testing.T) {
	svc := new(MockTargetsService)
	userID := uuid.New()
	svc.On("AdminTargets", mock.Anything, userID).
		Return(nutrition.Targets{}, nutrition.ErrIncompleteProfile)

	router := newTargetsRouter(true, svc)
	w := performRequest(router, http.MethodGet, "/api/v1/users/"+userID.String()+"/targets", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAdminTargetsRequiresAdmin(t *testing.T) {
	svc := new(MockTargetsService)
	router := newTargetsRouter(false, svc)
	w := performRequest(router, http.MethodGet, "/api/v1/users/"+uuid.New().String()+"/targets", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	svc.AssertNotCalled(t, "AdminTargets")
}

func TestOnboardingTargets(t *testing.T) {
	svc := new(MockTargetsService)
	svc.On("OnboardingTargets", mock.Anything, mock.Anything).Return(nutrition.Targets{
		BMR:            1476.5,
		TDEE:           1772,
		TargetCalories: 1772,
	})

	// Any authenticated user can estimate, admin or not
	router := newTargetsRouter(false, svc)
	w := performRequest(router, http.MethodPost, "/api/v1/onboarding/targets", gin.H{})

	require.Equal(t, http.StatusOK, w.Code)
	var targets nutrition.Targets
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &targets))
	assert.Equal(t, 1772.0, targets.TargetCalories)
}

func TestOnboardingTargetsRejectsBadGender(t *testing.T) {
	router := newTargetsRouter(false, new(MockTargetsService))
	w := performRequest(router, http.MethodPost, "/api/v1/onboarding/targets", gin.H{
		"gender": "robot",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBodyProfileNotFound(t *testing.T) {
	svc := new(MockTargetsService)
	svc.On("GetBodyProfile", mock.Anything, mock.Anything).Return(nil, service.ErrProfileNotFound)

	router := newTargetsRouter(false, svc)
	w := performRequest(router, http.MethodGet, "/api/v1/profile/body", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateBodyProfile(t *testing.T) {
	svc := new(MockTargetsService)
	weight := 62.0
	svc.On("UpdateBodyProfile", mock.Anything, mock.Anything, mock.Anything).
		Return(&models.UserBodyProfile{Gender: "female", WeightKg: &weight}, nil)

	router := newTargetsRouter(false, svc)
	w := performRequest(router, http.MethodPut, "/api/v1/profile/body", gin.H{"weight_kg": 62})

	require.Equal(t, http.StatusOK, w.Code)
	var profile models.UserBodyProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	require.NotNil(t, profile.WeightKg)
	assert.Equal(t, 62.0, *profile.WeightKg)
}

func TestListPresets(t *testing.T) {
	svc := new(MockTargetsService)
	svc.On("ListPresets", mock.Anything).Return([]models.DietPreset{
		{Code: "balanced", Name: "Balanced", CarbRatio: 40, ProteinRatio: 30, FatRatio: 30},
	}, nil)

	router := newTargetsRouter(false, svc)
	w := performRequest(router, http.MethodGet, "/api/v1/diet-presets", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Presets []models.DietPreset `json:"presets"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Presets, 1)
	assert.Equal(t, "balanced", resp.Presets[0].Code)
}
