package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nutriplan/nutriplan-backend/internal/middleware"
	"github.com/nutriplan/nutriplan-backend/internal/nutrition"
	"github.com/nutriplan/nutriplan-backend/internal/service"
	"github.com/nutriplan/nutriplan-backend/internal/types"
)

type TargetsHandler struct {
	targetsService service.ITargetsService
}

func NewTargetsHandler(targetsService service.ITargetsService) *TargetsHandler {
	return &TargetsHandler{targetsService: targetsService}
}

func (h *TargetsHandler) RegisterRoutes(router *gin.RouterGroup) {
	// Admin user-detail read: strict, shows an error for incomplete profiles
	users := router.Group("/users", middleware.AdminOnly())
	{
		users.GET("/:id/targets", h.AdminTargets)
	}

	// Self-service profile + mobile onboarding estimation: permissive
	profile := router.Group("/profile")
	{
		profile.GET("/body", h.GetBodyProfile)
		profile.PUT("/body", h.UpdateBodyProfile)
	}
	router.POST("/onboarding/targets", h.OnboardingTargets)

	presets := router.Group("/diet-presets")
	{
		presets.GET("", h.ListPresets)
		presets.GET("/:code", h.GetPreset)
	}
}

// AdminTargets is the strict path: a profile with missing body metrics is a
// 422, never an estimate. The admin UI renders the dash itself.
func (h *TargetsHandler) AdminTargets(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	targets, err := h.targetsService.AdminTargets(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "body profile not found"})
		case errors.Is(err, nutrition.ErrIncompleteProfile):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute targets"})
		}
		return
	}
	c.JSON(http.StatusOK, targets)
}

func (h *TargetsHandler) GetBodyProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	profile, err := h.targetsService.GetBodyProfile(c.Request.Context(), userID.(uuid.UUID))
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "body profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch body profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *TargetsHandler) UpdateBodyProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.BodyProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.targetsService.UpdateBodyProfile(c.Request.Context(), userID.(uuid.UUID), &req)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "body profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update body profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// OnboardingTargets is the permissive estimation path used during mobile
// onboarding: whatever metrics are missing get the stock defaults, so the
// user always sees a number.
func (h *TargetsHandler) OnboardingTargets(c *gin.Context) {
	var req types.OnboardingTargetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	targets := h.targetsService.OnboardingTargets(c.Request.Context(), &req)
	c.JSON(http.StatusOK, targets)
}

func (h *TargetsHandler) ListPresets(c *gin.Context) {
	presets, err := h.targetsService.ListPresets(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch presets"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"presets": presets})
}

func (h *TargetsHandler) GetPreset(c *gin.Context) {
	preset, err := h.targetsService.GetPreset(c.Request.Context(), c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "preset not found"})
		return
	}
	c.JSON(http.StatusOK, preset)
}
