package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nutriplan/nutriplan-backend/internal/middleware"
	"github.com/nutriplan/nutriplan-backend/internal/models"
	"github.com/nutriplan/nutriplan-backend/internal/nutrition"
	"github.com/nutriplan/nutriplan-backend/internal/service"
	"github.com/nutriplan/nutriplan-backend/internal/types"
)

type FoodHandler struct {
	foodService service.IFoodService
}

func NewFoodHandler(foodService service.IFoodService) *FoodHandler {
	return &FoodHandler{foodService: foodService}
}

// RegisterRoutes wires the food and session endpoints. writeGuard, when
// non-nil, runs on mutations only; reads stay outside any rate budget.
func (h *FoodHandler) RegisterRoutes(router *gin.RouterGroup, writeGuard gin.HandlerFunc) {
	if writeGuard == nil {
		writeGuard = func(c *gin.Context) { c.Next() }
	}
	foods := router.Group("/foods")
	{
		foods.GET("", h.ListFoods)
		foods.GET("/:id", h.GetFood)
		foods.POST("", middleware.AdminOnly(), writeGuard, h.CreateFood)
		foods.PUT("/:id", middleware.AdminOnly(), writeGuard, h.UpdateFood)
		foods.DELETE("/:id", middleware.AdminOnly(), writeGuard, h.DeleteFood)
		foods.POST("/:id/session", middleware.AdminOnly(), writeGuard, h.StartSessionForFood)
	}

	// Editing sessions live at the top level: a session may exist before the
	// food row it will be saved onto.
	sessions := router.Group("/sessions", middleware.AdminOnly())
	{
		sessions.POST("", writeGuard, h.StartSession)
		sessions.GET("/:sid", h.GetSession)
		sessions.PUT("/:sid/ingredients", writeGuard, h.SetIngredients)
		sessions.POST("/:sid/overrides", writeGuard, h.SetOverride)
		sessions.POST("/:sid/reset", writeGuard, h.ResetCalculation)
		sessions.POST("/:sid/save", writeGuard, h.SaveSession)
	}
}

func (h *FoodHandler) ListFoods(c *gin.Context) {
	foods, err := h.foodService.ListFoods(c.Request.Context(), c.Query("category"), c.Query("diet_tag"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch foods"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"foods": foods})
}

func (h *FoodHandler) GetFood(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food id"})
		return
	}

	food, err := h.foodService.GetFood(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrFoodNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "food not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch food"})
		return
	}
	c.JSON(http.StatusOK, food)
}

func (h *FoodHandler) CreateFood(c *gin.Context) {
	var req types.FoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	food := &models.Food{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		CreatedBy:   userID.(uuid.UUID),
	}
	created, err := h.foodService.CreateFood(c.Request.Context(), food)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create food"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *FoodHandler) UpdateFood(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food id"})
		return
	}

	var req types.FoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	food, err := h.foodService.UpdateFood(c.Request.Context(), id, req.Name, req.Description, req.Category)
	if err != nil {
		if errors.Is(err, service.ErrFoodNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "food not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update food"})
		return
	}
	c.JSON(http.StatusOK, food)
}

func (h *FoodHandler) DeleteFood(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food id"})
		return
	}

	if err := h.foodService.DeleteFood(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrFoodNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "food not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete food"})
		return
	}
	c.Status(http.StatusNoContent)
}

// StartSessionForFood opens an editing session seeded from a stored food.
func (h *FoodHandler) StartSessionForFood(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food id"})
		return
	}

	session, err := h.foodService.StartSession(c.Request.Context(), &id)
	if err != nil {
		if errors.Is(err, service.ErrFoodNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "food not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start session"})
		return
	}
	c.JSON(http.StatusCreated, session)
}

// StartSession opens a blank editing session for a food that does not exist
// yet.
func (h *FoodHandler) StartSession(c *gin.Context) {
	session, err := h.foodService.StartSession(c.Request.Context(), nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start session"})
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *FoodHandler) GetSession(c *gin.Context) {
	session, err := h.foodService.GetSession(c.Request.Context(), c.Param("sid"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch session"})
		return
	}
	c.JSON(http.StatusOK, session)
}

// SetIngredients replaces the session's ingredient list. Lines that cannot
// be resolved come back in the session's line_errors; the update itself
// still succeeds so the editor can fix the list.
func (h *FoodHandler) SetIngredients(c *gin.Context) {
	var req types.SetIngredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.foodService.SetIngredients(c.Request.Context(), c.Param("sid"), req.Lines)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		case errors.Is(err, nutrition.ErrNegativeAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update ingredients"})
		}
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *FoodHandler) SetOverride(c *gin.Context) {
	var req types.OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.foodService.SetOverride(c.Request.Context(), c.Param("sid"), req.Field, req.Value)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		case errors.Is(err, nutrition.ErrNegativeValue), errors.Is(err, nutrition.ErrUnknownOverrideField):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set override"})
		}
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *FoodHandler) ResetCalculation(c *gin.Context) {
	session, err := h.foodService.ResetCalculation(c.Request.Context(), c.Param("sid"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset calculation"})
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *FoodHandler) SaveSession(c *gin.Context) {
	var req struct {
		FoodID uuid.UUID `json:"food_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	food, err := h.foodService.SaveSession(c.Request.Context(), c.Param("sid"), req.FoodID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		case errors.Is(err, service.ErrFoodNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "food not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save session"})
		}
		return
	}
	c.JSON(http.StatusOK, food)
}
