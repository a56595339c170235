package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nutriplan/nutriplan-backend/internal/middleware"
	"github.com/nutriplan/nutriplan-backend/internal/models"
	"github.com/nutriplan/nutriplan-backend/internal/nutrition"
	"github.com/nutriplan/nutriplan-backend/internal/service"
	"github.com/nutriplan/nutriplan-backend/internal/types"
)

type IngredientHandler struct {
	ingredientService service.IIngredientService
}

func NewIngredientHandler(ingredientService service.IIngredientService) *IngredientHandler {
	return &IngredientHandler{ingredientService: ingredientService}
}

// RegisterRoutes wires the catalog endpoints. writeGuard, when non-nil, runs
// on mutations only; reads stay outside any rate budget.
func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup, writeGuard gin.HandlerFunc) {
	if writeGuard == nil {
		writeGuard = func(c *gin.Context) { c.Next() }
	}
	ingredients := router.Group("/ingredients")
	{
		ingredients.GET("", h.ListIngredients)
		ingredients.GET("/:id", h.GetIngredient)
		ingredients.POST("", middleware.AdminOnly(), writeGuard, h.CreateIngredient)
		ingredients.PUT("/:id", middleware.AdminOnly(), writeGuard, h.UpdateIngredient)
		ingredients.DELETE("/:id", middleware.AdminOnly(), writeGuard, h.DeleteIngredient)
	}
}

func (h *IngredientHandler) ListIngredients(c *gin.Context) {
	ingredients, err := h.ingredientService.List(c.Request.Context(), c.Query("q"), c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch ingredients"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}

func (h *IngredientHandler) GetIngredient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient id"})
		return
	}

	ingredient, err := h.ingredientService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, nutrition.ErrIngredientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ingredient not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch ingredient"})
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

func (h *IngredientHandler) CreateIngredient(c *gin.Context) {
	var req types.IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredient := ingredientFromRequest(&req)
	if err := h.ingredientService.Create(c.Request.Context(), ingredient); err != nil {
		if errors.Is(err, nutrition.ErrNegativeValue) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create ingredient"})
		return
	}
	c.JSON(http.StatusCreated, ingredient)
}

func (h *IngredientHandler) UpdateIngredient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient id"})
		return
	}

	var req types.IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.ingredientService.Update(c.Request.Context(), id, ingredientFromRequest(&req))
	if err != nil {
		switch {
		case errors.Is(err, nutrition.ErrIngredientNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "ingredient not found"})
		case errors.Is(err, nutrition.ErrNegativeValue):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update ingredient"})
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *IngredientHandler) DeleteIngredient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient id"})
		return
	}

	if err := h.ingredientService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, nutrition.ErrIngredientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ingredient not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete ingredient"})
		return
	}
	c.Status(http.StatusNoContent)
}

func ingredientFromRequest(req *types.IngredientRequest) *models.Ingredient {
	return &models.Ingredient{
		Name:           req.Name,
		Category:       req.Category,
		EnergyKcal:     req.EnergyKcal,
		ProteinG:       req.ProteinG,
		CarbG:          req.CarbG,
		FatG:           req.FatG,
		FiberG:         req.FiberG,
		Micronutrients: models.JSONBMap(req.Micronutrients),
	}
}
