package router

import (
	"github.com/gin-gonic/gin"
	"github.com/nutriplan/nutriplan-backend/internal/api"
	"github.com/nutriplan/nutriplan-backend/internal/middleware"
	"github.com/nutriplan/nutriplan-backend/internal/service"
)

// SetupRouter configures the application routes
func SetupRouter(
	authHandler *api.AuthHandler,
	ingredientHandler *api.IngredientHandler,
	foodHandler *api.FoodHandler,
	targetsHandler *api.TargetsHandler,
	imageHandler *api.ImageHandler,
	authService service.IAuthService,
	writeLimiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())

	// API v1 routes
	v1 := router.Group("/api/v1")

	// Auth routes are public
	authHandler.RegisterRoutes(v1)

	// Everything else requires a valid token
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))

	// The write limiter only guards catalog mutations; reads and the mobile
	// onboarding path never touch its budget.
	var writeGuard gin.HandlerFunc
	if writeLimiter != nil {
		writeGuard = writeLimiter.RateLimitMiddleware()
	}
	{
		ingredientHandler.RegisterRoutes(protected, writeGuard)
		foodHandler.RegisterRoutes(protected, writeGuard)
		targetsHandler.RegisterRoutes(protected)
		if imageHandler != nil {
			imageHandler.RegisterRoutes(protected, writeGuard)
		}
	}

	return router
}
