package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/nutriplan/nutriplan-backend/config"
	"github.com/nutriplan/nutriplan-backend/internal/api"
	"github.com/nutriplan/nutriplan-backend/internal/database"
	"github.com/nutriplan/nutriplan-backend/internal/middleware"
	"github.com/nutriplan/nutriplan-backend/internal/router"
	"github.com/nutriplan/nutriplan-backend/internal/service"
)

// Server owns the HTTP listener and the backing connections.
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	http   *http.Server
	db     *gorm.DB
	redis  *redis.Client
}

// New builds the full service graph: database, redis, services, handlers,
// routes. S3 is optional; without credentials the image endpoint is simply
// not registered.
func New(cfg *config.Config) (*Server, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	ingredientService := service.NewIngredientService(db, redisClient)
	foodService := service.NewFoodService(db, redisClient, ingredientService)
	targetsService := service.NewTargetsService(db)

	var imageHandler *api.ImageHandler
	if s3cfg, err := config.NewS3Config(context.Background()); err != nil {
		log.Printf("S3 not configured, food image uploads disabled: %v", err)
	} else {
		// Public buckets serve the stored URLs directly; private ones fall
		// back to the presigned endpoint, so a policy failure is not fatal.
		if err := s3cfg.SetupBucketPolicy(context.Background()); err != nil {
			log.Printf("could not apply public-read bucket policy: %v", err)
		}
		imageHandler = api.NewImageHandler(service.NewImageService(s3cfg), foodService)
	}

	var writeLimiter *middleware.RateLimiter
	if cfg.CatalogWriteRateLimit > 0 {
		writeLimiter = middleware.NewCatalogWriteRateLimiter(redisClient, cfg.CatalogWriteRateLimit)
	}

	engine := router.SetupRouter(
		api.NewAuthHandler(authService),
		api.NewIngredientHandler(ingredientService),
		api.NewFoodHandler(foodService),
		api.NewTargetsHandler(targetsService),
		imageHandler,
		authService,
		writeLimiter,
	)

	engine.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), cfg); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return &Server{
		cfg:    cfg,
		engine: engine,
		db:     db,
		redis:  redisClient,
	}, nil
}

// Start runs the HTTP listener. It blocks until the listener fails or
// Shutdown is called.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    s.cfg.ServerHost + ":" + s.cfg.ServerPort,
		Handler: s.engine,
	}

	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server and closes the backing
// connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		if err := s.http.Shutdown(ctx); err != nil {
			return err
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Printf("error closing redis client: %v", err)
		}
	}
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Printf("error closing database pool: %v", err)
			}
		}
	}
	return nil
}
