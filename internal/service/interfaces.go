package service

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/nutriplan/nutriplan-backend/internal/models"
	"github.com/nutriplan/nutriplan-backend/internal/nutrition"
	"github.com/nutriplan/nutriplan-backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, name, email, password, gender string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	GenerateToken(user *models.User) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IIngredientService defines the interface for catalog operations. It also
// backs the nutrition engine's ingredient resolution.
type IIngredientService interface {
	nutrition.Resolver
	Create(ctx context.Context, ingredient *models.Ingredient) error
	Get(ctx context.Context, id int64) (*models.Ingredient, error)
	List(ctx context.Context, search, category string) ([]models.Ingredient, error)
	Update(ctx context.Context, id int64, ingredient *models.Ingredient) (*models.Ingredient, error)
	Delete(ctx context.Context, id int64) error
}

// IFoodService defines the interface for composed foods and their editing
// sessions.
type IFoodService interface {
	CreateFood(ctx context.Context, food *models.Food) (*models.Food, error)
	GetFood(ctx context.Context, id uuid.UUID) (*models.Food, error)
	ListFoods(ctx context.Context, category, dietTag string) ([]models.Food, error)
	UpdateFood(ctx context.Context, id uuid.UUID, name, description, category string) (*models.Food, error)
	SetImageURL(ctx context.Context, id uuid.UUID, url string) error
	DeleteFood(ctx context.Context, id uuid.UUID) error

	StartSession(ctx context.Context, foodID *uuid.UUID) (*nutrition.Session, error)
	GetSession(ctx context.Context, sessionID string) (*nutrition.Session, error)
	SetIngredients(ctx context.Context, sessionID string, lines []nutrition.IngredientLine) (*nutrition.Session, error)
	SetOverride(ctx context.Context, sessionID string, field nutrition.OverrideField, value float64) (*nutrition.Session, error)
	ResetCalculation(ctx context.Context, sessionID string) (*nutrition.Session, error)
	SaveSession(ctx context.Context, sessionID string, foodID uuid.UUID) (*models.Food, error)
}

// ITargetsService defines the interface for personalized target derivation.
type ITargetsService interface {
	GetBodyProfile(ctx context.Context, userID uuid.UUID) (*models.UserBodyProfile, error)
	UpdateBodyProfile(ctx context.Context, userID uuid.UUID, req *types.BodyProfileRequest) (*models.UserBodyProfile, error)
	AdminTargets(ctx context.Context, userID uuid.UUID) (nutrition.Targets, error)
	OnboardingTargets(ctx context.Context, req *types.OnboardingTargetsRequest) nutrition.Targets
	ListPresets(ctx context.Context) ([]models.DietPreset, error)
	GetPreset(ctx context.Context, code string) (*models.DietPreset, error)
}

// IImageService defines the interface for food photo storage.
type IImageService interface {
	UploadFoodImage(ctx context.Context, foodID uuid.UUID, filename, contentType string, body io.Reader) (string, error)
	PresignedImageURL(ctx context.Context, objectKey string) (string, error)
}
