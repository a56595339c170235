package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nutriplan/nutriplan-backend/internal/middleware"
	"github.com/nutriplan/nutriplan-backend/internal/models"
	"github.com/nutriplan/nutriplan-backend/internal/nutrition"
	"github.com/nutriplan/nutriplan-backend/internal/types"
	"github.com/stretchr/testify/mock"
)

// stubValidator accepts any bearer token and returns fixed claims. Handler
// tests drive authorization through it instead of minting real JWTs.
type stubValidator struct {
	claims types.TokenClaims
}

func (v *stubValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	c := v.claims
	return &c, nil
}

// newTestRouter builds a gin engine with the auth middleware backed by a stub
// validator, then lets the caller register handler routes on the protected
// group.
func newTestRouter(isAdmin bool, register func(group *gin.RouterGroup)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(gin.Recovery())

	validator := &stubValidator{claims: types.TokenClaims{
		UserID:  uuid.New(),
		Name:    "Test User",
		IsAdmin: isAdmin,
	}}

	protected := router.Group("/api/v1")
	protected.Use(middleware.AuthMiddleware(validator))
	register(protected)
	return router
}

// performRequest makes an authenticated JSON request against the test router.
func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer test-token")

	router.ServeHTTP(w, req)
	return w
}

// MockIngredientService is a testify mock for IIngredientService.
type MockIngredientService struct {
	mock.Mock
}

func (m *MockIngredientService) Create(ctx context.Context, ingredient *models.Ingredient) error {
	args := m.Called(ctx, ingredient)
	return args.Error(0)
}

func (m *MockIngredientService) Get(ctx context.Context, id int64) (*models.Ingredient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ingredient), args.Error(1)
}

func (m *MockIngredientService) List(ctx context.Context, search, category string) ([]models.Ingredient, error) {
	args := m.Called(ctx, search, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Ingredient), args.Error(1)
}

func (m *MockIngredientService) Update(ctx context.Context, id int64, ingredient *models.Ingredient) (*models.Ingredient, error) {
	args := m.Called(ctx, id, ingredient)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ingredient), args.Error(1)
}

func (m *MockIngredientService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockIngredientService) NutrientRecordByID(ctx context.Context, id int64) (nutrition.NutrientRecord, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(nutrition.NutrientRecord), args.Error(1)
}

// MockFoodService is a testify mock for IFoodService.
type MockFoodService struct {
	mock.Mock
}

func (m *MockFoodService) CreateFood(ctx context.Context, food *models.Food) (*models.Food, error) {
	args := m.Called(ctx, food)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Food), args.Error(1)
}

func (m *MockFoodService) GetFood(ctx context.Context, id uuid.UUID) (*models.Food, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Food), args.Error(1)
}

func (m *MockFoodService) ListFoods(ctx context.Context, category, dietTag string) ([]models.Food, error) {
	args := m.Called(ctx, category, dietTag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Food), args.Error(1)
}

func (m *MockFoodService) UpdateFood(ctx context.Context, id uuid.UUID, name, description, category string) (*models.Food, error) {
	args := m.Called(ctx, id, name, description, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Food), args.Error(1)
}

func (m *MockFoodService) SetImageURL(ctx context.Context, id uuid.UUID, url string) error {
	args := m.Called(ctx, id, url)
	return args.Error(0)
}

func (m *MockFoodService) DeleteFood(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFoodService) StartSession(ctx context.Context, foodID *uuid.UUID) (*nutrition.Session, error) {
	args := m.Called(ctx, foodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*nutrition.Session), args.Error(1)
}

func (m *MockFoodService) GetSession(ctx context.Context, sessionID string) (*nutrition.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*nutrition.Session), args.Error(1)
}

func (m *MockFoodService) SetIngredients(ctx context.Context, sessionID string, lines []nutrition.IngredientLine) (*nutrition.Session, error) {
	args := m.Called(ctx, sessionID, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*nutrition.Session), args.Error(1)
}

func (m *MockFoodService) SetOverride(ctx context.Context, sessionID string, field nutrition.OverrideField, value float64) (*nutrition.Session, error) {
	args := m.Called(ctx, sessionID, field, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*nutrition.Session), args.Error(1)
}

func (m *MockFoodService) ResetCalculation(ctx context.Context, sessionID string) (*nutrition.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*nutrition.Session), args.Error(1)
}

func (m *MockFoodService) SaveSession(ctx context.Context, sessionID string, foodID uuid.UUID) (*models.Food, error) {
	args := m.Called(ctx, sessionID, foodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Food), args.Error(1)
}

// MockTargetsService is a testify mock for ITargetsService.
type MockTargetsService struct {
	mock.Mock
}

func (m *MockTargetsService) GetBodyProfile(ctx context.Context, userID uuid.UUID) (*models.UserBodyProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserBodyProfile), args.Error(1)
}

func (m *MockTargetsService) UpdateBodyProfile(ctx context.Context, userID uuid.UUID, req *types.BodyProfileRequest) (*models.UserBodyProfile, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserBodyProfile), args.Error(1)
}

func (m *MockTargetsService) AdminTargets(ctx context.Context, userID uuid.UUID) (nutrition.Targets, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(nutrition.Targets), args.Error(1)
}

func (m *MockTargetsService) OnboardingTargets(ctx context.Context, req *types.OnboardingTargetsRequest) nutrition.Targets {
	args := m.Called(ctx, req)
	return args.Get(0).(nutrition.Targets)
}

func (m *MockTargetsService) ListPresets(ctx context.Context) ([]models.DietPreset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DietPreset), args.Error(1)
}

func (m *MockTargetsService) GetPreset(ctx context.Context, code string) (*models.DietPreset, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DietPreset), args.Error(1)
}

// MockImageService is a testify mock for IImageService.
type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) UploadFoodImage(ctx context.Context, foodID uuid.UUID, filename, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, foodID, filename, contentType, body)
	return args.String(0), args.Error(1)
}

func (m *MockImageService) PresignedImageURL(ctx context.Context, objectKey string) (string, error) {
	args := m.Called(ctx, objectKey)
	return args.String(0), args.Error(1)
}
