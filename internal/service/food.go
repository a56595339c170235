package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nutriplan/nutriplan-backend/internal/models"
	"github.com/nutriplan/nutriplan-backend/internal/nutrition"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const sessionTTL = 24 * time.Hour

var (
	ErrSessionNotFound = errors.New("editing session not found")
	ErrFoodNotFound    = errors.New("food not found")
)

// FoodService manages composed foods and their editing sessions. A session
// is the unit the nutrition engine operates on: the current ingredient list,
// recomputed totals, diet tags and override locks. Sessions live in Redis
// until saved; the foods table only ever sees settled values.
type FoodService struct {
	db          *gorm.DB
	redis       *redis.Client
	ingredients *IngredientService
	debouncer   *LookupDebouncer
}

// Ensure FoodService implements IFoodService
var _ IFoodService = (*FoodService)(nil)

// NewFoodService creates a new FoodService instance.
func NewFoodService(db *gorm.DB, redisClient *redis.Client, ingredients *IngredientService) *FoodService {
	return &FoodService{
		db:          db,
		redis:       redisClient,
		ingredients: ingredients,
		debouncer:   NewLookupDebouncer(DefaultDebounceDelay),
	}
}

// CreateFood stores a new composed food shell. Nutrition totals stay zero
// until an editing session is saved onto it.
func (s *FoodService) CreateFood(ctx context.Context, food *models.Food) (*models.Food, error) {
	food.ID = uuid.New()
	if food.Lines == nil {
		food.Lines = models.JSONBIngredientLines{}
	}
	if food.Micronutrients == nil {
		food.Micronutrients = models.JSONBMap{}
	}
	if food.DietTags == nil {
		food.DietTags = models.JSONBStringArray{}
	}
	if err := s.db.WithContext(ctx).Create(food).Error; err != nil {
		return nil, err
	}
	return food, nil
}

// GetFood retrieves one composed food.
func (s *FoodService) GetFood(ctx context.Context, id uuid.UUID) (*models.Food, error) {
	var food models.Food
	if err := s.db.WithContext(ctx).First(&food, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, err
	}
	return &food, nil
}

// ListFoods returns composed foods, optionally filtered by category or a
// diet tag.
func (s *FoodService) ListFoods(ctx context.Context, category, dietTag string) ([]models.Food, error) {
	query := s.db.WithContext(ctx)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if dietTag != "" {
		if s.db.Dialector.Name() == "postgres" {
			query = query.Where("diet_tags @> ?", fmt.Sprintf(`["%s"]`, dietTag))
		} else {
			query = query.Where("diet_tags LIKE ?", "%\""+dietTag+"\"%")
		}
	}

	var foods []models.Food
	if err := query.Order("name").Find(&foods).Error; err != nil {
		return nil, err
	}
	return foods, nil
}

// UpdateFood updates the descriptive fields only. Totals, tags and override
// flags go through the session save path.
func (s *FoodService) UpdateFood(ctx context.Context, id uuid.UUID, name, description, category string) (*models.Food, error) {
	food, err := s.GetFood(ctx, id)
	if err != nil {
		return nil, err
	}
	food.Name = name
	food.Description = description
	food.Category = category
	if err := s.db.WithContext(ctx).Save(food).Error; err != nil {
		return nil, err
	}
	return food, nil
}

// SetImageURL records the stored photo location for a food.
func (s *FoodService) SetImageURL(ctx context.Context, id uuid.UUID, url string) error {
	result := s.db.WithContext(ctx).Model(&models.Food{}).Where("id = ?", id).Update("image_url", url)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFoodNotFound
	}
	return nil
}

// DeleteFood soft-deletes a composed food.
func (s *FoodService) DeleteFood(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.Food{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFoodNotFound
	}
	return nil
}

// StartSession opens an editing session. With a food id the session is
// seeded from the stored row (lines, override locks and the overridden
// values) and recomputed so the unlocked fields and tags are fresh against
// the current catalog. Without one it starts empty.
func (s *FoodService) StartSession(ctx context.Context, foodID *uuid.UUID) (*nutrition.Session, error) {
	session := nutrition.NewSession(uuid.New().String())

	if foodID != nil {
		food, err := s.GetFood(ctx, *foodID)
		if err != nil {
			return nil, err
		}
		session.FoodID = food.ID.String()
		session.Overrides = nutrition.Overrides(food.ManualOverrides)
		session.Totals = nutrition.NutrientRecord{
			EnergyKcal: food.TotalCalories,
			ProteinG:   food.TotalProtein,
			CarbG:      food.TotalCarb,
			FatG:       food.TotalFat,
			FiberG:     food.TotalFiber,
			Micros:     nutrition.ParseMicros(food.Micronutrients),
		}
		if err := session.SetLines(ctx, s.ingredients, food.Lines); err != nil {
			return nil, err
		}
	}

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession loads an editing session from Redis.
func (s *FoodService) GetSession(ctx context.Context, sessionID string) (*nutrition.Session, error) {
	data, err := s.redis.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session nutrition.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// SetIngredients replaces the session's ingredient list and recomputes.
// Unresolvable lines come back on the session's LineErrors; they are the
// caller's to surface. A follow-up cache warm for the lines is debounced so
// a burst of quantity edits costs one catalog pass.
func (s *FoodService) SetIngredients(ctx context.Context, sessionID string, lines []nutrition.IngredientLine) (*nutrition.Session, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.SetLines(ctx, s.ingredients, lines); err != nil {
		return nil, err
	}
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}

	s.debouncer.Trigger(sessionID, func() {
		s.warmIngredientCache(lines)
	})
	return session, nil
}

// SetOverride manually edits one of the four lockable totals fields and
// freezes it against recomputation.
func (s *FoodService) SetOverride(ctx context.Context, sessionID string, field nutrition.OverrideField, value float64) (*nutrition.Session, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.SetOverride(field, value); err != nil {
		return nil, err
	}
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ResetCalculation clears all override locks and recomputes from the current
// ingredient list.
func (s *FoodService) ResetCalculation(ctx context.Context, sessionID string) (*nutrition.Session, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.ResetCalculation(ctx, s.ingredients); err != nil {
		return nil, err
	}
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SaveSession persists the session's settled values onto the food row and
// discards the session.
func (s *FoodService) SaveSession(ctx context.Context, sessionID string, foodID uuid.UUID) (*models.Food, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	food, err := s.GetFood(ctx, foodID)
	if err != nil {
		return nil, err
	}

	food.Lines = session.Lines
	food.TotalCalories = session.Totals.EnergyKcal
	food.TotalProtein = session.Totals.ProteinG
	food.TotalCarb = session.Totals.CarbG
	food.TotalFat = session.Totals.FatG
	food.TotalFiber = session.Totals.FiberG
	food.Micronutrients = microsToMap(session.Totals.Micros)
	food.DietTags = models.JSONBStringArray(session.DietTags)
	food.ManualOverrides = models.JSONBOverrides(session.Overrides)

	if err := s.db.WithContext(ctx).Save(food).Error; err != nil {
		return nil, err
	}

	s.debouncer.Cancel(sessionID)
	if err := s.redis.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		log.Printf("failed to discard session %s: %v", sessionID, err)
	}
	return food, nil
}

func (s *FoodService) saveSession(ctx context.Context, session *nutrition.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.redis.Set(ctx, sessionKey(session.ID), data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// warmIngredientCache pre-resolves the lines so the next recompute in this
// session hits Redis instead of the database. Best effort only.
func (s *FoodService) warmIngredientCache(lines []nutrition.IngredientLine) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, line := range lines {
		if _, err := s.ingredients.NutrientRecordByID(ctx, line.IngredientID); err != nil &&
			!errors.Is(err, nutrition.ErrIngredientNotFound) {
			log.Printf("ingredient cache warm failed for %d: %v", line.IngredientID, err)
		}
	}
}

func microsToMap(m nutrition.Micros) models.JSONBMap {
	out := models.JSONBMap{}
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sessionKey(id string) string {
	return fmt.Sprintf("food:session:%s", id)
}
