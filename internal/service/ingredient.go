package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/nutriplan/nutriplan-backend/internal/models"
	"github.com/nutriplan/nutriplan-backend/internal/nutrition"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const ingredientCacheTTL = time.Hour

// IngredientService manages the ingredient catalog and resolves per-100g
// nutrient records for the aggregation engine, with a Redis read-through
// cache in front of the database.
type IngredientService struct {
	db    *gorm.DB
	redis *redis.Client
}

// Ensure IngredientService satisfies both its own interface and the engine's
// resolver contract.
var (
	_ IIngredientService = (*IngredientService)(nil)
	_ nutrition.Resolver = (*IngredientService)(nil)
)

// NewIngredientService creates a new IngredientService instance. The Redis
// client may be nil; lookups then go straight to the database.
func NewIngredientService(db *gorm.DB, redisClient *redis.Client) *IngredientService {
	return &IngredientService{
		db:    db,
		redis: redisClient,
	}
}

// Create validates and stores a catalog ingredient.
func (s *IngredientService) Create(ctx context.Context, ingredient *models.Ingredient) error {
	if err := ingredient.NutrientRecord().Validate(); err != nil {
		return err
	}
	if ingredient.Micronutrients == nil {
		ingredient.Micronutrients = models.JSONBMap{}
	}
	return s.db.WithContext(ctx).Create(ingredient).Error
}

// Get retrieves one ingredient by id.
func (s *IngredientService) Get(ctx context.Context, id int64) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nutrition.ErrIngredientNotFound
		}
		return nil, err
	}
	return &ingredient, nil
}

// List returns catalog ingredients, optionally filtered by a name substring
// and category.
func (s *IngredientService) List(ctx context.Context, search, category string) ([]models.Ingredient, error) {
	query := s.db.WithContext(ctx)
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ?", like)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var ingredients []models.Ingredient
	if err := query.Order("name").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// Update replaces an ingredient's fields and invalidates its cached record.
func (s *IngredientService) Update(ctx context.Context, id int64, ingredient *models.Ingredient) (*models.Ingredient, error) {
	if err := ingredient.NutrientRecord().Validate(); err != nil {
		return nil, err
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = ingredient.Name
	existing.Category = ingredient.Category
	existing.EnergyKcal = ingredient.EnergyKcal
	existing.ProteinG = ingredient.ProteinG
	existing.CarbG = ingredient.CarbG
	existing.FatG = ingredient.FatG
	existing.FiberG = ingredient.FiberG
	existing.Micronutrients = ingredient.Micronutrients
	if existing.Micronutrients == nil {
		existing.Micronutrients = models.JSONBMap{}
	}

	if err := s.db.WithContext(ctx).Save(existing).Error; err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return existing, nil
}

// Delete soft-deletes an ingredient and invalidates its cached record.
// Composed foods referencing it keep their line; the next recompute reports
// it as unresolvable instead of pretending it contributed nothing.
func (s *IngredientService) Delete(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&models.Ingredient{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return nutrition.ErrIngredientNotFound
	}
	s.invalidate(ctx, id)
	return nil
}

// NutrientRecordByID implements nutrition.Resolver. Cache hits skip the
// database entirely; misses are cached on the way out. Cache failures are
// logged and ignored; the database answer is authoritative.
func (s *IngredientService) NutrientRecordByID(ctx context.Context, id int64) (nutrition.NutrientRecord, error) {
	key := cacheKey(id)

	if s.redis != nil {
		data, err := s.redis.Get(ctx, key).Bytes()
		if err == nil {
			var record nutrition.NutrientRecord
			if err := json.Unmarshal(data, &record); err == nil {
				return record, nil
			}
		}
	}

	ingredient, err := s.Get(ctx, id)
	if err != nil {
		return nutrition.NutrientRecord{}, err
	}
	record := ingredient.NutrientRecord()

	if s.redis != nil {
		if data, err := json.Marshal(record); err == nil {
			if err := s.redis.Set(ctx, key, data, ingredientCacheTTL).Err(); err != nil {
				log.Printf("ingredient cache set failed for %d: %v", id, err)
			}
		}
	}
	return record, nil
}

func (s *IngredientService) invalidate(ctx context.Context, id int64) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, cacheKey(id)).Err(); err != nil {
		log.Printf("ingredient cache invalidation failed for %d: %v", id, err)
	}
}

func cacheKey(id int64) string {
	return fmt.Sprintf("ingredient:nutrients:%d", id)
}
