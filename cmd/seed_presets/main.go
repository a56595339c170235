package main

import (
	"log"

	"github.com/nutriplan/nutriplan-backend/config"
	"github.com/nutriplan/nutriplan-backend/internal/database"
	"github.com/nutriplan/nutriplan-backend/internal/models"
	"gorm.io/gorm/clause"
)

// The stock macro-ratio presets shipped with the product. Ratios are
// percentages of target calories; protein and carbs count 4 kcal per gram,
// fat counts 9.
var presets = []models.DietPreset{
	{Code: "balanced", Name: "Balanced", CarbRatio: 40, ProteinRatio: 30, FatRatio: 30},
	{Code: "keto", Name: "Ketogenic", CarbRatio: 5, ProteinRatio: 25, FatRatio: 70},
	{Code: "low_carb", Name: "Low Carb", CarbRatio: 20, ProteinRatio: 35, FatRatio: 45},
	{Code: "high_protein", Name: "High Protein", CarbRatio: 35, ProteinRatio: 35, FatRatio: 30},
	{Code: "low_fat", Name: "Low Fat", CarbRatio: 55, ProteinRatio: 30, FatRatio: 15},
	{Code: "mobile_default", Name: "Mobile Onboarding Default", CarbRatio: 45, ProteinRatio: 30, FatRatio: 25},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	for _, preset := range presets {
		result := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			UpdateAll: true,
		}).Create(&preset)
		if result.Error != nil {
			log.Fatalf("failed to seed preset %s: %v", preset.Code, result.Error)
		}
		log.Printf("Seeded preset %s (%.0f/%.0f/%.0f carb/protein/fat)",
			preset.Code, preset.CarbRatio, preset.ProteinRatio, preset.FatRatio)
	}

	log.Printf("Seeded %d diet presets", len(presets))
}
