package database

import (
	"fmt"
	"log"

	"pollboard/internal/config"
	"pollboard/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect establishes a database connection using the configured driver
func Connect(cfg *config.Config) error {
	var err error

	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.Database.SQLitePath)
	default:
		dialector = postgres.Open(cfg.GetDSN())
	}

	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})

	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established successfully")
	return nil
}

// AutoMigrate runs automatic migrations for all models
func AutoMigrate() error {
	allModels := []interface{}{
		&models.Profile{},
		&models.Category{},
		&models.Poll{},
		&models.PollOption{},
		&models.Vote{},
		&models.PollBookmark{},
	}

	for _, model := range allModels {
		if err := DB.AutoMigrate(model); err != nil {
			log.Printf("Warning: migration issue for %T: %v", model, err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedCategories inserts the default category set if it is missing
func SeedCategories() error {
	defaults := []models.Category{
		{Name: "General", Color: "#6366f1"},
		{Name: "Technology", Color: "#0ea5e9"},
		{Name: "Sports", Color: "#22c55e"},
		{Name: "Entertainment", Color: "#f59e0b"},
		{Name: "Politics", Color: "#ef4444"},
	}

	for _, category := range defaults {
		var existing models.Category
		err := DB.Where("name = ?", category.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("failed to check category %s: %w", category.Name, err)
		}

		category.ID = uuid.New()
		if err := DB.Create(&category).Error; err != nil {
			return fmt.Errorf("failed to seed category %s: %w", category.Name, err)
		}
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
