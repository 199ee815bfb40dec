package services

import (
	"context"
	"testing"

	"pollboard/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	// A single connection keeps the in-memory DB shared and serializes
	// concurrent writers the way a real server's store would
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Profile{},
		&models.Category{},
		&models.Poll{},
		&models.PollOption{},
		&models.Vote{},
		&models.PollBookmark{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func createTestProfile(t *testing.T, db *gorm.DB, email string) *models.Profile {
	profile := &models.Profile{
		ID:    uuid.New(),
		Email: email,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	return profile
}

func createTestPoll(t *testing.T, db *gorm.DB, creatorID uuid.UUID, status, voteType string, allowAnonymous bool, optionTexts ...string) *models.Poll {
	poll := &models.Poll{
		ID:             uuid.New(),
		Title:          "Test Poll",
		CreatorID:      creatorID,
		Status:         status,
		VoteType:       voteType,
		AllowAnonymous: allowAnonymous,
	}
	if err := db.Create(poll).Error; err != nil {
		t.Fatalf("failed to create poll: %v", err)
	}

	for i, text := range optionTexts {
		option := &models.PollOption{
			ID:       uuid.New(),
			PollID:   poll.ID,
			Text:     text,
			Position: i,
		}
		if err := db.Create(option).Error; err != nil {
			t.Fatalf("failed to create option: %v", err)
		}
		poll.Options = append(poll.Options, *option)
	}

	return poll
}

func testContext() context.Context {
	return context.Background()
}
