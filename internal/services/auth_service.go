package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"pollboard/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthService handles identity business logic. Credential verification is
// the upstream identity provider's job; this service only maps a verified
// email to a profile row and back.
type AuthService struct {
	db *gorm.DB
}

// NewAuthService creates a new AuthService
func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// ProcessLogin finds or creates a profile for a verified email
func (s *AuthService) ProcessLogin(ctx context.Context, email, fullName string) (*models.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrUnauthenticated
	}

	var profile models.Profile
	result := s.db.WithContext(ctx).Where("email = ?", email).First(&profile)

	if result.Error == gorm.ErrRecordNotFound {
		// New user — create profile
		profile = models.Profile{
			ID:    uuid.New(),
			Email: email,
		}
		if name := strings.TrimSpace(fullName); name != "" {
			profile.FullName = &name
		}

		if err := s.db.WithContext(ctx).Create(&profile).Error; err != nil {
			return nil, fmt.Errorf("failed to create profile: %w", err)
		}

		log.Printf("New profile created: email=%s (ID: %s)", email, profile.ID)
	} else if result.Error != nil {
		return nil, fmt.Errorf("database error: %w", result.Error)
	} else {
		log.Printf("User logged in: email=%s (ID: %s)", email, profile.ID)
	}

	return &profile, nil
}

// GetProfileByID retrieves a profile by its ID
func (s *AuthService) GetProfileByID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).Where("id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// ProfileUpdate carries the fields a user may change about themselves
type ProfileUpdate struct {
	FullName  *string
	Bio       *string
	AvatarURL *string
}

// UpdateProfile applies a partial update to the caller's own profile
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*models.Profile, error) {
	profile, err := s.GetProfileByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	patch := map[string]interface{}{}
	if update.FullName != nil {
		patch["full_name"] = strings.TrimSpace(*update.FullName)
	}
	if update.Bio != nil {
		patch["bio"] = strings.TrimSpace(*update.Bio)
	}
	if update.AvatarURL != nil {
		patch["avatar_url"] = strings.TrimSpace(*update.AvatarURL)
	}

	if len(patch) == 0 {
		return profile, nil
	}

	if err := s.db.WithContext(ctx).Model(profile).Updates(patch).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return s.GetProfileByID(ctx, userID)
}
