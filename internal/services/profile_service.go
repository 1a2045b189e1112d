package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tracklet-app/tracklet/internal/models"
)

// ProfileService reads the profile row maintained by the auth service.
// There is no mutation path; profiles are read-only here.
type ProfileService struct {
	DB *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{DB: db}
}

// Fetch returns the caller's profile, or nil when the auth service has not
// materialized one yet.
func (s *ProfileService) Fetch(ctx context.Context, userID string) (*models.Profile, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	var profile models.Profile
	err := s.DB.WithContext(ctx).
		Select("id", "name", "email", "avatar_url").
		Where("id = ?", userID).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	return &profile, nil
}
