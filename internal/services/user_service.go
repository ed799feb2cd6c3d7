package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"donation-platform/internal/apperr"
	"donation-platform/internal/models"
)

// UserService handles profile reads and updates
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a new UserService
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// ProfileUpdate carries the editable profile fields; nil leaves a field unchanged
type ProfileUpdate struct {
	Name      *string
	Facebook  *string
	Twitter   *string
	Bio       *string
	UserImage *string
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies the provided fields to the user's profile
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*models.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		user.Name = update.Name
	}
	if update.Facebook != nil {
		user.Facebook = update.Facebook
	}
	if update.Twitter != nil {
		user.Twitter = update.Twitter
	}
	if update.Bio != nil {
		user.Bio = update.Bio
	}
	if update.UserImage != nil {
		user.Image = update.UserImage
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Validation("Error updating user information: duplicate value")
		}
		return nil, fmt.Errorf("error updating user information: %w", err)
	}
	return user, nil
}
