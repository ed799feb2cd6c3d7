package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"donation-platform/internal/apperr"
	"donation-platform/internal/metrics"
	"donation-platform/internal/models"
	"donation-platform/internal/utils"
)

// AuthService handles wallet login
type AuthService struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(db *gorm.DB, log *zap.Logger) *AuthService {
	return &AuthService{db: db, log: log}
}

// Login finds or creates the user owning walletAddress. Users created here get a
// placeholder username and are active; deactivated users are refused.
func (s *AuthService) Login(ctx context.Context, walletAddress string) (*models.User, error) {
	walletAddress = strings.TrimSpace(walletAddress)
	if walletAddress == "" {
		return nil, apperr.Validation("wallet_address is required")
	}

	var user models.User
	created := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("wallet_address = ?", walletAddress).Order("id ASC").First(&user).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("database error: %w", err)
		}

		username := utils.PlaceholderUsername(walletAddress)
		user = models.User{
			WalletAddress: walletAddress,
			Username:      &username,
			IsActive:      true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		created = true
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// a concurrent first login for the same wallet committed before us
		created = false
		user = models.User{}
		err = s.db.WithContext(ctx).Where("wallet_address = ?", walletAddress).Order("id ASC").First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = apperr.Conflict("Username %s is already taken", utils.PlaceholderUsername(walletAddress))
		}
	}
	if err != nil {
		metrics.RecordLogin("error")
		return nil, err
	}

	if !user.IsActive {
		metrics.RecordLogin("disabled")
		s.log.Info("Login refused for disabled account", zap.Uint("user_id", user.ID))
		return nil, apperr.Forbidden("User account is disabled")
	}

	if created {
		metrics.RecordLogin("created")
		s.log.Info("New user created", zap.String("wallet", walletAddress), zap.Uint("user_id", user.ID))
	} else {
		metrics.RecordLogin("existing")
		s.log.Debug("User logged in", zap.String("wallet", walletAddress), zap.Uint("user_id", user.ID))
	}

	return &user, nil
}
