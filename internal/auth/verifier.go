package auth

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"donation-platform/internal/apperr"
	"donation-platform/internal/models"
)

// Identity is the authenticated caller resolved from a bearer token
type Identity struct {
	UserID        uint
	Username      string
	WalletAddress string
}

// Verifier resolves Authorization headers into identities
type Verifier struct {
	tokens *Manager
	db     *gorm.DB
	log    *zap.Logger
}

// NewVerifier creates a Verifier backed by the users table
func NewVerifier(tokens *Manager, db *gorm.DB, log *zap.Logger) *Verifier {
	return &Verifier{tokens: tokens, db: db, log: log}
}

// Authenticate checks an "Authorization: Bearer <token>" header value and
// returns the identity of a user that still exists.
func (v *Verifier) Authenticate(ctx context.Context, header string) (*Identity, error) {
	parts := strings.Fields(header)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, apperr.Unauthorized("Authorization header missing or invalid")
	}

	claims, err := v.tokens.ValidateToken(parts[1])
	if err != nil {
		v.log.Debug("token validation failed", zap.Error(err))
		return nil, apperr.Unauthorized("Invalid or expired token")
	}

	var user models.User
	if err := v.db.WithContext(ctx).First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("Invalid or expired token")
		}
		return nil, err
	}

	return &Identity{
		UserID:        user.ID,
		Username:      user.DisplayUsername(),
		WalletAddress: user.WalletAddress,
	}, nil
}
