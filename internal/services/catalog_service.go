package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"donation-platform/internal/models"
)

// CatalogService lists the reference data campaigns point at
type CatalogService struct {
	db *gorm.DB
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// CampaignTypes returns every campaign type
func (s *CatalogService) CampaignTypes(ctx context.Context) ([]models.CampaignType, error) {
	types := []models.CampaignType{}
	if err := s.db.WithContext(ctx).Order("id").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to list campaign types: %w", err)
	}
	return types, nil
}

// Tokens returns every supported token
func (s *CatalogService) Tokens(ctx context.Context) ([]models.Token, error) {
	tokens := []models.Token{}
	if err := s.db.WithContext(ctx).Order("id").Find(&tokens).Error; err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	return tokens, nil
}
