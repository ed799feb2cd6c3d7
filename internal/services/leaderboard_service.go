package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"donation-platform/internal/models"
	"donation-platform/internal/utils"
)

const (
	topCampaignLimit = 6
	topDonorLimit    = 12
	unknownDonor     = "Unknown"
)

// LeaderboardService builds the public rankings
type LeaderboardService struct {
	db *gorm.DB
}

// NewLeaderboardService creates a new LeaderboardService
func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{db: db}
}

// TopCampaigns returns approved campaigns with a goal, by completion
func (s *LeaderboardService) TopCampaigns(ctx context.Context) ([]models.TopCampaign, error) {
	var campaigns []models.Campaign
	err := s.db.WithContext(ctx).
		Where("approved_by_admin = ? AND goal > ?", true, 0).
		Order("percentage_completed DESC").Order("id ASC").
		Limit(topCampaignLimit).
		Find(&campaigns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load top campaigns: %w", err)
	}

	result := make([]models.TopCampaign, 0, len(campaigns))
	for _, c := range campaigns {
		result = append(result, models.TopCampaign{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
			Image:       listingImage(c.Image),
			Progress:    c.PercentageCompleted.InexactFloat64(),
			Status:      c.Status,
			Date:        formatTime(c.CreatedAt),
		})
	}
	return result, nil
}

type donorTotal struct {
	UserID uint
	Total  decimal.Decimal
}

// TopDonors sums donations per user and returns the biggest donors
func (s *LeaderboardService) TopDonors(ctx context.Context) ([]models.TopDonor, error) {
	var totals []donorTotal
	err := s.db.WithContext(ctx).
		Model(&models.Donation{}).
		Select("user_id, SUM(amount) AS total").
		Group("user_id").
		Order("total DESC").Order("user_id ASC").
		Limit(topDonorLimit).
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate donors: %w", err)
	}
	if len(totals) == 0 {
		return []models.TopDonor{}, nil
	}

	ids := make([]uint, 0, len(totals))
	for _, t := range totals {
		ids = append(ids, t.UserID)
	}
	var users []models.User
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to load donors: %w", err)
	}
	byID := make(map[uint]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	donors := make([]models.TopDonor, 0, len(totals))
	for _, t := range totals {
		name, username := unknownDonor, unknownDonor
		if u, ok := byID[t.UserID]; ok {
			name = utils.StringOr(u.Name, unknownDonor)
			username = utils.StringOr(u.Username, unknownDonor)
		}
		donors = append(donors, models.TopDonor{
			ID:             t.UserID,
			Name:           name,
			Username:       username,
			TotalDonations: t.Total.StringFixed(2) + " Tokens",
			Initials:       utils.Initials(name),
		})
	}
	return donors, nil
}
