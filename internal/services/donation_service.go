package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"donation-platform/internal/apperr"
	"donation-platform/internal/metrics"
	"donation-platform/internal/models"
)

const missingTransactionHash = "N/A"

// DonationService reads donation histories and keeps campaign totals in sync
type DonationService struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewDonationService creates a new DonationService
func NewDonationService(db *gorm.DB, log *zap.Logger) *DonationService {
	return &DonationService{db: db, log: log}
}

// CampaignHistory recalculates the campaign total and returns its donations,
// newest first. The lock, aggregate, write and read share one transaction.
func (s *DonationService) CampaignHistory(ctx context.Context, campaignID uint) ([]models.CampaignDonationEntry, error) {
	var campaign models.Campaign
	var donations []models.Donation

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockCampaign(tx, campaignID, &campaign); err != nil {
			return err
		}
		if err := refreshCampaignTotal(tx, &campaign); err != nil {
			return err
		}
		return tx.Preload("User").
			Where("campaign_id = ?", campaignID).
			Order(models.DonationNewestFirst).
			Find(&donations).Error
	})
	if !errors.Is(err, apperr.ErrNotFound) {
		metrics.RecordAggregation(err)
	}
	if err != nil {
		return nil, err
	}

	entries := make([]models.CampaignDonationEntry, 0, len(donations))
	for _, d := range donations {
		entry := models.CampaignDonationEntry{
			CampaignID:      campaign.ID,
			CampaignTitle:   campaign.Title,
			CampaignImage:   campaign.Image,
			UserID:          d.UserID,
			Amount:          d.Amount.InexactFloat64(),
			Date:            formatTime(d.Date),
			TransactionHash: missingTransactionHash,
		}
		if d.User != nil {
			entry.UserName = d.User.Name
			entry.UserUsername = d.User.Username
			entry.UserImage = d.User.Image
		}
		if d.TransactionHash != nil {
			entry.TransactionHash = *d.TransactionHash
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// UserHistory returns the user's donations across all campaigns, newest first
func (s *DonationService) UserHistory(ctx context.Context, userID uint) ([]models.DonationHistoryEntry, error) {
	var donations []models.Donation
	err := s.db.WithContext(ctx).
		Preload("Campaign").
		Where("user_id = ?", userID).
		Order(models.DonationNewestFirst).
		Find(&donations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load donation history: %w", err)
	}

	entries := make([]models.DonationHistoryEntry, 0, len(donations))
	for _, d := range donations {
		entry := models.DonationHistoryEntry{
			CampaignID:      d.CampaignID,
			Amount:          d.Amount.InexactFloat64(),
			Date:            formatTime(d.Date),
			TransactionHash: d.TransactionHash,
		}
		if d.Campaign != nil {
			entry.CampaignTitle = d.Campaign.Title
			entry.CampaignImage = d.Campaign.Image
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// RecalculateAll refreshes the total of every campaign, one transaction per
// campaign. It returns the number of campaigns refreshed.
func (s *DonationService) RecalculateAll(ctx context.Context) (int, error) {
	var ids []uint
	if err := s.db.WithContext(ctx).Model(&models.Campaign{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return 0, fmt.Errorf("failed to list campaigns: %w", err)
	}

	var errs []error
	refreshed := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var campaign models.Campaign
			if err := lockCampaign(tx, id, &campaign); err != nil {
				return err
			}
			return refreshCampaignTotal(tx, &campaign)
		})
		if errors.Is(err, apperr.ErrNotFound) {
			// deleted since the id scan
			continue
		}
		metrics.RecordAggregation(err)
		if err != nil {
			s.log.Error("Failed to recalculate campaign total", zap.Uint("campaign_id", id), zap.Error(err))
			errs = append(errs, fmt.Errorf("campaign %d: %w", id, err))
			continue
		}
		refreshed++
	}

	s.log.Info("Campaign totals recalculated", zap.Int("refreshed", refreshed), zap.Int("failed", len(errs)))
	return refreshed, errors.Join(errs...)
}

func lockCampaign(tx *gorm.DB, campaignID uint, campaign *models.Campaign) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(campaign, campaignID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Campaign not found")
		}
		return fmt.Errorf("failed to lock campaign: %w", err)
	}
	return nil
}

// refreshCampaignTotal stores the sum of the campaign's donations. The
// BeforeSave hook recomputes the percentage.
func refreshCampaignTotal(tx *gorm.DB, campaign *models.Campaign) error {
	var total decimal.Decimal
	err := tx.Model(&models.Donation{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("campaign_id = ?", campaign.ID).
		Row().Scan(&total)
	if err != nil {
		return fmt.Errorf("failed to aggregate donations: %w", err)
	}

	campaign.CurrentAmount = total.Round(2)
	if err := tx.Save(campaign).Error; err != nil {
		return fmt.Errorf("failed to update campaign total: %w", err)
	}
	return nil
}
