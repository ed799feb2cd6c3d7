package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"donation-platform/internal/apperr"
	"donation-platform/internal/models"
)

// IndexerService is the write side used by the external chain indexer
type IndexerService struct {
	db  *gorm.DB
	log *zap.Logger
	now func() time.Time
}

// NewIndexerService creates a new IndexerService
func NewIndexerService(db *gorm.DB, log *zap.Logger) *IndexerService {
	return &IndexerService{db: db, log: log, now: time.Now}
}

// RecordDonations upserts a batch of donations on (campaign, user, transaction
// hash) and refreshes the totals of the touched campaigns. Any invalid record
// rolls back the whole batch.
func (s *IndexerService) RecordDonations(ctx context.Context, records []models.DonationRecord) (int, error) {
	if len(records) == 0 {
		return 0, apperr.Validation("no donations supplied")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		campaigns := make(map[uint]*models.Campaign)
		var order []uint

		for i, rec := range records {
			amount := decimal.NewFromFloat(rec.Amount).Round(2)
			if !amount.IsPositive() {
				return apperr.Validation("donation %d: amount must be positive", i)
			}
			// the upsert key; NULL hashes never conflict, so replays would double count
			hash := strings.TrimSpace(rec.TransactionHash)
			if hash == "" {
				return apperr.Validation("donation %d: transaction_hash is required", i)
			}

			if _, ok := campaigns[rec.CampaignID]; !ok {
				var campaign models.Campaign
				if err := lockCampaign(tx, rec.CampaignID, &campaign); err != nil {
					return err
				}
				campaigns[rec.CampaignID] = &campaign
				order = append(order, rec.CampaignID)
			}

			userID, err := resolveDonor(tx, rec)
			if err != nil {
				return err
			}

			date := s.now().UTC()
			if rec.Date != nil {
				date = rec.Date.UTC()
			}

			donation := models.Donation{
				CampaignID:      rec.CampaignID,
				UserID:          userID,
				Amount:          amount,
				Date:            date,
				TransactionHash: &hash,
			}
			err = tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "campaign_id"}, {Name: "user_id"}, {Name: "transaction_hash"}},
				DoUpdates: clause.AssignmentColumns([]string{"amount", "date"}),
			}).Create(&donation).Error
			if err != nil {
				return fmt.Errorf("failed to record donation %d: %w", i, err)
			}
		}

		for _, id := range order {
			if err := refreshCampaignTotal(tx, campaigns[id]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("Donations recorded", zap.Int("count", len(records)))
	return len(records), nil
}

func resolveDonor(tx *gorm.DB, rec models.DonationRecord) (uint, error) {
	var user models.User
	var err error
	switch {
	case rec.UserID != nil:
		err = tx.First(&user, *rec.UserID).Error
	case strings.TrimSpace(rec.WalletAddress) != "":
		err = tx.Where("wallet_address = ?", strings.TrimSpace(rec.WalletAddress)).Order("id ASC").First(&user).Error
	default:
		return 0, apperr.Validation("user_id or wallet_address is required")
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.NotFound("User not found")
		}
		return 0, fmt.Errorf("failed to resolve donor: %w", err)
	}
	return user.ID, nil
}

// PublishCampaign marks an approved campaign as live on chain
func (s *IndexerService) PublishCampaign(ctx context.Context, campaignID uint, onchainID int64, txHash string) (*models.CampaignResponse, error) {
	return s.transition(ctx, campaignID, models.CampaignStatusPublished, func(c *models.Campaign) error {
		if !c.ApprovedByAdmin {
			return apperr.Conflict("Campaign is not approved")
		}
		c.OnchainID = &onchainID
		c.TransactionHashCreate = &txHash
		return nil
	})
}

// CloseCampaign marks a published campaign as withdrawn
func (s *IndexerService) CloseCampaign(ctx context.Context, campaignID uint, txHash string) (*models.CampaignResponse, error) {
	return s.transition(ctx, campaignID, models.CampaignStatusClosed, func(c *models.Campaign) error {
		c.TransactionHashWithdrawn = &txHash
		return nil
	})
}

func (s *IndexerService) transition(ctx context.Context, campaignID uint, next models.CampaignStatus, apply func(*models.Campaign) error) (*models.CampaignResponse, error) {
	var previous models.CampaignStatus

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var campaign models.Campaign
		if err := lockCampaign(tx, campaignID, &campaign); err != nil {
			return err
		}
		if !campaign.Status.CanTransitionTo(next) {
			return apperr.Conflict("Campaign cannot move from %s to %s", campaign.Status, next)
		}
		if err := apply(&campaign); err != nil {
			return err
		}
		previous = campaign.Status
		campaign.Status = next
		if err := tx.Save(&campaign).Error; err != nil {
			return fmt.Errorf("failed to update campaign status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var campaign models.Campaign
	err = s.db.WithContext(ctx).
		Preload("Organizer").Preload("CampaignType").Preload("Token").
		First(&campaign, campaignID).Error
	if err != nil {
		return nil, fmt.Errorf("failed to reload campaign: %w", err)
	}

	s.log.Info("Campaign status changed",
		zap.Uint("campaign_id", campaignID),
		zap.String("from", string(previous)),
		zap.String("to", string(next)),
	)
	resp := ToCampaignResponse(&campaign)
	return &resp, nil
}

func checkpointKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return models.DefaultCheckpointKey
	}
	return key
}

// GetCheckpoint returns the indexer cursor stored under key
func (s *IndexerService) GetCheckpoint(ctx context.Context, key string) (*models.CrawlCheckpoint, error) {
	var checkpoint models.CrawlCheckpoint
	err := s.db.WithContext(ctx).Where(&models.CrawlCheckpoint{Key: checkpointKey(key)}).First(&checkpoint).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Checkpoint not found")
		}
		return nil, fmt.Errorf("failed to get checkpoint: %w", err)
	}
	return &checkpoint, nil
}

// SaveCheckpoint creates or replaces the indexer cursor stored under key
func (s *IndexerService) SaveCheckpoint(ctx context.Context, key, startAt string, value *string) (*models.CrawlCheckpoint, error) {
	if strings.TrimSpace(startAt) == "" {
		return nil, apperr.Validation("start_at is required")
	}

	checkpoint := models.CrawlCheckpoint{
		Key:       checkpointKey(key),
		StartAt:   startAt,
		Value:     value,
		UpdatedAt: s.now().UTC(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"start_at", "value", "updated_at"}),
	}).Create(&checkpoint).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save checkpoint: %w", err)
	}
	return s.GetCheckpoint(ctx, checkpoint.Key)
}
