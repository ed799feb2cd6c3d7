package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"donation-platform/internal/apperr"
	"donation-platform/internal/database/dbtest"
	"donation-platform/internal/models"
)

func TestRecordDonationsUpserts(t *testing.T) {
	db := dbtest.Open(t)
	service := NewIndexerService(db, zap.NewNop())
	ctx := context.Background()
	organizer := createUser(t, db, "0.0.1", "org")
	donor := createUser(t, db, "0.0.2", "donor")
	campaign := createCampaign(t, db, organizer, "C", 100, true)

	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	n, err := service.RecordDonations(ctx, []models.DonationRecord{
		{CampaignID: campaign.ID, UserID: &donor.ID, Amount: 10, TransactionHash: "0x1", Date: &at},
		{CampaignID: campaign.ID, WalletAddress: "0.0.2", Amount: 15, TransactionHash: "0x2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// replaying the same transfer updates instead of duplicating
	_, err = service.RecordDonations(ctx, []models.DonationRecord{
		{CampaignID: campaign.ID, UserID: &donor.ID, Amount: 12, TransactionHash: "0x1", Date: &at},
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Donation{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	var stored models.Campaign
	require.NoError(t, db.First(&stored, campaign.ID).Error)
	assert.True(t, stored.CurrentAmount.Equal(decimal.NewFromInt(27)), "current_amount = %s", stored.CurrentAmount)
	assert.True(t, stored.PercentageCompleted.Equal(decimal.NewFromInt(27)))
}

func TestRecordDonationsRollsBackBatch(t *testing.T) {
	db := dbtest.Open(t)
	service := NewIndexerService(db, zap.NewNop())
	ctx := context.Background()
	organizer := createUser(t, db, "0.0.1", "org")
	donor := createUser(t, db, "0.0.2", "donor")
	campaign := createCampaign(t, db, organizer, "C", 100, true)

	_, err := service.RecordDonations(ctx, []models.DonationRecord{
		{CampaignID: campaign.ID, UserID: &donor.ID, Amount: 10, TransactionHash: "0x1"},
		{CampaignID: campaign.ID, WalletAddress: "0.0.404", Amount: 5, TransactionHash: "0x2"},
	})
	require.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = service.RecordDonations(ctx, []models.DonationRecord{
		{CampaignID: 999, UserID: &donor.ID, Amount: 10, TransactionHash: "0x3"},
	})
	require.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = service.RecordDonations(ctx, []models.DonationRecord{
		{CampaignID: campaign.ID, UserID: &donor.ID, Amount: -3, TransactionHash: "0x4"},
	})
	require.ErrorIs(t, err, apperr.ErrValidation)

	_, err = service.RecordDonations(ctx, []models.DonationRecord{
		{CampaignID: campaign.ID, Amount: 3, TransactionHash: "0x5"},
	})
	require.ErrorIs(t, err, apperr.ErrValidation)

	_, err = service.RecordDonations(ctx, []models.DonationRecord{
		{CampaignID: campaign.ID, UserID: &donor.ID, Amount: 3, TransactionHash: "  "},
	})
	require.ErrorIs(t, err, apperr.ErrValidation)

	var count int64
	require.NoError(t, db.Model(&models.Donation{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecordDonationsReplayKeepsTotal(t *testing.T) {
	db := dbtest.Open(t)
	service := NewIndexerService(db, zap.NewNop())
	ctx := context.Background()
	organizer := createUser(t, db, "0.0.1", "org")
	donor := createUser(t, db, "0.0.2", "donor")
	campaign := createCampaign(t, db, organizer, "C", 100, true)

	batch := []models.DonationRecord{
		{CampaignID: campaign.ID, UserID: &donor.ID, Amount: 10, TransactionHash: "0xabc"},
	}
	for i := 0; i < 2; i++ {
		_, err := service.RecordDonations(ctx, batch)
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&models.Donation{}).Where("campaign_id = ?", campaign.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var stored models.Campaign
	require.NoError(t, db.First(&stored, campaign.ID).Error)
	assert.True(t, stored.CurrentAmount.Equal(decimal.NewFromInt(10)), "current_amount = %s", stored.CurrentAmount)
	assert.True(t, stored.PercentageCompleted.Equal(decimal.NewFromInt(10)))
}

func TestPublishAndCloseCampaign(t *testing.T) {
	db := dbtest.Open(t)
	service := NewIndexerService(db, zap.NewNop())
	ctx := context.Background()
	organizer := createUser(t, db, "0.0.1", "org")

	pending := createCampaign(t, db, organizer, "Pending approval", 100, false)
	_, err := service.PublishCampaign(ctx, pending.ID, 1, "0xcreate")
	require.ErrorIs(t, err, apperr.ErrConflict)

	campaign := createCampaign(t, db, organizer, "Live", 100, true)

	_, err = service.CloseCampaign(ctx, campaign.ID, "0xwithdraw")
	require.ErrorIs(t, err, apperr.ErrConflict)

	published, err := service.PublishCampaign(ctx, campaign.ID, 7, "0xcreate")
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusPublished, published.Status)
	require.NotNil(t, published.OnchainID)
	assert.Equal(t, int64(7), *published.OnchainID)
	assert.Equal(t, "0xcreate", *published.TransactionHashCreate)

	_, err = service.PublishCampaign(ctx, campaign.ID, 7, "0xcreate")
	require.ErrorIs(t, err, apperr.ErrConflict)

	closed, err := service.CloseCampaign(ctx, campaign.ID, "0xwithdraw")
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusClosed, closed.Status)
	assert.Equal(t, "0xwithdraw", *closed.TransactionHashWithdrawn)

	_, err = service.CloseCampaign(ctx, 12345, "0x")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCheckpoints(t *testing.T) {
	db := dbtest.Open(t)
	service := NewIndexerService(db, zap.NewNop())
	ctx := context.Background()

	_, err := service.GetCheckpoint(ctx, "")
	require.ErrorIs(t, err, apperr.ErrNotFound)

	saved, err := service.SaveCheckpoint(ctx, "", "2024-01-01T00:00:00Z", nil)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCheckpointKey, saved.Key)

	_, err = service.SaveCheckpoint(ctx, "", "2024-02-01T00:00:00Z", strPtr("block-42"))
	require.NoError(t, err)

	got, err := service.GetCheckpoint(ctx, models.DefaultCheckpointKey)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "2024-02-01T00:00:00Z", got.StartAt)
	require.NotNil(t, got.Value)
	assert.Equal(t, "block-42", *got.Value)

	_, err = service.SaveCheckpoint(ctx, "other", " ", nil)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
