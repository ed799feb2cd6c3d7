package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"donation-platform/internal/models"
)

func createUser(t *testing.T, db *gorm.DB, wallet, username string) *models.User {
	t.Helper()
	user := models.User{WalletAddress: wallet, IsActive: true}
	if username != "" {
		user.Username = &username
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createCampaign(t *testing.T, db *gorm.DB, organizer *models.User, title string, goal int64, approved bool) *models.Campaign {
	t.Helper()
	campaign := models.Campaign{
		Title:         title,
		Description:   title + " description",
		Goal:          decimal.NewFromInt(goal),
		CurrentAmount: decimal.Zero,
		OrganizerID:   organizer.ID,
		Status:        models.CampaignStatusNew,
	}
	require.NoError(t, db.Create(&campaign).Error)
	if approved {
		require.NoError(t, db.Model(&campaign).Update("approved_by_admin", true).Error)
		campaign.ApprovedByAdmin = true
	}
	return &campaign
}

func createDonation(t *testing.T, db *gorm.DB, campaign *models.Campaign, user *models.User, amount int64, hash string, at time.Time) *models.Donation {
	t.Helper()
	donation := models.Donation{
		CampaignID:      campaign.ID,
		UserID:          user.ID,
		Amount:          decimal.NewFromInt(amount),
		Date:            at,
		TransactionHash: &hash,
	}
	require.NoError(t, db.Create(&donation).Error)
	return &donation
}

func strPtr(s string) *string {
	return &s
}
