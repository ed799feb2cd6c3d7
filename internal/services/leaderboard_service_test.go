package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"donation-platform/internal/database/dbtest"
	"donation-platform/internal/models"
)

func TestTopDonors(t *testing.T) {
	db := dbtest.Open(t)
	service := NewLeaderboardService(db)
	organizer := createUser(t, db, "0.0.1", "org")
	a := createUser(t, db, "0.0.10", "alice")
	require.NoError(t, db.Model(a).Update("name", "Alice Smith").Error)
	b := createUser(t, db, "0.0.11", "")
	campaign := createCampaign(t, db, organizer, "C", 100, true)

	now := time.Now()
	createDonation(t, db, campaign, a, 5, "0x1", now)
	createDonation(t, db, campaign, b, 20, "0x2", now)
	createDonation(t, db, campaign, a, 3, "0x3", now)

	donors, err := service.TopDonors(context.Background())
	require.NoError(t, err)
	require.Len(t, donors, 2)

	assert.Equal(t, b.ID, donors[0].ID)
	assert.Equal(t, "20.00 Tokens", donors[0].TotalDonations)
	assert.Equal(t, "Unknown", donors[0].Name)
	assert.Equal(t, "Unknown", donors[0].Username)
	assert.Equal(t, "U", donors[0].Initials)

	assert.Equal(t, a.ID, donors[1].ID)
	assert.Equal(t, "8.00 Tokens", donors[1].TotalDonations)
	assert.Equal(t, "Alice Smith", donors[1].Name)
	assert.Equal(t, "alice", donors[1].Username)
	assert.Equal(t, "AS", donors[1].Initials)
}

func TestTopDonorsEmpty(t *testing.T) {
	db := dbtest.Open(t)
	donors, err := NewLeaderboardService(db).TopDonors(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, donors)
	assert.Empty(t, donors)
}

func TestTopCampaigns(t *testing.T) {
	db := dbtest.Open(t)
	service := NewLeaderboardService(db)
	organizer := createUser(t, db, "0.0.1", "org")

	for i := 0; i < 8; i++ {
		c := createCampaign(t, db, organizer, "Ranked", 100, true)
		c.CurrentAmount = decimal.NewFromInt(int64(10 * (i + 1)))
		require.NoError(t, db.Save(c).Error)
	}
	hidden := createCampaign(t, db, organizer, "Hidden", 100, false)
	hidden.CurrentAmount = decimal.NewFromInt(100)
	require.NoError(t, db.Save(hidden).Error)
	createCampaign(t, db, organizer, "No goal", 0, true)

	top, err := service.TopCampaigns(context.Background())
	require.NoError(t, err)
	require.Len(t, top, 6)
	assert.Equal(t, 80.0, top[0].Progress)
	assert.Equal(t, 30.0, top[5].Progress)
	for _, c := range top {
		assert.Equal(t, "Ranked", c.Title)
		assert.Equal(t, models.CampaignStatusNew, c.Status)
		assert.NotEmpty(t, c.Date)
	}
}
