package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"donation-platform/internal/apperr"
	"donation-platform/internal/database/dbtest"
	"donation-platform/internal/models"
)

func TestListOnlyApprovedCampaigns(t *testing.T) {
	db := dbtest.Open(t)
	service := NewCampaignService(db, zap.NewNop())
	organizer := createUser(t, db, "0.0.1", "org")

	approved := createCampaign(t, db, organizer, "Approved", 100, true)
	createCampaign(t, db, organizer, "Hidden", 100, false)

	page, err := service.List(context.Background(), Pagination{})
	require.NoError(t, err)
	require.Len(t, page.Campaigns, 1)
	assert.Equal(t, approved.ID, page.Campaigns[0].ID)
	assert.Equal(t, int64(1), page.Total)
	require.NotNil(t, page.Campaigns[0].Organizer)
	assert.Equal(t, "org", *page.Campaigns[0].Organizer.Username)
	assert.Nil(t, page.Campaigns[0].CampaignType)
	assert.Nil(t, page.Campaigns[0].Token)
}

func TestListPagination(t *testing.T) {
	db := dbtest.Open(t)
	service := NewCampaignService(db, zap.NewNop())
	organizer := createUser(t, db, "0.0.1", "org")

	for _, title := range []string{"a", "b", "c", "d", "e"} {
		createCampaign(t, db, organizer, title, 10, true)
	}

	page, err := service.List(context.Background(), Pagination{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, page.Campaigns, 2)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 3, page.TotalPages)

	_, err = service.List(context.Background(), Pagination{Page: -1})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestGetCampaignWithRelated(t *testing.T) {
	db := dbtest.Open(t)
	service := NewCampaignService(db, zap.NewNop())
	ctx := context.Background()
	organizer := createUser(t, db, "0.0.1", "org")

	kind := models.CampaignType{Name: "Health"}
	require.NoError(t, db.Create(&kind).Error)
	other := models.CampaignType{Name: "Education"}
	require.NoError(t, db.Create(&other).Error)

	main := createCampaign(t, db, organizer, "Main", 100, false)
	require.NoError(t, db.Model(main).Update("campaign_type_id", kind.ID).Error)

	sibling := createCampaign(t, db, organizer, "Sibling "+strings.Repeat("x", 150), 100, true)
	require.NoError(t, db.Model(sibling).Updates(map[string]interface{}{
		"campaign_type_id": kind.ID,
		"status":           models.CampaignStatusPublished,
		"description":      strings.Repeat("é", 150),
	}).Error)

	unpublished := createCampaign(t, db, organizer, "Unpublished", 100, true)
	require.NoError(t, db.Model(unpublished).Update("campaign_type_id", kind.ID).Error)

	elsewhere := createCampaign(t, db, organizer, "Elsewhere", 100, true)
	require.NoError(t, db.Model(elsewhere).Updates(map[string]interface{}{
		"campaign_type_id": other.ID,
		"status":           models.CampaignStatusPublished,
	}).Error)

	detail, err := service.Get(ctx, main.ID)
	require.NoError(t, err)
	assert.Equal(t, "Main", detail.Campaign.Title)
	assert.False(t, detail.Campaign.ApprovedByAdmin)
	require.NotNil(t, detail.Campaign.CampaignType)
	assert.Equal(t, "Health", detail.Campaign.CampaignType.Name)

	require.Len(t, detail.RelatedCampaigns, 1)
	related := detail.RelatedCampaigns[0]
	assert.Equal(t, sibling.ID, related.ID)
	assert.Equal(t, strings.Repeat("é", 100), related.Description)
	assert.Equal(t, models.DefaultProfileImage, related.Image)

	_, err = service.Get(ctx, 9999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGetRelatedWithoutType(t *testing.T) {
	db := dbtest.Open(t)
	service := NewCampaignService(db, zap.NewNop())
	organizer := createUser(t, db, "0.0.1", "org")

	main := createCampaign(t, db, organizer, "Main", 100, true)
	for i := 0; i < 5; i++ {
		c := createCampaign(t, db, organizer, "Untyped", 100, true)
		require.NoError(t, db.Model(c).Update("status", models.CampaignStatusPublished).Error)
	}

	detail, err := service.Get(context.Background(), main.ID)
	require.NoError(t, err)
	assert.Len(t, detail.RelatedCampaigns, 3)
	for _, r := range detail.RelatedCampaigns {
		assert.NotEqual(t, main.ID, r.ID)
	}
}

func TestCreateCampaign(t *testing.T) {
	db := dbtest.Open(t)
	service := NewCampaignService(db, zap.NewNop())
	ctx := context.Background()
	organizer := createUser(t, db, "0.0.1", "org")

	token := models.Token{Name: "Hedera", Symbol: "HBAR", Address: "0.0.0", Decimal: 8}
	require.NoError(t, db.Create(&token).Error)

	goal := 250.5
	resp, err := service.Create(ctx, organizer.ID, &models.CampaignCreateRequest{
		Title:       "Clean water",
		Description: "Wells for villages",
		Goal:        &goal,
		TokenID:     &token.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusNew, resp.Status)
	assert.False(t, resp.ApprovedByAdmin)
	assert.Equal(t, 250.5, resp.Goal)
	assert.Equal(t, float64(0), resp.CurrentAmount)
	require.NotNil(t, resp.Organizer)
	assert.Equal(t, organizer.ID, resp.Organizer.ID)
	require.NotNil(t, resp.Token)
	assert.Equal(t, "HBAR", resp.Token.Symbol)
	require.NotNil(t, resp.Image)
	assert.Equal(t, models.DefaultProfileImage, *resp.Image)

	page, err := service.List(ctx, Pagination{})
	require.NoError(t, err)
	assert.Empty(t, page.Campaigns)
}

func TestCreateCampaignUnknownCategory(t *testing.T) {
	db := dbtest.Open(t)
	service := NewCampaignService(db, zap.NewNop())
	organizer := createUser(t, db, "0.0.1", "org")

	goal := 10.0
	missing := uint(404)
	_, err := service.Create(context.Background(), organizer.ID, &models.CampaignCreateRequest{
		Title:          "Ghost",
		Description:    "No such type",
		Goal:           &goal,
		CampaignTypeID: &missing,
	})
	require.ErrorIs(t, err, apperr.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Campaign{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateCampaignValidation(t *testing.T) {
	db := dbtest.Open(t)
	service := NewCampaignService(db, zap.NewNop())
	organizer := createUser(t, db, "0.0.1", "org")
	ctx := context.Background()

	negative := -1.0
	_, err := service.Create(ctx, organizer.ID, &models.CampaignCreateRequest{
		Title: "t", Description: "d", Goal: &negative,
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	zero := 0.0
	_, err = service.Create(ctx, organizer.ID, &models.CampaignCreateRequest{
		Title: " ", Description: "d", Goal: &zero,
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestListByOrganizer(t *testing.T) {
	db := dbtest.Open(t)
	service := NewCampaignService(db, zap.NewNop())
	organizer := createUser(t, db, "0.0.1", "org")
	someone := createUser(t, db, "0.0.2", "else")

	mine := createCampaign(t, db, organizer, "Mine", 100, false)
	require.NoError(t, db.Model(mine).Update("image", nil).Error)
	createCampaign(t, db, someone, "Theirs", 100, true)

	campaigns, err := service.ListByOrganizer(context.Background(), organizer.ID)
	require.NoError(t, err)
	require.Len(t, campaigns, 1)
	assert.Equal(t, "Mine", campaigns[0].Title)
	require.NotNil(t, campaigns[0].Image)
	assert.Equal(t, models.PlaceholderCampaignImage, *campaigns[0].Image)
}
