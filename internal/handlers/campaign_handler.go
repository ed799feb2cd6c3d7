package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"donation-platform/internal/models"
	"donation-platform/internal/services"
)

// CampaignHandler handles campaign endpoints
type CampaignHandler struct {
	campaignService *services.CampaignService
	donationService *services.DonationService
	authn           Authenticator
	log             *zap.Logger
}

// NewCampaignHandler creates a new CampaignHandler
func NewCampaignHandler(campaignService *services.CampaignService, donationService *services.DonationService, authn Authenticator, log *zap.Logger) *CampaignHandler {
	return &CampaignHandler{
		campaignService: campaignService,
		donationService: donationService,
		authn:           authn,
		log:             log,
	}
}

// ListCampaigns returns approved campaigns. With ?page= the list is sliced and
// the totals are reported in X-Total-Count and X-Total-Pages.
// GET /campaigns
func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	var p services.Pagination
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorBody("invalid page"))
			return
		}
		p.Page = page
		if size, err := strconv.Atoi(c.DefaultQuery("page_size", "10")); err == nil {
			p.PageSize = size
		}
	}

	page, err := h.campaignService.List(c.Request.Context(), p)
	if err != nil {
		respondError(c, h.log, err, http.StatusInternalServerError)
		return
	}

	if p.Page != 0 {
		c.Header("X-Total-Count", strconv.FormatInt(page.Total, 10))
		c.Header("X-Total-Pages", strconv.Itoa(page.TotalPages))
	}
	c.JSON(http.StatusOK, page.Campaigns)
}

// GetCampaign returns a campaign with related campaigns
// GET /campaigns/:id
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	detail, err := h.campaignService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// CreateCampaign creates an unapproved campaign owned by the caller
// POST /campaigns
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	identity, ok := identify(c, h.log, h.authn)
	if !ok {
		return
	}

	var req models.CampaignCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("Invalid request body"))
		return
	}

	campaign, err := h.campaignService.Create(c.Request.Context(), identity.UserID, &req)
	if err != nil {
		respondError(c, h.log, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

// ListMyCampaigns returns every campaign the caller organizes
// GET /user/campaigns
func (h *CampaignHandler) ListMyCampaigns(c *gin.Context) {
	identity, ok := identify(c, h.log, h.authn)
	if !ok {
		return
	}

	campaigns, err := h.campaignService.ListByOrganizer(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, h.log, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, campaigns)
}

// DonationHistory refreshes the campaign total and lists its donations
// GET /campaigns/:id/donations
func (h *CampaignHandler) DonationHistory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	history, err := h.donationService.CampaignHistory(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, history)
}
