package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"donation-platform/internal/services"
)

// LeaderboardHandler serves the public rankings
type LeaderboardHandler struct {
	leaderboard *services.LeaderboardService
	log         *zap.Logger
}

// NewLeaderboardHandler creates a new LeaderboardHandler
func NewLeaderboardHandler(leaderboard *services.LeaderboardService, log *zap.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboard: leaderboard, log: log}
}

// TopCampaigns returns the approved campaigns closest to their goal
// GET /top-campaigns
func (h *LeaderboardHandler) TopCampaigns(c *gin.Context) {
	campaigns, err := h.leaderboard.TopCampaigns(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, campaigns)
}

// TopDonors returns the users with the largest donation totals
// GET /top-donors
func (h *LeaderboardHandler) TopDonors(c *gin.Context) {
	donors, err := h.leaderboard.TopDonors(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, donors)
}
