package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"donation-platform/internal/models"
	"donation-platform/internal/services"
)

// IndexerKeyHeader carries the shared secret of the chain indexer
const IndexerKeyHeader = "X-Indexer-Key"

// IndexerHandler exposes the write contract used by the external chain indexer
type IndexerHandler struct {
	indexerService *services.IndexerService
	apiKey         string
	log            *zap.Logger
}

// NewIndexerHandler creates a new IndexerHandler
func NewIndexerHandler(indexerService *services.IndexerService, apiKey string, log *zap.Logger) *IndexerHandler {
	return &IndexerHandler{
		indexerService: indexerService,
		apiKey:         apiKey,
		log:            log,
	}
}

// RequireKey rejects requests without the shared indexer key
func (h *IndexerHandler) RequireKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IndexerKeyHeader)
		if h.apiKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(h.apiKey)) != 1 {
			h.log.Warn("Rejected indexer request", zap.String("client_ip", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody("Invalid indexer key"))
			return
		}
		c.Next()
	}
}

// RecordDonations upserts a batch of on-chain donations
// POST /internal/indexer/donations
func (h *IndexerHandler) RecordDonations(c *gin.Context) {
	var req models.RecordDonationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("Invalid request body"))
		return
	}

	recorded, err := h.indexerService.RecordDonations(c.Request.Context(), req.Donations)
	if err != nil {
		respondError(c, h.log, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "recorded": recorded})
}

// PublishCampaign moves an approved campaign to PUBLISHED
// POST /internal/indexer/campaigns/:id/publish
func (h *IndexerHandler) PublishCampaign(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.PublishCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("Invalid request body"))
		return
	}

	campaign, err := h.indexerService.PublishCampaign(c.Request.Context(), id, req.OnchainID, req.TransactionHash)
	if err != nil {
		respondError(c, h.log, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

// CloseCampaign moves a published campaign to CLOSED
// POST /internal/indexer/campaigns/:id/close
func (h *IndexerHandler) CloseCampaign(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.CloseCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("Invalid request body"))
		return
	}

	campaign, err := h.indexerService.CloseCampaign(c.Request.Context(), id, req.TransactionHash)
	if err != nil {
		respondError(c, h.log, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

// GetCheckpoint returns the crawler cursor
// GET /internal/indexer/checkpoints/:key
func (h *IndexerHandler) GetCheckpoint(c *gin.Context) {
	checkpoint, err := h.indexerService.GetCheckpoint(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, h.log, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, checkpoint)
}

// SaveCheckpoint stores the crawler cursor
// PUT /internal/indexer/checkpoints/:key
func (h *IndexerHandler) SaveCheckpoint(c *gin.Context) {
	var req models.CheckpointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("Invalid request body"))
		return
	}

	checkpoint, err := h.indexerService.SaveCheckpoint(c.Request.Context(), c.Param("key"), req.StartAt, req.Value)
	if err != nil {
		respondError(c, h.log, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, checkpoint)
}
