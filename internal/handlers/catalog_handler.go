package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"donation-platform/internal/services"
)

// CatalogHandler serves the reference lists used by the campaign form
type CatalogHandler struct {
	catalog *services.CatalogService
	log     *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalog *services.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, log: log}
}

// CampaignTypes lists every campaign type
// GET /campaign-types
func (h *CatalogHandler) CampaignTypes(c *gin.Context) {
	types, err := h.catalog.CampaignTypes(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, types)
}

// Tokens lists the tokens campaigns can be raised in
// GET /tokens
func (h *CatalogHandler) Tokens(c *gin.Context) {
	tokens, err := h.catalog.Tokens(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, tokens)
}
