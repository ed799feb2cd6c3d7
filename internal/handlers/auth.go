package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"donation-platform/internal/auth"
	"donation-platform/internal/models"
	"donation-platform/internal/services"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	tokens      *auth.Manager
	log         *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *services.AuthService, tokens *auth.Manager, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		tokens:      tokens,
		log:         log,
	}
}

// Login authenticates a user by wallet address, creating the account on first use.
// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("Invalid request body"))
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req.WalletAddress)
	if err != nil {
		respondError(c, h.log, err, http.StatusBadRequest)
		return
	}

	token, err := h.tokens.GenerateToken(user)
	if err != nil {
		respondError(c, h.log, err, http.StatusBadRequest)
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		Token:         token,
		Username:      user.DisplayUsername(),
		WalletAddress: user.WalletAddress,
		Image:         user.Image,
		Name:          user.Name,
	})
}
