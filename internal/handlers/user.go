package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"donation-platform/internal/models"
	"donation-platform/internal/services"
)

// UserHandler handles the caller's profile endpoints
type UserHandler struct {
	userService     *services.UserService
	donationService *services.DonationService
	authn           Authenticator
	log             *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService, donationService *services.DonationService, authn Authenticator, log *zap.Logger) *UserHandler {
	return &UserHandler{
		userService:     userService,
		donationService: donationService,
		authn:           authn,
		log:             log,
	}
}

// GetInfo returns the caller's profile
// GET /user/info
func (h *UserHandler) GetInfo(c *gin.Context) {
	identity, ok := identify(c, h.log, h.authn)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, h.log, err, http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, models.UserInfoResponse{
		Name:          user.Name,
		WalletAddress: user.WalletAddress,
		Facebook:      user.Facebook,
		Twitter:       user.Twitter,
		Bio:           user.Bio,
		UserImage:     user.Image,
	})
}

// UpdateInfo overwrites the profile fields present in the body
// PUT /user/update
func (h *UserHandler) UpdateInfo(c *gin.Context) {
	identity, ok := identify(c, h.log, h.authn)
	if !ok {
		return
	}

	var req models.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("Invalid request body"))
		return
	}

	_, err := h.userService.UpdateProfile(c.Request.Context(), identity.UserID, services.ProfileUpdate{
		Name:      req.Name,
		Facebook:  req.Facebook,
		Twitter:   req.Twitter,
		Bio:       req.Bio,
		UserImage: req.UserImage,
	})
	if err != nil {
		respondError(c, h.log, err, http.StatusBadRequest)
		return
	}

	c.JSON(http.StatusOK, "User information updated successfully.")
}

// DonationHistory lists the caller's donations, newest first
// GET /user/donation-history
func (h *UserHandler) DonationHistory(c *gin.Context) {
	identity, ok := identify(c, h.log, h.authn)
	if !ok {
		return
	}

	history, err := h.donationService.UserHistory(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, h.log, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, history)
}
