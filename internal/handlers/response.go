package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"donation-platform/internal/apperr"
	"donation-platform/internal/auth"
)

// Authenticator resolves the caller from an Authorization header
type Authenticator interface {
	Authenticate(ctx context.Context, header string) (*auth.Identity, error)
}

func errorBody(message string) gin.H {
	return gin.H{"success": false, "message": message}
}

// respondError writes err using its class. Unclassified errors are logged and
// answered with fallback and a generic message.
func respondError(c *gin.Context, log *zap.Logger, err error, fallback int) {
	status, known := apperr.Status(err, fallback)
	if known {
		c.JSON(status, errorBody(apperr.Message(err)))
		return
	}

	log.Error("Request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	message := http.StatusText(status)
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}
	c.JSON(status, errorBody(message))
}

// identify authenticates the request, writing a 401 when it fails
func identify(c *gin.Context, log *zap.Logger, authn Authenticator) (*auth.Identity, bool) {
	identity, err := authn.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		respondError(c, log, err, http.StatusUnauthorized)
		return nil, false
	}
	return identity, true
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, errorBody("invalid "+param))
		return 0, false
	}
	return uint(id), true
}
