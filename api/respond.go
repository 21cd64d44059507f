package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skyfarehq/skyfare/internal/domain"
	"github.com/skyfarehq/skyfare/pkg/logger"
	"go.uber.org/zap"
)

// writeError maps domain errors to HTTP status codes. Unknown errors are
// logged and returned as an opaque 500.
func writeError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrCapacityExceeded),
		errors.Is(err, domain.ErrFlightNotBookable),
		errors.Is(err, domain.ErrInvalidBookingStatus),
		errors.Is(err, domain.ErrCancellationWindowClosed),
		errors.Is(err, domain.ErrPNRConflict),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		logger.WithComponent("api").Error("unhandled error",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
