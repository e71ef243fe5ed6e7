package handlers

import (
	"errors"
	"net/http"

	bookingRepo "pescalia/database/repository/booking"
	guideRepo "pescalia/database/repository/guide"
	serviceRepo "pescalia/database/repository/service"
	"pescalia/services/approval"
	"pescalia/services/booking"
	"pescalia/services/guide"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service-layer errors onto HTTP statuses. Validation
// failures and authorization rejections keep their messages; anything else
// is reported as an internal error with the detail in the body.
func respondError(c *gin.Context, err error) {
	var validationErr *booking.ValidationError
	var authErr *approval.AuthorizationError
	var ownershipErr *guide.OwnershipError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "message": validationErr.Error()})
	case errors.As(err, &authErr):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden", "message": authErr.Error()})
	case errors.As(err, &ownershipErr):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden", "message": ownershipErr.Error()})
	case errors.Is(err, booking.ErrSessionNotFound),
		errors.Is(err, guideRepo.ErrNotFound),
		errors.Is(err, serviceRepo.ErrNotFound),
		errors.Is(err, bookingRepo.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found", "message": err.Error()})
	default:
		zap.L().Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "message": err.Error()})
	}
}
