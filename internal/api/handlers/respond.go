package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/bargenix/bargaining-api/pkg/errors"
)

// respond writes the success envelope: status, data, message.
func respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"data":    data,
		"message": message,
	})
}

// respondError maps the error taxonomy onto HTTP statuses. Validation
// and not-found kinds are the caller's problem; upstream and bulk-write
// failures surface as bad gateway so clients know a retry of the whole
// operation may help.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		validation  *apierrors.ErrValidation
		notFound    *apierrors.ErrNotFound
		credMissing *apierrors.ErrCredentialMissing
		upstream    *apierrors.ErrUpstreamUnavailable
		bulkWrite   *apierrors.ErrBulkWriteFailed
	)

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"status": http.StatusBadRequest, "message": validation.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"status": http.StatusNotFound, "message": notFound.Error()})
	case errors.As(err, &credMissing):
		c.JSON(http.StatusNotFound, gin.H{"status": http.StatusNotFound, "message": "Shopify access is not provided"})
	case errors.As(err, &upstream):
		logger.Warn("Upstream failure", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"status": http.StatusBadGateway, "message": "shopify is unavailable, try again later"})
	case errors.As(err, &bulkWrite):
		logger.Error("Bulk write failure", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"status": http.StatusBadGateway, "message": "failed to apply bulk update, please re-submit"})
	default:
		logger.Error("Unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": http.StatusInternalServerError, "message": "internal error"})
	}
}
