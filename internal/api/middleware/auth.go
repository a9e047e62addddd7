package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bargenix/bargaining-api/internal/domain"
	"github.com/bargenix/bargaining-api/internal/repository"
)

const MerchantContextKey = "merchant"

// AuthMiddleware authenticates merchant requests using an API key.
// The resolved merchant supplies the userId every merchant-scoped
// operation trusts downstream.
func AuthMiddleware(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "message": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "message": "invalid authorization header format"})
			c.Abort()
			return
		}

		apiKey := strings.TrimSpace(parts[1])
		if apiKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "message": "missing API key"})
			c.Abort()
			return
		}

		merchant, err := repos.Merchant.GetByAPIKey(c.Request.Context(), apiKey)
		if err != nil {
			logger.Warn("Failed to authenticate merchant", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "message": "invalid API key"})
			c.Abort()
			return
		}

		if !merchant.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "message": "merchant account is inactive"})
			c.Abort()
			return
		}

		c.Set(MerchantContextKey, merchant)
		c.Next()
	}
}

// GetMerchantFromContext retrieves the authenticated merchant from the Gin context
func GetMerchantFromContext(c *gin.Context) (*domain.Merchant, bool) {
	merchant, exists := c.Get(MerchantContextKey)
	if !exists {
		return nil, false
	}

	m, ok := merchant.(*domain.Merchant)
	return m, ok
}
