package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bargenix/bargaining-api/internal/domain"
	"github.com/bargenix/bargaining-api/internal/repository"
	"github.com/bargenix/bargaining-api/internal/service"
)

// HandleSubmitBargainRequest handles POST /v1/bargaining/request.
// Public: submitted by the storefront widget on behalf of a shopper.
func HandleSubmitBargainRequest(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.SubmitBargainRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": http.StatusBadRequest, "message": "all fields are required"})
			return
		}

		svc := service.NewRequestService(repos, logger)
		record, err := svc.Submit(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		respond(c, http.StatusCreated, requestProjection(record), "Bargain request submitted successfully")
	}
}

// HandleListUnreadRequests handles POST /v1/bargaining/requests/by-shop
func HandleListUnreadRequests(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.RequestsByShopRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": http.StatusBadRequest, "message": "shop name is required"})
			return
		}

		svc := service.NewRequestService(repos, logger)
		requests, err := svc.ListUnread(c.Request.Context(), req.ShopName)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		out := make([]gin.H, len(requests))
		for i, r := range requests {
			out[i] = requestProjection(r)
		}

		respond(c, http.StatusOK, out, "Bargain requests fetched successfully")
	}
}

// HandleMarkRequestRead handles PUT /v1/bargaining/requests/:id/read
func HandleMarkRequestRead(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": http.StatusBadRequest, "message": "invalid request ID"})
			return
		}

		svc := service.NewRequestService(repos, logger)
		record, err := svc.MarkRead(c.Request.Context(), id)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		respond(c, http.StatusOK, requestProjection(record), "Bargain request marked as read")
	}
}

func requestProjection(r *domain.BargainRequest) gin.H {
	return gin.H{
		"id":            r.ID.String(),
		"productName":   r.ProductName,
		"productId":     r.ProductID,
		"productPrice":  r.ProductPrice,
		"customerEmail": r.CustomerEmail,
		"shopName":      r.ShopName,
		"markAsRead":    r.MarkAsRead,
		"createdAt":     r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
