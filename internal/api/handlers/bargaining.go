package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bargenix/bargaining-api/internal/api/middleware"
	"github.com/bargenix/bargaining-api/internal/catalog"
	"github.com/bargenix/bargaining-api/internal/domain"
	"github.com/bargenix/bargaining-api/internal/repository"
	"github.com/bargenix/bargaining-api/internal/service"
)

// HandleSetByCategory handles POST /v1/bargaining/set-by-category
func HandleSetByCategory(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchant, ok := middleware.GetMerchantFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "message": "unauthorized"})
			return
		}

		var req service.SetByCategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": http.StatusBadRequest, "message": "please provide category, behavior, and minPrice"})
			return
		}

		svc := newBargainingService(repos, logger)
		count, err := svc.SetByCategory(c.Request.Context(), merchant.ID, req.Category, domain.BargainBehavior(req.Behavior), *req.MinPrice)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		respond(c, http.StatusCreated, gin.H{"affectedCount": count}, "Bargaining details updated successfully")
	}
}

// HandleSetAllProducts handles POST /v1/bargaining/set-all-products
func HandleSetAllProducts(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchant, ok := middleware.GetMerchantFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "message": "unauthorized"})
			return
		}

		var req service.SetAllProductsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": http.StatusBadRequest, "message": "please provide behavior and minPrice"})
			return
		}

		svc := newBargainingService(repos, logger)
		count, err := svc.SetAllProducts(c.Request.Context(), merchant.ID, domain.BargainBehavior(req.Behavior), *req.MinPrice)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		respond(c, http.StatusCreated, gin.H{"affectedCount": count}, "Bargaining details set for all products successfully")
	}
}

// HandleSetByProduct handles POST /v1/bargaining/set-by-product
func HandleSetByProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchant, ok := middleware.GetMerchantFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "message": "unauthorized"})
			return
		}

		var req service.SetByProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": http.StatusBadRequest, "message": "please provide productId and minPrice"})
			return
		}

		var behavior *domain.BargainBehavior
		if req.Behavior != "" {
			b := domain.BargainBehavior(req.Behavior)
			behavior = &b
		}

		svc := newBargainingService(repos, logger)
		cfg, err := svc.SetByProduct(c.Request.Context(), merchant.ID, req.ProductID, behavior, *req.MinPrice)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		respond(c, http.StatusCreated, gin.H{
			"productId": cfg.ProductID,
			"minPrice":  cfg.MinPrice,
		}, "Bargaining details successfully set")
	}
}

// HandleSetMinPrice handles POST /v1/bargaining/set-min-price
func HandleSetMinPrice(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchant, ok := middleware.GetMerchantFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "message": "unauthorized"})
			return
		}

		var req service.SetMinPriceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": http.StatusBadRequest, "message": "please provide productId and minPrice"})
			return
		}

		svc := newBargainingService(repos, logger)
		cfg, err := svc.SetMinPrice(c.Request.Context(), merchant.ID, req.ProductID, *req.MinPrice)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		respond(c, http.StatusOK, gin.H{
			"productId":   cfg.ProductID,
			"minPrice":    cfg.MinPrice,
			"behavior":    cfg.Behavior,
			"isActive":    cfg.IsActive,
			"isAvailable": cfg.IsAvailable,
		}, "Minimum price updated successfully")
	}
}

// HandleBulkMinPrice handles POST /v1/bargaining/bulk-min-price
func HandleBulkMinPrice(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchant, ok := middleware.GetMerchantFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "message": "unauthorized"})
			return
		}

		var req service.BulkMinPriceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": http.StatusBadRequest, "message": "invalid updates data"})
			return
		}

		svc := newBargainingService(repos, logger)
		count, err := svc.SetBulkMinPrice(c.Request.Context(), merchant.ID, req.Updates)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		respond(c, http.StatusOK, gin.H{"affectedCount": count}, "Bulk minimum prices updated successfully")
	}
}

// HandleDeactivateProduct handles DELETE /v1/bargaining/products/:productId
func HandleDeactivateProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchant, ok := middleware.GetMerchantFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "message": "unauthorized"})
			return
		}

		productID := c.Param("productId")
		if productID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": http.StatusBadRequest, "message": "please provide productId"})
			return
		}

		svc := newBargainingService(repos, logger)
		cfg, err := svc.DeactivateProduct(c.Request.Context(), merchant.ID, productID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		if cfg == nil {
			// Never configured: deactivation is already the state of the world.
			respond(c, http.StatusOK, gin.H{"productId": productID}, "No bargaining details existed for this product")
			return
		}

		respond(c, http.StatusOK, gin.H{
			"productId": cfg.ProductID,
			"isActive":  cfg.IsActive,
			"minPrice":  cfg.MinPrice,
		}, "Bargaining detail marked as inactive and minPrice set to 0 successfully")
	}
}

// HandleDeactivateByCategory handles POST /v1/bargaining/deactivate-category
func HandleDeactivateByCategory(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchant, ok := middleware.GetMerchantFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "message": "unauthorized"})
			return
		}

		var req service.DeactivateByCategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": http.StatusBadRequest, "message": "please provide category and reason"})
			return
		}

		svc := newBargainingService(repos, logger)
		count, err := svc.DeactivateByCategory(c.Request.Context(), merchant.ID, req.Category, req.Reason)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		respond(c, http.StatusOK, gin.H{"modifiedCount": count}, "Category products deactivated successfully")
	}
}

// HandleDeactivateAll handles POST /v1/bargaining/deactivate-all.
// Deliberately global: affects every merchant's records, not just the
// caller's. Operator kill switch.
func HandleDeactivateAll(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := middleware.GetMerchantFromContext(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "message": "unauthorized"})
			return
		}

		var req service.DeactivateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": http.StatusBadRequest, "message": "please provide a reason"})
			return
		}

		svc := newBargainingService(repos, logger)
		count, err := svc.DeactivateAll(c.Request.Context(), req.Reason)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		respond(c, http.StatusOK, gin.H{"modifiedCount": count}, "All products deactivated successfully")
	}
}

// HandleListConfigs handles GET /v1/bargaining/configs
func HandleListConfigs(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchant, ok := middleware.GetMerchantFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "message": "unauthorized"})
			return
		}

		svc := newBargainingService(repos, logger)
		configs, err := svc.ListConfigs(c.Request.Context(), merchant.ID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		out := make([]gin.H, len(configs))
		for i, cfg := range configs {
			out[i] = configProjection(cfg)
		}

		respond(c, http.StatusOK, out, "Bargaining details fetched successfully")
	}
}

// HandleGetBargainInfo handles GET /v1/bargaining/products/:productId.
// Public storefront lookup, no merchant auth.
func HandleGetBargainInfo(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("productId")

		svc := newBargainingService(repos, logger)
		cfg, err := svc.GetBargainInfo(c.Request.Context(), productID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		respond(c, http.StatusOK, gin.H{"product": configProjection(cfg)}, "Product available to bargain")
	}
}

// HandleConnectShopify handles POST /v1/shopify/connect
func HandleConnectShopify(defaultAPIVersion string, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchant, ok := middleware.GetMerchantFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "message": "unauthorized"})
			return
		}

		var req service.ConnectShopifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": http.StatusBadRequest, "message": "please provide shopName and accessToken"})
			return
		}

		svc := newBargainingService(repos, logger)
		if err := svc.ConnectShopify(c.Request.Context(), merchant.ID, req, defaultAPIVersion); err != nil {
			respondError(c, logger, err)
			return
		}

		respond(c, http.StatusOK, gin.H{"shopName": req.ShopName}, "Shopify store connected successfully")
	}
}

func newBargainingService(repos *repository.Repositories, logger *zap.Logger) *service.BargainingService {
	fetcher := catalog.NewFetcher(repos.ShopifyCredential, logger)
	return service.NewBargainingService(repos, fetcher, logger)
}

func configProjection(cfg *domain.BargainingConfig) gin.H {
	return gin.H{
		"productId":   cfg.ProductID,
		"minPrice":    cfg.MinPrice,
		"behavior":    cfg.Behavior,
		"isActive":    cfg.IsActive,
		"isAvailable": cfg.IsAvailable,
	}
}
