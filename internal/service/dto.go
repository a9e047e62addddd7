package service

// SetByCategoryRequest targets every variant whose product_type equals Category
type SetByCategoryRequest struct {
	Category string   `json:"category" binding:"required"`
	Behavior string   `json:"behavior" binding:"required"`
	MinPrice *float64 `json:"minPrice" binding:"required"`
}

// SetAllProductsRequest targets every variant in the merchant's catalog
type SetAllProductsRequest struct {
	Behavior string   `json:"behavior" binding:"required"`
	MinPrice *float64 `json:"minPrice" binding:"required"`
}

// SetByProductRequest targets one variant by its external id
type SetByProductRequest struct {
	ProductID string   `json:"productId" binding:"required"`
	Behavior  string   `json:"behavior"`
	MinPrice  *float64 `json:"minPrice" binding:"required"`
}

// SetMinPriceRequest updates the floor of an already-configured variant
type SetMinPriceRequest struct {
	ProductID string   `json:"productId" binding:"required"`
	MinPrice  *float64 `json:"minPrice" binding:"required"`
}

// BulkMinPriceUpdate is one element of a bulk min-price submission
type BulkMinPriceUpdate struct {
	ProductID string   `json:"productId" binding:"required"`
	MinPrice  *float64 `json:"minPrice" binding:"required"`
}

// BulkMinPriceRequest batches floor updates into one store write
type BulkMinPriceRequest struct {
	Updates []BulkMinPriceUpdate `json:"updates" binding:"required,min=1"`
}

// DeactivateRequest carries the operator-visible deactivation reason
type DeactivateRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// DeactivateByCategoryRequest deactivates a merchant's configs for one collection
type DeactivateByCategoryRequest struct {
	Category string `json:"category" binding:"required"`
	Reason   string `json:"reason" binding:"required"`
}

// ConnectShopifyRequest stores a merchant's Shopify credential
type ConnectShopifyRequest struct {
	ShopName    string `json:"shopName" binding:"required"`
	AccessToken string `json:"accessToken" binding:"required"`
	APIVersion  string `json:"apiVersion"`
}

// SubmitBargainRequest is a shopper's bargain submission from the widget
type SubmitBargainRequest struct {
	ProductTitle  string   `json:"productTitle" binding:"required"`
	VariantTitle  string   `json:"variantTitle" binding:"required"`
	VariantPrice  *float64 `json:"variantPrice" binding:"required"`
	CustomerEmail string   `json:"customerEmail" binding:"required,email"`
	ShopName      string   `json:"shopName" binding:"required"`
	VariantID     string   `json:"variantId" binding:"required"`
}

// RequestsByShopRequest filters unread bargain requests for one shop
type RequestsByShopRequest struct {
	ShopName string `json:"shopName" binding:"required"`
}
