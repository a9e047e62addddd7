package shopify

import "encoding/json"

// Product is a Shopify product as returned by the REST admin API.
// All fields are untrusted external data.
type Product struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	ProductType string    `json:"product_type"`
	Variants    []Variant `json:"variants"`
}

// Variant is one purchasable SKU of a product
type Variant struct {
	ID                int64       `json:"id"`
	Title             string      `json:"title"`
	Price             json.Number `json:"price"`
	InventoryQuantity int         `json:"inventory_quantity"`
}

// CustomCollection is a merchant-curated product grouping
type CustomCollection struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type productsResponse struct {
	Products []Product `json:"products"`
}

type customCollectionsResponse struct {
	CustomCollections []CustomCollection `json:"custom_collections"`
}
