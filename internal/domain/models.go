package domain

import (
	"time"

	"github.com/google/uuid"
)

// Merchant represents a store owner account
type Merchant struct {
	ID         uuid.UUID
	Name       string
	Email      string
	APIKeyHash string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ShopifyCredential holds a merchant's Shopify admin API access.
// Read-only from the reconciliation engine's perspective.
type ShopifyCredential struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ShopName    string
	AccessToken string
	APIVersion  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BargainingConfig is the per-variant bargaining configuration.
// At most one exists per (UserID, ProductID); the pair is the natural key.
// Deactivation is logical: IsActive=false and MinPrice=0, the row survives.
type BargainingConfig struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	ProductID          string // external variant id, opaque
	MinPrice           float64
	Behavior           *BargainBehavior
	IsActive           bool
	IsAvailable        bool
	DeactivationReason *string
	DeactivatedAt      *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// BargainRequest is a shopper-submitted bargain. Immutable after creation
// except MarkAsRead, which flips false to true once on operator review.
type BargainRequest struct {
	ID            uuid.UUID
	ProductName   string
	ProductID     string
	ProductPrice  float64
	CustomerEmail string
	ShopName      string
	MarkAsRead    bool
	CreatedAt     time.Time
}
