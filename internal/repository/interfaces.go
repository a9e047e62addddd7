package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/bargenix/bargaining-api/internal/domain"
)

// ConfigUpsert is one element of a batched upsert, matched on
// (UserID, ProductID).
type ConfigUpsert struct {
	UserID    uuid.UUID
	ProductID string
	MinPrice  float64
	Behavior  *domain.BargainBehavior
	// Activate forces is_active=true on an existing record (the min-price
	// flows re-activate; the behavior flows leave activation untouched).
	// Freshly inserted records always start active.
	Activate bool
}

// DeactivationUpdate is the field set every deactivation writes.
type DeactivationUpdate struct {
	Reason string
}

// MerchantRepository defines merchant data access methods
type MerchantRepository interface {
	GetByAPIKey(ctx context.Context, apiKey string) (*domain.Merchant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Merchant, error)
	Create(ctx context.Context, merchant *domain.Merchant) error
}

// ShopifyCredentialRepository defines credential data access methods
type ShopifyCredentialRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.ShopifyCredential, error)
	GetByShopName(ctx context.Context, shopName string) (*domain.ShopifyCredential, error)
	Upsert(ctx context.Context, cred *domain.ShopifyCredential) error
}

// BargainingConfigRepository defines bargaining configuration data access
type BargainingConfigRepository interface {
	GetByUserAndProduct(ctx context.Context, userID uuid.UUID, productID string) (*domain.BargainingConfig, error)
	GetByProduct(ctx context.Context, productID string) (*domain.BargainingConfig, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.BargainingConfig, error)
	Create(ctx context.Context, cfg *domain.BargainingConfig) error
	Update(ctx context.Context, cfg *domain.BargainingConfig) error
	// BulkUpsert applies every element as insert-or-update matched on
	// (user_id, product_id) in one batch, returning the affected count.
	BulkUpsert(ctx context.Context, upserts []ConfigUpsert) (int64, error)
	// DeactivateByUserAndProducts updates the merchant's records whose
	// product id is in ids; records that were never configured are skipped.
	DeactivateByUserAndProducts(ctx context.Context, userID uuid.UUID, ids []string, upd DeactivationUpdate) (int64, error)
	// DeactivateAll updates every record in the store regardless of owning
	// merchant. Operator-level kill switch, deliberately not merchant-scoped.
	DeactivateAll(ctx context.Context, upd DeactivationUpdate) (int64, error)
}

// BargainRequestRepository defines bargain request data access
type BargainRequestRepository interface {
	Create(ctx context.Context, req *domain.BargainRequest) error
	ListUnreadByShop(ctx context.Context, shopName string) ([]*domain.BargainRequest, error)
	MarkRead(ctx context.Context, id uuid.UUID) (*domain.BargainRequest, error)
}

// Repositories aggregates all repositories
type Repositories struct {
	Merchant          MerchantRepository
	ShopifyCredential ShopifyCredentialRepository
	BargainingConfig  BargainingConfigRepository
	BargainRequest    BargainRequestRepository
}
