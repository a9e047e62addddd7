package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bargenix/bargaining-api/internal/domain"
	apierrors "github.com/bargenix/bargaining-api/pkg/errors"
)

type shopifyCredentialRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewShopifyCredentialRepository creates a new credential repository
func NewShopifyCredentialRepository(db *sql.DB, logger *zap.Logger) *shopifyCredentialRepository {
	return &shopifyCredentialRepository{
		db:     db,
		logger: logger,
	}
}

func (r *shopifyCredentialRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.ShopifyCredential, error) {
	query := `
		SELECT id, user_id, shop_name, access_token, api_version, created_at, updated_at
		FROM shopify_credentials
		WHERE user_id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, userID), "shopify credential", userID.String())
}

func (r *shopifyCredentialRepository) GetByShopName(ctx context.Context, shopName string) (*domain.ShopifyCredential, error) {
	query := `
		SELECT id, user_id, shop_name, access_token, api_version, created_at, updated_at
		FROM shopify_credentials
		WHERE shop_name = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, shopName), "shopify credential", shopName)
}

func (r *shopifyCredentialRepository) Upsert(ctx context.Context, cred *domain.ShopifyCredential) error {
	query := `
		INSERT INTO shopify_credentials (id, user_id, shop_name, access_token, api_version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			shop_name = EXCLUDED.shop_name,
			access_token = EXCLUDED.access_token,
			api_version = EXCLUDED.api_version,
			updated_at = EXCLUDED.updated_at
	`

	now := time.Now()
	if cred.ID == uuid.Nil {
		cred.ID = uuid.New()
	}
	if cred.CreatedAt.IsZero() {
		cred.CreatedAt = now
	}
	cred.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		cred.ID,
		cred.UserID,
		cred.ShopName,
		cred.AccessToken,
		cred.APIVersion,
		cred.CreatedAt,
		cred.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to upsert shopify credential", zap.Error(err))
		return err
	}

	return nil
}

func (r *shopifyCredentialRepository) scanOne(row *sql.Row, resource, id string) (*domain.ShopifyCredential, error) {
	var cred domain.ShopifyCredential

	err := row.Scan(
		&cred.ID,
		&cred.UserID,
		&cred.ShopName,
		&cred.AccessToken,
		&cred.APIVersion,
		&cred.CreatedAt,
		&cred.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &apierrors.ErrNotFound{Resource: resource, ID: id}
	}
	if err != nil {
		r.logger.Error("Failed to get shopify credential", zap.Error(err))
		return nil, err
	}

	return &cred, nil
}
