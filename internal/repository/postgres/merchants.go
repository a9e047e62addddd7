package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/bargenix/bargaining-api/internal/domain"
	apierrors "github.com/bargenix/bargaining-api/pkg/errors"
)

type merchantRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMerchantRepository creates a new merchant repository
func NewMerchantRepository(db *sql.DB, logger *zap.Logger) *merchantRepository {
	return &merchantRepository{
		db:     db,
		logger: logger,
	}
}

func (r *merchantRepository) GetByAPIKey(ctx context.Context, apiKey string) (*domain.Merchant, error) {
	// bcrypt hashes are salted, so there is no direct lookup by key.
	// Iterate active merchants and verify the key against each hash.
	query := `
		SELECT id, name, email, api_key_hash, is_active, created_at, updated_at
		FROM merchants
		WHERE is_active = true
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query merchants", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var merchant domain.Merchant

		err := rows.Scan(
			&merchant.ID,
			&merchant.Name,
			&merchant.Email,
			&merchant.APIKeyHash,
			&merchant.IsActive,
			&merchant.CreatedAt,
			&merchant.UpdatedAt,
		)
		if err != nil {
			continue
		}

		if err := bcrypt.CompareHashAndPassword([]byte(merchant.APIKeyHash), []byte(apiKey)); err == nil {
			return &merchant, nil
		}
	}

	return nil, &apierrors.ErrUnauthorized{Message: "invalid API key"}
}

func (r *merchantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Merchant, error) {
	query := `
		SELECT id, name, email, api_key_hash, is_active, created_at, updated_at
		FROM merchants
		WHERE id = $1
	`

	var merchant domain.Merchant

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&merchant.ID,
		&merchant.Name,
		&merchant.Email,
		&merchant.APIKeyHash,
		&merchant.IsActive,
		&merchant.CreatedAt,
		&merchant.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &apierrors.ErrNotFound{Resource: "merchant", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get merchant by ID", zap.Error(err))
		return nil, err
	}

	return &merchant, nil
}

func (r *merchantRepository) Create(ctx context.Context, merchant *domain.Merchant) error {
	query := `
		INSERT INTO merchants (id, name, email, api_key_hash, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	now := time.Now()
	if merchant.ID == uuid.Nil {
		merchant.ID = uuid.New()
	}
	if merchant.CreatedAt.IsZero() {
		merchant.CreatedAt = now
	}
	if merchant.UpdatedAt.IsZero() {
		merchant.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		merchant.ID,
		merchant.Name,
		merchant.Email,
		merchant.APIKeyHash,
		merchant.IsActive,
		merchant.CreatedAt,
		merchant.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create merchant", zap.Error(err))
		return err
	}

	return nil
}
