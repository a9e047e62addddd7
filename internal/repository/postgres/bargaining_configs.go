package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/bargenix/bargaining-api/internal/domain"
	"github.com/bargenix/bargaining-api/internal/repository"
	apierrors "github.com/bargenix/bargaining-api/pkg/errors"
)

type bargainingConfigRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewBargainingConfigRepository creates a new bargaining config repository
func NewBargainingConfigRepository(db *sql.DB, logger *zap.Logger) *bargainingConfigRepository {
	return &bargainingConfigRepository{
		db:     db,
		logger: logger,
	}
}

const configColumns = `id, user_id, product_id, min_price, behavior, is_active, is_available, deactivation_reason, deactivated_at, created_at, updated_at`

func (r *bargainingConfigRepository) GetByUserAndProduct(ctx context.Context, userID uuid.UUID, productID string) (*domain.BargainingConfig, error) {
	query := `
		SELECT ` + configColumns + `
		FROM bargaining_configs
		WHERE user_id = $1 AND product_id = $2
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, userID, productID), productID)
}

func (r *bargainingConfigRepository) GetByProduct(ctx context.Context, productID string) (*domain.BargainingConfig, error) {
	query := `
		SELECT ` + configColumns + `
		FROM bargaining_configs
		WHERE product_id = $1
		ORDER BY updated_at DESC
		LIMIT 1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, productID), productID)
}

func (r *bargainingConfigRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.BargainingConfig, error) {
	query := `
		SELECT ` + configColumns + `
		FROM bargaining_configs
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to list bargaining configs", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var configs []*domain.BargainingConfig
	for rows.Next() {
		cfg, err := scanConfig(rows)
		if err != nil {
			r.logger.Error("Failed to scan bargaining config", zap.Error(err))
			return nil, err
		}
		configs = append(configs, cfg)
	}

	return configs, rows.Err()
}

func (r *bargainingConfigRepository) Create(ctx context.Context, cfg *domain.BargainingConfig) error {
	query := `
		INSERT INTO bargaining_configs (` + configColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	now := time.Now()
	if cfg.ID == uuid.Nil {
		cfg.ID = uuid.New()
	}
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = now
	}
	if cfg.UpdatedAt.IsZero() {
		cfg.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		cfg.ID,
		cfg.UserID,
		cfg.ProductID,
		cfg.MinPrice,
		behaviorValue(cfg.Behavior),
		cfg.IsActive,
		cfg.IsAvailable,
		cfg.DeactivationReason,
		cfg.DeactivatedAt,
		cfg.CreatedAt,
		cfg.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create bargaining config", zap.Error(err))
		return err
	}

	return nil
}

func (r *bargainingConfigRepository) Update(ctx context.Context, cfg *domain.BargainingConfig) error {
	query := `
		UPDATE bargaining_configs
		SET min_price = $3, behavior = $4, is_active = $5, is_available = $6,
		    deactivation_reason = $7, deactivated_at = $8, updated_at = $9
		WHERE user_id = $1 AND product_id = $2
	`

	cfg.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		cfg.UserID,
		cfg.ProductID,
		cfg.MinPrice,
		behaviorValue(cfg.Behavior),
		cfg.IsActive,
		cfg.IsAvailable,
		cfg.DeactivationReason,
		cfg.DeactivatedAt,
		cfg.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to update bargaining config", zap.Error(err))
		return err
	}

	return nil
}

func (r *bargainingConfigRepository) BulkUpsert(ctx context.Context, upserts []repository.ConfigUpsert) (int64, error) {
	if len(upserts) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, &apierrors.ErrBulkWriteFailed{Cause: err}
	}
	defer tx.Rollback()

	query := `
		INSERT INTO bargaining_configs (id, user_id, product_id, min_price, behavior, is_active, is_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, true, true, $7, $7)
		ON CONFLICT (user_id, product_id) DO UPDATE SET
			min_price = EXCLUDED.min_price,
			behavior = COALESCE(EXCLUDED.behavior, bargaining_configs.behavior),
			is_active = CASE WHEN $6 THEN true ELSE bargaining_configs.is_active END,
			updated_at = EXCLUDED.updated_at
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, &apierrors.ErrBulkWriteFailed{Cause: err}
	}
	defer stmt.Close()

	now := time.Now()
	var affected int64
	for _, u := range upserts {
		res, err := stmt.ExecContext(ctx,
			uuid.New(),
			u.UserID,
			u.ProductID,
			u.MinPrice,
			behaviorValue(u.Behavior),
			u.Activate,
			now,
		)
		if err != nil {
			r.logger.Error("Bulk upsert element failed",
				zap.String("product_id", u.ProductID),
				zap.Error(err),
			)
			return 0, &apierrors.ErrBulkWriteFailed{Cause: err}
		}
		n, _ := res.RowsAffected()
		affected += n
	}

	if err := tx.Commit(); err != nil {
		return 0, &apierrors.ErrBulkWriteFailed{Cause: err}
	}

	return affected, nil
}

func (r *bargainingConfigRepository) DeactivateByUserAndProducts(ctx context.Context, userID uuid.UUID, ids []string, upd repository.DeactivationUpdate) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := `
		UPDATE bargaining_configs
		SET is_active = false, min_price = 0, deactivation_reason = $3, deactivated_at = $4, updated_at = $4
		WHERE user_id = $1 AND product_id = ANY($2)
	`

	res, err := r.db.ExecContext(ctx, query, userID, pq.Array(ids), upd.Reason, time.Now())
	if err != nil {
		r.logger.Error("Failed to deactivate configs by products", zap.Error(err))
		return 0, &apierrors.ErrBulkWriteFailed{Cause: err}
	}

	return res.RowsAffected()
}

// DeactivateAll touches every record in the store with no merchant filter.
// Operator-level kill switch.
func (r *bargainingConfigRepository) DeactivateAll(ctx context.Context, upd repository.DeactivationUpdate) (int64, error) {
	query := `
		UPDATE bargaining_configs
		SET is_active = false, min_price = 0, deactivation_reason = $1, deactivated_at = $2, updated_at = $2
	`

	res, err := r.db.ExecContext(ctx, query, upd.Reason, time.Now())
	if err != nil {
		r.logger.Error("Failed to deactivate all configs", zap.Error(err))
		return 0, &apierrors.ErrBulkWriteFailed{Cause: err}
	}

	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConfig(row rowScanner) (*domain.BargainingConfig, error) {
	var cfg domain.BargainingConfig
	var behavior sql.NullString
	var reason sql.NullString
	var deactivatedAt sql.NullTime

	err := row.Scan(
		&cfg.ID,
		&cfg.UserID,
		&cfg.ProductID,
		&cfg.MinPrice,
		&behavior,
		&cfg.IsActive,
		&cfg.IsAvailable,
		&reason,
		&deactivatedAt,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if behavior.Valid {
		b := domain.BargainBehavior(behavior.String)
		cfg.Behavior = &b
	}
	if reason.Valid {
		cfg.DeactivationReason = &reason.String
	}
	if deactivatedAt.Valid {
		cfg.DeactivatedAt = &deactivatedAt.Time
	}

	return &cfg, nil
}

func (r *bargainingConfigRepository) scanOne(row *sql.Row, productID string) (*domain.BargainingConfig, error) {
	cfg, err := scanConfig(row)
	if err == sql.ErrNoRows {
		return nil, &apierrors.ErrNotFound{Resource: "bargaining config", ID: productID}
	}
	if err != nil {
		r.logger.Error("Failed to get bargaining config", zap.Error(err))
		return nil, err
	}
	return cfg, nil
}

func behaviorValue(b *domain.BargainBehavior) interface{} {
	if b == nil {
		return nil
	}
	return string(*b)
}
