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

type bargainRequestRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewBargainRequestRepository creates a new bargain request repository
func NewBargainRequestRepository(db *sql.DB, logger *zap.Logger) *bargainRequestRepository {
	return &bargainRequestRepository{
		db:     db,
		logger: logger,
	}
}

func (r *bargainRequestRepository) Create(ctx context.Context, req *domain.BargainRequest) error {
	query := `
		INSERT INTO bargain_requests (id, product_name, product_id, product_price, customer_email, shop_name, mark_as_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		req.ID,
		req.ProductName,
		req.ProductID,
		req.ProductPrice,
		req.CustomerEmail,
		req.ShopName,
		req.MarkAsRead,
		req.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create bargain request", zap.Error(err))
		return err
	}

	return nil
}

func (r *bargainRequestRepository) ListUnreadByShop(ctx context.Context, shopName string) ([]*domain.BargainRequest, error) {
	query := `
		SELECT id, product_name, product_id, product_price, customer_email, shop_name, mark_as_read, created_at
		FROM bargain_requests
		WHERE shop_name = $1 AND mark_as_read = false
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, shopName)
	if err != nil {
		r.logger.Error("Failed to list bargain requests", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var requests []*domain.BargainRequest
	for rows.Next() {
		var req domain.BargainRequest
		err := rows.Scan(
			&req.ID,
			&req.ProductName,
			&req.ProductID,
			&req.ProductPrice,
			&req.CustomerEmail,
			&req.ShopName,
			&req.MarkAsRead,
			&req.CreatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan bargain request", zap.Error(err))
			return nil, err
		}
		requests = append(requests, &req)
	}

	return requests, rows.Err()
}

func (r *bargainRequestRepository) MarkRead(ctx context.Context, id uuid.UUID) (*domain.BargainRequest, error) {
	query := `
		UPDATE bargain_requests
		SET mark_as_read = true
		WHERE id = $1
		RETURNING id, product_name, product_id, product_price, customer_email, shop_name, mark_as_read, created_at
	`

	var req domain.BargainRequest
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&req.ID,
		&req.ProductName,
		&req.ProductID,
		&req.ProductPrice,
		&req.CustomerEmail,
		&req.ShopName,
		&req.MarkAsRead,
		&req.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &apierrors.ErrNotFound{Resource: "bargain request", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to mark bargain request as read", zap.Error(err))
		return nil, err
	}

	return &req, nil
}
