package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bargenix/bargaining-api/internal/domain"
	"github.com/bargenix/bargaining-api/internal/repository"
)

// defaultVariantTitle is Shopify's placeholder title on single-variant
// products ("Default Title", sometimes suffixed with option values).
const defaultVariantTitle = "Default Title"

type RequestService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewRequestService creates the bargain request intake service
func NewRequestService(repos *repository.Repositories, logger *zap.Logger) *RequestService {
	return &RequestService{
		repos:  repos,
		logger: logger,
	}
}

// Submit records a shopper's bargain request. The display name falls back
// to the product title when the variant carries Shopify's generic default.
func (s *RequestService) Submit(ctx context.Context, req SubmitBargainRequest) (*domain.BargainRequest, error) {
	displayName := req.VariantTitle
	if strings.HasPrefix(displayName, defaultVariantTitle) {
		displayName = req.ProductTitle
	}

	record := &domain.BargainRequest{
		ProductName:   displayName,
		ProductID:     req.VariantID,
		ProductPrice:  *req.VariantPrice,
		CustomerEmail: req.CustomerEmail,
		ShopName:      req.ShopName,
		MarkAsRead:    false,
	}

	if err := s.repos.BargainRequest.Create(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("Bargain request submitted",
		zap.String("shop", record.ShopName),
		zap.String("product_id", record.ProductID),
	)
	return record, nil
}

// ListUnread returns a shop's bargain requests awaiting operator review
func (s *RequestService) ListUnread(ctx context.Context, shopName string) ([]*domain.BargainRequest, error) {
	return s.repos.BargainRequest.ListUnreadByShop(ctx, shopName)
}

// MarkRead flips one request's flag to read. Fails with NotFound when the
// id does not exist.
func (s *RequestService) MarkRead(ctx context.Context, id uuid.UUID) (*domain.BargainRequest, error) {
	return s.repos.BargainRequest.MarkRead(ctx, id)
}
