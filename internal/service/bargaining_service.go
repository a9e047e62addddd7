package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bargenix/bargaining-api/internal/bargaining"
	"github.com/bargenix/bargaining-api/internal/catalog"
	"github.com/bargenix/bargaining-api/internal/domain"
	"github.com/bargenix/bargaining-api/internal/repository"
	apierrors "github.com/bargenix/bargaining-api/pkg/errors"
)

// storeWriteTimeout bounds batched store writes so a stuck store surfaces
// as BulkWriteFailed instead of hanging the caller.
const storeWriteTimeout = 10 * time.Second

type BargainingService struct {
	repos   *repository.Repositories
	fetcher *catalog.Fetcher
	logger  *zap.Logger
}

// NewBargainingService creates the bargaining reconciliation service
func NewBargainingService(repos *repository.Repositories, fetcher *catalog.Fetcher, logger *zap.Logger) *BargainingService {
	return &BargainingService{
		repos:   repos,
		fetcher: fetcher,
		logger:  logger,
	}
}

// SetByCategory resolves a category (product_type) against a fresh catalog
// snapshot and upserts behavior + min price for every variant in it.
// Variants without local configuration get new records.
func (s *BargainingService) SetByCategory(ctx context.Context, userID uuid.UUID, category string, behavior domain.BargainBehavior, minPrice float64) (int64, error) {
	if err := validateMinPrice(minPrice); err != nil {
		return 0, err
	}
	if !behavior.IsValid() {
		return 0, &apierrors.ErrValidation{Message: "invalid behavior provided"}
	}

	snap, err := s.fetcher.Fetch(ctx, userID)
	if err != nil {
		return 0, err
	}

	variants, err := catalog.Resolve(snap, catalog.Category(category))
	if err != nil {
		return 0, err
	}

	return s.upsertVariants(ctx, userID, variants, &behavior, minPrice)
}

// SetAllProducts applies behavior + min price to every variant in the
// merchant's catalog.
func (s *BargainingService) SetAllProducts(ctx context.Context, userID uuid.UUID, behavior domain.BargainBehavior, minPrice float64) (int64, error) {
	if err := validateMinPrice(minPrice); err != nil {
		return 0, err
	}
	if !behavior.IsValid() {
		return 0, &apierrors.ErrValidation{Message: "invalid behavior provided"}
	}

	snap, err := s.fetcher.Fetch(ctx, userID)
	if err != nil {
		return 0, err
	}

	variants, err := catalog.Resolve(snap, catalog.AllProducts())
	if err != nil {
		return 0, err
	}

	return s.upsertVariants(ctx, userID, variants, &behavior, minPrice)
}

// SetByProduct configures a single variant. The variant must exist in the
// live catalog; a missing local record is created (unlike SetMinPrice).
func (s *BargainingService) SetByProduct(ctx context.Context, userID uuid.UUID, variantID string, behavior *domain.BargainBehavior, minPrice float64) (*domain.BargainingConfig, error) {
	if err := validateMinPrice(minPrice); err != nil {
		return nil, err
	}
	if behavior != nil && !behavior.IsValid() {
		return nil, &apierrors.ErrValidation{Message: "invalid behavior provided"}
	}

	snap, err := s.fetcher.Fetch(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := catalog.Resolve(snap, catalog.SingleVariant(variantID)); err != nil {
		return nil, err
	}

	existing, err := s.lookup(ctx, userID, variantID)
	if err != nil {
		return nil, err
	}

	op := bargaining.Decide(existing, bargaining.Mutation{
		Kind:     bargaining.MutateSetBargaining,
		MinPrice: minPrice,
		Behavior: behavior,
	}, time.Now())

	return s.applySingle(ctx, userID, variantID, existing, op)
}

// SetMinPrice updates the floor of an already-configured variant and
// re-activates bargaining on it. Unconfigured variants are rejected with
// NotFound: direct floor updates target existing configuration, only the
// category/all flows provision new records.
func (s *BargainingService) SetMinPrice(ctx context.Context, userID uuid.UUID, productID string, minPrice float64) (*domain.BargainingConfig, error) {
	if err := validateMinPrice(minPrice); err != nil {
		return nil, err
	}

	existing, err := s.repos.BargainingConfig.GetByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	op := bargaining.Decide(existing, bargaining.Mutation{
		Kind:     bargaining.MutateSetMinPrice,
		MinPrice: minPrice,
	}, time.Now())

	return s.applySingle(ctx, userID, productID, existing, op)
}

// SetBulkMinPrice applies floor updates as one batched upsert and reports
// the affected count.
func (s *BargainingService) SetBulkMinPrice(ctx context.Context, userID uuid.UUID, updates []BulkMinPriceUpdate) (int64, error) {
	upserts := make([]repository.ConfigUpsert, 0, len(updates))
	for _, u := range updates {
		if u.MinPrice == nil || *u.MinPrice < 0 {
			return 0, &apierrors.ErrValidation{Message: "minimum price must be a positive number"}
		}
		upserts = append(upserts, repository.ConfigUpsert{
			UserID:    userID,
			ProductID: u.ProductID,
			MinPrice:  *u.MinPrice,
			Activate:  true,
		})
	}

	writeCtx, cancel := context.WithTimeout(ctx, storeWriteTimeout)
	defer cancel()

	return s.repos.BargainingConfig.BulkUpsert(writeCtx, upserts)
}

// DeactivateProduct turns bargaining off for one variant: isActive=false
// and minPrice=0 together. Deactivating a variant that was never
// configured is a success no-op, not NotFound.
func (s *BargainingService) DeactivateProduct(ctx context.Context, userID uuid.UUID, productID string) (*domain.BargainingConfig, error) {
	existing, err := s.lookup(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	op := bargaining.Decide(existing, bargaining.Mutation{
		Kind: bargaining.MutateDeactivate,
	}, time.Now())

	if op.Op == bargaining.OpNoOp {
		return nil, nil
	}

	return s.applySingle(ctx, userID, productID, existing, op)
}

// DeactivateByCategory resolves a collection title via the Shopify
// collections endpoints and deactivates the merchant's configs for the
// variants it contains. Matching the category but having no local configs
// yet touches nothing and is not an error.
func (s *BargainingService) DeactivateByCategory(ctx context.Context, userID uuid.UUID, category, reason string) (int64, error) {
	ids, err := s.fetcher.CollectionVariantIDs(ctx, userID, category)
	if err != nil {
		return 0, err
	}

	writeCtx, cancel := context.WithTimeout(ctx, storeWriteTimeout)
	defer cancel()

	return s.repos.BargainingConfig.DeactivateByUserAndProducts(writeCtx, userID, ids, repository.DeactivationUpdate{Reason: reason})
}

// DeactivateAll deactivates every config record in the store regardless
// of owning merchant. Global by design: an operator kill switch, not a
// merchant-scoped operation. Requires no catalog access.
func (s *BargainingService) DeactivateAll(ctx context.Context, reason string) (int64, error) {
	writeCtx, cancel := context.WithTimeout(ctx, storeWriteTimeout)
	defer cancel()

	count, err := s.repos.BargainingConfig.DeactivateAll(writeCtx, repository.DeactivationUpdate{Reason: reason})
	if err != nil {
		return 0, err
	}

	s.logger.Info("Deactivated all bargaining configs",
		zap.Int64("modified", count),
		zap.String("reason", reason),
	)
	return count, nil
}

// ListConfigs returns the merchant's configuration records
func (s *BargainingService) ListConfigs(ctx context.Context, userID uuid.UUID) ([]*domain.BargainingConfig, error) {
	return s.repos.BargainingConfig.ListByUser(ctx, userID)
}

// GetBargainInfo returns the configuration for one variant, for the
// storefront widget. Unauthenticated lookup by variant id.
func (s *BargainingService) GetBargainInfo(ctx context.Context, productID string) (*domain.BargainingConfig, error) {
	return s.repos.BargainingConfig.GetByProduct(ctx, productID)
}

// ConnectShopify stores the merchant's commerce credential.
func (s *BargainingService) ConnectShopify(ctx context.Context, userID uuid.UUID, req ConnectShopifyRequest, defaultAPIVersion string) error {
	apiVersion := req.APIVersion
	if apiVersion == "" {
		apiVersion = defaultAPIVersion
	}

	return s.repos.ShopifyCredential.Upsert(ctx, &domain.ShopifyCredential{
		UserID:      userID,
		ShopName:    req.ShopName,
		AccessToken: req.AccessToken,
		APIVersion:  apiVersion,
	})
}

// upsertVariants batches the resolved variant set into one store write.
// No per-variant read: the store's upsert-by-key primitive carries the
// insert-or-update branching, which is what keeps replays idempotent.
func (s *BargainingService) upsertVariants(ctx context.Context, userID uuid.UUID, variants []catalog.VariantDescriptor, behavior *domain.BargainBehavior, minPrice float64) (int64, error) {
	upserts := make([]repository.ConfigUpsert, 0, len(variants))
	for _, v := range variants {
		upserts = append(upserts, repository.ConfigUpsert{
			UserID:    userID,
			ProductID: v.VariantID,
			MinPrice:  minPrice,
			Behavior:  behavior,
		})
	}

	writeCtx, cancel := context.WithTimeout(ctx, storeWriteTimeout)
	defer cancel()

	count, err := s.repos.BargainingConfig.BulkUpsert(writeCtx, upserts)
	if err != nil {
		return 0, err
	}

	s.logger.Info("Reconciled bargaining configs",
		zap.String("user_id", userID.String()),
		zap.Int("variants", len(variants)),
		zap.Int64("affected", count),
	)
	return count, nil
}

// lookup fetches an existing config, mapping NotFound to nil so the
// decision function sees "no record" rather than an error.
func (s *BargainingService) lookup(ctx context.Context, userID uuid.UUID, productID string) (*domain.BargainingConfig, error) {
	existing, err := s.repos.BargainingConfig.GetByUserAndProduct(ctx, userID, productID)
	if err != nil {
		var notFound *apierrors.ErrNotFound
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, err
	}
	return existing, nil
}

func (s *BargainingService) applySingle(ctx context.Context, userID uuid.UUID, productID string, existing *domain.BargainingConfig, op bargaining.WriteOp) (*domain.BargainingConfig, error) {
	switch op.Op {
	case bargaining.OpInsert:
		cfg := &domain.BargainingConfig{
			UserID:      userID,
			ProductID:   productID,
			IsAvailable: true,
		}
		bargaining.Apply(cfg, op.Fields)
		if err := s.repos.BargainingConfig.Create(ctx, cfg); err != nil {
			return nil, err
		}
		return cfg, nil

	case bargaining.OpUpdate:
		bargaining.Apply(existing, op.Fields)
		if err := s.repos.BargainingConfig.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil

	default:
		return existing, nil
	}
}

func validateMinPrice(minPrice float64) error {
	if minPrice < 0 {
		return &apierrors.ErrValidation{Message: "minimum price must be a positive number"}
	}
	return nil
}
