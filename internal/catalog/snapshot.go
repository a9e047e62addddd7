package catalog

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bargenix/bargaining-api/internal/domain"
	"github.com/bargenix/bargaining-api/internal/repository"
	"github.com/bargenix/bargaining-api/internal/shopify"
	apierrors "github.com/bargenix/bargaining-api/pkg/errors"
)

// DefaultCategory is applied when a product carries no product_type upstream.
const DefaultCategory = "Uncategorized"

// AdminClient is the slice of the Shopify client the fetcher needs.
type AdminClient interface {
	GetProducts(ctx context.Context) ([]shopify.Product, error)
	GetCustomCollections(ctx context.Context) ([]shopify.CustomCollection, error)
	GetCollectionProducts(ctx context.Context, collectionID int64) ([]shopify.Product, error)
}

// Snapshot is a point-in-time read of a merchant's catalog. Never cached:
// the catalog mutates outside this system, so every reconciliation fetches
// fresh data and tolerates staleness between fetch and write.
type Snapshot struct {
	Products []shopify.Product
}

type Fetcher struct {
	creds     repository.ShopifyCredentialRepository
	clientFor func(cred *domain.ShopifyCredential) AdminClient
	logger    *zap.Logger
}

// NewFetcher creates a snapshot fetcher backed by the Shopify REST client
func NewFetcher(creds repository.ShopifyCredentialRepository, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		creds: creds,
		clientFor: func(cred *domain.ShopifyCredential) AdminClient {
			return shopify.NewClient(cred, logger)
		},
		logger: logger,
	}
}

// NewFetcherWithClient is used in tests to substitute the admin client.
func NewFetcherWithClient(
	creds repository.ShopifyCredentialRepository,
	clientFor func(cred *domain.ShopifyCredential) AdminClient,
	logger *zap.Logger,
) *Fetcher {
	return &Fetcher{creds: creds, clientFor: clientFor, logger: logger}
}

// Fetch pulls the merchant's full product list from Shopify
func (f *Fetcher) Fetch(ctx context.Context, userID uuid.UUID) (*Snapshot, error) {
	client, err := f.client(ctx, userID)
	if err != nil {
		return nil, err
	}

	products, err := client.GetProducts(ctx)
	if err != nil {
		return nil, err
	}

	return &Snapshot{Products: products}, nil
}

// CollectionVariantIDs resolves a collection title to the variant ids of
// the products it contains, using the collections endpoints. Fails with
// NotFound when no collection carries that title or the collection holds
// no products.
func (f *Fetcher) CollectionVariantIDs(ctx context.Context, userID uuid.UUID, title string) ([]string, error) {
	client, err := f.client(ctx, userID)
	if err != nil {
		return nil, err
	}

	collections, err := client.GetCustomCollections(ctx)
	if err != nil {
		return nil, err
	}

	var target *shopify.CustomCollection
	for i := range collections {
		if collections[i].Title == title {
			target = &collections[i]
			break
		}
	}
	if target == nil {
		return nil, &apierrors.ErrNotFound{Resource: "category", ID: title}
	}

	products, err := client.GetCollectionProducts(ctx, target.ID)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, p := range products {
		for _, v := range p.Variants {
			ids = append(ids, strconv.FormatInt(v.ID, 10))
		}
	}
	if len(ids) == 0 {
		return nil, &apierrors.ErrNotFound{Resource: "products in category", ID: title}
	}

	return ids, nil
}

func (f *Fetcher) client(ctx context.Context, userID uuid.UUID) (AdminClient, error) {
	cred, err := f.creds.GetByUserID(ctx, userID)
	if err != nil {
		var notFound *apierrors.ErrNotFound
		if errors.As(err, &notFound) {
			return nil, &apierrors.ErrCredentialMissing{UserID: userID.String()}
		}
		return nil, err
	}
	return f.clientFor(cred), nil
}
