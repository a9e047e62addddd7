package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bargenix/bargaining-api/internal/domain"
	"github.com/bargenix/bargaining-api/internal/shopify"
	apierrors "github.com/bargenix/bargaining-api/pkg/errors"
)

type fakeCredRepo struct {
	creds map[uuid.UUID]*domain.ShopifyCredential
}

func (f *fakeCredRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*domain.ShopifyCredential, error) {
	cred, ok := f.creds[userID]
	if !ok {
		return nil, &apierrors.ErrNotFound{Resource: "shopify credential", ID: userID.String()}
	}
	return cred, nil
}

func (f *fakeCredRepo) GetByShopName(_ context.Context, shopName string) (*domain.ShopifyCredential, error) {
	for _, cred := range f.creds {
		if cred.ShopName == shopName {
			return cred, nil
		}
	}
	return nil, &apierrors.ErrNotFound{Resource: "shopify credential", ID: shopName}
}

func (f *fakeCredRepo) Upsert(_ context.Context, cred *domain.ShopifyCredential) error {
	f.creds[cred.UserID] = cred
	return nil
}

type fakeAdminClient struct {
	products     []shopify.Product
	collections  []shopify.CustomCollection
	byCollection map[int64][]shopify.Product
	err          error
}

func (f *fakeAdminClient) GetProducts(context.Context) ([]shopify.Product, error) {
	return f.products, f.err
}

func (f *fakeAdminClient) GetCustomCollections(context.Context) ([]shopify.CustomCollection, error) {
	return f.collections, f.err
}

func (f *fakeAdminClient) GetCollectionProducts(_ context.Context, id int64) ([]shopify.Product, error) {
	return f.byCollection[id], f.err
}

func newTestFetcher(creds *fakeCredRepo, client *fakeAdminClient) *Fetcher {
	return NewFetcherWithClient(creds, func(*domain.ShopifyCredential) AdminClient {
		return client
	}, zap.NewNop())
}

func TestFetch(t *testing.T) {
	userID := uuid.New()
	creds := &fakeCredRepo{creds: map[uuid.UUID]*domain.ShopifyCredential{
		userID: {UserID: userID, ShopName: "test-shop", AccessToken: "token", APIVersion: "2024-01"},
	}}

	t.Run("returns fresh snapshot", func(t *testing.T) {
		client := &fakeAdminClient{products: []shopify.Product{{ID: 1, Title: "Mug"}}}
		fetcher := newTestFetcher(creds, client)

		snap, err := fetcher.Fetch(context.Background(), userID)

		require.NoError(t, err)
		require.Len(t, snap.Products, 1)
		assert.Equal(t, "Mug", snap.Products[0].Title)
	})

	t.Run("merchant without credential fails with credential missing", func(t *testing.T) {
		fetcher := newTestFetcher(creds, &fakeAdminClient{})

		_, err := fetcher.Fetch(context.Background(), uuid.New())

		var missing *apierrors.ErrCredentialMissing
		require.ErrorAs(t, err, &missing)
	})

	t.Run("upstream failure propagates", func(t *testing.T) {
		client := &fakeAdminClient{err: &apierrors.ErrUpstreamUnavailable{Message: "products.json"}}
		fetcher := newTestFetcher(creds, client)

		_, err := fetcher.Fetch(context.Background(), userID)

		var upstream *apierrors.ErrUpstreamUnavailable
		require.ErrorAs(t, err, &upstream)
	})
}

func TestCollectionVariantIDs(t *testing.T) {
	userID := uuid.New()
	creds := &fakeCredRepo{creds: map[uuid.UUID]*domain.ShopifyCredential{
		userID: {UserID: userID, ShopName: "test-shop", AccessToken: "token", APIVersion: "2024-01"},
	}}
	client := &fakeAdminClient{
		collections: []shopify.CustomCollection{
			{ID: 11, Title: "Summer Sale"},
			{ID: 12, Title: "Clearance"},
		},
		byCollection: map[int64][]shopify.Product{
			11: {{ID: 1, Variants: []shopify.Variant{{ID: 101}, {ID: 102}}}},
			12: {},
		},
	}
	fetcher := newTestFetcher(creds, client)

	t.Run("resolves collection title to variant ids", func(t *testing.T) {
		ids, err := fetcher.CollectionVariantIDs(context.Background(), userID, "Summer Sale")

		require.NoError(t, err)
		assert.Equal(t, []string{"101", "102"}, ids)
	})

	t.Run("unknown title fails with not found", func(t *testing.T) {
		_, err := fetcher.CollectionVariantIDs(context.Background(), userID, "Winter Sale")

		var notFound *apierrors.ErrNotFound
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "category", notFound.Resource)
	})

	t.Run("collection without products fails with not found", func(t *testing.T) {
		_, err := fetcher.CollectionVariantIDs(context.Background(), userID, "Clearance")

		var notFound *apierrors.ErrNotFound
		require.ErrorAs(t, err, &notFound)
	})
}
