package shopify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bargenix/bargaining-api/internal/domain"
	apierrors "github.com/bargenix/bargaining-api/pkg/errors"
)

func testCredential() *domain.ShopifyCredential {
	return &domain.ShopifyCredential{
		ShopName:    "test-shop",
		AccessToken: "shpat_test_token",
		APIVersion:  "2024-01",
	}
}

func TestGetProducts(t *testing.T) {
	t.Run("parses products and sends access token", func(t *testing.T) {
		var gotPath, gotToken string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotToken = r.Header.Get("X-Shopify-Access-Token")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"products":[{"id":100,"title":"Runner Sneaker","product_type":"Shoes","variants":[{"id":1,"title":"Size 8","price":"59.99","inventory_quantity":3}]}]}`))
		}))
		defer server.Close()

		client := NewClientWithBaseURL(testCredential(), server.URL, zap.NewNop())
		products, err := client.GetProducts(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "/admin/api/2024-01/products.json", gotPath)
		assert.Equal(t, "shpat_test_token", gotToken)
		require.Len(t, products, 1)
		assert.Equal(t, "Shoes", products[0].ProductType)
		require.Len(t, products[0].Variants, 1)
		assert.Equal(t, "59.99", products[0].Variants[0].Price.String())
	})

	t.Run("non-success status fails with upstream unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewClientWithBaseURL(testCredential(), server.URL, zap.NewNop())
		_, err := client.GetProducts(context.Background())

		var upstream *apierrors.ErrUpstreamUnavailable
		require.ErrorAs(t, err, &upstream)
	})

	t.Run("unreachable host fails with upstream unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		server.Close() // connection refused from here on

		client := NewClientWithBaseURL(testCredential(), server.URL, zap.NewNop())
		_, err := client.GetProducts(context.Background())

		var upstream *apierrors.ErrUpstreamUnavailable
		require.ErrorAs(t, err, &upstream)
	})
}

func TestGetCollectionProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/api/2024-01/custom_collections.json":
			w.Write([]byte(`{"custom_collections":[{"id":11,"title":"Summer Sale"}]}`))
		case "/admin/api/2024-01/collections/11/products.json":
			w.Write([]byte(`{"products":[{"id":1,"title":"Mug","variants":[{"id":101,"price":"9.99"}]}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClientWithBaseURL(testCredential(), server.URL, zap.NewNop())

	collections, err := client.GetCustomCollections(context.Background())
	require.NoError(t, err)
	require.Len(t, collections, 1)
	assert.Equal(t, "Summer Sale", collections[0].Title)

	products, err := client.GetCollectionProducts(context.Background(), collections[0].ID)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, int64(101), products[0].Variants[0].ID)
}

func TestClientNormalizesShopName(t *testing.T) {
	cred := &domain.ShopifyCredential{
		ShopName:    "https://my-shop.myshopify.com/",
		AccessToken: "token",
		APIVersion:  "2024-01",
	}

	client := NewClient(cred, zap.NewNop())

	assert.Equal(t, "https://my-shop.myshopify.com", client.baseURL)
	assert.Equal(t, "my-shop", client.shopName)
}
