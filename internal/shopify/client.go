package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bargenix/bargaining-api/internal/domain"
	apierrors "github.com/bargenix/bargaining-api/pkg/errors"
)

// Client talks to the Shopify REST admin API on behalf of one merchant.
// Credentials are per-merchant, so a client is built per request from the
// stored ShopifyCredential rather than from service config.
type Client struct {
	shopName    string
	accessToken string
	apiVersion  string
	baseURL     string // overridable for tests
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewClient creates a Shopify REST client for a merchant credential
func NewClient(cred *domain.ShopifyCredential, logger *zap.Logger) *Client {
	// Normalize shop name - accept both "my-shop" and "my-shop.myshopify.com"
	shopName := cred.ShopName
	shopName = strings.TrimPrefix(shopName, "https://")
	shopName = strings.TrimPrefix(shopName, "http://")
	shopName = strings.TrimSuffix(shopName, "/")
	shopName = strings.TrimSuffix(shopName, ".myshopify.com")

	return &Client{
		shopName:    shopName,
		accessToken: cred.AccessToken,
		apiVersion:  cred.APIVersion,
		baseURL:     fmt.Sprintf("https://%s.myshopify.com", shopName),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// NewClientWithBaseURL is used in tests to point the client at a stub server.
func NewClientWithBaseURL(cred *domain.ShopifyCredential, baseURL string, logger *zap.Logger) *Client {
	c := NewClient(cred, logger)
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

// GetProducts fetches every product with its variants
func (c *Client) GetProducts(ctx context.Context) ([]Product, error) {
	var out productsResponse
	if err := c.get(ctx, "products.json", &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

// GetCustomCollections fetches the shop's custom collections
func (c *Client) GetCustomCollections(ctx context.Context) ([]CustomCollection, error) {
	var out customCollectionsResponse
	if err := c.get(ctx, "custom_collections.json", &out); err != nil {
		return nil, err
	}
	return out.CustomCollections, nil
}

// GetCollectionProducts fetches the products belonging to one collection
func (c *Client) GetCollectionProducts(ctx context.Context, collectionID int64) ([]Product, error) {
	var out productsResponse
	path := fmt.Sprintf("collections/%d/products.json", collectionID)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	url := fmt.Sprintf("%s/admin/api/%s/%s", c.baseURL, c.apiVersion, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Shopify request failed",
			zap.String("shop", c.shopName),
			zap.String("path", path),
			zap.Error(err),
		)
		return &apierrors.ErrUpstreamUnavailable{Message: path, Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &apierrors.ErrUpstreamUnavailable{Message: "failed to read response", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("Shopify returned non-success status",
			zap.String("shop", c.shopName),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return &apierrors.ErrUpstreamUnavailable{
			Message: fmt.Sprintf("status %d from %s", resp.StatusCode, path),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &apierrors.ErrUpstreamUnavailable{Message: "failed to unmarshal response", Cause: err}
	}

	return nil
}
