package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bargenix/bargaining-api/internal/repository"
	apierrors "github.com/bargenix/bargaining-api/pkg/errors"
)

func newRequestFixture() (*RequestService, *memRequestRepo) {
	requests := newMemRequestRepo()
	repos := &repository.Repositories{BargainRequest: requests}
	return NewRequestService(repos, zap.NewNop()), requests
}

func submission(variantTitle string) SubmitBargainRequest {
	price := 49.99
	return SubmitBargainRequest{
		ProductTitle:  "Runner",
		VariantTitle:  variantTitle,
		VariantPrice:  &price,
		CustomerEmail: "shopper@example.com",
		ShopName:      "test-shop",
		VariantID:     "1001",
	}
}

func TestSubmitFallsBackToProductTitle(t *testing.T) {
	svc, _ := newRequestFixture()

	record, err := svc.Submit(context.Background(), submission("Default Title"))
	require.NoError(t, err)
	assert.Equal(t, "Runner", record.ProductName)

	record, err = svc.Submit(context.Background(), submission("Default Title / S"))
	require.NoError(t, err)
	assert.Equal(t, "Runner", record.ProductName)
}

func TestSubmitKeepsRealVariantTitle(t *testing.T) {
	svc, _ := newRequestFixture()

	record, err := svc.Submit(context.Background(), submission("Large"))
	require.NoError(t, err)
	assert.Equal(t, "Large", record.ProductName)
	assert.Equal(t, 49.99, record.ProductPrice)
	assert.False(t, record.MarkAsRead)
}

func TestUnreadLifecycle(t *testing.T) {
	svc, _ := newRequestFixture()
	ctx := context.Background()

	record, err := svc.Submit(ctx, submission("Large"))
	require.NoError(t, err)

	unread, err := svc.ListUnread(ctx, "test-shop")
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, record.ID, unread[0].ID)

	marked, err := svc.MarkRead(ctx, record.ID)
	require.NoError(t, err)
	assert.True(t, marked.MarkAsRead)

	unread, err = svc.ListUnread(ctx, "test-shop")
	require.NoError(t, err)
	assert.Empty(t, unread)
}

func TestListUnreadFiltersByShop(t *testing.T) {
	svc, _ := newRequestFixture()
	ctx := context.Background()

	_, err := svc.Submit(ctx, submission("Large"))
	require.NoError(t, err)

	other := submission("Large")
	other.ShopName = "other-shop"
	_, err = svc.Submit(ctx, other)
	require.NoError(t, err)

	unread, err := svc.ListUnread(ctx, "test-shop")
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "test-shop", unread[0].ShopName)
}

func TestMarkReadUnknownID(t *testing.T) {
	svc, _ := newRequestFixture()

	_, err := svc.MarkRead(context.Background(), uuid.New())

	var notFound *apierrors.ErrNotFound
	require.ErrorAs(t, err, &notFound)
}
