package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bargenix/bargaining-api/internal/shopify"
	apierrors "github.com/bargenix/bargaining-api/pkg/errors"
)

func testSnapshot() *Snapshot {
	return &Snapshot{Products: []shopify.Product{
		{
			ID:          100,
			Title:       "Runner Sneaker",
			ProductType: "Shoes",
			Variants: []shopify.Variant{
				{ID: 1, Title: "Size 8", Price: "59.99", InventoryQuantity: 3},
				{ID: 2, Title: "Size 9", Price: "59.99", InventoryQuantity: 0},
			},
		},
		{
			ID:          200,
			Title:       "Wool Beanie",
			ProductType: "Hats",
			Variants: []shopify.Variant{
				{ID: 3, Title: "One Size", Price: "19.00", InventoryQuantity: 12},
			},
		},
		{
			ID:    300,
			Title: "Gift Card",
			Variants: []shopify.Variant{
				{ID: 4, Title: "Default Title", Price: "25.00"},
			},
		},
	}}
}

func TestResolveCategory(t *testing.T) {
	t.Run("matching category yields exactly its variants in snapshot order", func(t *testing.T) {
		variants, err := Resolve(testSnapshot(), Category("Shoes"))

		require.NoError(t, err)
		require.Len(t, variants, 2)
		assert.Equal(t, "1", variants[0].VariantID)
		assert.Equal(t, "2", variants[1].VariantID)
		assert.Equal(t, "Runner Sneaker", variants[0].ProductTitle)
	})

	t.Run("unknown category fails with not found", func(t *testing.T) {
		_, err := Resolve(testSnapshot(), Category("Bags"))

		var notFound *apierrors.ErrNotFound
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "category", notFound.Resource)
	})

	t.Run("missing product_type maps to the Uncategorized sentinel", func(t *testing.T) {
		variants, err := Resolve(testSnapshot(), Category("Uncategorized"))

		require.NoError(t, err)
		require.Len(t, variants, 1)
		assert.Equal(t, "4", variants[0].VariantID)
		assert.Equal(t, DefaultCategory, variants[0].ProductType)
	})

	t.Run("matching is case sensitive", func(t *testing.T) {
		_, err := Resolve(testSnapshot(), Category("shoes"))

		var notFound *apierrors.ErrNotFound
		require.ErrorAs(t, err, &notFound)
	})
}

func TestResolveAll(t *testing.T) {
	t.Run("returns every variant across products", func(t *testing.T) {
		variants, err := Resolve(testSnapshot(), AllProducts())

		require.NoError(t, err)
		require.Len(t, variants, 4)
		assert.Equal(t, []string{"1", "2", "3", "4"}, []string{
			variants[0].VariantID, variants[1].VariantID, variants[2].VariantID, variants[3].VariantID,
		})
	})

	t.Run("empty catalog fails with not found", func(t *testing.T) {
		_, err := Resolve(&Snapshot{}, AllProducts())

		var notFound *apierrors.ErrNotFound
		require.ErrorAs(t, err, &notFound)
	})
}

func TestResolveSingle(t *testing.T) {
	t.Run("known variant id resolves to one descriptor", func(t *testing.T) {
		variants, err := Resolve(testSnapshot(), SingleVariant("3"))

		require.NoError(t, err)
		require.Len(t, variants, 1)
		assert.Equal(t, "Wool Beanie", variants[0].ProductTitle)
		assert.Equal(t, "Hats", variants[0].ProductType)
	})

	t.Run("unknown variant id fails with not found", func(t *testing.T) {
		_, err := Resolve(testSnapshot(), SingleVariant("999"))

		var notFound *apierrors.ErrNotFound
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "product variant", notFound.Resource)
	})
}
