package catalog

import (
	"strconv"

	"github.com/samber/lo"

	"github.com/bargenix/bargaining-api/internal/shopify"
	apierrors "github.com/bargenix/bargaining-api/pkg/errors"
)

// SelectorKind discriminates what a mutation targets.
type SelectorKind string

const (
	SelectSingle   SelectorKind = "single"
	SelectCategory SelectorKind = "category"
	SelectAll      SelectorKind = "all"
)

// Selector is a logical target: one variant, a named category, or the
// whole catalog.
type Selector struct {
	Kind      SelectorKind
	VariantID string
	Category  string
}

func SingleVariant(variantID string) Selector {
	return Selector{Kind: SelectSingle, VariantID: variantID}
}

func Category(name string) Selector {
	return Selector{Kind: SelectCategory, Category: name}
}

func AllProducts() Selector {
	return Selector{Kind: SelectAll}
}

// VariantDescriptor is one concrete variant resolved from a snapshot
type VariantDescriptor struct {
	ProductID         int64
	VariantID         string
	ProductType       string
	ProductTitle      string
	VariantTitle      string
	Price             string
	InventoryQuantity int
}

// Resolve narrows a snapshot to the variants a selector targets. Ordering
// follows the snapshot: products as listed upstream, variants in each
// product's listed order. No re-sorting.
func Resolve(snap *Snapshot, sel Selector) ([]VariantDescriptor, error) {
	switch sel.Kind {
	case SelectAll:
		if len(snap.Products) == 0 {
			return nil, &apierrors.ErrNotFound{Resource: "products", ID: "store has no products"}
		}
		return flatten(snap.Products), nil

	case SelectCategory:
		matched := lo.Filter(snap.Products, func(p shopify.Product, _ int) bool {
			return productCategory(p) == sel.Category
		})
		if len(matched) == 0 {
			return nil, &apierrors.ErrNotFound{Resource: "category", ID: sel.Category}
		}
		return flatten(matched), nil

	case SelectSingle:
		for _, v := range flatten(snap.Products) {
			if v.VariantID == sel.VariantID {
				return []VariantDescriptor{v}, nil
			}
		}
		return nil, &apierrors.ErrNotFound{Resource: "product variant", ID: sel.VariantID}

	default:
		return nil, &apierrors.ErrValidation{Message: "unknown selector kind"}
	}
}

func flatten(products []shopify.Product) []VariantDescriptor {
	return lo.FlatMap(products, func(p shopify.Product, _ int) []VariantDescriptor {
		return lo.Map(p.Variants, func(v shopify.Variant, _ int) VariantDescriptor {
			return VariantDescriptor{
				ProductID:         p.ID,
				VariantID:         strconv.FormatInt(v.ID, 10),
				ProductType:       productCategory(p),
				ProductTitle:      p.Title,
				VariantTitle:      v.Title,
				Price:             v.Price.String(),
				InventoryQuantity: v.InventoryQuantity,
			}
		})
	})
}

func productCategory(p shopify.Product) string {
	if p.ProductType == "" {
		return DefaultCategory
	}
	return p.ProductType
}
