package bargaining

import (
	"time"

	"github.com/bargenix/bargaining-api/internal/domain"
)

// MutationKind is the merchant intent being reconciled.
type MutationKind string

const (
	// MutateSetBargaining sets behavior and min price together (the
	// category / all-products flows).
	MutateSetBargaining MutationKind = "set_bargaining"
	// MutateSetMinPrice sets the price floor and re-activates bargaining.
	MutateSetMinPrice MutationKind = "set_min_price"
	// MutateDeactivate turns bargaining off and zeroes the floor.
	MutateDeactivate MutationKind = "deactivate"
)

// Mutation is a desired change against one variant's configuration
type Mutation struct {
	Kind     MutationKind
	MinPrice float64
	Behavior *domain.BargainBehavior
	Reason   string
}

// OpKind tags what the store should do for one variant.
type OpKind string

const (
	OpInsert OpKind = "insert"
	OpUpdate OpKind = "update"
	OpNoOp   OpKind = "noop"
)

// Fields are the columns a WriteOp touches. Nil means leave untouched.
type Fields struct {
	MinPrice           *float64
	Behavior           *domain.BargainBehavior
	IsActive           *bool
	DeactivationReason *string
	DeactivatedAt      *time.Time
}

// WriteOp is the reconciler's decision for one (merchant, variant) pair
type WriteOp struct {
	Op     OpKind
	Fields Fields
}

// Decide maps (existing record, desired mutation) to a store operation.
// Pure: no store access, testable in isolation. Replaying the same
// mutation against the same record yields the same decision, which is
// what makes the whole reconciliation idempotent.
func Decide(existing *domain.BargainingConfig, m Mutation, now time.Time) WriteOp {
	switch m.Kind {
	case MutateSetBargaining:
		fields := Fields{
			MinPrice: ptr(m.MinPrice),
			Behavior: m.Behavior,
		}
		if existing == nil {
			// First configuration for this variant: bargaining starts active.
			fields.IsActive = ptr(true)
			return WriteOp{Op: OpInsert, Fields: fields}
		}
		return WriteOp{Op: OpUpdate, Fields: fields}

	case MutateSetMinPrice:
		fields := Fields{
			MinPrice: ptr(m.MinPrice),
			IsActive: ptr(true),
		}
		if existing == nil {
			return WriteOp{Op: OpInsert, Fields: fields}
		}
		return WriteOp{Op: OpUpdate, Fields: fields}

	case MutateDeactivate:
		if existing == nil {
			// Never fabricate a record purely to deactivate it.
			return WriteOp{Op: OpNoOp}
		}
		fields := Fields{
			MinPrice:      ptr(0.0),
			IsActive:      ptr(false),
			DeactivatedAt: ptr(now),
		}
		if m.Reason != "" {
			fields.DeactivationReason = ptr(m.Reason)
		}
		return WriteOp{Op: OpUpdate, Fields: fields}

	default:
		return WriteOp{Op: OpNoOp}
	}
}

// Apply copies a decision's fields onto a config record in place,
// leaving untouched fields as they were.
func Apply(cfg *domain.BargainingConfig, fields Fields) {
	if fields.MinPrice != nil {
		cfg.MinPrice = *fields.MinPrice
	}
	if fields.Behavior != nil {
		cfg.Behavior = fields.Behavior
	}
	if fields.IsActive != nil {
		cfg.IsActive = *fields.IsActive
	}
	if fields.DeactivationReason != nil {
		cfg.DeactivationReason = fields.DeactivationReason
	}
	if fields.DeactivatedAt != nil {
		cfg.DeactivatedAt = fields.DeactivatedAt
	}
}

func ptr[T any](v T) *T {
	return &v
}
