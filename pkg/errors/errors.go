package errors

import "fmt"

// ErrNotFound is returned when a referenced resource does not exist.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation is returned when a request field is missing or malformed.
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrUnauthorized is returned when authentication fails.
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrCredentialMissing is returned when a merchant has no stored Shopify
// credential. Distinct from ErrNotFound so handlers can tell the merchant
// to connect their store rather than fix an id.
type ErrCredentialMissing struct {
	UserID string
}

func (e *ErrCredentialMissing) Error() string {
	return fmt.Sprintf("shopify access is not provided for merchant %s", e.UserID)
}

// ErrUpstreamUnavailable is returned when the Shopify admin API is
// unreachable or answers with a non-success status. Never retried
// internally; the caller may replay the whole operation.
type ErrUpstreamUnavailable struct {
	Message string
	Cause   error
}

func (e *ErrUpstreamUnavailable) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("shopify unavailable: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("shopify unavailable: %s", e.Message)
}

func (e *ErrUpstreamUnavailable) Unwrap() error {
	return e.Cause
}

// ErrBulkWriteFailed is returned when a batched store write fails as a
// whole. Partial application inside the batch is the store's business;
// callers must treat bulk writes as best-effort and re-submit.
type ErrBulkWriteFailed struct {
	Cause error
}

func (e *ErrBulkWriteFailed) Error() string {
	return fmt.Sprintf("bulk write failed: %v", e.Cause)
}

func (e *ErrBulkWriteFailed) Unwrap() error {
	return e.Cause
}
