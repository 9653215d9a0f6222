// Package apperr holds the typed errors the order core returns to callers.
// Controllers map them to HTTP codes with errors.As; retry policy belongs
// to the caller, never to the core.
package apperr

import "fmt"

// ConflictError: the table already has a non-terminal order on it.
type ConflictError struct {
	TableID uint
	OrderID uint // the order already holding the table, 0 if unknown
}

func (e *ConflictError) Error() string {
	if e.OrderID != 0 {
		return fmt.Sprintf("table %d already has an open order #%d", e.TableID, e.OrderID)
	}
	return fmt.Sprintf("table %d already has an open order", e.TableID)
}

// InvalidTransitionError: the requested status change is not an allowed
// edge, or the current status forbids the attempted operation (Op set).
type InvalidTransitionError struct {
	Kind string // "order" | "order item"
	From string
	To   string
	Op   string
}

func (e *InvalidTransitionError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s in status %s does not allow %s", e.Kind, e.From, e.Op)
	}
	return fmt.Sprintf("%s cannot go from %s to %s", e.Kind, e.From, e.To)
}

// NotFoundError: a referenced order/item/table/discount does not exist.
type NotFoundError struct {
	Kind string
	ID   uint
}

func (e *NotFoundError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("%s not found", e.Kind)
	}
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// PricingInconsistencyError: a client-submitted total disagrees with the
// server-side recomputation at payment time. The computed value wins.
type PricingInconsistencyError struct {
	OrderID   uint
	Submitted int64
	Computed  int64
}

func (e *PricingInconsistencyError) Error() string {
	return fmt.Sprintf("order %d total mismatch: submitted %d, computed %d", e.OrderID, e.Submitted, e.Computed)
}

func NotFound(kind string, id uint) error { return &NotFoundError{Kind: kind, ID: id} }
