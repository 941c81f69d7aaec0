// Package forms holds the assignment/sharing reconciliation model: the Form
// Catalog aggregation, the Assignment and Share ledgers, and the Schema
// Projector, all backed by records in a remote document store.
package forms

import (
	"context"

	"formgate.org/internal/frappe"
)

// Record kinds in the upstream store.
const (
	assignedFormDoctype = "Assigned Form"
	formShareDoctype    = "Mobile Form Share"
	formConfigDoctype   = "Mobile Form Config"
)

const (
	defaultIcon = "file-text"
	listLimit   = 500
)

// Store is the slice of the upstream resource API the ledgers need. A
// *frappe.Client satisfies it; tests substitute a fake.
type Store interface {
	List(ctx context.Context, doctype string, opt frappe.ListOptions, out any) error
	Get(ctx context.Context, doctype, name string, out any) error
	Create(ctx context.Context, doctype string, doc, out any) error
	Update(ctx context.Context, doctype, name string, patch, out any) error
	Delete(ctx context.Context, doctype, name string) error
	LoggedUser(ctx context.Context) (string, error)
	BaseURL() string
}

// Service exposes the reconciliation operations over one caller's store
// handle. It carries no state of its own; construct one per request.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}
