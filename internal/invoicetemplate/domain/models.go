package domain

import (
	"context"
	"errors"

	invoicedomain "github.com/smallbiznis/fatura/internal/invoice/domain"
)

// StorageKey is where the template list lives.
const StorageKey = "invoice_templates"

var ErrInvalidName = errors.New("invalid_name")

// Template is a named snapshot of a draft. Invoice is decoded as a patch so that records
// missing some keys only override what they carry.
type Template struct {
	ID      string                   `json:"id"`
	Name    string                   `json:"name"`
	Invoice invoicedomain.DraftPatch `json:"invoice"`
}

type Repository interface {
	List(ctx context.Context) ([]Template, error)
	Replace(ctx context.Context, templates []Template) error
}

type Service interface {
	List(ctx context.Context) ([]Template, error)
	Save(ctx context.Context, name string, d invoicedomain.Draft) (*Template, error)
	// Apply returns current unchanged and applied=false when id is unknown.
	Apply(ctx context.Context, id string, current invoicedomain.Draft) (invoicedomain.Draft, bool, error)
	// Delete reports whether a template was removed. An unknown id is not an error.
	Delete(ctx context.Context, id string) (bool, error)
}
