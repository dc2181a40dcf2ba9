package domain

import (
	"context"

	invoicedomain "github.com/smallbiznis/fatura/internal/invoice/domain"
)

// StorageKey is where the defaults record lives.
const StorageKey = "invoice_defaults"

// Defaults is the reusable subset of a draft carried into every new draft.
type Defaults struct {
	CompanyName   string                       `json:"companyName"`
	CompanyEmail  string                       `json:"companyEmail"`
	CompanyPhone  string                       `json:"companyPhone"`
	Currency      string                       `json:"currency"`
	Theme         string                       `json:"theme"`
	Tax           float64                      `json:"tax"`
	TaxLabel      string                       `json:"taxLabel"`
	Discount      float64                      `json:"discount"`
	ExtraSections []invoicedomain.ExtraSection `json:"extraSections"`
}

// FromDraft extracts the defaults subset. A nil extra section list is stored as empty.
func FromDraft(d invoicedomain.Draft) Defaults {
	extras := append([]invoicedomain.ExtraSection{}, d.ExtraSections...)
	return Defaults{
		CompanyName:   d.CompanyName,
		CompanyEmail:  d.CompanyEmail,
		CompanyPhone:  d.CompanyPhone,
		Currency:      d.Currency,
		Theme:         d.Theme,
		Tax:           d.Tax,
		TaxLabel:      d.TaxLabel,
		Discount:      d.Discount,
		ExtraSections: extras,
	}
}

// Restrict keeps only the fields a defaults record may carry, so a stored record
// can never overwrite identity or client fields.
func Restrict(p invoicedomain.DraftPatch) invoicedomain.DraftPatch {
	return invoicedomain.DraftPatch{
		CompanyName:   p.CompanyName,
		CompanyEmail:  p.CompanyEmail,
		CompanyPhone:  p.CompanyPhone,
		Currency:      p.Currency,
		Theme:         p.Theme,
		Tax:           p.Tax,
		TaxLabel:      p.TaxLabel,
		Discount:      p.Discount,
		ExtraSections: p.ExtraSections,
	}
}

// Merge overrides d with every field present in defaults. A nil defaults returns d unchanged.
func Merge(d invoicedomain.Draft, defaults *invoicedomain.DraftPatch) invoicedomain.Draft {
	if defaults == nil {
		return d
	}
	return invoicedomain.Merge(d, Restrict(*defaults))
}

type Service interface {
	Save(ctx context.Context, d invoicedomain.Draft) error
	// Load returns nil when nothing was ever saved.
	Load(ctx context.Context) (*invoicedomain.DraftPatch, error)
}
