// Package draft builds fresh drafts and applies single-field edits to them.
//
// Every mutation returns a new Draft and leaves its argument untouched, so a caller holding
// the previous value can compare the two.
package draft

import (
	"time"

	"github.com/smallbiznis/fatura/internal/invoice/domain"
)

const (
	DateLayout   = "2006-01-02"
	DefaultTheme = "classic"
	ExtraLabel   = "Other"
)

// Seed carries the values a fresh draft starts from.
type Seed struct {
	ID            string
	InvoiceNumber string
	Today         time.Time
	DueDays       int
	TaxLabel      string
	Currency      string
	Theme         string
}

// New returns an empty draft holding one blank line item.
func New(seed Seed) domain.Draft {
	theme := seed.Theme
	if theme == "" {
		theme = DefaultTheme
	}
	today := seed.Today
	return domain.Draft{
		ID:            seed.ID,
		InvoiceNumber: seed.InvoiceNumber,
		Date:          today.Format(DateLayout),
		DueDate:       today.AddDate(0, 0, seed.DueDays).Format(DateLayout),
		Items:         []domain.LineItem{NewItem()},
		TaxLabel:      seed.TaxLabel,
		ExtraSections: []domain.ExtraSection{},
		Currency:      seed.Currency,
		Theme:         theme,
	}
}

// NewItem is the shape every added row starts with.
func NewItem() domain.LineItem {
	return domain.LineItem{Description: "", Quantity: 1, Rate: 0}
}

// NewExtraSection is the shape every added extra section starts with.
func NewExtraSection() domain.ExtraSection {
	return domain.ExtraSection{Label: ExtraLabel, Amount: 0}
}
