// Package history keeps the invoices saved during this process's lifetime.
// Nothing here is persisted.
package history

import (
	"fmt"
	"sync"

	"github.com/smallbiznis/fatura/internal/config"
	"github.com/smallbiznis/fatura/internal/invoice/calc"
	"github.com/smallbiznis/fatura/internal/invoice/domain"
	"github.com/smallbiznis/fatura/internal/invoice/format"
	"go.uber.org/fx"
)

var Module = fx.Module("history",
	fx.Provide(func(cfg config.Config) *List {
		return NewWithPolicy(calc.Policy{ClampPercentages: cfg.Invoice.ClampPercentages})
	}),
)

// Summary is one row of the history list view.
type Summary struct {
	ID             string  `json:"id"`
	InvoiceNumber  string  `json:"invoiceNumber"`
	ClientName     string  `json:"clientName"`
	Date           string  `json:"date"`
	Currency       string  `json:"currency"`
	Total          float64 `json:"total"`
	FormattedTotal string  `json:"formattedTotal"`
}

// List is an ordered set of drafts keyed by id.
type List struct {
	mu      sync.RWMutex
	entries []domain.Draft
	policy  calc.Policy
}

func New() *List {
	return &List{}
}

// NewWithPolicy returns a List whose totals follow policy.
func NewWithPolicy(policy calc.Policy) *List {
	return &List{policy: policy}
}

// Save replaces the entry with d's id in place, or appends d when the id is new.
func (l *List) Save(d domain.Draft) (replaced bool) {
	snapshot := d.Clone()

	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.entries {
		if l.entries[i].ID == d.ID {
			l.entries[i] = snapshot
			return true
		}
	}
	l.entries = append(l.entries, snapshot)
	return false
}

// Load returns a copy of the entry with id.
func (l *List) Load(id string) (domain.Draft, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, entry := range l.entries {
		if entry.ID == id {
			return entry.Clone(), nil
		}
	}
	return domain.Draft{}, fmt.Errorf("%w: %s", domain.ErrInvoiceNotFound, id)
}

// Len returns the number of saved entries.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Entries returns copies of every entry in save order.
func (l *List) Entries() []domain.Draft {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.Draft, 0, len(l.entries))
	for _, entry := range l.entries {
		out = append(out, entry.Clone())
	}
	return out
}

// Summaries lists every entry with its recomputed total.
func (l *List) Summaries() []Summary {
	entries := l.Entries()
	out := make([]Summary, 0, len(entries))
	for _, entry := range entries {
		out = append(out, l.Summarize(entry))
	}
	return out
}

// Summarize computes the list row for one stored snapshot.
func (l *List) Summarize(entry domain.Draft) Summary {
	total := l.policy.HistoryTotal(entry)
	return Summary{
		ID:             entry.ID,
		InvoiceNumber:  entry.InvoiceNumber,
		ClientName:     entry.ClientName,
		Date:           entry.Date,
		Currency:       entry.Currency,
		Total:          total,
		FormattedTotal: format.Money(total, entry.Currency),
	}
}
