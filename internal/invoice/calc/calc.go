// Package calc derives invoice totals from a draft.
//
// Every function here is pure: no rounding between steps, no caching, and no bounds
// checks unless a Policy asks for them. Rounding happens only when amounts are formatted.
package calc

import "github.com/smallbiznis/fatura/internal/invoice/domain"

// Policy controls optional input clamping. The zero value keeps the permissive behavior.
type Policy struct {
	// ClampPercentages limits discount to [0,100] and tax to >= 0 before computing.
	ClampPercentages bool
}

// Compute derives totals using the permissive policy.
func Compute(d domain.Draft) domain.Totals {
	return Policy{}.Compute(d)
}

// Compute derives subtotal, discount, taxable amount, tax, extra total and grand total.
func (p Policy) Compute(d domain.Draft) domain.Totals {
	return p.compute(d, ExtraTotal(d.ExtraSections))
}

// HistoryTotal computes the grand total of a stored snapshot. Snapshots without extra
// sections fall back to the flat shipping amount, added once.
func HistoryTotal(d domain.Draft) float64 {
	return Policy{}.HistoryTotal(d)
}

// HistoryTotal is the policy-aware variant of the package level HistoryTotal.
func (p Policy) HistoryTotal(d domain.Draft) float64 {
	extra := ExtraTotal(d.ExtraSections)
	if d.ExtraSections == nil && d.Shipping != nil {
		extra = *d.Shipping
	}
	return p.compute(d, extra).Total
}

// Subtotal sums quantity * rate over all items. An empty list yields 0.
func Subtotal(items []domain.LineItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.Amount()
	}
	return sum
}

// ExtraTotal sums every extra section amount.
func ExtraTotal(sections []domain.ExtraSection) float64 {
	var sum float64
	for _, section := range sections {
		sum += section.Amount
	}
	return sum
}

func (p Policy) compute(d domain.Draft, extra float64) domain.Totals {
	discount, tax := d.Discount, d.Tax
	if p.ClampPercentages {
		discount = clamp(discount, 0, 100)
		if tax < 0 {
			tax = 0
		}
	}

	subtotal := Subtotal(d.Items)
	discountAmount := (subtotal * discount) / 100
	taxable := subtotal - discountAmount
	taxAmount := (taxable * tax) / 100

	return domain.Totals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		TaxableAmount:  taxable,
		TaxAmount:      taxAmount,
		ExtraTotal:     extra,
		Total:          taxable + taxAmount + extra,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
