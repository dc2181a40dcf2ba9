package calc

import (
	"testing"

	"github.com/smallbiznis/fatura/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name  string
		draft domain.Draft
		want  domain.Totals
	}{
		{
			name: "single widget with discount and tax",
			draft: domain.Draft{
				Items:         []domain.LineItem{{Description: "Widget", Quantity: 3, Rate: 10}},
				Discount:      10,
				Tax:           18,
				ExtraSections: []domain.ExtraSection{},
			},
			want: domain.Totals{Subtotal: 30, DiscountAmount: 3, TaxableAmount: 27, TaxAmount: 4.86, Total: 31.86},
		},
		{
			name:  "empty items",
			draft: domain.Draft{},
			want:  domain.Totals{},
		},
		{
			name: "extra sections add and deduct",
			draft: domain.Draft{
				Items: []domain.LineItem{{Quantity: 2, Rate: 50}},
				ExtraSections: []domain.ExtraSection{
					{Label: "Shipping", Amount: 15},
					{Label: "Voucher", Amount: -5},
				},
			},
			want: domain.Totals{Subtotal: 100, TaxableAmount: 100, ExtraTotal: 10, Total: 110},
		},
		{
			name: "out of range percentages propagate",
			draft: domain.Draft{
				Items:    []domain.LineItem{{Quantity: 1, Rate: 100}},
				Discount: 150,
				Tax:      -10,
			},
			want: domain.Totals{Subtotal: 100, DiscountAmount: 150, TaxableAmount: -50, TaxAmount: 5, Total: -45},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.draft)
			assert.InDelta(t, tt.want.Subtotal, got.Subtotal, 1e-9)
			assert.InDelta(t, tt.want.DiscountAmount, got.DiscountAmount, 1e-9)
			assert.InDelta(t, tt.want.TaxableAmount, got.TaxableAmount, 1e-9)
			assert.InDelta(t, tt.want.TaxAmount, got.TaxAmount, 1e-9)
			assert.InDelta(t, tt.want.ExtraTotal, got.ExtraTotal, 1e-9)
			assert.InDelta(t, tt.want.Total, got.Total, 1e-9)
		})
	}
}

func TestComputeIdentities(t *testing.T) {
	drafts := []domain.Draft{
		{},
		{Items: []domain.LineItem{{Quantity: 0.5, Rate: 19.99}, {Quantity: 7, Rate: 3.3}}, Discount: 12.5, Tax: 20},
		{Items: []domain.LineItem{{Quantity: 1, Rate: -4}}, Tax: 8, ExtraSections: []domain.ExtraSection{{Amount: 1.1}}},
	}

	for _, d := range drafts {
		got := Compute(d)
		assert.Equal(t, got.TaxableAmount+got.TaxAmount+got.ExtraTotal, got.Total)
		assert.Equal(t, got.Subtotal-got.DiscountAmount, got.TaxableAmount)
		assert.Equal(t, got, Compute(d), "computing twice must give identical results")
	}
}

func TestClampPolicy(t *testing.T) {
	d := domain.Draft{
		Items:    []domain.LineItem{{Quantity: 1, Rate: 100}},
		Discount: 150,
		Tax:      -10,
	}

	got := Policy{ClampPercentages: true}.Compute(d)
	assert.InDelta(t, 100, got.DiscountAmount, 1e-9)
	assert.InDelta(t, 0, got.TaxAmount, 1e-9)
	assert.InDelta(t, 0, got.Total, 1e-9)
}

func TestHistoryTotal(t *testing.T) {
	shipping := 12.0
	legacy := domain.Draft{
		Items:    []domain.LineItem{{Quantity: 2, Rate: 10}},
		Tax:      10,
		Shipping: &shipping,
	}
	assert.InDelta(t, 34, HistoryTotal(legacy), 1e-9)

	current := legacy
	current.ExtraSections = []domain.ExtraSection{{Label: "Other", Amount: 3}}
	assert.InDelta(t, 25, HistoryTotal(current), 1e-9, "extra sections win over the legacy shipping field")

	bare := domain.Draft{Items: []domain.LineItem{{Quantity: 1, Rate: 5}}}
	assert.InDelta(t, 5, HistoryTotal(bare), 1e-9)
}
