// Package domain contains the invoice draft model shared by every invoicing component.
package domain

// LineItem is one billable row on a draft. Its amount is always derived.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
}

// Amount returns quantity * rate.
func (i LineItem) Amount() float64 {
	return i.Quantity * i.Rate
}

// ExtraSection is a free-form charge added directly to the total.
// A negative amount acts as a deduction.
type ExtraSection struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// Draft is the invoice currently being edited.
type Draft struct {
	ID            string `json:"id"`
	InvoiceNumber string `json:"invoiceNumber"`
	Date          string `json:"date"`
	DueDate       string `json:"dueDate"`
	PONumber      string `json:"poNumber"`

	CompanyName  string `json:"companyName"`
	CompanyEmail string `json:"companyEmail"`
	CompanyPhone string `json:"companyPhone"`
	CompanyLogo  string `json:"companyLogo,omitempty"`

	ClientName    string `json:"clientName"`
	ClientEmail   string `json:"clientEmail"`
	ClientAddress string `json:"clientAddress"`
	ClientPhone   string `json:"clientPhone,omitempty"`

	Items []LineItem `json:"items"`

	Notes      string `json:"notes"`
	Conditions string `json:"conditions"`

	Tax           float64        `json:"tax"`
	TaxLabel      string         `json:"taxLabel,omitempty"`
	Discount      float64        `json:"discount"`
	ExtraSections []ExtraSection `json:"extraSections"`

	Currency string `json:"currency"`
	Theme    string `json:"theme"`

	// Shipping only appears on older history snapshots that predate extra sections.
	Shipping *float64 `json:"shipping,omitempty"`
}

// Clone returns a copy that shares no slices with d.
func (d Draft) Clone() Draft {
	out := d
	if d.Items != nil {
		out.Items = append(make([]LineItem, 0, len(d.Items)), d.Items...)
	}
	if d.ExtraSections != nil {
		out.ExtraSections = append(make([]ExtraSection, 0, len(d.ExtraSections)), d.ExtraSections...)
	}
	if d.Shipping != nil {
		v := *d.Shipping
		out.Shipping = &v
	}
	return out
}

// Totals holds every amount derived from a draft. Nothing here is stored.
type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discountAmount"`
	TaxableAmount  float64 `json:"taxableAmount"`
	TaxAmount      float64 `json:"taxAmount"`
	ExtraTotal     float64 `json:"extraTotal"`
	Total          float64 `json:"total"`
}
