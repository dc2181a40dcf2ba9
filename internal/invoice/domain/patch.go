package domain

// DraftPatch is a partial draft decoded from persisted JSON. A nil field means the key
// was absent and must not overwrite anything on merge. Unknown keys are dropped by decoding.
type DraftPatch struct {
	ID            *string `json:"id,omitempty"`
	InvoiceNumber *string `json:"invoiceNumber,omitempty"`
	Date          *string `json:"date,omitempty"`
	DueDate       *string `json:"dueDate,omitempty"`
	PONumber      *string `json:"poNumber,omitempty"`

	CompanyName  *string `json:"companyName,omitempty"`
	CompanyEmail *string `json:"companyEmail,omitempty"`
	CompanyPhone *string `json:"companyPhone,omitempty"`
	CompanyLogo  *string `json:"companyLogo,omitempty"`

	ClientName    *string `json:"clientName,omitempty"`
	ClientEmail   *string `json:"clientEmail,omitempty"`
	ClientAddress *string `json:"clientAddress,omitempty"`
	ClientPhone   *string `json:"clientPhone,omitempty"`

	Items *[]LineItem `json:"items,omitempty"`

	Notes      *string `json:"notes,omitempty"`
	Conditions *string `json:"conditions,omitempty"`

	Tax           *float64        `json:"tax,omitempty"`
	TaxLabel      *string         `json:"taxLabel,omitempty"`
	Discount      *float64        `json:"discount,omitempty"`
	ExtraSections *[]ExtraSection `json:"extraSections,omitempty"`

	Currency *string `json:"currency,omitempty"`
	Theme    *string `json:"theme,omitempty"`
}

// PatchFromDraft captures every field of d.
func PatchFromDraft(d Draft) DraftPatch {
	d = d.Clone()
	items := d.Items
	if items == nil {
		items = []LineItem{}
	}
	extras := d.ExtraSections
	if extras == nil {
		extras = []ExtraSection{}
	}
	return DraftPatch{
		ID:            &d.ID,
		InvoiceNumber: &d.InvoiceNumber,
		Date:          &d.Date,
		DueDate:       &d.DueDate,
		PONumber:      &d.PONumber,
		CompanyName:   &d.CompanyName,
		CompanyEmail:  &d.CompanyEmail,
		CompanyPhone:  &d.CompanyPhone,
		CompanyLogo:   &d.CompanyLogo,
		ClientName:    &d.ClientName,
		ClientEmail:   &d.ClientEmail,
		ClientAddress: &d.ClientAddress,
		ClientPhone:   &d.ClientPhone,
		Items:         &items,
		Notes:         &d.Notes,
		Conditions:    &d.Conditions,
		Tax:           &d.Tax,
		TaxLabel:      &d.TaxLabel,
		Discount:      &d.Discount,
		ExtraSections: &extras,
		Currency:      &d.Currency,
		Theme:         &d.Theme,
	}
}

// Merge overwrites every field of d that is present in p and returns the result.
// d itself is not modified.
func Merge(d Draft, p DraftPatch) Draft {
	out := d.Clone()
	setString(&out.ID, p.ID)
	setString(&out.InvoiceNumber, p.InvoiceNumber)
	setString(&out.Date, p.Date)
	setString(&out.DueDate, p.DueDate)
	setString(&out.PONumber, p.PONumber)
	setString(&out.CompanyName, p.CompanyName)
	setString(&out.CompanyEmail, p.CompanyEmail)
	setString(&out.CompanyPhone, p.CompanyPhone)
	setString(&out.CompanyLogo, p.CompanyLogo)
	setString(&out.ClientName, p.ClientName)
	setString(&out.ClientEmail, p.ClientEmail)
	setString(&out.ClientAddress, p.ClientAddress)
	setString(&out.ClientPhone, p.ClientPhone)
	setString(&out.Notes, p.Notes)
	setString(&out.Conditions, p.Conditions)
	setString(&out.TaxLabel, p.TaxLabel)
	setString(&out.Currency, p.Currency)
	setString(&out.Theme, p.Theme)
	setFloat(&out.Tax, p.Tax)
	setFloat(&out.Discount, p.Discount)
	if p.Items != nil {
		out.Items = append(make([]LineItem, 0, len(*p.Items)), (*p.Items)...)
	}
	if p.ExtraSections != nil {
		out.ExtraSections = append(make([]ExtraSection, 0, len(*p.ExtraSections)), (*p.ExtraSections)...)
	}
	return out
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
