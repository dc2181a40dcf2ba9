package draft

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/smallbiznis/fatura/internal/invoice/domain"
)

var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// Coerce parses the leading number in raw. Anything unparseable becomes 0.
func Coerce(raw string) float64 {
	match := numericPrefix.FindString(strings.TrimSpace(raw))
	if match == "" {
		return 0
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return v
}

// SetField replaces one top-level field addressed by its JSON name.
func SetField(d domain.Draft, field, raw string) (domain.Draft, error) {
	out := d.Clone()
	switch field {
	case "id":
		return d, fmt.Errorf("%w: id", domain.ErrImmutableField)
	case "invoiceNumber":
		out.InvoiceNumber = raw
	case "date":
		out.Date = raw
	case "dueDate":
		out.DueDate = raw
	case "poNumber":
		out.PONumber = raw
	case "companyName":
		out.CompanyName = raw
	case "companyEmail":
		out.CompanyEmail = raw
	case "companyPhone":
		out.CompanyPhone = raw
	case "companyLogo":
		out.CompanyLogo = raw
	case "clientName":
		out.ClientName = raw
	case "clientEmail":
		out.ClientEmail = raw
	case "clientAddress":
		out.ClientAddress = raw
	case "clientPhone":
		out.ClientPhone = raw
	case "notes":
		out.Notes = raw
	case "conditions":
		out.Conditions = raw
	case "tax":
		out.Tax = Coerce(raw)
	case "taxLabel":
		out.TaxLabel = raw
	case "discount":
		out.Discount = Coerce(raw)
	case "currency":
		out.Currency = raw
	case "theme":
		out.Theme = raw
	default:
		return d, fmt.Errorf("%w: %s", domain.ErrUnknownField, field)
	}
	return out, nil
}

// AddItem appends a blank row.
func AddItem(d domain.Draft) domain.Draft {
	out := d.Clone()
	out.Items = append(out.Items, NewItem())
	return out
}

// UpdateItem replaces one field of the row at index.
func UpdateItem(d domain.Draft, index int, field, raw string) (domain.Draft, error) {
	if index < 0 || index >= len(d.Items) {
		return d, fmt.Errorf("%w: item %d", domain.ErrIndexOutOfRange, index)
	}
	out := d.Clone()
	item := out.Items[index]
	switch field {
	case "description":
		item.Description = raw
	case "quantity":
		item.Quantity = Coerce(raw)
	case "rate":
		item.Rate = Coerce(raw)
	default:
		return d, fmt.Errorf("%w: items.%s", domain.ErrUnknownField, field)
	}
	out.Items[index] = item
	return out, nil
}

// RemoveItem drops the row at index. The last remaining row cannot be removed.
func RemoveItem(d domain.Draft, index int) (domain.Draft, error) {
	if index < 0 || index >= len(d.Items) {
		return d, fmt.Errorf("%w: item %d", domain.ErrIndexOutOfRange, index)
	}
	if len(d.Items) <= 1 {
		return d, domain.ErrLastItem
	}
	out := d.Clone()
	out.Items = append(out.Items[:index], out.Items[index+1:]...)
	return out, nil
}

// AddExtraSection appends an "Other" section with a zero amount.
func AddExtraSection(d domain.Draft) domain.Draft {
	out := d.Clone()
	out.ExtraSections = append(out.ExtraSections, NewExtraSection())
	return out
}

// UpdateExtraSection replaces the label or amount of the section at index.
func UpdateExtraSection(d domain.Draft, index int, field, raw string) (domain.Draft, error) {
	if index < 0 || index >= len(d.ExtraSections) {
		return d, fmt.Errorf("%w: extra section %d", domain.ErrIndexOutOfRange, index)
	}
	out := d.Clone()
	section := out.ExtraSections[index]
	switch field {
	case "label":
		section.Label = raw
	case "amount":
		section.Amount = Coerce(raw)
	default:
		return d, fmt.Errorf("%w: extraSections.%s", domain.ErrUnknownField, field)
	}
	out.ExtraSections[index] = section
	return out, nil
}

// RemoveExtraSection drops the section at index. Sections have no minimum.
func RemoveExtraSection(d domain.Draft, index int) (domain.Draft, error) {
	if index < 0 || index >= len(d.ExtraSections) {
		return d, fmt.Errorf("%w: extra section %d", domain.ErrIndexOutOfRange, index)
	}
	out := d.Clone()
	out.ExtraSections = append(out.ExtraSections[:index], out.ExtraSections[index+1:]...)
	return out, nil
}
