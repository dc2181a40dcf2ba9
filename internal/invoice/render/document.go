package render

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
	"github.com/smallbiznis/fatura/internal/i18n"
	"github.com/smallbiznis/fatura/internal/invoice/domain"
	"github.com/smallbiznis/fatura/internal/invoice/format"
)

// Line is a label and its already formatted value.
type Line struct {
	Label string
	Value string
}

// Row is one formatted line item.
type Row struct {
	Description string
	Quantity    string
	Rate        string
	Amount      string
}

// Headers holds the item table column titles.
type Headers struct {
	Product  string
	Quantity string
	Rate     string
	Amount   string
}

// Document is the fully resolved, laid out view of a draft. Renderers and the PDF
// provider consume this, never the draft itself.
type Document struct {
	Language  string
	ThemeMode string
	Accent    string
	Title     string
	FileName  string

	CompanyName  string
	CompanyEmail string
	CompanyPhone string
	CompanyLogo  string

	Meta []Line

	BillToLabel   string
	ClientName    string
	ClientAddress string
	ClientEmail   string
	ClientPhone   string

	Headers Headers
	Rows    []Row

	Summary []Line
	// Discount is set only when the draft carries a positive discount.
	Discount *Line
	Total    Line

	NotesLabel      string
	Notes           string
	ConditionsLabel string
	Conditions      string
}

var accents = map[string]string{
	"classic": "#0f172a",
	"modern":  "#2563eb",
	"minimal": "#374151",
	"elegant": "#7c3aed",
}

// Build lays out d using the label table for lang.
func Build(d domain.Draft, totals domain.Totals, labels i18n.Table, lang i18n.Language, themeMode string) Document {
	label := func(key string) string {
		if v, ok := labels[key]; ok {
			return v
		}
		return key
	}
	money := func(v float64) string { return format.Money(v, d.Currency) }

	doc := Document{
		Language:  string(lang),
		ThemeMode: themeMode,
		Accent:    accentFor(d.Theme),
		Title:     label("invoice"),
		FileName:  FileName(d.InvoiceNumber),

		CompanyName:  d.CompanyName,
		CompanyEmail: d.CompanyEmail,
		CompanyPhone: d.CompanyPhone,
		CompanyLogo:  d.CompanyLogo,

		BillToLabel:   label("billTo"),
		ClientName:    d.ClientName,
		ClientAddress: d.ClientAddress,
		ClientEmail:   d.ClientEmail,
		ClientPhone:   d.ClientPhone,

		Headers: Headers{
			Product:  label("product"),
			Quantity: label("quantity"),
			Rate:     label("rate"),
			Amount:   label("amount"),
		},

		Total: Line{Label: label("total"), Value: money(totals.Total)},

		NotesLabel:      label("notes"),
		Notes:           d.Notes,
		ConditionsLabel: label("conditionsTitle"),
		Conditions:      d.Conditions,
	}

	doc.Meta = []Line{
		{Label: label("invoiceNumberShort"), Value: d.InvoiceNumber},
		{Label: label("date"), Value: d.Date},
		{Label: label("dueDate"), Value: d.DueDate},
	}
	if d.PONumber != "" {
		doc.Meta = append(doc.Meta, Line{Label: label("poNumberShort"), Value: d.PONumber})
	}

	doc.Rows = make([]Row, 0, len(d.Items))
	for _, item := range d.Items {
		doc.Rows = append(doc.Rows, Row{
			Description: item.Description,
			Quantity:    number(item.Quantity),
			Rate:        money(item.Rate),
			Amount:      money(item.Amount()),
		})
	}

	doc.Summary = append(doc.Summary, Line{Label: label("subtotal"), Value: money(totals.Subtotal)})
	if d.Discount > 0 {
		discount := Line{
			Label: fmt.Sprintf("%s (%s%%)", label("discount"), number(d.Discount)),
			Value: "-" + money(totals.DiscountAmount),
		}
		doc.Discount = &discount
		doc.Summary = append(doc.Summary, discount)
	}
	taxLabel := d.TaxLabel
	if taxLabel == "" {
		taxLabel = label("tax")
	}
	doc.Summary = append(doc.Summary, Line{
		Label: fmt.Sprintf("%s (%s%%)", taxLabel, number(d.Tax)),
		Value: money(totals.TaxAmount),
	})
	for _, section := range d.ExtraSections {
		doc.Summary = append(doc.Summary, Line{Label: section.Label, Value: money(section.Amount)})
	}

	return doc
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// FileName is the download name for an invoice number. Numbers that are not
// filesystem safe are slugified.
func FileName(invoiceNumber string) string {
	n := strings.TrimSpace(invoiceNumber)
	if n == "" || unsafeFileChars.MatchString(n) || strings.HasPrefix(n, ".") {
		n = slug.Make(n)
	}
	if n == "" {
		n = "draft"
	}
	return "fatura-" + n + ".pdf"
}

func accentFor(theme string) string {
	if accent, ok := accents[strings.ToLower(strings.TrimSpace(theme))]; ok {
		return accent
	}
	return accents["classic"]
}

// number renders a plain number the way a form field shows it: no fixed decimals.
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
