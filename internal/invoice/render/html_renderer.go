package render

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"
)

// Styles is the stylesheet shared by the preview page and the print document.
const Styles = `
* { box-sizing: border-box; }
body { margin: 0; padding: 24px; font-family: Arial, sans-serif; }
body.mode-light { background: #f8fafc; }
body.mode-dark { background: #111827; }
.invoice { background: #ffffff; color: #333; line-height: 1.6; max-width: 820px; margin: 0 auto; padding: 48px; border-radius: 8px; }
.header { display: flex; justify-content: space-between; align-items: flex-start; margin-bottom: 32px; gap: 16px; }
.logo { max-width: 64px; max-height: 64px; margin-bottom: 16px; }
.company-name { font-size: 24px; font-weight: 700; margin: 0; color: var(--accent); }
.muted { color: #4b5563; margin: 0; }
.title { font-size: 40px; font-weight: 700; color: var(--accent); margin: 0 0 16px; text-align: right; }
.meta { text-align: right; color: #4b5563; }
.meta p { margin: 2px 0; }
.meta .label { font-weight: 600; }
.bill-to { margin-bottom: 32px; padding-bottom: 32px; border-bottom: 1px solid #e5e7eb; }
h3 { font-weight: 700; color: var(--accent); margin: 0 0 8px; }
table { width: 100%; border-collapse: collapse; margin-bottom: 32px; }
th { padding: 12px 8px; color: var(--accent); font-weight: 700; border-bottom: 2px solid var(--accent); }
td { padding: 12px 8px; border-bottom: 1px solid #e5e7eb; }
.left { text-align: left; }
.center { text-align: center; }
.right { text-align: right; }
.strong { font-weight: 600; }
.summary { display: flex; justify-content: flex-end; margin-bottom: 32px; }
.summary-box { width: 320px; }
.summary-row { display: flex; justify-content: space-between; font-size: 14px; padding: 2px 0; }
.summary-row.discount { color: #16a34a; }
.summary-row.total { font-weight: 700; font-size: 18px; border-top: 2px solid var(--accent); padding-top: 8px; margin-top: 4px; }
.notes { margin-bottom: 32px; padding-top: 16px; border-top: 1px solid #e5e7eb; }
.pre { white-space: pre-wrap; color: #4b5563; }
.small { font-size: 14px; }
`

const invoiceMarkupTemplate = `<div class="invoice" style="--accent: {{.Accent}};">
  <div class="header">
    <div>
      {{if .CompanyLogo}}<img class="logo" src="{{.CompanyLogo}}" alt="Company Logo">{{end}}
      <h1 class="company-name">{{.CompanyName}}</h1>
      <p class="muted">{{.CompanyEmail}}</p>
      <p class="muted">{{.CompanyPhone}}</p>
    </div>
    <div>
      <p class="title">{{.Title}}</p>
      <div class="meta">
        {{range .Meta}}<p><span class="label">{{.Label}}:</span> {{.Value}}</p>
        {{end}}
      </div>
    </div>
  </div>

  <div class="bill-to">
    <h3>{{.BillToLabel}}</h3>
    <p class="strong">{{.ClientName}}</p>
    <p class="muted">{{.ClientAddress}}</p>
    <p class="muted">{{.ClientEmail}}</p>
    {{if .ClientPhone}}<p class="muted">{{.ClientPhone}}</p>{{end}}
  </div>

  <table>
    <thead>
      <tr>
        <th class="left">{{.Headers.Product}}</th>
        <th class="center">{{.Headers.Quantity}}</th>
        <th class="right">{{.Headers.Rate}}</th>
        <th class="right">{{.Headers.Amount}}</th>
      </tr>
    </thead>
    <tbody>
      {{range .Rows}}
      <tr>
        <td>{{.Description}}</td>
        <td class="center">{{.Quantity}}</td>
        <td class="right">{{.Rate}}</td>
        <td class="right strong">{{.Amount}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>

  <div class="summary">
    <div class="summary-box">
      {{range .Summary}}
      <div class="summary-row{{if isDiscount $.Discount .}} discount{{end}}"><span>{{.Label}}</span><span>{{.Value}}</span></div>
      {{end}}
      <div class="summary-row total"><span>{{.Total.Label}}</span><span>{{.Total.Value}}</span></div>
    </div>
  </div>

  {{if .Notes}}
  <div class="notes">
    <h3>{{.NotesLabel}}</h3>
    <p class="pre">{{.Notes}}</p>
  </div>
  {{end}}

  {{if .Conditions}}
  <div>
    <h3>{{.ConditionsLabel}}</h3>
    <p class="pre small">{{.Conditions}}</p>
  </div>
  {{end}}
</div>`

const pageTemplate = `<!doctype html>
<html lang="{{.Doc.Language}}">
<head>
  <meta charset="utf-8" />
  <title>{{.Doc.Title}} {{.Number}}</title>
  <style>{{.Styles}}</style>
</head>
<body class="mode-{{.Doc.ThemeMode}}">
{{.Markup}}
</body>
</html>
`

var (
	hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	dataURLPattern  = regexp.MustCompile(`^data:image/(png|jpe?g|gif|webp|svg\+xml);base64,[A-Za-z0-9+/=]+$`)
)

type HTMLRenderer struct {
	markup *template.Template
	page   *template.Template
}

func NewRenderer() Renderer {
	funcs := template.FuncMap{
		"isDiscount": func(discount *Line, line Line) bool {
			return discount != nil && *discount == line
		},
	}
	return &HTMLRenderer{
		markup: template.Must(template.New("invoice").Funcs(funcs).Parse(invoiceMarkupTemplate)),
		page:   template.Must(template.New("page").Parse(pageTemplate)),
	}
}

func (r *HTMLRenderer) RenderMarkup(doc Document) (string, error) {
	view := struct {
		Document
		Accent      template.CSS
		CompanyLogo template.URL
	}{Document: doc, Accent: template.CSS(sanitizeColor(doc.Accent))}
	if logo := strings.TrimSpace(doc.CompanyLogo); logo != "" && dataURLPattern.MatchString(logo) {
		view.CompanyLogo = template.URL(logo)
	}

	var buf bytes.Buffer
	if err := r.markup.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *HTMLRenderer) RenderHTML(doc Document) (string, error) {
	markup, err := r.RenderMarkup(doc)
	if err != nil {
		return "", err
	}
	if doc.ThemeMode != "light" {
		doc.ThemeMode = "dark"
	}

	number := ""
	if len(doc.Meta) > 0 {
		number = doc.Meta[0].Value
	}

	var buf bytes.Buffer
	err = r.page.Execute(&buf, struct {
		Doc    Document
		Number string
		Styles template.CSS
		Markup template.HTML
	}{
		Doc:    doc,
		Number: number,
		Styles: template.CSS(Styles),
		Markup: template.HTML(markup),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// PrintHTML wraps rendered markup and a stylesheet into the document handed to the
// platform print flow.
func PrintHTML(markup, styles string) string {
	var b strings.Builder
	b.WriteString("<html><head><title>Invoice</title>")
	b.WriteString("<style>")
	b.WriteString(styles)
	b.WriteString("</style>")
	b.WriteString("</head><body>")
	b.WriteString(markup)
	b.WriteString("</body></html>")
	return b.String()
}

func sanitizeColor(value string) string {
	trimmed := strings.TrimSpace(value)
	if hexColorPattern.MatchString(trimmed) {
		return trimmed
	}
	return accents["classic"]
}
