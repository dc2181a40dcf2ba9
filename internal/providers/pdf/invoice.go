package pdf

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/smallbiznis/fatura/internal/invoice/render"
)

var ErrUnsupportedLogo = errors.New("unsupported_logo")

var logoPattern = regexp.MustCompile(`^data:image/(png|jpe?g);base64,(.+)$`)

var (
	mutedColor    = &props.Color{Red: 75, Green: 85, Blue: 99}
	discountColor = &props.Color{Red: 22, Green: 163, Blue: 74}
)

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateInvoice(ctx context.Context, doc render.Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	accent := accentColor(doc.Accent)

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "{current} / {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	if doc.CompanyLogo != "" {
		logo, ext, err := decodeLogo(doc.CompanyLogo)
		if err == nil {
			m.AddRow(20,
				image.NewFromBytesCol(3, logo, ext, props.Rect{Percent: 80}),
				col.New(9),
			)
		}
	}

	m.AddRow(30,
		col.New(6).Add(
			text.New(doc.CompanyName, props.Text{Size: 16, Style: fontstyle.Bold, Color: accent}),
			text.New(doc.CompanyEmail, props.Text{Top: 9, Size: 9, Color: mutedColor}),
			text.New(doc.CompanyPhone, props.Text{Top: 14, Size: 9, Color: mutedColor}),
		),
		col.New(6).Add(metaTexts(doc, accent)...),
	)

	billTo := []core.Component{
		text.New(doc.BillToLabel, props.Text{Style: fontstyle.Bold, Color: accent}),
		text.New(doc.ClientName, props.Text{Top: 5, Style: fontstyle.Bold, Size: 9}),
		text.New(doc.ClientAddress, props.Text{Top: 10, Size: 9, Color: mutedColor}),
		text.New(doc.ClientEmail, props.Text{Top: 15, Size: 9, Color: mutedColor}),
	}
	if doc.ClientPhone != "" {
		billTo = append(billTo, text.New(doc.ClientPhone, props.Text{Top: 20, Size: 9, Color: mutedColor}))
	}
	m.AddRow(28, col.New(12).Add(billTo...))
	m.AddRow(2, line.NewCol(12))

	header := props.Text{Style: fontstyle.Bold, Size: 9, Color: accent, Top: 2}
	m.AddRow(9,
		text.NewCol(6, doc.Headers.Product, header),
		text.NewCol(2, doc.Headers.Quantity, withAlign(header, align.Center)),
		text.NewCol(2, doc.Headers.Rate, withAlign(header, align.Right)),
		text.NewCol(2, doc.Headers.Amount, withAlign(header, align.Right)),
	)
	m.AddRow(1, line.NewCol(12, props.Line{Color: accent, Thickness: 0.6}))

	body := props.Text{Size: 9, Top: 2}
	for _, row := range doc.Rows {
		m.AddRow(8,
			text.NewCol(6, row.Description, body),
			text.NewCol(2, row.Quantity, withAlign(body, align.Center)),
			text.NewCol(2, row.Rate, withAlign(body, align.Right)),
			text.NewCol(2, row.Amount, props.Text{Size: 9, Top: 2, Style: fontstyle.Bold, Align: align.Right}),
		)
	}

	m.AddRow(4)
	for _, l := range doc.Summary {
		style := props.Text{Size: 9}
		if doc.Discount != nil && *doc.Discount == l {
			style.Color = discountColor
		}
		m.AddRow(6,
			col.New(7),
			text.NewCol(3, l.Label, style),
			text.NewCol(2, l.Value, withAlign(style, align.Right)),
		)
	}
	m.AddRow(1, col.New(7), line.NewCol(5, props.Line{Color: accent, Thickness: 0.6}))
	total := props.Text{Size: 11, Style: fontstyle.Bold, Top: 1}
	m.AddRow(8,
		col.New(7),
		text.NewCol(3, doc.Total.Label, total),
		text.NewCol(2, doc.Total.Value, withAlign(total, align.Right)),
	)

	if doc.Notes != "" {
		m.AddRow(6)
		m.AddRow(6, text.NewCol(12, doc.NotesLabel, props.Text{Style: fontstyle.Bold, Color: accent}))
		m.AddAutoRow(text.NewCol(12, doc.Notes, props.Text{Size: 9, Color: mutedColor}))
	}
	if doc.Conditions != "" {
		m.AddRow(6)
		m.AddRow(6, text.NewCol(12, doc.ConditionsLabel, props.Text{Style: fontstyle.Bold, Color: accent}))
		m.AddAutoRow(text.NewCol(12, doc.Conditions, props.Text{Size: 8, Color: mutedColor}))
	}

	generated, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate invoice pdf: %w", err)
	}
	return generated.GetBytes(), nil
}

func metaTexts(doc render.Document, accent *props.Color) []core.Component {
	out := []core.Component{
		text.New(doc.Title, props.Text{Size: 20, Style: fontstyle.Bold, Align: align.Right, Color: accent}),
	}
	top := 11.0
	for _, l := range doc.Meta {
		out = append(out, text.New(l.Label+": "+l.Value, props.Text{Top: top, Size: 9, Align: align.Right, Color: mutedColor}))
		top += 4.5
	}
	return out
}

func withAlign(p props.Text, a align.Type) props.Text {
	p.Align = a
	return p
}

func decodeLogo(dataURL string) ([]byte, extension.Type, error) {
	match := logoPattern.FindStringSubmatch(strings.TrimSpace(dataURL))
	if match == nil {
		return nil, "", ErrUnsupportedLogo
	}
	raw, err := base64.StdEncoding.DecodeString(match[2])
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnsupportedLogo, err)
	}
	if match[1] == "png" {
		return raw, extension.Png, nil
	}
	return raw, extension.Jpg, nil
}

func accentColor(hex string) *props.Color {
	var r, g, b int
	if _, err := fmt.Sscanf(strings.TrimPrefix(hex, "#"), "%02x%02x%02x", &r, &g, &b); err != nil {
		return &props.Color{Red: 15, Green: 23, Blue: 42}
	}
	return &props.Color{Red: r, Green: g, Blue: b}
}
