package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/smallbiznis/fatura/internal/invoice/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() render.Document {
	discount := render.Line{Label: "Discount (10%)", Value: "-$3.00"}
	return render.Document{
		Title:       "INVOICE",
		Accent:      "#2563eb",
		CompanyName: "Fatura Ltd",
		Meta:        []render.Line{{Label: "Invoice No", Value: "7"}},
		BillToLabel: "Bill To",
		ClientName:  "ACME",
		Headers:     render.Headers{Product: "Product", Quantity: "Qty", Rate: "Rate", Amount: "Amount"},
		Rows:        []render.Row{{Description: "Widget", Quantity: "3", Rate: "$10.00", Amount: "$30.00"}},
		Summary:     []render.Line{{Label: "Subtotal", Value: "$30.00"}, discount},
		Discount:    &discount,
		Total:       render.Line{Label: "Total", Value: "$31.86"},
		Notes:       "Thanks",
		NotesLabel:  "Notes",
	}
}

func TestGenerateInvoice(t *testing.T) {
	out, err := New().GenerateInvoice(context.Background(), sampleDocument())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateInvoiceCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().GenerateInvoice(ctx, sampleDocument())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecodeLogo(t *testing.T) {
	raw, ext, err := decodeLogo("data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), raw)
	assert.Equal(t, extension.Png, ext)

	_, ext, err = decodeLogo("data:image/jpeg;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, extension.Jpg, ext)

	_, _, err = decodeLogo("https://example.com/logo.png")
	assert.ErrorIs(t, err, ErrUnsupportedLogo)

	_, _, err = decodeLogo("data:image/png;base64,@@@")
	assert.ErrorIs(t, err, ErrUnsupportedLogo)
}

func TestAccentColor(t *testing.T) {
	c := accentColor("#2563eb")
	assert.Equal(t, 37, c.Red)
	assert.Equal(t, 99, c.Green)
	assert.Equal(t, 235, c.Blue)

	assert.Equal(t, 15, accentColor("nope").Red)
}
