package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolFor(t *testing.T) {
	cases := map[string]string{
		"USD": "$",
		"EUR": "€",
		"TRY": "₺",
		"GBP": "£",
		"JPY": "¥",
		"CHF": "CHF",
		"":    "",
	}
	for code, want := range cases {
		assert.Equal(t, want, SymbolFor(code), code)
	}
}

func TestAmount(t *testing.T) {
	assert.Equal(t, "31.86", Amount(31.859999999999996))
	assert.Equal(t, "0.00", Amount(0))
	assert.Equal(t, "1234567.50", Amount(1234567.5))
	assert.Equal(t, "-3.00", Amount(-3))
	assert.Equal(t, "₺4.86", Money(4.86, "TRY"))
	assert.Equal(t, "CHF10.00", Money(10, "CHF"))
}

func TestQuantity(t *testing.T) {
	assert.Equal(t, "3", Quantity(3))
	assert.Equal(t, "1.5", Quantity(1.5))
	assert.Equal(t, "0", Quantity(0))
}

func TestFormatInvoiceNumber(t *testing.T) {
	issued := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)

	got, err := FormatInvoiceNumber(DefaultInvoiceNumberTemplate, issued, 4)
	require.NoError(t, err)
	assert.Equal(t, "4", got)

	got, err = FormatInvoiceNumber("INV-{YYYY}{MM}{DD}-{SEQ4}", issued, 12)
	require.NoError(t, err)
	assert.Equal(t, "INV-20250309-0012", got)

	_, err = FormatInvoiceNumber("", issued, 1)
	assert.Error(t, err)

	_, err = FormatInvoiceNumber("{SEQ}", issued, 0)
	assert.Error(t, err)

	_, err = FormatInvoiceNumber("{UNKNOWN}-{SEQ}", issued, 1)
	assert.Error(t, err)
}
