// Package format turns invoice values into display text.
package format

import (
	"fmt"
	"strings"
)

// Currencies lists the codes offered by the currency selector, in display order.
var Currencies = []string{"TRY", "EUR", "USD", "GBP", "JPY"}

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"TRY": "₺",
	"GBP": "£",
	"JPY": "¥",
}

// SymbolFor maps a currency code to its symbol. Unknown codes are returned unchanged.
func SymbolFor(code string) string {
	if symbol, ok := symbols[code]; ok {
		return symbol
	}
	return code
}

// Amount renders a value with exactly two decimals and no grouping separators.
func Amount(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

// Money prefixes the formatted amount with the currency symbol.
func Money(value float64, code string) string {
	return SymbolFor(code) + Amount(value)
}

// Quantity drops trailing zeros, so 3 renders as "3" and 1.50 as "1.5".
func Quantity(value float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", value), "0"), ".")
}

// IsKnownCurrency reports whether code is one of the selectable currencies.
func IsKnownCurrency(code string) bool {
	_, ok := symbols[code]
	return ok
}
