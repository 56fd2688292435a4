// Package currency converts and formats amounts across the supported
// currency set. USD is the fixed pivot: every conversion routes through it
// regardless of the document's default currency.
package currency

import (
	"fmt"
	"math"
)

// SupportedCurrencies is the fixed set of 3-letter codes the tracker knows.
// Codes outside this set are never rejected; they degrade to a 1:1 rate and
// symbol-less formatting.
var SupportedCurrencies = []string{
	"USD", "EUR", "GBP", "JPY", "CAD", "AUD",
	"CHF", "CNY", "INR", "MXN", "BRL", "KRW",
}

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CAD": "C$",
	"AUD": "A$",
	"CHF": "Fr",
	"CNY": "¥",
	"INR": "₹",
	"MXN": "MX$",
	"BRL": "R$",
	"KRW": "₩",
}

var names = map[string]string{
	"USD": "US Dollar",
	"EUR": "Euro",
	"GBP": "British Pound",
	"JPY": "Japanese Yen",
	"CAD": "Canadian Dollar",
	"AUD": "Australian Dollar",
	"CHF": "Swiss Franc",
	"CNY": "Chinese Yuan",
	"INR": "Indian Rupee",
	"MXN": "Mexican Peso",
	"BRL": "Brazilian Real",
	"KRW": "South Korean Won",
}

// zeroDecimal currencies are rendered as whole numbers.
var zeroDecimal = map[string]bool{
	"JPY": true,
	"KRW": true,
}

// defaultRates is the USD-pivoted fallback table used when no live rates and
// no cache are available. Fixed values keep output deterministic.
var defaultRates = map[string]float64{
	"USD": 1.0,
	"EUR": 0.92,
	"GBP": 0.79,
	"JPY": 149.50,
	"CAD": 1.36,
	"AUD": 1.52,
	"CHF": 0.88,
	"CNY": 7.24,
	"INR": 83.12,
	"MXN": 17.15,
	"BRL": 4.97,
	"KRW": 1320.50,
}

// IsSupported reports whether code is one of the 12 supported currencies.
func IsSupported(code string) bool {
	_, ok := defaultRates[code]
	return ok
}

// Symbol returns the display symbol for a code, or the code itself for
// unrecognized currencies.
func Symbol(code string) string {
	if s, ok := symbols[code]; ok {
		return s
	}
	return code
}

// Name returns the display name for a code, falling back to the code.
func Name(code string) string {
	if n, ok := names[code]; ok {
		return n
	}
	return code
}

// DefaultRates returns a copy of the built-in fallback rate table.
func DefaultRates() map[string]float64 {
	out := make(map[string]float64, len(defaultRates))
	for k, v := range defaultRates {
		out[k] = v
	}
	return out
}

// Format renders an amount with its currency symbol. Zero-decimal currencies
// (JPY, KRW) are shown as rounded integers, all others with two decimals.
func Format(amount float64, code string) string {
	if zeroDecimal[code] {
		return fmt.Sprintf("%s%.0f", Symbol(code), math.Round(amount))
	}
	return fmt.Sprintf("%s%.2f", Symbol(code), amount)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}
