package currencyutils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Convention describes how a currency renders amounts.
type Convention struct {
	Symbol        string
	SymbolAfter   bool
	DecimalPlaces int32
	ThousandSep   string
	DecimalSep    string
}

// conventions is an immutable table constructed at process start and shared
// by reference. Codes not listed fall back to the USD convention with the
// code itself as symbol.
var conventions = map[string]Convention{
	"USD": {Symbol: "$", DecimalPlaces: 2, ThousandSep: ",", DecimalSep: "."},
	"EUR": {Symbol: "€", SymbolAfter: true, DecimalPlaces: 2, ThousandSep: ".", DecimalSep: ","},
	"GBP": {Symbol: "£", DecimalPlaces: 2, ThousandSep: ",", DecimalSep: "."},
	"INR": {Symbol: "₹", DecimalPlaces: 2, ThousandSep: ",", DecimalSep: "."},
	"JPY": {Symbol: "¥", DecimalPlaces: 0, ThousandSep: ",", DecimalSep: "."},
	"CNY": {Symbol: "￥", DecimalPlaces: 2, ThousandSep: ",", DecimalSep: "."},
	"CHF": {Symbol: "CHF", SymbolAfter: true, DecimalPlaces: 2, ThousandSep: "'", DecimalSep: "."},
	"CAD": {Symbol: "C$", DecimalPlaces: 2, ThousandSep: ",", DecimalSep: "."},
	"AUD": {Symbol: "A$", DecimalPlaces: 2, ThousandSep: ",", DecimalSep: "."},
	"BRL": {Symbol: "R$", DecimalPlaces: 2, ThousandSep: ".", DecimalSep: ","},
	"SEK": {Symbol: "kr", SymbolAfter: true, DecimalPlaces: 2, ThousandSep: " ", DecimalSep: ","},
	"NOK": {Symbol: "kr", SymbolAfter: true, DecimalPlaces: 2, ThousandSep: " ", DecimalSep: ","},
	"DKK": {Symbol: "kr", SymbolAfter: true, DecimalPlaces: 2, ThousandSep: ".", DecimalSep: ","},
	"PLN": {Symbol: "zł", SymbolAfter: true, DecimalPlaces: 2, ThousandSep: " ", DecimalSep: ","},
	"CZK": {Symbol: "Kč", SymbolAfter: true, DecimalPlaces: 2, ThousandSep: " ", DecimalSep: ","},
	"HUF": {Symbol: "Ft", SymbolAfter: true, DecimalPlaces: 0, ThousandSep: " ", DecimalSep: ","},
	"RUB": {Symbol: "₽", SymbolAfter: true, DecimalPlaces: 2, ThousandSep: " ", DecimalSep: ","},
	"MXN": {Symbol: "$", DecimalPlaces: 2, ThousandSep: ",", DecimalSep: "."},
	"ZAR": {Symbol: "R", DecimalPlaces: 2, ThousandSep: ",", DecimalSep: "."},
	"KRW": {Symbol: "₩", DecimalPlaces: 0, ThousandSep: ",", DecimalSep: "."},
	"SGD": {Symbol: "S$", DecimalPlaces: 2, ThousandSep: ",", DecimalSep: "."},
	"HKD": {Symbol: "HK$", DecimalPlaces: 2, ThousandSep: ",", DecimalSep: "."},
	"NZD": {Symbol: "NZ$", DecimalPlaces: 2, ThousandSep: ",", DecimalSep: "."},
	"THB": {Symbol: "฿", DecimalPlaces: 2, ThousandSep: ",", DecimalSep: "."},
	"MYR": {Symbol: "RM", DecimalPlaces: 2, ThousandSep: ",", DecimalSep: "."},
	"IDR": {Symbol: "Rp", DecimalPlaces: 0, ThousandSep: ".", DecimalSep: ","},
	"PHP": {Symbol: "₱", DecimalPlaces: 2, ThousandSep: ",", DecimalSep: "."},
	"KWD": {Symbol: "KWD", SymbolAfter: true, DecimalPlaces: 3, ThousandSep: ",", DecimalSep: "."},
	"BHD": {Symbol: "BHD", SymbolAfter: true, DecimalPlaces: 3, ThousandSep: ",", DecimalSep: "."},
	"BTC": {Symbol: "₿", DecimalPlaces: 8, ThousandSep: ",", DecimalSep: "."},
}

// ConventionFor returns the formatting convention for a currency code.
func ConventionFor(code string) Convention {
	if c, ok := conventions[strings.ToUpper(code)]; ok {
		return c
	}
	c := conventions["USD"]
	c.Symbol = strings.ToUpper(code) + " "
	return c
}

// FormatAmount renders an amount in the currency's own convention, e.g.
// "$1,234.56", "1.234,56 €", "¥1,200".
func FormatAmount(amount decimal.Decimal, code string) string {
	conv := ConventionFor(code)

	fixed := amount.Abs().StringFixed(conv.DecimalPlaces)

	intPart := fixed
	fracPart := ""
	if i := strings.Index(fixed, "."); i >= 0 {
		intPart, fracPart = fixed[:i], fixed[i+1:]
	}

	grouped := groupThousands(intPart, conv.ThousandSep)
	number := grouped
	if fracPart != "" {
		number = grouped + conv.DecimalSep + fracPart
	}

	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}

	if conv.SymbolAfter {
		return sign + number + " " + conv.Symbol
	}
	return sign + conv.Symbol + number
}

func groupThousands(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)
	return strings.Join(parts, sep)
}
