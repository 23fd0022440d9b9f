// Package currencyutils detects currency codes embedded in raw value tokens
// and converts the numeric portion to a signed decimal, resolving
// locale-ambiguous separators.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Amounts outside this magnitude range are rejected as corrupt.
var (
	maxMagnitude = decimal.NewFromInt(1_000_000_000)
	minMagnitude = decimal.RequireFromString("0.000001")
)

// currencyPattern maps a detection regex to an ISO code. The list is ordered:
// multi-character prefixes first so "R$" resolves to BRL before the bare "$"
// pattern can claim it for USD, then single-character symbols, then whole-word
// ISO codes.
type currencyPattern struct {
	re   *regexp.Regexp
	code string
}

var currencyPatterns = []currencyPattern{
	// Multi-character prefixes.
	{regexp.MustCompile(`US\$`), "USD"},
	{regexp.MustCompile(`C\$`), "CAD"},
	{regexp.MustCompile(`A\$`), "AUD"},
	{regexp.MustCompile(`R\$`), "BRL"},
	{regexp.MustCompile(`HK\$`), "HKD"},
	{regexp.MustCompile(`NZ\$`), "NZD"},
	{regexp.MustCompile(`S\$`), "SGD"},
	{regexp.MustCompile(`\bRM`), "MYR"},
	{regexp.MustCompile(`\bRp`), "IDR"},
	{regexp.MustCompile(`\bRs\.?`), "INR"},

	// Single-character symbols, only reachable once the prefixes above are
	// ruled out.
	{regexp.MustCompile(`₹`), "INR"},
	{regexp.MustCompile(`€`), "EUR"},
	{regexp.MustCompile(`£`), "GBP"},
	{regexp.MustCompile(`₱`), "PHP"},
	{regexp.MustCompile(`₽`), "RUB"},
	{regexp.MustCompile(`₩`), "KRW"},
	{regexp.MustCompile(`฿`), "THB"},
	{regexp.MustCompile(`₿`), "BTC"},
	{regexp.MustCompile(`\$`), "USD"},
	{regexp.MustCompile(`¥`), "JPY"},
	{regexp.MustCompile(`￥`), "CNY"},

	// Whole-word ISO codes.
	{regexp.MustCompile(`\bUSD\b`), "USD"},
	{regexp.MustCompile(`\bEUR\b`), "EUR"},
	{regexp.MustCompile(`\bGBP\b`), "GBP"},
	{regexp.MustCompile(`\bINR\b`), "INR"},
	{regexp.MustCompile(`\bJPY\b`), "JPY"},
	{regexp.MustCompile(`\bCAD\b`), "CAD"},
	{regexp.MustCompile(`\bAUD\b`), "AUD"},
	{regexp.MustCompile(`\bCHF\b`), "CHF"},
	{regexp.MustCompile(`\bCNY\b`), "CNY"},
	{regexp.MustCompile(`\bSEK\b`), "SEK"},
	{regexp.MustCompile(`\bNOK\b`), "NOK"},
	{regexp.MustCompile(`\bDKK\b`), "DKK"},
	{regexp.MustCompile(`\bPLN\b`), "PLN"},
	{regexp.MustCompile(`\bCZK\b`), "CZK"},
	{regexp.MustCompile(`\bHUF\b`), "HUF"},
	{regexp.MustCompile(`\bRUB\b`), "RUB"},
	{regexp.MustCompile(`\bBRL\b`), "BRL"},
	{regexp.MustCompile(`\bMXN\b`), "MXN"},
	{regexp.MustCompile(`\bZAR\b`), "ZAR"},
	{regexp.MustCompile(`\bKRW\b`), "KRW"},
	{regexp.MustCompile(`\bSGD\b`), "SGD"},
	{regexp.MustCompile(`\bHKD\b`), "HKD"},
	{regexp.MustCompile(`\bNZD\b`), "NZD"},
	{regexp.MustCompile(`\bTHB\b`), "THB"},
	{regexp.MustCompile(`\bMYR\b`), "MYR"},
	{regexp.MustCompile(`\bIDR\b`), "IDR"},
	{regexp.MustCompile(`\bPHP\b`), "PHP"},
	{regexp.MustCompile(`\bKWD\b`), "KWD"},
	{regexp.MustCompile(`\bBHD\b`), "BHD"},
	{regexp.MustCompile(`\bBTC\b`), "BTC"},
}

var nonNumericRe = regexp.MustCompile(`[^\d.,\-+]`)

// DetectCurrency returns the first currency pattern matching the raw token,
// or fallback when nothing matches.
func DetectCurrency(token, fallback string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return fallback
	}
	for _, p := range currencyPatterns {
		if p.re.MatchString(token) {
			return p.code
		}
	}
	return fallback
}

// ParseAmount parses a raw value token into a signed decimal and a currency
// code. The fallback currency is used when no symbol or code is present.
func ParseAmount(token, fallback string) (decimal.Decimal, string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return decimal.Zero, fallback, fmt.Errorf("empty amount token")
	}

	currency := DetectCurrency(token, fallback)

	cleaned := nonNumericRe.ReplaceAllString(token, "")
	if cleaned == "" || !strings.ContainsAny(cleaned, "0123456789") {
		return decimal.Zero, currency, fmt.Errorf("no numeric value in %q", token)
	}

	cleaned = resolveSeparators(cleaned)

	negative := strings.HasPrefix(cleaned, "-")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "+", "")

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, currency, fmt.Errorf("cannot parse amount %q: %w", token, err)
	}
	if negative {
		amount = amount.Neg()
	}

	abs := amount.Abs()
	if abs.GreaterThan(maxMagnitude) {
		return decimal.Zero, currency, fmt.Errorf("amount %s exceeds sane magnitude", amount)
	}
	if !abs.IsZero() && abs.LessThan(minMagnitude) {
		return decimal.Zero, currency, fmt.Errorf("amount %s below sane magnitude", amount)
	}

	return amount, currency, nil
}

// resolveSeparators disambiguates decimal versus thousands separators. When
// both comma and dot occur, whichever occurs later is the decimal separator.
// A lone comma is decimal when at most two digits follow it.
func resolveSeparators(s string) string {
	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")

	switch {
	case hasComma && hasDot:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			// European style: 1.234,56
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			// US style: 1,234.56
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		idx := strings.LastIndex(s, ",")
		if tail := s[idx+1:]; len(tail) >= 1 && len(tail) <= 2 {
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	return s
}
