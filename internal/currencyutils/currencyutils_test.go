package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectCurrency(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{"dollar sign", "$100.00", "USD"},
		{"euro sign", "€89,99", "EUR"},
		{"pound sign", "£12.50", "GBP"},
		{"brazilian prefix beats bare dollar", "R$250,50", "BRL"},
		{"canadian prefix", "C$40.00", "CAD"},
		{"hong kong prefix", "HK$500", "HKD"},
		{"rupiah prefix", "Rp10000", "IDR"},
		{"iso code word", "100.00 CHF", "CHF"},
		{"yen", "¥1200", "JPY"},
		{"no marker falls back", "123.45", "EUR"},
		{"empty falls back", "", "EUR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectCurrency(tt.token, "EUR"))
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		amount   string
		currency string
	}{
		{"plain", "123.45", "123.45", "USD"},
		{"us thousands", "1,234.56", "1234.56", "USD"},
		{"european thousands", "1.234,56", "1234.56", "USD"},
		{"euro comma decimal", "€89,99", "89.99", "EUR"},
		{"brazilian", "R$250,50", "250.50", "BRL"},
		{"negative", "-45.90", "-45.90", "USD"},
		{"sign with symbol", "-$45.90", "-45.90", "USD"},
		{"comma thousands only", "1,234", "1234", "USD"},
		{"iso code suffix", "100.00 CHF", "100.00", "CHF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, currency, err := ParseAmount(tt.token, "USD")
			require.NoError(t, err)
			assert.True(t, amount.Equal(decimal.RequireFromString(tt.amount)),
				"got %s, want %s", amount, tt.amount)
			assert.Equal(t, tt.currency, currency)
		})
	}
}

func TestParseAmountRejections(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"no digits", "CHF"},
		{"symbols only", "$-"},
		{"above magnitude bound", "1000000001"},
		{"below magnitude bound", "0.0000001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseAmount(tt.token, "USD")
			assert.Error(t, err)
		})
	}
}

func TestParseAmountZeroAllowed(t *testing.T) {
	amount, _, err := ParseAmount("0.00", "USD")
	require.NoError(t, err)
	assert.True(t, amount.IsZero())
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		code   string
		want   string
	}{
		{"usd", "1234.56", "USD", "$1,234.56"},
		{"eur symbol after", "1234.56", "EUR", "1.234,56 €"},
		{"jpy no decimals", "1234", "JPY", "¥1,234"},
		{"chf apostrophe grouping", "12345.00", "CHF", "12'345.00 CHF"},
		{"negative", "-45.90", "USD", "-$45.90"},
		{"unknown code", "10.00", "XXX", "XXX 10.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatAmount(decimal.RequireFromString(tt.amount), tt.code)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	// One currency per decimal-place class: 0, 2, 3, and 8.
	tests := []struct {
		code   string
		amount string
	}{
		{"JPY", "123456"},
		{"USD", "1234.56"},
		{"EUR", "9876.54"},
		{"BHD", "1234.567"},
		{"BTC", "0.12345678"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			want := decimal.RequireFromString(tt.amount)
			formatted := FormatAmount(want, tt.code)

			got, currency, err := ParseAmount(formatted, tt.code)
			require.NoError(t, err, "formatted token: %q", formatted)
			assert.Equal(t, tt.code, currency)
			assert.True(t, got.Equal(want), "round trip %q -> %q -> %s", tt.amount, formatted, got)
		})
	}
}
