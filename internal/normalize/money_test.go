package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dhe-dashboard/backend-go/internal/domain"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"turkish convention", "1.234,56", 1234.56},
		{"us convention", "1,234.56", 1234.56},
		{"plain integer", "500", 500},
		{"empty", "", 0},
		{"whitespace only", "   ", 0},
		{"garbage", "garbage", 0},
		{"trailing currency", "1.000,50 TL", 1000.50},
		{"currency glued", "250EUR", 250},
		{"lone comma is decimal", "12,5", 12.5},
		{"dot with three digits is thousands", "1.234", 1234},
		{"dot with two digits is decimal", "1.23", 1.23},
		{"dot with four digits is decimal", "1.2345", 1.2345},
		{"large turkish amount", "1.234.567,89", 1234567.89},
		{"large us amount", "12,345,678.9", 12345678.9},
		{"negative sign stripped", "-100", 100},
		{"zero", "0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseMoney(tt.in), 1e-9)
		})
	}
}

func TestParseMoneyIdempotentOnClean(t *testing.T) {
	// A value already in canonical form must survive unchanged.
	assert.Equal(t, 1234.56, ParseMoney("1234.56"))
}

func TestCurrencyCode(t *testing.T) {
	tests := []struct {
		in    string
		want  domain.Currency
		valid bool
	}{
		{"EUR", domain.CurrencyEUR, true},
		{"usd ", domain.CurrencyUSD, true},
		{" gbp", domain.CurrencyGBP, true},
		{"tl", domain.CurrencyTL, true},
		{"TRY", domain.CurrencyTRY, true},
		{"XYZ", "", false},
		{"", "", false},
		{"EURO", "", false},
		{"€", "", false},
	}

	for _, tt := range tests {
		got, ok := CurrencyCode(tt.in)
		assert.Equal(t, tt.valid, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}
