package normalize

import (
	"strconv"
	"strings"

	"github.com/dhe-dashboard/backend-go/internal/domain"
)

// validCurrencies is the closed set of recognized currency codes. Anything
// outside it is treated as malformed and the row is rejected upstream rather
// than defaulted, so financial totals are never silently misrepresented.
var validCurrencies = map[domain.Currency]bool{
	domain.CurrencyEUR: true,
	domain.CurrencyUSD: true,
	domain.CurrencyGBP: true,
	domain.CurrencyTL:  true,
	domain.CurrencyTRY: true,
}

// ParseMoney parses a money cell that may use either the Turkish convention
// ("1.234,56") or the US convention ("1,234.56"), possibly with a trailing
// currency annotation ("1.000 TL"). When both separators occur, the one
// appearing last is the decimal separator. A lone comma is decimal. A lone
// dot is a thousands separator only when exactly three digits follow it;
// "1.234" parses as 1234 while "1.23" parses as 1.23.
//
// Unparsable input yields 0. The caller decides whether a zero amount means
// the row should be dropped.
func ParseMoney(text string) float64 {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0
	}
	// Discard everything after the first space ("1.000,50 EUR" -> "1.000,50").
	if i := strings.IndexByte(s, ' '); i >= 0 {
		s = s[:i]
	}

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	s = b.String()
	if s == "" {
		return 0
	}

	dot := strings.LastIndexByte(s, '.')
	comma := strings.LastIndexByte(s, ',')

	switch {
	case dot >= 0 && comma >= 0:
		if dot > comma {
			// US: 1,234.56
			s = strings.ReplaceAll(s, ",", "")
		} else {
			// TR: 1.234,56
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		}
	case comma >= 0:
		// A lone comma is always decimal.
		s = strings.ReplaceAll(s, ",", ".")
	case dot >= 0:
		// A single dot followed by exactly three digits reads as a Turkish
		// thousands separator. Dashboard input is TR-heavy, so "1.000" means
		// one thousand; "1.23" stays decimal. Known ambiguity, kept as-is.
		parts := strings.Split(s, ".")
		if len(parts) == 2 && len(parts[1]) == 3 {
			s = parts[0] + parts[1]
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// CurrencyCode trims and upper-cases a raw currency cell and checks it
// against the recognized set. The second return is false for anything
// outside {EUR, USD, GBP, TL, TRY}, including empty input.
func CurrencyCode(text string) (domain.Currency, bool) {
	c := domain.Currency(strings.ToUpper(strings.TrimSpace(text)))
	if !validCurrencies[c] {
		return "", false
	}
	return c, true
}
