// Package rates resolves a monetary value's EUR conversion factor for a
// given (year, month, currency). A monthly table fetched at refresh time is
// preferred; yearly averages fill the gaps for historical data where monthly
// rates were never recorded.
package rates

import (
	"strconv"
	"strings"

	"github.com/dhe-dashboard/backend-go/internal/domain"
)

// MonthKey addresses one entry of the monthly tier.
type MonthKey struct {
	Year     int
	Month    int
	Currency domain.Currency
}

// Table is immutable after construction and rebuilt on every refresh.
type Table struct {
	monthly map[MonthKey]float64
	yearly  map[int]map[domain.Currency]float64
	maxYear int
}

// New builds a rate table from an optional monthly tier and the yearly
// fallback tier. The yearly tier must not be empty.
func New(monthly map[MonthKey]float64, yearly map[int]map[domain.Currency]float64) *Table {
	maxYear := 0
	for y := range yearly {
		if y > maxYear {
			maxYear = y
		}
	}
	if monthly == nil {
		monthly = map[MonthKey]float64{}
	}
	return &Table{monthly: monthly, yearly: yearly, maxYear: maxYear}
}

// Resolve returns the conversion factor for (year, month, currency).
// Lookup order: exact monthly entry, then the yearly average for the year,
// substituting the most recent tabulated year when the requested one is
// absent. A return of 0 means unconvertible; callers must exclude the row
// from monetary aggregates rather than multiply by zero.
func (t *Table) Resolve(year, month int, currency domain.Currency) float64 {
	if r, ok := t.monthly[MonthKey{Year: year, Month: month, Currency: currency}]; ok {
		return r
	}

	target := year
	if _, ok := t.yearly[target]; !ok {
		target = t.maxYear
	}
	return t.yearly[target][currency]
}

// MonthlyCount reports how many monthly entries the table carries.
func (t *Table) MonthlyCount() int {
	return len(t.monthly)
}

// ParseMonthly builds the monthly tier from the raw cells of the rates
// sheet. The first row is expected to hold headers; header spelling varies
// ("Yıl"/"year", "eur"/"euro", "tl"/"try"...), so headers are folded to an
// ASCII-ish lowercase form before matching. Rows whose year or month does
// not parse are skipped.
func ParseMonthly(rows [][]string) map[MonthKey]float64 {
	out := map[MonthKey]float64{}
	if len(rows) < 2 {
		return out
	}

	idx := map[string]int{}
	for i, h := range rows[0] {
		idx[foldHeader(h)] = i
	}

	col := func(names ...string) (int, bool) {
		for _, n := range names {
			if i, ok := idx[n]; ok {
				return i, true
			}
		}
		return 0, false
	}

	yearCol, okY := col("yil", "year")
	monthCol, okM := col("ay", "month")
	if !okY || !okM {
		return out
	}

	currencyCols := []struct {
		codes []domain.Currency
		names []string
	}{
		{[]domain.Currency{domain.CurrencyEUR}, []string{"eur", "euro"}},
		{[]domain.Currency{domain.CurrencyUSD}, []string{"usd", "dolar"}},
		{[]domain.Currency{domain.CurrencyGBP}, []string{"gbp", "sterlin"}},
		// The sheet keeps a single lira column; it feeds both codes.
		{[]domain.Currency{domain.CurrencyTL, domain.CurrencyTRY}, []string{"tl", "try"}},
	}

	for _, row := range rows[1:] {
		year, okY := parseCell(row, yearCol)
		month, okM := parseCell(row, monthCol)
		if !okY || !okM || year <= 0 || month <= 0 {
			continue
		}

		for _, cc := range currencyCols {
			ci, ok := col(cc.names...)
			if !ok {
				continue
			}
			rate, ok := parseRate(row, ci)
			if !ok {
				continue
			}
			for _, code := range cc.codes {
				out[MonthKey{Year: year, Month: month, Currency: code}] = rate
			}
		}
	}

	return out
}

func parseCell(row []string, i int) (int, bool) {
	v, ok := parseRate(row, i)
	if !ok {
		return 0, false
	}
	return int(v), true
}

func parseRate(row []string, i int) (float64, bool) {
	if i >= len(row) {
		return 0, false
	}
	s := strings.TrimSpace(row[i])
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// foldHeader lowers a header and strips the Turkish letters that vary
// between sheet revisions, so "Yıl", "yil" and "YIL" all match.
func foldHeader(h string) string {
	s := strings.ToLower(strings.TrimSpace(h))
	r := strings.NewReplacer("ı", "i", "İ", "i", "i̇", "i", "ş", "s", "ğ", "g", "ü", "u", "ö", "o", "ç", "c")
	return r.Replace(s)
}
