// Package refdata bundles the constant reference tables the pipeline needs:
// yearly exchange-rate averages, the personnel code map, and the per-sheet
// column mappings. They are passed into the pipeline entry points as plain
// values so the core stays reproducible and test-injectable.
package refdata

import "github.com/dhe-dashboard/backend-go/internal/domain"

// YearlyRates maps year -> currency -> conversion factor, expressed as
// "1 unit of currency = X EUR". Yearly averages; the monthly table fetched
// at refresh time takes precedence when it has an entry.
var YearlyRates = map[int]map[domain.Currency]float64{
	2017: {domain.CurrencyEUR: 1.0, domain.CurrencyUSD: 0.89, domain.CurrencyGBP: 1.14, domain.CurrencyTL: 0.235, domain.CurrencyTRY: 0.235},
	2018: {domain.CurrencyEUR: 1.0, domain.CurrencyUSD: 0.85, domain.CurrencyGBP: 1.13, domain.CurrencyTL: 0.185, domain.CurrencyTRY: 0.185},
	2019: {domain.CurrencyEUR: 1.0, domain.CurrencyUSD: 0.89, domain.CurrencyGBP: 1.14, domain.CurrencyTL: 0.160, domain.CurrencyTRY: 0.160},
	2020: {domain.CurrencyEUR: 1.0, domain.CurrencyUSD: 0.88, domain.CurrencyGBP: 1.13, domain.CurrencyTL: 0.125, domain.CurrencyTRY: 0.125},
	2021: {domain.CurrencyEUR: 1.0, domain.CurrencyUSD: 0.85, domain.CurrencyGBP: 1.17, domain.CurrencyTL: 0.096, domain.CurrencyTRY: 0.096},
	2022: {domain.CurrencyEUR: 1.0, domain.CurrencyUSD: 0.96, domain.CurrencyGBP: 1.18, domain.CurrencyTL: 0.058, domain.CurrencyTRY: 0.058},
	2023: {domain.CurrencyEUR: 1.0, domain.CurrencyUSD: 0.93, domain.CurrencyGBP: 1.15, domain.CurrencyTL: 0.039, domain.CurrencyTRY: 0.039},
	2024: {domain.CurrencyEUR: 1.0, domain.CurrencyUSD: 0.93, domain.CurrencyGBP: 1.18, domain.CurrencyTL: 0.029, domain.CurrencyTRY: 0.029},
	2025: {domain.CurrencyEUR: 1.0, domain.CurrencyUSD: 0.90, domain.CurrencyGBP: 1.17, domain.CurrencyTL: 0.023, domain.CurrencyTRY: 0.023},
	2026: {domain.CurrencyEUR: 1.0, domain.CurrencyUSD: 0.92, domain.CurrencyGBP: 1.18, domain.CurrencyTL: 0.022, domain.CurrencyTRY: 0.022},
}

// PersonnelMap resolves the spreadsheet's responsible-person codes to display
// names. Both the long codes (order sheet) and the short codes (customer
// sheet) appear in the source data. Unmapped codes are kept as-is so
// unassigned revenue stays visible.
var PersonnelMap = map[string]string{
	"MERTGUNE": "Mert Güneş",
	"OGUZHANB": "Oğuzhan Bayır",
	"FATIHARS": "Fatih Arslan",
	"KAANAKKO": "Kaan Akkocaoğlu",
	"ALIRIZA":  "Ali Rıza Çınar",
	"YUKSELKA": "Yüksel Kaya",
	"SAMETACA": "Samet Acar",
	"OZLEMSUL": "Özlem Suludere",

	"MERT":    "Mert Güneş",
	"OGUZHAN": "Oğuzhan Bayır",
	"FATIH":   "Fatih Arslan",
	"KAAN":    "Kaan Akkocaoğlu",
	"YUKSEL":  "Yüksel Kaya",
	"SAMET":   "Samet Acar",
	"OZLEM":   "Özlem Suludere",
}

// WorkshopCompanyMarker flags field-log rows logged against the home office
// rather than a customer site. Matched as a substring of the Turkish
// upper-cased customer cell.
const WorkshopCompanyMarker = "DHE ENDÜSTRİYEL"

// OnLeaveMarker is the literal customer-cell value meaning the technician
// was on leave that day.
const OnLeaveMarker = "İZİNLİ"

// UnassignedOwner labels customers whose responsible-person cell is empty.
const UnassignedOwner = "BOŞ / SAHİPSİZ"

// MonthNames are the Turkish month labels used by exports.
var MonthNames = map[int]string{
	1: "Ocak", 2: "Şubat", 3: "Mart", 4: "Nisan",
	5: "Mayıs", 6: "Haziran", 7: "Temmuz", 8: "Ağustos",
	9: "Eylül", 10: "Ekim", 11: "Kasım", 12: "Aralık",
}
