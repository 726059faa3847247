package domain

import "time"

// DocumentKind distinguishes quote facts from order facts.
type DocumentKind string

const (
	KindQuote DocumentKind = "QUOTE"
	KindOrder DocumentKind = "ORDER"
)

// Currency is a recognized currency code. The set is closed; anything else
// is rejected at normalization time.
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
	CurrencyTL  Currency = "TL"
	CurrencyTRY Currency = "TRY"
)

// RawRecord is one row fetched from a tabular source, keyed by canonical
// column name. Row is the 1-based sheet position including the header row,
// kept so validation issues can point back at the spreadsheet.
type RawRecord struct {
	Row    int
	Fields map[string]string
}

// Get returns the value of a field, or "" when the column is absent.
func (r RawRecord) Get(key string) string {
	return r.Fields[key]
}

// FinanceFact is a single EUR-normalized quote or order line.
// MarginEUR is always AmountEUR - CostEUR.
type FinanceFact struct {
	DocumentID string       `json:"document_id"`
	Customer   string       `json:"customer"`
	PersonCode string       `json:"person_code"`
	PersonName string       `json:"person_name"`
	Date       time.Time    `json:"date"`
	Year       int          `json:"year"`
	Month      int          `json:"month"`
	Currency   Currency     `json:"currency"`
	AmountEUR  float64      `json:"amount_eur"`
	CostEUR    float64      `json:"cost_eur"`
	MarginEUR  float64      `json:"margin_eur"`
	Kind       DocumentKind `json:"kind"`
}

// SegmentTier is the Pareto/ABC classification of a customer.
type SegmentTier string

const (
	TierVIP      SegmentTier = "VIP"
	TierGold     SegmentTier = "GOLD"
	TierStandard SegmentTier = "STANDARD"
	TierInactive SegmentTier = "INACTIVE"
)

// CustomerMaster is one row of the customer reference sheet.
type CustomerMaster struct {
	ShortName string `json:"short_name"`
	LongName  string `json:"long_name"`
	Owner     string `json:"owner"`
}

// CustomerProfile is the per-customer aggregate produced by the segmentation
// engine. Rebuilt wholesale on every refresh, never partially updated.
type CustomerProfile struct {
	Customer          string      `json:"customer"`
	LongName          string      `json:"long_name"`
	Owner             string      `json:"owner"`
	TotalQuoteEUR     float64     `json:"total_quote_eur"`
	QuoteCount        int         `json:"quote_count"`
	FirstQuoteDate    time.Time   `json:"first_quote_date"`
	LastQuoteDate     time.Time   `json:"last_quote_date"`
	LastQuoteNo       string      `json:"last_quote_no"`
	LastQuoteEUR      float64     `json:"last_quote_eur"`
	TotalOrderEUR     float64     `json:"total_order_eur"`
	OrderCount        int         `json:"order_count"`
	FirstOrderDate    time.Time   `json:"first_order_date"`
	LastOrderDate     time.Time   `json:"last_order_date"`
	PurchaseFrequency float64     `json:"purchase_frequency_days"`
	CumulativeShare   float64     `json:"cumulative_share"`
	Tier              SegmentTier `json:"tier"`
	RecencyDays       int         `json:"recency_days"`
	AtRisk            bool        `json:"at_risk"`
}

// AttendanceStatus is the derived state of a technician on a given day.
type AttendanceStatus string

const (
	StatusActiveField AttendanceStatus = "ACTIVE_FIELD"
	StatusWorkshop    AttendanceStatus = "WORKSHOP"
	StatusOnLeave     AttendanceStatus = "ON_LEAVE"
)

// AttendanceRecord is one technician-day classification. A raw field-log row
// with two technicians yields two records sharing the same row fields.
type AttendanceRecord struct {
	Person   string           `json:"person"`
	Date     time.Time        `json:"date"`
	Year     int              `json:"year"`
	Month    int              `json:"month"`
	Status   AttendanceStatus `json:"status"`
	Customer string           `json:"customer,omitempty"`
	City     string           `json:"city,omitempty"`
	Product  string           `json:"product,omitempty"`
}

// EmploymentWindow bounds capacity calculations for one person.
// A nil End means still employed.
type EmploymentWindow struct {
	Person     string     `json:"person"`
	Department string     `json:"department,omitempty"`
	Start      *time.Time `json:"start,omitempty"`
	End        *time.Time `json:"end,omitempty"`
}

// InstalledProduct is one device from the product registry, tied to the
// customer it was delivered to.
type InstalledProduct struct {
	RecordNo string    `json:"record_no"`
	SerialNo string    `json:"serial_no,omitempty"`
	DeviceNo string    `json:"device_no,omitempty"`
	Customer string    `json:"customer"`
	Date     time.Time `json:"date"`
}

// CityRegion maps a city name to its sales region.
type CityRegion struct {
	City       string `json:"city"`
	RegionID   string `json:"region_id,omitempty"`
	RegionName string `json:"region_name,omitempty"`
}
