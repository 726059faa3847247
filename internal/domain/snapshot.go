package domain

import "time"

// DropStats counts rows removed during finance fact building, broken down by
// the reason they were dropped. Malformed rows never raise errors; this is
// the only diagnostic the builder exposes.
type DropStats struct {
	Total    int            `json:"total"`
	Kept     int            `json:"kept"`
	Dropped  int            `json:"dropped"`
	ByReason map[string]int `json:"by_reason,omitempty"`
}

// ValidationIssue flags one cell that violates a format expectation.
// Operator visibility only; it never blocks the pipeline.
type ValidationIssue struct {
	Row    int    `json:"row"`
	Column string `json:"column"`
	Reason string `json:"reason"`
	Value  string `json:"value"`
}

// SourceError records the terminal failure of one external source after the
// retry budget was exhausted. The snapshot is still built from the sources
// that succeeded.
type SourceError struct {
	Source string `json:"source"`
	Error  string `json:"error"`
}

// Snapshot is the full output of one pipeline run. It is immutable once
// built; a manual refresh replaces it wholesale under a new epoch.
type Snapshot struct {
	Epoch    int64     `json:"epoch"`
	LoadedAt time.Time `json:"loaded_at"`

	Quotes     []FinanceFact `json:"quotes"`      // all processed quote facts, revisions included
	OpenQuotes []FinanceFact `json:"open_quotes"` // quotes whose id has not become an order
	Orders     []FinanceFact `json:"orders"`

	Customers  []CustomerProfile  `json:"customers"`
	Attendance []AttendanceRecord `json:"attendance"`
	Personnel  []EmploymentWindow `json:"personnel"`
	Products   []InstalledProduct `json:"products"`
	Cities     []CityRegion       `json:"cities"`

	// Holidays are calendar dates formatted as 2006-01-02.
	Holidays map[string]struct{} `json:"holidays"`

	QuoteDrops DropStats         `json:"quote_drops"`
	OrderDrops DropStats         `json:"order_drops"`
	Issues     []ValidationIssue `json:"issues,omitempty"`
	Errors     []SourceError     `json:"source_errors,omitempty"`
}
