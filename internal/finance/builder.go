// Package finance turns raw quote/order rows into EUR-normalized facts.
// Every failure mode is "drop the row, continue": a single malformed row
// must never abort the batch, and the only diagnostic is the aggregate drop
// count per reason.
package finance

import (
	"strings"
	"time"

	"github.com/dhe-dashboard/backend-go/internal/domain"
	"github.com/dhe-dashboard/backend-go/internal/normalize"
	"github.com/dhe-dashboard/backend-go/internal/rates"
	"github.com/dhe-dashboard/backend-go/internal/refdata"
)

// DateLayout is the strict source date format (DD.MM.YYYY).
const DateLayout = "02.01.2006"

// Drop reasons reported in DropStats.ByReason.
const (
	ReasonBadCurrency = "invalid_currency"
	ReasonBadDate     = "invalid_date"
	ReasonZeroAmount  = "zero_amount"
)

// Builder derives FinanceFacts of one document kind. Rates and the
// personnel map are injected so runs are reproducible.
type Builder struct {
	Kind      domain.DocumentKind
	Rates     *rates.Table
	Personnel map[string]string
}

// outcome is the tagged result of validating one raw row: either a fact or
// a rejection reason, never both.
type outcome struct {
	fact   domain.FinanceFact
	reject string
}

// Build processes the rows in order and returns the facts that survive
// validation plus drop statistics. Rejected rows are counted, never
// surfaced as errors.
func (b *Builder) Build(rows []domain.RawRecord) ([]domain.FinanceFact, domain.DropStats) {
	stats := domain.DropStats{
		Total:    len(rows),
		ByReason: map[string]int{},
	}

	facts := make([]domain.FinanceFact, 0, len(rows))
	for _, row := range rows {
		o := b.buildRow(row)
		if o.reject != "" {
			stats.Dropped++
			stats.ByReason[o.reject]++
			continue
		}
		facts = append(facts, o.fact)
	}
	stats.Kept = len(facts)
	return facts, stats
}

func (b *Builder) buildRow(row domain.RawRecord) outcome {
	id := strings.TrimSpace(row.Get(refdata.ColDocumentNo))

	currency, ok := normalize.CurrencyCode(row.Get(refdata.ColCurrency))
	if !ok {
		return outcome{reject: ReasonBadCurrency}
	}

	date, err := time.Parse(DateLayout, strings.TrimSpace(row.Get(refdata.ColDate)))
	if err != nil {
		return outcome{reject: ReasonBadDate}
	}

	amountRaw := normalize.ParseMoney(row.Get(refdata.ColAmount))
	costRaw := normalize.ParseMoney(row.Get(refdata.ColCost))

	rate := b.Rates.Resolve(date.Year(), int(date.Month()), currency)
	amountEUR := amountRaw * rate
	costEUR := costRaw * rate

	// A zero converted amount means either no real transaction or an
	// unconvertible currency; both would corrupt aggregates if kept.
	if amountEUR == 0 {
		return outcome{reject: ReasonZeroAmount}
	}

	code := normalize.UpperTurkish(strings.TrimSpace(row.Get(refdata.ColPerson)))
	name, mapped := b.Personnel[code]
	if !mapped {
		// Unmapped codes keep the raw code as display name; unassigned
		// revenue must still be visible.
		name = code
	}

	return outcome{fact: domain.FinanceFact{
		DocumentID: id,
		Customer:   strings.TrimSpace(row.Get(refdata.ColCustomer)),
		PersonCode: code,
		PersonName: name,
		Date:       date,
		Year:       date.Year(),
		Month:      int(date.Month()),
		Currency:   currency,
		AmountEUR:  amountEUR,
		CostEUR:    costEUR,
		MarginEUR:  amountEUR - costEUR,
		Kind:       b.Kind,
	}}
}

// SplitOpenQuotes separates quotes that have not been converted into orders.
// A quote whose document number also appears among the order numbers is
// considered converted and excluded from the open set.
func SplitOpenQuotes(quotes, orders []domain.FinanceFact) []domain.FinanceFact {
	orderIDs := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		orderIDs[o.DocumentID] = struct{}{}
	}

	open := make([]domain.FinanceFact, 0, len(quotes))
	for _, q := range quotes {
		if _, converted := orderIDs[q.DocumentID]; converted {
			continue
		}
		open = append(open, q)
	}
	return open
}
