// Package segment builds customer-level aggregates from the finance fact
// tables and assigns the Pareto/ABC tier: the classic "80% of revenue from
// 20% of customers" cut, computed over the sorted cumulative distribution.
package segment

import (
	"sort"
	"strings"
	"time"

	"github.com/dhe-dashboard/backend-go/internal/domain"
	"github.com/dhe-dashboard/backend-go/internal/normalize"
	"github.com/dhe-dashboard/backend-go/internal/refdata"
	"github.com/dhe-dashboard/backend-go/internal/revision"
)

const (
	vipShare  = 0.80
	goldShare = 0.95

	// Customers with no quote at all sort as most stale.
	noQuoteRecency = 9999

	// A top-tier customer quiet for longer than this is a risk signal.
	atRiskDays = 90
)

// Build aggregates the quote and order facts per customer, outer-joins the
// customer master and classifies every customer. Quote and order sets are
// collapsed to latest-revision-only first so superseded revisions do not
// inflate volume.
func Build(quotes, orders []domain.FinanceFact, master []domain.CustomerMaster, now time.Time) []domain.CustomerProfile {
	quotes = revision.Filter(quotes, factID)
	orders = revision.Filter(orders, factID)

	profiles := map[string]*domain.CustomerProfile{}

	get := func(name string) *domain.CustomerProfile {
		key := strings.TrimSpace(name)
		if p, ok := profiles[key]; ok {
			return p
		}
		p := &domain.CustomerProfile{
			Customer: key,
			LongName: key,
			Owner:    refdata.UnassignedOwner,
		}
		profiles[key] = p
		return p
	}

	// Master list first: customers with zero activity still appear, with
	// zeroed metrics.
	for _, m := range master {
		p := get(m.ShortName)
		if m.LongName != "" {
			p.LongName = m.LongName
		}
		if owner := strings.TrimSpace(m.Owner); owner != "" {
			p.Owner = normalize.UpperTurkish(owner)
		}
	}

	for _, o := range orders {
		p := get(o.Customer)
		p.TotalOrderEUR += o.AmountEUR
		p.OrderCount++
		if p.FirstOrderDate.IsZero() || o.Date.Before(p.FirstOrderDate) {
			p.FirstOrderDate = o.Date
		}
		if o.Date.After(p.LastOrderDate) {
			p.LastOrderDate = o.Date
		}
	}

	for _, q := range quotes {
		p := get(q.Customer)
		p.TotalQuoteEUR += q.AmountEUR
		p.QuoteCount++
		if p.FirstQuoteDate.IsZero() || q.Date.Before(p.FirstQuoteDate) {
			p.FirstQuoteDate = q.Date
		}
		if !q.Date.Before(p.LastQuoteDate) {
			p.LastQuoteDate = q.Date
			p.LastQuoteNo = q.DocumentID
			p.LastQuoteEUR = q.AmountEUR
		}
	}

	out := make([]domain.CustomerProfile, 0, len(profiles))
	for _, p := range profiles {
		if p.OrderCount > 1 {
			span := p.LastOrderDate.Sub(p.FirstOrderDate).Hours() / 24
			p.PurchaseFrequency = span / float64(p.OrderCount-1)
		}
		out = append(out, *p)
	}

	// Descending by quote volume; name breaks ties so output is stable.
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalQuoteEUR != out[j].TotalQuoteEUR {
			return out[i].TotalQuoteEUR > out[j].TotalQuoteEUR
		}
		return out[i].Customer < out[j].Customer
	})

	total := 0.0
	for _, p := range out {
		total += p.TotalQuoteEUR
	}

	cum := 0.0
	for i := range out {
		p := &out[i]
		cum += p.TotalQuoteEUR
		if total > 0 {
			p.CumulativeShare = cum / total
		}
		p.Tier = tierFor(p.TotalQuoteEUR, p.CumulativeShare)

		if p.LastQuoteDate.IsZero() {
			p.RecencyDays = noQuoteRecency
		} else {
			p.RecencyDays = int(now.Sub(p.LastQuoteDate).Hours() / 24)
		}
		p.AtRisk = p.Tier == domain.TierVIP && p.RecencyDays > atRiskDays
	}

	return out
}

// tierFor classifies one customer given its position in the cumulative
// revenue distribution. Zero volume is INACTIVE regardless of position.
func tierFor(totalQuoteEUR, cumulativeShare float64) domain.SegmentTier {
	switch {
	case totalQuoteEUR == 0:
		return domain.TierInactive
	case cumulativeShare <= vipShare:
		return domain.TierVIP
	case cumulativeShare <= goldShare:
		return domain.TierGold
	default:
		return domain.TierStandard
	}
}

func factID(f domain.FinanceFact) string {
	return f.DocumentID
}
