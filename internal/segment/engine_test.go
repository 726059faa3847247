package segment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhe-dashboard/backend-go/internal/domain"
	"github.com/dhe-dashboard/backend-go/internal/refdata"
)

var now = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func quote(id, customer string, amount float64, date time.Time) domain.FinanceFact {
	return domain.FinanceFact{DocumentID: id, Customer: customer, AmountEUR: amount, Date: date, Kind: domain.KindQuote}
}

func order(id, customer string, amount float64, date time.Time) domain.FinanceFact {
	return domain.FinanceFact{DocumentID: id, Customer: customer, AmountEUR: amount, Date: date, Kind: domain.KindOrder}
}

func profileByName(t *testing.T, profiles []domain.CustomerProfile, name string) domain.CustomerProfile {
	t.Helper()
	for _, p := range profiles {
		if p.Customer == name {
			return p
		}
	}
	t.Fatalf("customer %q not in profiles", name)
	return domain.CustomerProfile{}
}

func TestBuildParetoTiers(t *testing.T) {
	recent := now.AddDate(0, 0, -10)
	quotes := []domain.FinanceFact{
		quote("1", "BIG", 81, recent),
		quote("2", "MID", 14, recent),
		quote("3", "SMALL", 5, recent),
		quote("4", "SILENT", 0, recent),
	}

	profiles := Build(quotes, nil, nil, now)

	// BIG alone is 81% cumulative: past the 80% line, so GOLD not VIP.
	assert.Equal(t, domain.TierGold, profileByName(t, profiles, "BIG").Tier)
	// MID lands at 95% cumulative, still GOLD.
	assert.Equal(t, domain.TierGold, profileByName(t, profiles, "MID").Tier)
	assert.Equal(t, domain.TierStandard, profileByName(t, profiles, "SMALL").Tier)
	assert.Equal(t, domain.TierInactive, profileByName(t, profiles, "SILENT").Tier)
}

func TestBuildVIPTier(t *testing.T) {
	recent := now.AddDate(0, 0, -10)
	quotes := []domain.FinanceFact{
		quote("1", "A", 50, recent),
		quote("2", "B", 30, recent),
		quote("3", "C", 15, recent),
		quote("4", "D", 5, recent),
	}

	profiles := Build(quotes, nil, nil, now)

	assert.Equal(t, domain.TierVIP, profileByName(t, profiles, "A").Tier)      // 50%
	assert.Equal(t, domain.TierVIP, profileByName(t, profiles, "B").Tier)      // 80%
	assert.Equal(t, domain.TierGold, profileByName(t, profiles, "C").Tier)     // 95%
	assert.Equal(t, domain.TierStandard, profileByName(t, profiles, "D").Tier) // 100%
}

func TestBuildCollapsesRevisionsBeforeAggregating(t *testing.T) {
	recent := now.AddDate(0, 0, -5)
	quotes := []domain.FinanceFact{
		quote("100", "ACME", 1000, recent),
		quote("100R1", "ACME", 1200, recent),
		quote("100R2", "ACME", 1500, recent),
	}

	profiles := Build(quotes, nil, nil, now)
	p := profileByName(t, profiles, "ACME")

	// Only the latest revision counts; summing all three would inflate volume.
	assert.Equal(t, 1500.0, p.TotalQuoteEUR)
	assert.Equal(t, 1, p.QuoteCount)
	assert.Equal(t, "100R2", p.LastQuoteNo)
}

func TestBuildOuterJoinWithMaster(t *testing.T) {
	master := []domain.CustomerMaster{
		{ShortName: "ACME", LongName: "Acme Makine Sanayi", Owner: "mert"},
		{ShortName: "IDLE", LongName: "Idle Co"},
	}
	quotes := []domain.FinanceFact{quote("1", "UNKNOWN", 100, now.AddDate(0, 0, -1))}

	profiles := Build(quotes, nil, master, now)
	require.Len(t, profiles, 3)

	acme := profileByName(t, profiles, "ACME")
	assert.Equal(t, "Acme Makine Sanayi", acme.LongName)
	assert.Equal(t, "MERT", acme.Owner)
	assert.Equal(t, domain.TierInactive, acme.Tier)

	idle := profileByName(t, profiles, "IDLE")
	assert.Equal(t, refdata.UnassignedOwner, idle.Owner)
	assert.Equal(t, noQuoteRecency, idle.RecencyDays)

	// Activity for a customer missing from the master still appears.
	unknown := profileByName(t, profiles, "UNKNOWN")
	assert.Equal(t, "UNKNOWN", unknown.LongName)
	assert.Equal(t, refdata.UnassignedOwner, unknown.Owner)
}

func TestBuildRecencyAndRisk(t *testing.T) {
	quotes := []domain.FinanceFact{
		quote("1", "STALE", 90, now.AddDate(0, 0, -120)),
		quote("2", "FRESH", 10, now.AddDate(0, 0, -5)),
	}

	profiles := Build(quotes, nil, nil, now)

	stale := profileByName(t, profiles, "STALE")
	assert.Equal(t, domain.TierGold, stale.Tier) // 90% cumulative
	assert.Equal(t, 120, stale.RecencyDays)
	assert.False(t, stale.AtRisk, "risk flag is VIP-only")
}

func TestBuildAtRiskVIP(t *testing.T) {
	quotes := []domain.FinanceFact{
		quote("1", "WHALE", 70, now.AddDate(0, 0, -120)),
		quote("2", "OTHER", 30, now.AddDate(0, 0, -5)),
	}

	profiles := Build(quotes, nil, nil, now)

	whale := profileByName(t, profiles, "WHALE")
	require.Equal(t, domain.TierVIP, whale.Tier)
	assert.True(t, whale.AtRisk, "VIP quiet for 120 days is at risk")
}

func TestBuildOrderMetrics(t *testing.T) {
	orders := []domain.FinanceFact{
		order("S1", "ACME", 100, now.AddDate(0, 0, -40)),
		order("S2", "ACME", 200, now.AddDate(0, 0, -20)),
		order("S3", "ACME", 300, now.AddDate(0, 0, -10)),
	}

	profiles := Build(nil, orders, nil, now)
	p := profileByName(t, profiles, "ACME")

	assert.Equal(t, 600.0, p.TotalOrderEUR)
	assert.Equal(t, 3, p.OrderCount)
	// 30 days between first and last order across 2 gaps.
	assert.InDelta(t, 15.0, p.PurchaseFrequency, 1e-9)
}
