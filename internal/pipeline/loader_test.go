package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhe-dashboard/backend-go/internal/domain"
	"github.com/dhe-dashboard/backend-go/internal/finance"
)

type fakeProvider struct {
	tables map[string][][]string
	fail   map[string]error
}

func (f *fakeProvider) FetchTable(_ context.Context, source, sheet string) ([][]string, error) {
	key := source + "/" + sheet
	if err, ok := f.fail[key]; ok {
		return nil, err
	}
	rows, ok := f.tables[key]
	if !ok {
		return nil, errors.New("no such sheet: " + key)
	}
	return rows, nil
}

func testSheets() SheetConfig {
	return SheetConfig{
		Data:          "data",
		FieldLog:      "saha",
		Quotes:        "teklif",
		Orders:        "siparis",
		Customers:     "müsteri",
		Products:      "ürün",
		Rates:         "kurlar",
		Personnel:     "Personel",
		Holidays:      "Tatiller",
		Cities:        "sehirler",
		FieldLogYears: []string{"2025"},
	}
}

func testTables() map[string][][]string {
	return map[string][][]string{
		"data/teklif": {
			{"Teklif No", "Müşteri", "Sorumlu", "Tarih", "Tutar", "Maliyet", "Para Birimi"},
			{"T-100", "ACME", "MERTGUNE", "15.03.2025", "1.000", "400", "EUR"},
			{"T-100R1", "ACME", "MERTGUNE", "18.03.2025", "2.000", "800", "EUR"},
			{"T-200", "ACME", "MERT", "10.03.2025", "500", "", "EUR"},
			{"T-300", "ACME", "MERT", "10.03.2025", "750", "", "XXX"},
			{"T-400", "GAMMA", "KAAN", "05.03.2025", "2.000", "", "EUR"},
		},
		"data/siparis": {
			{"Sipariş No", "Müşteri", "Sorumlu", "Tarih", "Tutar", "Maliyet", "Para Birimi"},
			{"T-200", "ACME", "MERT", "20.03.2025", "500", "100", "EUR"},
		},
		"data/müsteri": {
			{"Kısa Ad", "Müşteri Adı", "Sorumlu"},
			{"ACME", "ACME Endüstri A.Ş.", "mert"},
			{"BETA", "Beta Makina Ltd.", ""},
		},
		"data/ürün": {
			{"Kayıt No", "Seri No", "Cihaz No", "Müşteri", "Tarih"},
			{"K-1", "SN-77", "C-12", "acme", "05.06.2023"},
		},
		"data/sehirler": {
			{"SehirAd", "BolgeId", "BolgeAd"},
			{"İstanbul", "1", "Marmara"},
		},
		"data/kurlar": {
			{"Yıl", "Ay", "EUR", "USD", "GBP", "TL"},
			{"2025", "3", "1", "0,9", "1,15", "0,03"},
		},
		"data/Personel": {
			{"Ad Soyad", "Departman", "İşe Giriş", "İşten Çıkış"},
			{"Mert Güneş", "Servis", "01.02.2020", ""},
		},
		"data/Tatiller": {
			{"Tarih", "Açıklama"},
			{"01.01.2025", "Yılbaşı"},
		},
		"saha/2025": {
			{"2025 SERVİS PROGRAMI"},
			{"Tarih", "Teknisyen 1", "Teknisyen 2", "Müşteri", "Şehir", "Servis Ürünü", "Sorumlu"},
			{"12.03.2025", "Mert Güneş", "", "ACME", "İstanbul", "Pompa Revizyonu", "MERT"},
			{"", "Mert Güneş", "", "ACME", "İstanbul", "Pompa Revizyonu", "MERT"},
			{"13.03.2025", "", "", "ACME", "İstanbul", "Pompa Revizyonu", "MERT"},
		},
	}
}

func newTestLoader(p *fakeProvider) *Loader {
	l := NewLoader(p, testSheets())
	l.nowFn = func() time.Time {
		return time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	}
	return l
}

func TestLoadBuildsSnapshot(t *testing.T) {
	l := newTestLoader(&fakeProvider{tables: testTables()})

	snap, err := l.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Empty(t, snap.Errors)

	// T-300 is dropped for its unknown currency, the other four survive.
	require.Len(t, snap.Quotes, 4)
	assert.Equal(t, 1, snap.QuoteDrops.ByReason[finance.ReasonBadCurrency])
	require.Len(t, snap.Orders, 1)

	// T-200 became an order, so the T-100 revisions and T-400 stay open.
	require.Len(t, snap.OpenQuotes, 3)
	for _, q := range snap.OpenQuotes {
		assert.NotEqual(t, "T-200", q.DocumentID)
	}

	// EUR rate 1: amounts carry through unchanged.
	assert.InDelta(t, 1000.0, snap.Quotes[0].AmountEUR, 1e-9)
	assert.Equal(t, "Mert Güneş", snap.Quotes[0].PersonName)
}

func TestLoadCustomerSegments(t *testing.T) {
	l := newTestLoader(&fakeProvider{tables: testTables()})

	snap, err := l.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Customers, 3)

	byName := make(map[string]domain.CustomerProfile)
	for _, c := range snap.Customers {
		byName[c.Customer] = c
	}

	// Revision collapse keeps T-100R1 only: ACME totals 2000+500 of 4500.
	acme, ok := byName["ACME"]
	require.True(t, ok)
	assert.Equal(t, domain.TierVIP, acme.Tier)
	assert.Equal(t, "MERT", acme.Owner)
	assert.InDelta(t, 2500.0, acme.TotalQuoteEUR, 1e-9)

	gamma, ok := byName["GAMMA"]
	require.True(t, ok)
	assert.Equal(t, domain.TierStandard, gamma.Tier)

	// BETA exists only in the master sheet: zero metrics, inactive.
	beta, ok := byName["BETA"]
	require.True(t, ok)
	assert.Equal(t, domain.TierInactive, beta.Tier)
	assert.Equal(t, 9999, beta.RecencyDays)
}

func TestLoadAttendanceAndCalendar(t *testing.T) {
	l := newTestLoader(&fakeProvider{tables: testTables()})

	snap, err := l.Load(context.Background())
	require.NoError(t, err)

	// One valid field log row; the dateless and technicianless rows are skipped.
	require.Len(t, snap.Attendance, 1)
	rec := snap.Attendance[0]
	assert.Equal(t, "MERT GÜNEŞ", rec.Person)
	assert.Equal(t, domain.StatusActiveField, rec.Status)
	assert.Equal(t, 2025, rec.Year)
	assert.Equal(t, 3, rec.Month)

	_, ok := snap.Holidays["2025-01-01"]
	assert.True(t, ok)

	require.Len(t, snap.Products, 1)
	assert.Equal(t, "ACME", snap.Products[0].Customer)
	require.Len(t, snap.Cities, 1)
	assert.Equal(t, "Marmara", snap.Cities[0].RegionName)

	require.Len(t, snap.Personnel, 1)
	assert.Equal(t, "MERT GÜNEŞ", snap.Personnel[0].Person)
	require.NotNil(t, snap.Personnel[0].Start)
	assert.Nil(t, snap.Personnel[0].End)
}

func TestLoadSourceFailureDegrades(t *testing.T) {
	p := &fakeProvider{
		tables: testTables(),
		fail:   map[string]error{"data/siparis": errors.New("quota exceeded")},
	}
	l := newTestLoader(p)

	snap, err := l.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.Errors, 1)
	assert.Equal(t, "siparis", snap.Errors[0].Source)

	// No orders means every quote stays open.
	assert.Empty(t, snap.Orders)
	assert.Len(t, snap.OpenQuotes, len(snap.Quotes))
}

func TestLoadMissingRatesFallsBackToYearly(t *testing.T) {
	tables := testTables()
	delete(tables, "data/kurlar")
	p := &fakeProvider{tables: tables, fail: map[string]error{}}
	l := newTestLoader(p)

	snap, err := l.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.Errors, 1)
	// Quotes still convert through the bundled yearly averages.
	assert.NotEmpty(t, snap.Quotes)
	for _, q := range snap.Quotes {
		assert.NotZero(t, q.AmountEUR)
	}
}

func TestMapRecords(t *testing.T) {
	rows := [][]string{
		{"  TEKLİF NO ", "Müşteri", "İlgisiz"},
		{"T-1", " ACME ", "x"},
		{"", "", ""},
	}
	records := MapRecords(rows, map[string]string{"Teklif No": "document_no", "Müşteri": "customer"}, 0)

	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].Row)
	assert.Equal(t, "T-1", records[0].Get("document_no"))
	assert.Equal(t, "ACME", records[0].Get("customer"))
	_, hasExtra := records[0].Fields["İlgisiz"]
	assert.False(t, hasExtra)
}
