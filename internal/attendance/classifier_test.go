package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhe-dashboard/backend-go/internal/domain"
)

var (
	saturday = time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)
	tuesday  = time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
)

func TestClassifyWorkshopCompany(t *testing.T) {
	base := LogRow{Technician1: "BURAK D. GÜZEL", Customer: "DHE Endüstriyel"}

	weekend := base
	weekend.Date = saturday
	assert.Equal(t, domain.StatusActiveField, Classify(weekend),
		"weekend work at the home office counts as field time")

	weekday := base
	weekday.Date = tuesday
	assert.Equal(t, domain.StatusWorkshop, Classify(weekday))
}

func TestClassifyWorkshopCompanySubstring(t *testing.T) {
	row := LogRow{Technician1: "X", Customer: "dhe endüstriyel servis a.ş.", Date: tuesday}
	assert.Equal(t, domain.StatusWorkshop, Classify(row))
}

func TestClassifyOnLeave(t *testing.T) {
	row := LogRow{Technician1: "MEHMET ÇANTA", Customer: "izinli", Date: tuesday}
	assert.Equal(t, domain.StatusOnLeave, Classify(row))
}

func TestClassifyActiveField(t *testing.T) {
	row := LogRow{Technician1: "MEHMET ÇANTA", Customer: "ACME", Date: tuesday}
	assert.Equal(t, domain.StatusActiveField, Classify(row))

	// Work info may come from the product or responsible fields instead.
	row = LogRow{Technician2: "EMRE KAPLAN", Product: "Kompresör", Date: tuesday}
	assert.Equal(t, domain.StatusActiveField, Classify(row))
}

func TestClassifyDefaultWorkshop(t *testing.T) {
	// No technician and no work info: conservatively in-office.
	assert.Equal(t, domain.StatusWorkshop, Classify(LogRow{Date: tuesday}))

	// Technician present but no work info at all.
	row := LogRow{Technician1: "SEZER ÖĞÜT", Date: tuesday}
	assert.Equal(t, domain.StatusWorkshop, Classify(row))
}

func TestRecordsPerTechnicianSlot(t *testing.T) {
	row := LogRow{
		Technician1: " burak d. güzel ",
		Technician2: "mehmet çanta",
		Customer:    "ACME",
		City:        "İzmir",
		Date:        tuesday,
	}

	recs := Records(row)
	require.Len(t, recs, 2)

	assert.Equal(t, "BURAK D. GÜZEL", recs[0].Person)
	assert.Equal(t, "MEHMET ÇANTA", recs[1].Person)
	for _, r := range recs {
		assert.Equal(t, domain.StatusActiveField, r.Status)
		assert.Equal(t, "ACME", r.Customer)
		assert.Equal(t, 2024, r.Year)
		assert.Equal(t, 3, r.Month)
	}
}

func TestRecordsSkipsEmptySlots(t *testing.T) {
	recs := Records(LogRow{Technician1: "nan", Technician2: "EMRE KAPLAN", Customer: "ACME", Date: tuesday})
	require.Len(t, recs, 1)
	assert.Equal(t, "EMRE KAPLAN", recs[0].Person)
}
