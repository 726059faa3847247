package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhe-dashboard/backend-go/internal/domain"
	"github.com/dhe-dashboard/backend-go/internal/refdata"
)

func rec(row int, fields map[string]string) domain.RawRecord {
	return domain.RawRecord{Row: row, Fields: fields}
}

func TestScanCleanData(t *testing.T) {
	records := []domain.RawRecord{
		rec(2, map[string]string{
			refdata.ColDocumentNo: "1001",
			refdata.ColDate:       "15.03.2024",
			refdata.ColAmount:     "1.000,50 TL",
		}),
	}
	rules := Rules{
		Required: []string{refdata.ColDocumentNo},
		Dates:    []string{refdata.ColDate},
		Numerics: []string{refdata.ColAmount},
	}

	assert.Empty(t, Scan(records, rules))
}

func TestScanFlagsViolations(t *testing.T) {
	records := []domain.RawRecord{
		rec(2, map[string]string{
			refdata.ColDocumentNo: "  ",
			refdata.ColDate:       "March 15",
			refdata.ColAmount:     "beklemede",
		}),
	}
	rules := Rules{
		Required: []string{refdata.ColDocumentNo},
		Dates:    []string{refdata.ColDate},
		Numerics: []string{refdata.ColAmount},
	}

	issues := Scan(records, rules)
	require.Len(t, issues, 3)

	assert.Equal(t, ReasonRequiredEmpty, issues[0].Reason)
	assert.Equal(t, refdata.ColDocumentNo, issues[0].Column)
	assert.Equal(t, 2, issues[0].Row)

	assert.Equal(t, ReasonBadDate, issues[1].Reason)
	assert.Equal(t, "March 15", issues[1].Value)

	assert.Equal(t, ReasonNotNumeric, issues[2].Reason)
}

func TestScanEmptyCellSkipsFormatChecks(t *testing.T) {
	records := []domain.RawRecord{
		rec(3, map[string]string{refdata.ColDate: "", refdata.ColAmount: ""}),
	}
	rules := Rules{Dates: []string{refdata.ColDate}, Numerics: []string{refdata.ColAmount}}

	assert.Empty(t, Scan(records, rules))
}

func TestScanNoRecords(t *testing.T) {
	assert.Empty(t, Scan(nil, Rules{Required: []string{"x"}}))
}
