package pipeline

import (
	"strings"

	"github.com/dhe-dashboard/backend-go/internal/domain"
	"github.com/dhe-dashboard/backend-go/internal/normalize"
)

// MapRecords turns a raw sheet table into records keyed by canonical column
// names. Headers are matched case-insensitively after trimming, so "Teklif No"
// and "TEKLIF NO " resolve to the same column. Columns without a mapping are
// ignored; mapped columns missing from the sheet simply stay absent from the
// record. headerRow gives the zero-based index of the header line (the field
// log sheets carry a title line above the headers).
func MapRecords(rows [][]string, columns map[string]string, headerRow int) []domain.RawRecord {
	if headerRow >= len(rows) {
		return nil
	}

	lookup := make(map[string]string, len(columns))
	for header, canonical := range columns {
		lookup[foldHeader(header)] = canonical
	}

	// index in the row -> canonical column name
	positions := make(map[int]string)
	for i, cell := range rows[headerRow] {
		if canonical, ok := lookup[foldHeader(cell)]; ok {
			positions[i] = canonical
		}
	}
	if len(positions) == 0 {
		return nil
	}

	records := make([]domain.RawRecord, 0, len(rows)-headerRow-1)
	for rowIdx := headerRow + 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		fields := make(map[string]string, len(positions))
		empty := true
		for i, canonical := range positions {
			if i >= len(row) {
				continue
			}
			value := strings.TrimSpace(row[i])
			fields[canonical] = value
			if value != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		records = append(records, domain.RawRecord{Row: rowIdx + 1, Fields: fields})
	}
	return records
}

// foldHeader lowers a header with Turkish casing rules so that "TEKLİF NO"
// and "Teklif No" fold to the same key.
func foldHeader(s string) string {
	return normalize.LowerTurkish(strings.TrimSpace(s))
}
