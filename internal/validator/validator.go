// Package validator runs a non-fatal quality scan over raw sheet rows and
// reports cells that violate required-field, date-format or numeric-format
// expectations. The report exists for operator visibility only; the
// pipeline proceeds regardless of what it finds.
package validator

import (
	"strconv"
	"strings"
	"time"

	"github.com/dhe-dashboard/backend-go/internal/domain"
)

const dateLayout = "02.01.2006"

const (
	ReasonRequiredEmpty = "required field is empty"
	ReasonBadDate       = "invalid date format (expected DD.MM.YYYY)"
	ReasonNotNumeric    = "numeric value expected"
)

// Rules describes the expectations for one source table.
type Rules struct {
	Required []string
	Dates    []string
	Numerics []string
}

// Scan checks every record against the rules and returns one issue per
// offending cell. Empty cells only fail the required check; format checks
// apply to non-empty cells so a single omission is not double-reported.
func Scan(records []domain.RawRecord, rules Rules) []domain.ValidationIssue {
	var issues []domain.ValidationIssue

	add := func(rec domain.RawRecord, column, reason, value string) {
		issues = append(issues, domain.ValidationIssue{
			Row:    rec.Row,
			Column: column,
			Reason: reason,
			Value:  value,
		})
	}

	for _, rec := range records {
		for _, col := range rules.Required {
			if strings.TrimSpace(rec.Get(col)) == "" {
				add(rec, col, ReasonRequiredEmpty, "(empty)")
			}
		}

		for _, col := range rules.Dates {
			v := strings.TrimSpace(rec.Get(col))
			if v == "" {
				continue
			}
			if _, err := time.Parse(dateLayout, v); err != nil {
				add(rec, col, ReasonBadDate, v)
			}
		}

		for _, col := range rules.Numerics {
			v := strings.TrimSpace(rec.Get(col))
			if v == "" {
				continue
			}
			if !looksNumeric(v) {
				add(rec, col, ReasonNotNumeric, v)
			}
		}
	}

	return issues
}

// looksNumeric accepts anything that cleans up into a parseable number
// under the TR money convention ("1.000,50 TL" passes, "beklemede" fails).
func looksNumeric(v string) bool {
	s := v
	if i := strings.IndexByte(s, ' '); i >= 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return false
	}
	_, err := strconv.ParseFloat(b.String(), 64)
	return err == nil
}
