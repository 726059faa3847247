// Package attendance derives a technician's daily status from field-service
// log rows. The business rules are an ordered list of (predicate, outcome)
// pairs with a mandatory default branch, so the priority order stays
// auditable and testable on its own.
package attendance

import (
	"strings"
	"time"

	"github.com/dhe-dashboard/backend-go/internal/domain"
	"github.com/dhe-dashboard/backend-go/internal/normalize"
	"github.com/dhe-dashboard/backend-go/internal/refdata"
)

// LogRow carries the row-level fields shared by both technician slots.
type LogRow struct {
	Technician1 string
	Technician2 string
	Customer    string
	City        string
	Product     string
	Responsible string
	Date        time.Time
}

type rule struct {
	name  string
	apply func(LogRow) (domain.AttendanceStatus, bool)
}

// Rules in priority order. Evaluation stops at the first match; the last
// rule always matches.
var rules = []rule{
	{
		// Rows logged against the home office: weekend presence there is
		// worked field time for capacity purposes, weekday presence is
		// ordinary workshop attendance.
		name: "workshop-company",
		apply: func(r LogRow) (domain.AttendanceStatus, bool) {
			customer := normalize.UpperTurkish(strings.TrimSpace(r.Customer))
			if !strings.Contains(customer, refdata.WorkshopCompanyMarker) {
				return "", false
			}
			if isWeekend(r.Date) {
				return domain.StatusActiveField, true
			}
			return domain.StatusWorkshop, true
		},
	},
	{
		name: "on-leave",
		apply: func(r LogRow) (domain.AttendanceStatus, bool) {
			customer := normalize.UpperTurkish(strings.TrimSpace(r.Customer))
			if customer == refdata.OnLeaveMarker {
				return domain.StatusOnLeave, true
			}
			return "", false
		},
	},
	{
		name: "active-field",
		apply: func(r LogRow) (domain.AttendanceStatus, bool) {
			hasTechnician := strings.TrimSpace(r.Technician1) != "" || strings.TrimSpace(r.Technician2) != ""
			hasWorkInfo := strings.TrimSpace(r.Customer) != "" ||
				strings.TrimSpace(r.Product) != "" ||
				strings.TrimSpace(r.Responsible) != ""
			if hasTechnician && hasWorkInfo {
				return domain.StatusActiveField, true
			}
			return "", false
		},
	},
	{
		// Uninformative rows read conservatively as in-office.
		name: "default-workshop",
		apply: func(r LogRow) (domain.AttendanceStatus, bool) {
			return domain.StatusWorkshop, true
		},
	},
}

// Classify runs the rule list top to bottom and returns the first outcome.
func Classify(row LogRow) domain.AttendanceStatus {
	for _, r := range rules {
		if status, ok := r.apply(row); ok {
			return status
		}
	}
	return domain.StatusWorkshop // unreachable, the default rule matches
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Records expands one log row into per-technician attendance records. Each
// non-empty technician slot yields an independent record sharing the row's
// customer, date and work fields; classification is identical across slots
// because the predicates only read row-level fields.
func Records(row LogRow) []domain.AttendanceRecord {
	status := Classify(row)

	var out []domain.AttendanceRecord
	for _, tech := range []string{row.Technician1, row.Technician2} {
		name := normalize.PersonName(tech)
		if name == "" {
			continue
		}
		out = append(out, domain.AttendanceRecord{
			Person:   name,
			Date:     row.Date,
			Year:     row.Date.Year(),
			Month:    int(row.Date.Month()),
			Status:   status,
			Customer: strings.TrimSpace(row.Customer),
			City:     strings.TrimSpace(row.City),
			Product:  strings.TrimSpace(row.Product),
		})
	}
	return out
}
