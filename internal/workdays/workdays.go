// Package workdays counts eligible working days net of weekends, holidays
// and a person's employment window. Capacity is never projected into the
// future.
package workdays

import (
	"strings"
	"time"

	"github.com/dhe-dashboard/backend-go/internal/domain"
)

// HolidaySet holds calendar dates keyed by their 2006-01-02 form, so dates
// from mixed sources compare regardless of time-of-day or location.
type HolidaySet map[string]struct{}

// Add inserts a date into the set.
func (h HolidaySet) Add(d time.Time) {
	h[dayKey(d)] = struct{}{}
}

// Has reports whether the calendar day of d is a holiday.
func (h HolidaySet) Has(d time.Time) bool {
	_, ok := h[dayKey(d)]
	return ok
}

func dayKey(d time.Time) string {
	return d.Format("2006-01-02")
}

// flexibleLayouts are tried in order when parsing dates coming straight out
// of spreadsheet cells. Day-first forms dominate the source data.
var flexibleLayouts = []string{
	"02.01.2006",
	"2.1.2006",
	"02/01/2006",
	"2/1/2006",
	"2006-01-02",
	"02.01.2006 15:04:05",
}

// ParseFlexibleDate parses a raw date cell in any of the tolerated forms.
// Unparsable input returns ok=false; the caller treats the date as absent
// rather than failing.
func ParseFlexibleDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range flexibleLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// WeekdayCount counts Monday-Friday days in the given year (or single month
// when month > 0), minus holidays. With untilToday the period end is clamped
// to the current date; a period that has not started yet counts 0.
func WeekdayCount(year, month int, untilToday bool, holidays HolidaySet) int {
	start, end := periodBounds(year, month)
	if untilToday {
		if today := todayFn(); end.After(today) {
			end = today
		}
	}
	return countRange(start, end, holidays)
}

// EffectiveWorkdays counts the weekdays a person could have worked in the
// period, intersected with their employment window and clamped to today.
// month == 0 means the whole year. An empty or inverted intersection
// returns 0.
func EffectiveWorkdays(year, month int, w domain.EmploymentWindow, holidays HolidaySet) int {
	start, end := periodBounds(year, month)

	if today := todayFn(); end.After(today) {
		end = today
	}
	if start.After(end) {
		return 0
	}

	if w.Start != nil && w.Start.After(start) {
		start = truncateDay(*w.Start)
	}
	if w.End != nil && w.End.Before(end) {
		end = truncateDay(*w.End)
	}
	return countRange(start, end, holidays)
}

// todayFn is swapped in tests to pin the clock.
var todayFn = func() time.Time {
	return truncateDay(time.Now())
}

func periodBounds(year, month int) (time.Time, time.Time) {
	if month > 0 {
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, -1)
		return start, end
	}
	return time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)
}

func countRange(start, end time.Time, holidays HolidaySet) int {
	if start.After(end) {
		return 0
	}
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		if holidays.Has(d) {
			continue
		}
		count++
	}
	return count
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
