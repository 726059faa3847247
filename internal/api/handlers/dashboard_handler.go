package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dhe-dashboard/backend-go/internal/domain"
	"github.com/dhe-dashboard/backend-go/internal/normalize"
	"github.com/dhe-dashboard/backend-go/internal/service"
	"github.com/dhe-dashboard/backend-go/internal/workdays"
)

type DashboardHandler struct {
	service *service.DashboardService
}

func NewDashboardHandler(service *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) snapshot(c *gin.Context) (*domain.Snapshot, bool) {
	snap, err := h.service.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return nil, false
	}
	return snap, true
}

// GetSnapshot returns the whole derived dataset in one response.
func (h *DashboardHandler) GetSnapshot(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *DashboardHandler) GetQuotes(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}

	facts := snap.Quotes
	if c.Query("open") == "true" {
		facts = snap.OpenQuotes
	}
	facts = filterFacts(facts, c)

	c.JSON(http.StatusOK, gin.H{"epoch": snap.Epoch, "count": len(facts), "data": facts})
}

func (h *DashboardHandler) GetOrders(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}

	facts := filterFacts(snap.Orders, c)
	c.JSON(http.StatusOK, gin.H{"epoch": snap.Epoch, "count": len(facts), "data": facts})
}

func (h *DashboardHandler) GetCustomers(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}

	customers := snap.Customers
	if tier := strings.TrimSpace(c.Query("tier")); tier != "" {
		want := domain.SegmentTier(strings.ToUpper(tier))
		filtered := make([]domain.CustomerProfile, 0, len(customers))
		for _, p := range customers {
			if p.Tier == want {
				filtered = append(filtered, p)
			}
		}
		customers = filtered
	}
	if c.Query("at_risk") == "true" {
		filtered := make([]domain.CustomerProfile, 0, len(customers))
		for _, p := range customers {
			if p.AtRisk {
				filtered = append(filtered, p)
			}
		}
		customers = filtered
	}

	c.JSON(http.StatusOK, gin.H{"epoch": snap.Epoch, "count": len(customers), "data": customers})
}

func (h *DashboardHandler) GetAttendance(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}

	year, month := yearMonthQuery(c)
	person := normalize.PersonName(c.Query("person"))

	records := make([]domain.AttendanceRecord, 0, len(snap.Attendance))
	for _, r := range snap.Attendance {
		if year != 0 && r.Year != year {
			continue
		}
		if month != 0 && r.Month != month {
			continue
		}
		if person != "" && r.Person != person {
			continue
		}
		records = append(records, r)
	}

	c.JSON(http.StatusOK, gin.H{"epoch": snap.Epoch, "count": len(records), "data": records})
}

// GetCapacity reports the workday capacity and attendance breakdown for one
// technician in one month.
func (h *DashboardHandler) GetCapacity(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}

	person := normalize.PersonName(c.Param("person"))
	year, month := yearMonthQuery(c)
	if year == 0 || month == 0 {
		now := time.Now()
		year, month = now.Year(), int(now.Month())
	}

	// Without a personnel row the window is open on both sides.
	window := domain.EmploymentWindow{Person: person}
	for _, w := range snap.Personnel {
		if w.Person == person {
			window = w
			break
		}
	}

	holidays := workdays.HolidaySet(snap.Holidays)
	capacity := workdays.EffectiveWorkdays(year, month, window, holidays)

	var field, workshop, leave int
	for _, r := range snap.Attendance {
		if r.Person != person || r.Year != year || r.Month != month {
			continue
		}
		switch r.Status {
		case domain.StatusActiveField:
			field++
		case domain.StatusWorkshop:
			workshop++
		case domain.StatusOnLeave:
			leave++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"epoch":              snap.Epoch,
		"person":             person,
		"year":               year,
		"month":              month,
		"effective_workdays": capacity,
		"field_days":         field,
		"workshop_days":      workshop,
		"leave_days":         leave,
	})
}

// GetValidation returns the non-fatal data quality report of the last run.
func (h *DashboardHandler) GetValidation(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"epoch":         snap.Epoch,
		"quote_drops":   snap.QuoteDrops,
		"order_drops":   snap.OrderDrops,
		"issues":        snap.Issues,
		"source_errors": snap.Errors,
	})
}

// Refresh reruns the pipeline and returns the new epoch.
func (h *DashboardHandler) Refresh(c *gin.Context) {
	snap, err := h.service.Refresh(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"epoch":         snap.Epoch,
		"loaded_at":     snap.LoadedAt,
		"quotes":        len(snap.Quotes),
		"orders":        len(snap.Orders),
		"customers":     len(snap.Customers),
		"source_errors": len(snap.Errors),
	})
}

func filterFacts(facts []domain.FinanceFact, c *gin.Context) []domain.FinanceFact {
	year, month := yearMonthQuery(c)
	person := strings.TrimSpace(c.Query("person"))
	if year == 0 && month == 0 && person == "" {
		return facts
	}

	out := make([]domain.FinanceFact, 0, len(facts))
	for _, f := range facts {
		if year != 0 && f.Year != year {
			continue
		}
		if month != 0 && f.Month != month {
			continue
		}
		if person != "" && !strings.EqualFold(f.PersonCode, person) && !strings.EqualFold(f.PersonName, person) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func yearMonthQuery(c *gin.Context) (int, int) {
	year, _ := strconv.Atoi(c.Query("year"))
	month, _ := strconv.Atoi(c.Query("month"))
	if month < 0 || month > 12 {
		month = 0
	}
	return year, month
}
