package pipeline

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dhe-dashboard/backend-go/internal/attendance"
	"github.com/dhe-dashboard/backend-go/internal/config"
	"github.com/dhe-dashboard/backend-go/internal/domain"
	"github.com/dhe-dashboard/backend-go/internal/finance"
	"github.com/dhe-dashboard/backend-go/internal/normalize"
	"github.com/dhe-dashboard/backend-go/internal/rates"
	"github.com/dhe-dashboard/backend-go/internal/refdata"
	"github.com/dhe-dashboard/backend-go/internal/segment"
	"github.com/dhe-dashboard/backend-go/internal/sheets"
	"github.com/dhe-dashboard/backend-go/internal/validator"
	"github.com/dhe-dashboard/backend-go/internal/workdays"
	"github.com/dhe-dashboard/backend-go/pkg/logger"
)

// SheetConfig names the tabular sources a Loader pulls. Data and FieldLog
// are logical source keys resolved by the sheets.Provider (spreadsheet name
// or workbook path); the rest are sheet names inside those sources.
type SheetConfig struct {
	Data     string
	FieldLog string

	Quotes    string
	Orders    string
	Customers string
	Products  string
	Rates     string
	Personnel string
	Holidays  string
	Cities    string

	// FieldLogYears lists the per-year field log sheets, one sheet per year.
	FieldLogYears []string
}

// SheetsFromConfig maps the environment-driven source settings onto the
// loader's sheet layout.
func SheetsFromConfig(src config.SourceConfig) SheetConfig {
	return SheetConfig{
		Data:          src.DataSource,
		FieldLog:      src.FieldLogSource,
		Quotes:        src.QuotesSheet,
		Orders:        src.OrdersSheet,
		Customers:     src.CustomersSheet,
		Products:      src.ProductsSheet,
		Rates:         src.RatesSheet,
		Personnel:     src.PersonnelSheet,
		Holidays:      src.HolidaysSheet,
		Cities:        src.CitiesSheet,
		FieldLogYears: src.FieldLogYears,
	}
}

// Loader runs one full pipeline pass: fetch every source concurrently,
// then derive the snapshot with a synchronous transform chain. Sources fail
// independently; a source that cannot be fetched degrades to an empty table
// and is reported in Snapshot.Errors.
type Loader struct {
	provider sheets.Provider
	cfg      SheetConfig

	nowFn func() time.Time
}

func NewLoader(provider sheets.Provider, cfg SheetConfig) *Loader {
	return &Loader{provider: provider, cfg: cfg, nowFn: time.Now}
}

// tableSet holds the raw fetch results, one slot per source. Each errgroup
// task writes only its own slot; the error list is the single shared field.
type tableSet struct {
	quotes    [][]string
	orders    [][]string
	customers [][]string
	products  [][]string
	rates     [][]string
	personnel [][]string
	holidays  [][]string
	cities    [][]string
	fieldLog  map[string][][]string

	mu   sync.Mutex
	errs []domain.SourceError
}

func (t *tableSet) fail(source string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.errs = append(t.errs, domain.SourceError{Source: source, Error: err.Error()})
}

// Load fetches all sources and builds a snapshot. The returned snapshot has
// Epoch zero; the caller assigns epochs. Load only returns an error when the
// context is cancelled, never for individual source failures.
func (l *Loader) Load(ctx context.Context) (*domain.Snapshot, error) {
	set := &tableSet{fieldLog: make(map[string][][]string, len(l.cfg.FieldLogYears))}

	g, gctx := errgroup.WithContext(ctx)

	fetch := func(source, sheet string, slot *[][]string) {
		g.Go(func() error {
			rows, err := l.provider.FetchTable(gctx, source, sheet)
			if err != nil {
				logger.Log.Warn().Err(err).Str("source", source).Str("sheet", sheet).Msg("source fetch failed, continuing without it")
				set.fail(sheet, err)
				return nil
			}
			*slot = rows
			return nil
		})
	}

	fetch(l.cfg.Data, l.cfg.Quotes, &set.quotes)
	fetch(l.cfg.Data, l.cfg.Orders, &set.orders)
	fetch(l.cfg.Data, l.cfg.Customers, &set.customers)
	fetch(l.cfg.Data, l.cfg.Products, &set.products)
	fetch(l.cfg.Data, l.cfg.Rates, &set.rates)
	fetch(l.cfg.Data, l.cfg.Personnel, &set.personnel)
	fetch(l.cfg.Data, l.cfg.Holidays, &set.holidays)
	fetch(l.cfg.Data, l.cfg.Cities, &set.cities)

	for _, year := range l.cfg.FieldLogYears {
		year := year
		g.Go(func() error {
			rows, err := l.provider.FetchTable(gctx, l.cfg.FieldLog, year)
			if err != nil {
				logger.Log.Warn().Err(err).Str("source", l.cfg.FieldLog).Str("sheet", year).Msg("field log fetch failed, continuing without it")
				set.fail("field_log_"+year, err)
				return nil
			}
			set.mu.Lock()
			set.fieldLog[year] = rows
			set.mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap := l.transform(set)
	return snap, nil
}

// transform is the pure derivation chain: no I/O past this point.
func (l *Loader) transform(set *tableSet) *domain.Snapshot {
	now := l.nowFn()

	rateTable := rates.New(rates.ParseMonthly(set.rates), refdata.YearlyRates)

	holidays := l.buildHolidays(set.holidays)
	personnel := l.buildPersonnel(set.personnel)
	master := l.buildCustomers(set.customers)

	quoteRecords := MapRecords(set.quotes, refdata.QuoteColumns, 0)
	orderRecords := MapRecords(set.orders, refdata.OrderColumns, 0)

	quoteBuilder := finance.Builder{Kind: domain.KindQuote, Rates: rateTable, Personnel: refdata.PersonnelMap}
	orderBuilder := finance.Builder{Kind: domain.KindOrder, Rates: rateTable, Personnel: refdata.PersonnelMap}

	quotes, quoteDrops := quoteBuilder.Build(quoteRecords)
	orders, orderDrops := orderBuilder.Build(orderRecords)
	openQuotes := finance.SplitOpenQuotes(quotes, orders)

	customers := segment.Build(quotes, orders, master, now)
	att := l.buildAttendance(set.fieldLog)
	products := l.buildProducts(set.products)
	cities := l.buildCities(set.cities)

	financeRules := validator.Rules{
		Required: []string{refdata.ColDocumentNo, refdata.ColCustomer, refdata.ColDate, refdata.ColAmount, refdata.ColCurrency},
		Dates:    []string{refdata.ColDate},
		Numerics: []string{refdata.ColAmount, refdata.ColCost},
	}
	issues := validator.Scan(quoteRecords, financeRules)
	issues = append(issues, validator.Scan(orderRecords, financeRules)...)

	logger.Log.Info().
		Int("quotes", len(quotes)).
		Int("open_quotes", len(openQuotes)).
		Int("orders", len(orders)).
		Int("customers", len(customers)).
		Int("attendance", len(att)).
		Int("monthly_rates", rateTable.MonthlyCount()).
		Int("source_errors", len(set.errs)).
		Msg("snapshot built")

	return &domain.Snapshot{
		LoadedAt:   now,
		Quotes:     quotes,
		OpenQuotes: openQuotes,
		Orders:     orders,
		Customers:  customers,
		Attendance: att,
		Personnel:  personnel,
		Products:   products,
		Cities:     cities,
		Holidays:   holidays,
		QuoteDrops: quoteDrops,
		OrderDrops: orderDrops,
		Issues:     issues,
		Errors:     set.errs,
	}
}

func (l *Loader) buildHolidays(rows [][]string) map[string]struct{} {
	set := workdays.HolidaySet{}
	for _, rec := range MapRecords(rows, refdata.HolidayColumns, 0) {
		if d, ok := workdays.ParseFlexibleDate(rec.Get(refdata.ColDate)); ok {
			set.Add(d)
		}
	}
	return set
}

func (l *Loader) buildPersonnel(rows [][]string) []domain.EmploymentWindow {
	records := MapRecords(rows, refdata.PersonnelColumns, 0)
	windows := make([]domain.EmploymentWindow, 0, len(records))
	for _, rec := range records {
		name := normalize.PersonName(rec.Get(refdata.ColFullName))
		if name == "" {
			continue
		}
		w := domain.EmploymentWindow{
			Person:     name,
			Department: rec.Get(refdata.ColDept),
		}
		if d, ok := workdays.ParseFlexibleDate(rec.Get(refdata.ColHireDate)); ok {
			w.Start = &d
		}
		if d, ok := workdays.ParseFlexibleDate(rec.Get(refdata.ColLeaveDate)); ok {
			w.End = &d
		}
		windows = append(windows, w)
	}
	return windows
}

func (l *Loader) buildCustomers(rows [][]string) []domain.CustomerMaster {
	records := MapRecords(rows, refdata.CustomerColumns, 0)
	master := make([]domain.CustomerMaster, 0, len(records))
	for _, rec := range records {
		short := rec.Get(refdata.ColShortName)
		if short == "" {
			continue
		}
		master = append(master, domain.CustomerMaster{
			ShortName: short,
			LongName:  rec.Get(refdata.ColLongName),
			Owner:     rec.Get(refdata.ColOwner),
		})
	}
	return master
}

// buildProducts reads the device registry. Customer names are upper-cased
// the Turkish way so they join against the finance facts.
func (l *Loader) buildProducts(rows [][]string) []domain.InstalledProduct {
	records := MapRecords(rows, refdata.ProductColumns, 0)
	products := make([]domain.InstalledProduct, 0, len(records))
	for _, rec := range records {
		recordNo := rec.Get(refdata.ColRecordNo)
		customer := normalize.UpperTurkish(rec.Get(refdata.ColCustomer))
		if recordNo == "" && customer == "" {
			continue
		}
		p := domain.InstalledProduct{
			RecordNo: recordNo,
			SerialNo: rec.Get(refdata.ColSerialNo),
			DeviceNo: rec.Get(refdata.ColDeviceNo),
			Customer: customer,
		}
		if d, ok := workdays.ParseFlexibleDate(rec.Get(refdata.ColDate)); ok {
			p.Date = d
		}
		products = append(products, p)
	}
	return products
}

func (l *Loader) buildCities(rows [][]string) []domain.CityRegion {
	records := MapRecords(rows, refdata.CityColumns, 0)
	cities := make([]domain.CityRegion, 0, len(records))
	for _, rec := range records {
		city := rec.Get(refdata.ColCity)
		if city == "" {
			continue
		}
		cities = append(cities, domain.CityRegion{
			City:       city,
			RegionID:   rec.Get(refdata.ColRegionID),
			RegionName: rec.Get(refdata.ColRegionName),
		})
	}
	return cities
}

// buildAttendance merges the per-year field log sheets in year order and
// expands each row into per-technician records. Rows without a date or a
// first technician carry no attendance signal and are skipped.
func (l *Loader) buildAttendance(fieldLog map[string][][]string) []domain.AttendanceRecord {
	var out []domain.AttendanceRecord
	for _, year := range l.cfg.FieldLogYears {
		rows, ok := fieldLog[year]
		if !ok {
			continue
		}
		// field log sheets carry a title line; headers sit on the second row
		for _, rec := range MapRecords(rows, refdata.FieldLogColumns, 1) {
			date, ok := workdays.ParseFlexibleDate(rec.Get(refdata.ColDate))
			if !ok {
				continue
			}
			row := attendance.LogRow{
				Technician1: rec.Get(refdata.ColTechnician1),
				Technician2: rec.Get(refdata.ColTechnician2),
				Customer:    rec.Get(refdata.ColCustomer),
				City:        rec.Get(refdata.ColCity),
				Product:     rec.Get(refdata.ColProduct),
				Responsible: rec.Get(refdata.ColResponsible),
				Date:        date,
			}
			if normalize.PersonName(row.Technician1) == "" {
				continue
			}
			out = append(out, attendance.Records(row)...)
		}
	}
	return out
}
