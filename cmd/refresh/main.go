// backend-go/cmd/refresh/main.go
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/dhe-dashboard/backend-go/internal/cache"
	"github.com/dhe-dashboard/backend-go/internal/config"
	"github.com/dhe-dashboard/backend-go/internal/domain"
	"github.com/dhe-dashboard/backend-go/internal/pipeline"
	"github.com/dhe-dashboard/backend-go/internal/refdata"
	"github.com/dhe-dashboard/backend-go/internal/service"
	"github.com/dhe-dashboard/backend-go/internal/sheets"
	"github.com/dhe-dashboard/backend-go/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "refresh",
		Usage: "Run the dashboard pipeline from the command line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "credentials",
				Usage:   "Service account credentials JSON; reads local workbooks when omitted",
				EnvVars: []string{"SHEETS_CREDENTIALS_FILE"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "refresh",
				Usage:  "Run the pipeline once and print a summary",
				Action: runRefresh,
			},
			{
				Name:  "export",
				Usage: "Run the pipeline and write the derived facts as CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Usage: "Output directory",
						Value: "./export",
					},
				},
				Action: runExport,
			},
			{
				Name:   "validate",
				Usage:  "Run the pipeline and print the data quality report",
				Action: runValidate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("command failed")
	}
}

func loadSnapshot(c *cli.Context) (*domain.Snapshot, error) {
	cfg := config.Load()
	src := cfg.Source
	if creds := c.String("credentials"); creds != "" {
		src.CredentialsFile = creds
	}

	provider, err := newProvider(c.Context, src)
	if err != nil {
		return nil, err
	}

	loader := pipeline.NewLoader(provider, pipeline.SheetsFromConfig(src))
	svc := service.NewDashboardService(loader, cache.NewNoopCache())
	return svc.Refresh(c.Context)
}

func newProvider(ctx context.Context, src config.SourceConfig) (sheets.Provider, error) {
	if src.CredentialsFile == "" {
		return sheets.NewXLSXProvider(map[string]string{
			src.DataSource:     src.DataWorkbook,
			src.FieldLogSource: src.FieldLogWorkbook,
		}), nil
	}

	credentials, err := os.ReadFile(src.CredentialsFile)
	if err != nil {
		return nil, err
	}

	retry := sheets.RetryPolicy{
		Attempts: src.RetryAttempts,
		Delay:    time.Duration(src.RetryDelaySecs) * time.Second,
	}
	return sheets.NewGoogleProvider(ctx, credentials, map[string]string{
		src.DataSource:     src.DataSpreadsheetID,
		src.FieldLogSource: src.FieldLogSpreadsheetID,
	}, retry)
}

func runRefresh(c *cli.Context) error {
	snap, err := loadSnapshot(c)
	if err != nil {
		return err
	}

	fmt.Printf("epoch:         %d\n", snap.Epoch)
	fmt.Printf("quotes:        %d (%d open, %d dropped)\n", len(snap.Quotes), len(snap.OpenQuotes), snap.QuoteDrops.Dropped)
	fmt.Printf("orders:        %d (%d dropped)\n", len(snap.Orders), snap.OrderDrops.Dropped)
	fmt.Printf("customers:     %d\n", len(snap.Customers))
	fmt.Printf("attendance:    %d\n", len(snap.Attendance))
	fmt.Printf("source errors: %d\n", len(snap.Errors))
	for _, e := range snap.Errors {
		fmt.Printf("  %s: %s\n", e.Source, e.Error)
	}
	return nil
}

func runExport(c *cli.Context) error {
	snap, err := loadSnapshot(c)
	if err != nil {
		return err
	}

	out := c.String("out")
	if err := os.MkdirAll(out, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := writeFactsCSV(filepath.Join(out, "quotes.csv"), snap.Quotes); err != nil {
		return err
	}
	if err := writeFactsCSV(filepath.Join(out, "orders.csv"), snap.Orders); err != nil {
		return err
	}
	if err := writeCustomersCSV(filepath.Join(out, "customers.csv"), snap.Customers); err != nil {
		return err
	}

	fmt.Printf("exported %d quotes, %d orders, %d customers to %s\n",
		len(snap.Quotes), len(snap.Orders), len(snap.Customers), out)
	return nil
}

func runValidate(c *cli.Context) error {
	snap, err := loadSnapshot(c)
	if err != nil {
		return err
	}

	fmt.Printf("quote drops: %d of %d\n", snap.QuoteDrops.Dropped, snap.QuoteDrops.Total)
	for reason, n := range snap.QuoteDrops.ByReason {
		fmt.Printf("  %s: %d\n", reason, n)
	}
	fmt.Printf("order drops: %d of %d\n", snap.OrderDrops.Dropped, snap.OrderDrops.Total)
	for reason, n := range snap.OrderDrops.ByReason {
		fmt.Printf("  %s: %d\n", reason, n)
	}

	fmt.Printf("issues: %d\n", len(snap.Issues))
	for _, issue := range snap.Issues {
		fmt.Printf("  row %d, %s: %s (%q)\n", issue.Row, issue.Column, issue.Reason, issue.Value)
	}
	return nil
}

func writeFactsCSV(path string, facts []domain.FinanceFact) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"document_no", "customer", "person", "date", "month", "currency", "amount_eur", "cost_eur", "margin_eur"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, fact := range facts {
		record := []string{
			fact.DocumentID,
			fact.Customer,
			fact.PersonName,
			fact.Date.Format("02.01.2006"),
			refdata.MonthNames[fact.Month],
			string(fact.Currency),
			strconv.FormatFloat(fact.AmountEUR, 'f', 2, 64),
			strconv.FormatFloat(fact.CostEUR, 'f', 2, 64),
			strconv.FormatFloat(fact.MarginEUR, 'f', 2, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Error()
}

func writeCustomersCSV(path string, customers []domain.CustomerProfile) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"customer", "owner", "tier", "total_quote_eur", "quote_count", "total_order_eur", "order_count", "recency_days", "at_risk"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, p := range customers {
		record := []string{
			p.Customer,
			p.Owner,
			string(p.Tier),
			strconv.FormatFloat(p.TotalQuoteEUR, 'f', 2, 64),
			strconv.Itoa(p.QuoteCount),
			strconv.FormatFloat(p.TotalOrderEUR, 'f', 2, 64),
			strconv.Itoa(p.OrderCount),
			strconv.Itoa(p.RecencyDays),
			strconv.FormatBool(p.AtRisk),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Error()
}
