package sheets

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2/google"
	gsheets "google.golang.org/api/sheets/v4"
	"google.golang.org/api/option"
)

// GoogleProvider reads spreadsheets through the Sheets API using a service
// account. Source names map to spreadsheet IDs via the configuration.
type GoogleProvider struct {
	srv          *gsheets.Service
	spreadsheets map[string]string // source name -> spreadsheet ID
	retry        RetryPolicy
}

// NewGoogleProvider builds a provider from service-account credentials JSON.
func NewGoogleProvider(ctx context.Context, credentialsJSON []byte, spreadsheets map[string]string, retry RetryPolicy) (*GoogleProvider, error) {
	config, err := google.JWTConfigFromJSON(credentialsJSON, gsheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}

	client := config.Client(ctx)
	srv, err := gsheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return &GoogleProvider{srv: srv, spreadsheets: spreadsheets, retry: retry}, nil
}

// FetchTable returns all cell values of the named sheet. When the exact name
// is missing it retries case-insensitively against the spreadsheet's sheet
// list before giving up with ErrSheetNotFound.
func (p *GoogleProvider) FetchTable(ctx context.Context, source, sheet string) ([][]string, error) {
	id, ok := p.spreadsheets[source]
	if !ok {
		return nil, fmt.Errorf("no spreadsheet configured for source %q", source)
	}

	label := source + "/" + sheet
	return fetchWithRetry(ctx, p.retry, label, func() ([][]string, error) {
		return p.fetchOnce(ctx, id, sheet)
	})
}

func (p *GoogleProvider) fetchOnce(ctx context.Context, spreadsheetID, sheet string) ([][]string, error) {
	name, err := p.resolveSheetName(ctx, spreadsheetID, sheet)
	if err != nil {
		return nil, err
	}

	resp, err := p.srv.Spreadsheets.Values.
		Get(spreadsheetID, fmt.Sprintf("'%s'", name)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("values get %q: %w", name, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// resolveSheetName matches the requested sheet against the spreadsheet's
// actual sheet titles, exact first, then case-insensitive after trimming.
func (p *GoogleProvider) resolveSheetName(ctx context.Context, spreadsheetID, sheet string) (string, error) {
	meta, err := p.srv.Spreadsheets.
		Get(spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("spreadsheet metadata: %w", err)
	}

	target := strings.ToLower(strings.TrimSpace(sheet))
	var fallback string
	for _, s := range meta.Sheets {
		if s.Properties == nil {
			continue
		}
		title := s.Properties.Title
		if title == sheet {
			return title, nil
		}
		if fallback == "" && strings.ToLower(strings.TrimSpace(title)) == target {
			fallback = title
		}
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
}
