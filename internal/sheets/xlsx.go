package sheets

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXProvider serves tables from local xlsx workbooks, one workbook per
// source. Used by the offline refresh binary and in development, where the
// spreadsheets are exported rather than fetched.
type XLSXProvider struct {
	workbooks map[string]string // source name -> file path
}

// NewXLSXProvider maps source names to workbook paths. Files are opened per
// fetch; the workbooks are small and refreshes infrequent.
func NewXLSXProvider(workbooks map[string]string) *XLSXProvider {
	return &XLSXProvider{workbooks: workbooks}
}

// FetchTable reads all rows of the named sheet. Sheet name matching falls
// back to case-insensitive comparison against the workbook's sheet list.
func (p *XLSXProvider) FetchTable(ctx context.Context, source, sheet string) ([][]string, error) {
	path, ok := p.workbooks[source]
	if !ok {
		return nil, fmt.Errorf("no workbook configured for source %q", source)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	name := ""
	target := strings.ToLower(strings.TrimSpace(sheet))
	for _, title := range f.GetSheetList() {
		if title == sheet {
			name = title
			break
		}
		if name == "" && strings.ToLower(strings.TrimSpace(title)) == target {
			name = title
		}
	}
	if name == "" {
		return nil, fmt.Errorf("%w: %q in %s", ErrSheetNotFound, sheet, path)
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", name, err)
	}
	return rows, nil
}
