// Package sheets provides the tabular data source behind the pipeline: a
// Google Sheets implementation for production and an xlsx-workbook
// implementation for offline runs. Both return raw cell grids; all
// interpretation happens downstream.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrSheetNotFound distinguishes a missing/renamed sheet from transient
// connectivity failures. Callers degrade that one source to empty instead
// of retrying it.
var ErrSheetNotFound = errors.New("sheet not found")

// Provider fetches a complete sheet as a 2-D grid of cell strings. The
// header row position is the caller's concern: finance sheets carry it at
// row 0, the field-service program at row 1.
type Provider interface {
	FetchTable(ctx context.Context, source, sheet string) ([][]string, error)
}

// RetryPolicy bounds transient-failure retries for a fetch. Not-found is
// never retried.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// DefaultRetry matches the source system's behavior: three attempts with a
// fixed two-second pause.
var DefaultRetry = RetryPolicy{Attempts: 3, Delay: 2 * time.Second}

// fetchWithRetry runs fn under the policy, raising only after the budget is
// exhausted.
func fetchWithRetry(ctx context.Context, p RetryPolicy, label string, fn func() ([][]string, error)) ([][]string, error) {
	if p.Attempts <= 0 {
		p.Attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= p.Attempts; attempt++ {
		rows, err := fn()
		if err == nil {
			return rows, nil
		}
		if errors.Is(err, ErrSheetNotFound) {
			return nil, err
		}
		lastErr = err
		log.Warn().
			Err(err).
			Str("sheet", label).
			Int("attempt", attempt).
			Int("max", p.Attempts).
			Msg("sheet fetch failed, retrying")

		if attempt < p.Attempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(p.Delay):
			}
		}
	}
	return nil, fmt.Errorf("fetch %s failed after %d attempts: %w", label, p.Attempts, lastErr)
}
