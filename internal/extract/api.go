package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Thiago-code-lab/data-engineering-netflix/internal/catalog"
)

// APIOptions configure network extraction.
type APIOptions struct {
	Timeout    time.Duration // per-request timeout
	RetryCount int           // total attempts before giving up
}

// FromAPI fetches a JSON array of catalog objects and converts it into a
// Table with the fixed required column set. Each attempt is logged;
// transient failures are retried up to RetryCount times.
func FromAPI(ctx context.Context, url string, opts APIOptions) (*catalog.Table, error) {
	if opts.RetryCount <= 0 {
		opts.RetryCount = 1
	}
	client := &http.Client{Timeout: opts.Timeout}

	var lastErr error
	for attempt := 1; attempt <= opts.RetryCount; attempt++ {
		slog.Info("api extraction attempt", "attempt", attempt, "of", opts.RetryCount, "url", url)

		table, err := fetchOnce(ctx, client, url)
		if err == nil {
			if err := table.Validate(); err != nil {
				return nil, fmt.Errorf("validate api response: %w", err)
			}
			slog.Info("api extraction complete", "rows", len(table.Rows))
			return table, nil
		}

		lastErr = err
		slog.Warn("api extraction attempt failed", "attempt", attempt, "error", err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("api extraction failed after %d attempts: %w", opts.RetryCount, lastErr)
}

func fetchOnce(ctx context.Context, client *http.Client, url string) (*catalog.Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var objects []map[string]any
	if err := json.Unmarshal(body, &objects); err != nil {
		return nil, fmt.Errorf("invalid json response: %w", err)
	}

	rows := make([][]string, 0, len(objects))
	for _, obj := range objects {
		row := make([]string, len(catalog.RequiredColumns))
		for i, col := range catalog.RequiredColumns {
			row[i] = stringify(obj[col])
		}
		rows = append(rows, row)
	}

	cols := make([]string, len(catalog.RequiredColumns))
	copy(cols, catalog.RequiredColumns)
	return &catalog.Table{Columns: cols, Rows: rows}, nil
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		// JSON numbers decode as float64; years and counts are integral.
		if x == float64(int64(x)) {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprintf("%g", x)
	case bool:
		if x {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", x)
	}
}
