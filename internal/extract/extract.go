// Package extract reads source data into a raw catalog table. CSV files
// are read as UTF-8 with a Latin-1 fallback; a JSON API source with retry
// support is available as an alternative. Extraction never returns
// partially loaded data: any failure yields no table at all.
package extract

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/Thiago-code-lab/data-engineering-netflix/internal/catalog"
)

// FromCSV reads a delimited file into a Table and validates its shape.
func FromCSV(path string) (*catalog.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source file %s: %w", path, err)
	}

	slog.Info("starting extraction", "path", path, "bytes", len(data))

	if !utf8.Valid(data) {
		slog.Info("source is not valid UTF-8, retrying with latin-1 encoding", "path", path)
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s with latin-1 fallback: %w", path, err)
		}
		data = decoded
	}

	table, err := parseTable(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}

	slog.Info("extraction complete", "path", path, "rows", len(table.Rows), "columns", len(table.Columns))
	return table, nil
}

// parseTable parses CSV bytes into a Table. The first record is the
// header. Short rows are padded and long rows truncated to the header
// width so every row shares the fixed column set.
func parseTable(data []byte) (*catalog.Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("file has no header row")
	}

	header := records[0]
	width := len(header)
	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		switch {
		case len(rec) < width:
			padded := make([]string, width)
			copy(padded, rec)
			rec = padded
		case len(rec) > width:
			rec = rec[:width]
		}
		rows = append(rows, rec)
	}

	return &catalog.Table{Columns: header, Rows: rows}, nil
}
