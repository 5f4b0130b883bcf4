// Package catalog defines the data model for the media catalog pipeline:
// the raw tabular form produced by extraction and the typed, enriched
// record set produced by transformation. This package has no I/O.
package catalog

import (
	"fmt"
	"strings"
)

// RequiredColumns is the fixed column set every source file must carry.
// A file missing any of these fails validation before transformation.
var RequiredColumns = []string{
	"show_id", "type", "title", "director", "cast", "country",
	"date_added", "release_year", "rating", "duration", "listed_in", "description",
}

// Table is the raw, untyped result of extraction: an ordered sequence of
// rows sharing one header. Rows are never mutated after extraction; the
// transformer consumes a Table and produces a Dataset.
type Table struct {
	Columns []string
	Rows    [][]string
}

// HeaderIndex maps lowercased column names to their position in a row.
type HeaderIndex map[string]int

// Index builds a HeaderIndex for the table's columns.
func (t *Table) Index() HeaderIndex {
	idx := make(HeaderIndex, len(t.Columns))
	for i, c := range t.Columns {
		idx[strings.ToLower(strings.TrimSpace(c))] = i
	}
	return idx
}

// Cell returns the value of the named column in row, or "" when the row is
// short or the column is absent.
func (idx HeaderIndex) Cell(row []string, col string) string {
	pos, ok := idx[col]
	if !ok || pos >= len(row) {
		return ""
	}
	return row[pos]
}

// Validate checks that the table is non-empty and carries every required
// column. A missing column is a hard failure, not a warning.
func (t *Table) Validate() error {
	if t == nil || len(t.Rows) == 0 {
		return fmt.Errorf("table is empty")
	}
	idx := t.Index()
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
