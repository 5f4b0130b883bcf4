// Package transform implements the cleaning and enrichment passes applied
// to a raw catalog table. Passes run in a fixed order and are total: a bad
// value in one row is repaired or coerced to missing, never a pipeline
// failure. Rows are only ever dropped, never invented, so re-running the
// transformer on its own output is a no-op.
package transform

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Thiago-code-lab/data-engineering-netflix/internal/catalog"
)

// Options control the transformation run.
type Options struct {
	// ReferenceYear bounds release-year validation (valid range is
	// 1900..ReferenceYear+2). Zero means the current wall-clock year;
	// tests inject a fixed year for deterministic output.
	ReferenceYear int
}

// Stats records row counts across the passes.
type Stats struct {
	InputRows         int `json:"input_rows"`
	DuplicatesDropped int `json:"duplicates_dropped"`
	CriticalDropped   int `json:"critical_dropped"`
	FinalDupsDropped  int `json:"final_duplicates_dropped"`
	OutputRows        int `json:"output_rows"`
	ValidDates        int `json:"valid_dates"`
	ValidYears        int `json:"valid_years"`
	Movies            int `json:"movies"`
	TVShows           int `json:"tv_shows"`
}

// Clean runs the full transformation pipeline over a raw table and returns
// the cleaned, enriched dataset.
func Clean(table *catalog.Table, opts Options) (*catalog.Dataset, *Stats, error) {
	if table == nil || len(table.Rows) == 0 {
		return nil, nil, fmt.Errorf("cannot transform an empty table")
	}

	refYear := opts.ReferenceYear
	if refYear == 0 {
		refYear = time.Now().Year()
	}

	stats := &Stats{InputRows: len(table.Rows)}
	idx := table.Index()

	slog.Info("starting transformation", "rows", stats.InputRows)

	rows := dropDuplicateRows(table.Rows, stats)
	rows = dropMissingCritical(rows, idx, stats)

	ds := bind(rows, idx)
	normalizeDates(ds, refYear, stats)
	normalizeText(ds)
	engineerFeatures(ds, stats)
	consolidateCategorical(ds)
	finalCleanup(ds, stats)

	stats.OutputRows = ds.Len()
	slog.Info("transformation complete",
		"input_rows", stats.InputRows,
		"output_rows", stats.OutputRows,
		"duplicates_dropped", stats.DuplicatesDropped+stats.FinalDupsDropped,
		"critical_dropped", stats.CriticalDropped,
	)
	return ds, stats, nil
}

// placeholder tokens are matched exactly, case-sensitive, after trimming.
var placeholderTokens = map[string]struct{}{
	"":     {},
	"nan":  {},
	"None": {},
}

func isPlaceholder(s string) bool {
	_, ok := placeholderTokens[strings.TrimSpace(s)]
	return ok
}

// cleanText trims a raw cell and maps placeholder tokens to missing.
func cleanText(s string) string {
	s = strings.TrimSpace(s)
	if _, ok := placeholderTokens[s]; ok {
		return ""
	}
	return s
}

// Pass 1: basic cleaning.

func dropDuplicateRows(rows [][]string, stats *Stats) [][]string {
	seen := make(map[string]struct{}, len(rows))
	out := rows[:0:0]
	for _, row := range rows {
		key := strings.Join(row, "\x1f")
		if _, dup := seen[key]; dup {
			stats.DuplicatesDropped++
			continue
		}
		seen[key] = struct{}{}
		out = append(out, row)
	}
	if stats.DuplicatesDropped > 0 {
		slog.Info("removed duplicate rows", "count", stats.DuplicatesDropped)
	}
	return out
}

var criticalColumns = []string{"show_id", "title", "type"}

func dropMissingCritical(rows [][]string, idx catalog.HeaderIndex, stats *Stats) [][]string {
	out := rows[:0:0]
	for _, row := range rows {
		ok := true
		for _, col := range criticalColumns {
			if isPlaceholder(idx.Cell(row, col)) {
				ok = false
				break
			}
		}
		if !ok {
			stats.CriticalDropped++
			continue
		}
		out = append(out, row)
	}
	if stats.CriticalDropped > 0 {
		slog.Info("removed rows with missing critical fields", "count", stats.CriticalDropped)
	}
	return out
}

// bind converts surviving raw rows into typed records. Nullable text
// fields carry the raw value at this point; the text normalization pass
// cleans them in place.
func bind(rows [][]string, idx catalog.HeaderIndex) *catalog.Dataset {
	titles := make([]catalog.Title, 0, len(rows))
	for _, row := range rows {
		titles = append(titles, catalog.Title{
			ShowID:         strings.TrimSpace(idx.Cell(row, "show_id")),
			Type:           strings.TrimSpace(idx.Cell(row, "type")),
			Title:          strings.TrimSpace(idx.Cell(row, "title")),
			Director:       rawText(idx.Cell(row, "director")),
			Cast:           rawText(idx.Cell(row, "cast")),
			Country:        rawText(idx.Cell(row, "country")),
			Rating:         rawText(idx.Cell(row, "rating")),
			Duration:       rawText(idx.Cell(row, "duration")),
			ListedIn:       rawText(idx.Cell(row, "listed_in")),
			Description:    rawText(idx.Cell(row, "description")),
			RawDateAdded:   idx.Cell(row, "date_added"),
			RawReleaseYear: idx.Cell(row, "release_year"),
		})
	}
	return &catalog.Dataset{Titles: titles}
}

func rawText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: true}
}

// Pass 2: date normalization.

var dateLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"2006-01-02",
	"1/2/2006",
	"2 January 2006",
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func normalizeDates(ds *catalog.Dataset, refYear int, stats *Stats) {
	for i := range ds.Titles {
		t := &ds.Titles[i]

		raw := cleanText(t.RawDateAdded)
		if raw != "" {
			if d, ok := parseDate(raw); ok {
				t.DateAdded = pgtype.Date{Time: d, Valid: true}
				t.DateAddedYear = catalog.Int4(d.Year())
				t.DateAddedMonth = catalog.Int4(int(d.Month()))
				t.DateAddedDayOfWeek = catalog.Text(d.Weekday().String())
				stats.ValidDates++
			}
		}

		rawYear := cleanText(t.RawReleaseYear)
		if year, err := strconv.Atoi(rawYear); err == nil {
			if year >= 1900 && year <= refYear+2 {
				t.ReleaseYear = catalog.Int4(year)
				t.Decade = catalog.Int4(floorDiv(year, 10) * 10)
				stats.ValidYears++
			}
		}
	}
	slog.Info("processed date columns", "valid_dates", stats.ValidDates, "valid_years", stats.ValidYears)
}

// floorDiv divides with floor semantics so negative years still bucket
// into the correct decade.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// Pass 3: text normalization. Applies placeholder mapping and trimming to
// every designated free-text column.
func normalizeText(ds *catalog.Dataset) {
	for i := range ds.Titles {
		t := &ds.Titles[i]
		for _, f := range []*pgtype.Text{
			&t.Director, &t.Cast, &t.Country, &t.Rating,
			&t.Duration, &t.ListedIn, &t.Description,
		} {
			*f = catalog.Text(cleanText(f.String))
		}
	}
	slog.Info("text columns cleaned")
}

// Pass 5: categorical consolidation. The categorical marking itself is a
// storage hint carried by catalog.Columns; this pass derives the primary
// country/genre fields and the diversity metrics.
func consolidateCategorical(ds *catalog.Dataset) {
	for i := range ds.Titles {
		t := &ds.Titles[i]

		if t.Country.Valid {
			first, _, multi := strings.Cut(t.Country.String, ",")
			t.PrimaryCountry = catalog.Text(strings.TrimSpace(first))
			t.IsInternational = multi
		}

		if t.ListedIn.Valid {
			first, _, _ := strings.Cut(t.ListedIn.String, ",")
			t.PrimaryGenre = catalog.Text(strings.TrimSpace(first))
			t.GenreDiversity = int32(strings.Count(t.ListedIn.String, ",") + 1)
		}
	}
	slog.Info("categorical consolidation complete")
}

// Pass 6: final cleanup. Duplicates introduced by earlier passes are
// dropped, rows are ordered by date added then show id with missing dates
// last, and a dense index is reassigned.
func finalCleanup(ds *catalog.Dataset, stats *Stats) {
	seen := make(map[string]struct{}, ds.Len())
	out := ds.Titles[:0:0]
	for _, t := range ds.Titles {
		fp := t.Fingerprint()
		if _, dup := seen[fp]; dup {
			stats.FinalDupsDropped++
			continue
		}
		seen[fp] = struct{}{}
		out = append(out, t)
	}
	if stats.FinalDupsDropped > 0 {
		slog.Info("removed duplicate rows in final cleanup", "count", stats.FinalDupsDropped)
	}

	sortTitles(out)
	for i := range out {
		out[i].Index = i
	}
	ds.Titles = out
}
