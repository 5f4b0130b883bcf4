package catalog

import (
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

func TestTableValidate(t *testing.T) {
	valid := &Table{
		Columns: append([]string(nil), RequiredColumns...),
		Rows:    [][]string{make([]string, len(RequiredColumns))},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid table: %v", err)
	}

	empty := &Table{Columns: RequiredColumns}
	if err := empty.Validate(); err == nil {
		t.Error("expected error for table with no rows")
	}

	missing := &Table{
		Columns: []string{"show_id", "type", "title"},
		Rows:    [][]string{{"s1", "Movie", "Example"}},
	}
	err := missing.Validate()
	if err == nil {
		t.Fatal("expected error for missing columns")
	}
	if !strings.Contains(err.Error(), "director") {
		t.Errorf("error %v should name the missing columns", err)
	}
}

func TestHeaderIndex(t *testing.T) {
	table := &Table{Columns: []string{" Show_ID ", "TYPE", "title"}}
	idx := table.Index()

	row := []string{"s1", "Movie", "Example"}
	if got := idx.Cell(row, "show_id"); got != "s1" {
		t.Errorf("show_id = %q, want s1 (case and space insensitive header)", got)
	}
	if got := idx.Cell(row, "absent"); got != "" {
		t.Errorf("absent column = %q, want empty", got)
	}
	if got := idx.Cell([]string{"s1"}, "title"); got != "" {
		t.Errorf("short row = %q, want empty", got)
	}
}

func TestFingerprint(t *testing.T) {
	a := Title{
		ShowID:   "s1",
		Type:     "Movie",
		Title:    "Example",
		Director: Text("Jane Doe"),
	}
	b := a
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("identical titles must share a fingerprint")
	}

	b.Director = Text("Someone Else")
	if a.Fingerprint() == b.Fingerprint() {
		t.Error("different directors must not collide")
	}

	// A missing value and an empty string are distinct.
	c := a
	c.Director = pgtype.Text{}
	d := a
	d.Director = pgtype.Text{String: "", Valid: true}
	if c.Fingerprint() == d.Fingerprint() {
		t.Error("null and empty string must not collide")
	}

	// Derived fields do not participate.
	e := a
	e.CastCount = 99
	e.RatingCategory = "Adult"
	if a.Fingerprint() != e.Fingerprint() {
		t.Error("derived fields must not affect the fingerprint")
	}
}

func TestQuality(t *testing.T) {
	dated := Title{
		ShowID: "s1", Type: "Movie", Title: "Example",
		Director:  Text("Jane Doe"),
		DateAdded: pgtype.Date{Time: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), Valid: true},
	}
	ds := &Dataset{Titles: []Title{
		dated,
		{ShowID: "s2", Type: "Movie", Title: "Another"},
		dated, // exact duplicate of s1
	}}

	q := ds.Quality()
	if q.TotalRows != 3 {
		t.Errorf("total rows = %d, want 3", q.TotalRows)
	}
	if q.TotalColumns != len(Columns) {
		t.Errorf("total columns = %d, want %d", q.TotalColumns, len(Columns))
	}
	if q.DuplicateRows != 1 {
		t.Errorf("duplicate rows = %d, want 1", q.DuplicateRows)
	}
	if got := q.MissingValues["director"]; got != 1 {
		t.Errorf("missing directors = %d, want 1", got)
	}
	if got := q.MissingValues["date_added"]; got != 1 {
		t.Errorf("missing dates = %d, want 1", got)
	}
	if got := q.MissingValues["cast"]; got != 3 {
		t.Errorf("missing cast = %d, want 3", got)
	}
}

func TestColumnsCoverTitleFields(t *testing.T) {
	if len(Columns) != 32 {
		t.Fatalf("column count = %d, want 32", len(Columns))
	}

	names := ColumnNames()
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			t.Errorf("duplicate column name %q", n)
		}
		seen[n] = true
	}

	// The 12 source columns lead, in source order.
	for i, want := range RequiredColumns {
		if names[i] != want {
			t.Errorf("column %d = %q, want %q", i, names[i], want)
		}
	}

	// Every column extractor works against a zero record.
	var zero Title
	for _, col := range Columns {
		if col.Value == nil {
			t.Errorf("column %q has no value extractor", col.Name)
			continue
		}
		_ = col.Value(&zero)
	}
}

func TestValueHelpers(t *testing.T) {
	if v := Text(""); v.Valid {
		t.Error("Text(\"\") must be null")
	}
	if v := Text("x"); !v.Valid || v.String != "x" {
		t.Errorf("Text(\"x\") = %+v", v)
	}
	if v := Int4(7); !v.Valid || v.Int32 != 7 {
		t.Errorf("Int4(7) = %+v", v)
	}
	if v := Float8(1.5); !v.Valid || v.Float64 != 1.5 {
		t.Errorf("Float8(1.5) = %+v", v)
	}
}
