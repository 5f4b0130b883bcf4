package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/encoding/charmap"
)

const header = "show_id,type,title,director,cast,country,date_added,release_year,rating,duration,listed_in,description"

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "titles.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFromCSV(t *testing.T) {
	path := writeCSV(t, header+"\n"+
		`s1,Movie,Example,Jane Doe,"Actor A, Actor B",France,"September 25, 2021",2020,PG-13,90 min,Dramas,A drama.`+"\n"+
		`s2,TV Show,Another,,,,,2019,TV-MA,2 Seasons,Comedies,A comedy.`+"\n")

	table, err := FromCSV(path)
	if err != nil {
		t.Fatalf("FromCSV: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Rows))
	}
	if len(table.Columns) != 12 {
		t.Fatalf("columns = %d, want 12", len(table.Columns))
	}
	idx := table.Index()
	if got := idx.Cell(table.Rows[0], "cast"); got != "Actor A, Actor B" {
		t.Errorf("cast = %q, want quoted field intact", got)
	}
	if got := idx.Cell(table.Rows[1], "duration"); got != "2 Seasons" {
		t.Errorf("duration = %q, want %q", got, "2 Seasons")
	}
}

func TestFromCSVLatin1Fallback(t *testing.T) {
	// Encode a row containing non-ASCII text as Latin-1 so the file is
	// not valid UTF-8.
	content := header + "\n" +
		"s1,Movie,Amélie,Jean-Pierre Jeunet,Audrey Tautou,France,2021-01-01,2001,R,122 min,Comedies,Café story.\n"
	encoded, err := charmap.ISO8859_1.NewEncoder().String(content)
	if err != nil {
		t.Fatal(err)
	}
	path := writeCSV(t, encoded)

	table, err := FromCSV(path)
	if err != nil {
		t.Fatalf("FromCSV: %v", err)
	}
	if got := table.Index().Cell(table.Rows[0], "title"); got != "Amélie" {
		t.Errorf("title = %q, want %q", got, "Amélie")
	}
}

func TestFromCSVRowWidthNormalization(t *testing.T) {
	path := writeCSV(t, header+"\n"+
		"s1,Movie,Short Row\n"+ // short: padded to 12 cells
		"s2,Movie,Long Row,d,c,co,da,2020,PG,90 min,Dramas,desc,extra,extra2\n") // long: truncated

	table, err := FromCSV(path)
	if err != nil {
		t.Fatalf("FromCSV: %v", err)
	}
	for i, row := range table.Rows {
		if len(row) != 12 {
			t.Errorf("row %d width = %d, want 12", i, len(row))
		}
	}
	if got := table.Index().Cell(table.Rows[0], "description"); got != "" {
		t.Errorf("padded cell = %q, want empty", got)
	}
}

func TestFromCSVMissingColumn(t *testing.T) {
	path := writeCSV(t, "show_id,type,title\n"+"s1,Movie,Example\n")
	_, err := FromCSV(path)
	if err == nil {
		t.Fatal("expected error for missing required columns")
	}
	if !strings.Contains(err.Error(), "missing required columns") {
		t.Errorf("error = %v, want missing-columns message", err)
	}
}

func TestFromCSVEmptyFile(t *testing.T) {
	path := writeCSV(t, "")
	if _, err := FromCSV(path); err == nil {
		t.Fatal("expected error for empty file")
	}

	// Header only, no data rows.
	path = writeCSV(t, header+"\n")
	if _, err := FromCSV(path); err == nil {
		t.Fatal("expected error for header-only file")
	}
}

func TestFromCSVFileNotFound(t *testing.T) {
	if _, err := FromCSV(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFromAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"show_id": "s1", "type": "Movie", "title": "Example", "release_year": 2020,
			 "director": null, "cast": "A, B", "country": "France",
			 "date_added": "September 25, 2021", "rating": "PG-13",
			 "duration": "90 min", "listed_in": "Dramas", "description": "A drama."}
		]`))
	}))
	defer srv.Close()

	table, err := FromAPI(context.Background(), srv.URL, APIOptions{Timeout: 5 * time.Second, RetryCount: 1})
	if err != nil {
		t.Fatalf("FromAPI: %v", err)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(table.Rows))
	}
	idx := table.Index()
	if got := idx.Cell(table.Rows[0], "release_year"); got != "2020" {
		t.Errorf("release_year = %q, want %q (integral number)", got, "2020")
	}
	if got := idx.Cell(table.Rows[0], "director"); got != "" {
		t.Errorf("director = %q, want empty for null", got)
	}
}

func TestFromAPIRetries(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[{"show_id": "s1", "type": "Movie", "title": "Example"}]`))
	}))
	defer srv.Close()

	table, err := FromAPI(context.Background(), srv.URL, APIOptions{Timeout: 5 * time.Second, RetryCount: 3})
	if err != nil {
		t.Fatalf("FromAPI: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if len(table.Rows) != 1 {
		t.Errorf("rows = %d, want 1", len(table.Rows))
	}
}

func TestFromAPIExhaustsRetries(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := FromAPI(context.Background(), srv.URL, APIOptions{Timeout: time.Second, RetryCount: 2})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestStringify(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"text", "text"},
		{float64(2020), "2020"},
		{float64(90.5), "90.5"},
		{true, "true"},
		{false, "false"},
	}
	for _, tt := range tests {
		if got := stringify(tt.in); got != tt.want {
			t.Errorf("stringify(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
