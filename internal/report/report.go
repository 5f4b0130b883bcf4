package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Thiago-code-lab/data-engineering-netflix/internal/catalog"
)

// Options configure report generation.
type Options struct {
	Dir       string    // output directory, created if absent
	TableName string    // destination table name, used in the SQL examples
	Timestamp time.Time // stamp used in artifact file names; zero means now
}

// Artifacts lists the files a report run produced.
type Artifacts struct {
	Charts      []string `json:"charts"`
	Markdown    string   `json:"markdown,omitempty"`
	SQLExamples string   `json:"sql_examples,omitempty"`
}

// Generate computes aggregates for the dataset and writes every report
// artifact. Individual artifact failures are logged and skipped; the
// returned error is non-nil only when every artifact failed or the
// dataset is empty.
func Generate(ds *catalog.Dataset, opts Options) (*Artifacts, error) {
	if ds.Len() == 0 {
		return nil, fmt.Errorf("cannot report on an empty dataset")
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	if opts.Timestamp.IsZero() {
		opts.Timestamp = time.Now()
	}
	stamp := opts.Timestamp.Format("20060102_150405")

	slog.Info("generating analysis report", "rows", ds.Len(), "dir", opts.Dir)
	summary := Summarize(ds)

	arts := &Artifacts{}
	failures := 0

	charts := []struct {
		name   string
		render func(*Summary, string) error
	}{
		{"content", contentTypeCharts},
		{"temporal", temporalCharts},
		{"geographic", geographicCharts},
		{"genre", genreCharts},
	}
	for _, c := range charts {
		path := filepath.Join(opts.Dir, fmt.Sprintf("netflix_%s_analysis_%s.png", c.name, stamp))
		if err := c.render(summary, path); err != nil {
			slog.Warn("chart rendering failed, skipping", "chart", c.name, "error", err)
			failures++
			continue
		}
		arts.Charts = append(arts.Charts, path)
	}

	mdPath := filepath.Join(opts.Dir, fmt.Sprintf("netflix_analysis_report_%s.md", stamp))
	if err := os.WriteFile(mdPath, []byte(markdown(summary, opts.Timestamp)), 0o644); err != nil {
		slog.Warn("markdown report failed, skipping", "error", err)
		failures++
	} else {
		arts.Markdown = mdPath
	}

	sqlPath := filepath.Join(opts.Dir, fmt.Sprintf("netflix_sql_queries_%s.sql", stamp))
	if err := os.WriteFile(sqlPath, []byte(QueryExamples(opts.TableName)), 0o644); err != nil {
		slog.Warn("sql examples failed, skipping", "error", err)
		failures++
	} else {
		arts.SQLExamples = sqlPath
	}

	total := len(charts) + 2
	if failures == total {
		return nil, fmt.Errorf("all %d report artifacts failed", total)
	}
	slog.Info("report generation complete", "artifacts", total-failures, "skipped", failures)
	return arts, nil
}

// markdown renders the analysis report body.
func markdown(s *Summary, ts time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Netflix Data Analysis Report\n")
	fmt.Fprintf(&b, "Generated on: %s\n\n", ts.Format("2006-01-02 15:04:05"))

	fmt.Fprintf(&b, "## Dataset Overview\n")
	fmt.Fprintf(&b, "- Total Content: %d titles\n", s.TotalTitles)
	fmt.Fprintf(&b, "- Duplicate Rows: %d\n\n", s.Quality.DuplicateRows)

	fmt.Fprintf(&b, "## Content Type Analysis\n")
	fmt.Fprintf(&b, "- Total Movies: %d (%.1f%%)\n", s.Movies, s.MoviePercent)
	fmt.Fprintf(&b, "- Total TV Shows: %d (%.1f%%)\n", s.TVShows, 100-s.MoviePercent)
	if s.MovieDuration != nil {
		fmt.Fprintf(&b, "- Average Movie Duration: %.1f minutes\n", s.MovieDuration.Mean)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Temporal Analysis\n")
	if s.EarliestRelease > 0 {
		fmt.Fprintf(&b, "- Content Release Years: %d - %d\n", s.EarliestRelease, s.LatestRelease)
	}
	if !s.FirstAdded.IsZero() {
		fmt.Fprintf(&b, "- Netflix Addition Period: %s - %s\n",
			s.FirstAdded.Format("2006-01-02"), s.LastAdded.Format("2006-01-02"))
	}
	if s.ContentAge != nil {
		fmt.Fprintf(&b, "- Average Content Age When Added: %.1f years\n", s.ContentAge.Mean)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Geographic Analysis\n")
	fmt.Fprintf(&b, "- Total Countries Represented: %d\n", s.UniqueCountries)
	if len(s.TopCountries) > 0 {
		fmt.Fprintf(&b, "- Top Content Producer: %s (%d titles)\n", s.TopCountries[0].Name, s.TopCountries[0].Count)
	}
	fmt.Fprintf(&b, "- International Co-productions: %.1f%%\n\n", s.InternationalPercent)

	fmt.Fprintf(&b, "## Genre Analysis\n")
	fmt.Fprintf(&b, "- Unique Primary Genres: %d\n", s.UniqueGenres)
	if len(s.TopGenres) > 0 {
		fmt.Fprintf(&b, "- Most Popular Genre: %s (%d titles)\n", s.TopGenres[0].Name, s.TopGenres[0].Count)
	}
	if s.AvgGenresPerTitle > 0 {
		fmt.Fprintf(&b, "- Average Genres per Title: %.1f\n", s.AvgGenresPerTitle)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Rating Categories\n")
	for _, nc := range s.RatingCategories {
		fmt.Fprintf(&b, "- %s: %d titles\n", nc.Name, nc.Count)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Data Quality Summary\n")
	cols := make([]string, 0, len(s.Quality.MissingValues))
	for col := range s.Quality.MissingValues {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	for _, col := range cols {
		missing := s.Quality.MissingValues[col]
		pct := float64(missing) / float64(s.TotalTitles) * 100
		fmt.Fprintf(&b, "- %s: %d missing (%.1f%%)\n", col, missing, pct)
	}
	b.WriteString("\n---\nReport generated by the Netflix data engineering pipeline\n")

	return b.String()
}
