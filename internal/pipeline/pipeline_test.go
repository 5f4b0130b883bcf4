package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Thiago-code-lab/data-engineering-netflix/internal/config"
)

// fakeDB is a minimal load.DB double that accepts every statement.
type fakeDB struct {
	inserted int
	batchErr error
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return &fakeRows{data: [][2]string{{"show_id", "text"}, {"release_year", "integer"}}}, nil
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return fakeRow{n: f.inserted}
}

func (f *fakeDB) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	if f.batchErr == nil {
		f.inserted += b.Len()
	}
	return &fakeBatchResults{err: f.batchErr}
}

type fakeRow struct{ n int }

func (r fakeRow) Scan(dest ...any) error {
	if len(dest) == 1 {
		if p, ok := dest[0].(*int); ok {
			*p = r.n
			return nil
		}
	}
	return errors.New("unexpected scan target")
}

type fakeRows struct {
	data [][2]string
	pos  int
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Next() bool {
	r.pos++
	return r.pos <= len(r.data)
}
func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.pos-1]
	if len(dest) != 2 {
		return errors.New("unexpected scan target")
	}
	*dest[0].(*string) = row[0]
	*dest[1].(*string) = row[1]
	return nil
}
func (r *fakeRows) Values() ([]any, error) { return nil, nil }
func (r *fakeRows) RawValues() [][]byte    { return nil }
func (r *fakeRows) Conn() *pgx.Conn        { return nil }

type fakeBatchResults struct{ err error }

func (r *fakeBatchResults) Exec() (pgconn.CommandTag, error) { return pgconn.CommandTag{}, r.err }
func (r *fakeBatchResults) Query() (pgx.Rows, error)         { return nil, errors.New("not implemented") }
func (r *fakeBatchResults) QueryRow() pgx.Row                { return fakeRow{} }
func (r *fakeBatchResults) Close() error                     { return nil }

const sourceCSV = `show_id,type,title,director,cast,country,date_added,release_year,rating,duration,listed_in,description
s1,Movie,First,Jane Doe,"A, B",United States,"January 15, 2020",2018,PG-13,90 min,Dramas,A drama.
s2,Movie,Second,nan,"C, D","France, Germany","June 1, 2021",2020,TV-MA,110 min,"Comedies, Dramas",A comedy.
s3,TV Show,Third,,E,United States,"March 10, 2021",2019,TV-MA,3 Seasons,Dramas,A series.
s3,TV Show,Third,,E,United States,"March 10, 2021",2019,TV-MA,3 Seasons,Dramas,A series.
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, "titles.csv")
	if err := os.WriteFile(src, []byte(sourceCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := &config.Config{}
	cfg.Source.CSVPath = src
	cfg.Load.Table = "netflix_titles"
	cfg.Load.Mode = "replace"
	cfg.Load.BatchSize = 2
	cfg.Output.Dir = filepath.Join(dir, "output")
	cfg.Transform.ReferenceYear = 2021
	return cfg
}

func TestRunSuccess(t *testing.T) {
	cfg := testConfig(t)
	db := &fakeDB{}
	p := New(cfg, db)

	if p.Stage() != StageNotStarted {
		t.Errorf("initial stage = %s", p.Stage())
	}

	rr, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if p.Stage() != StageSucceeded {
		t.Errorf("stage = %s, want %s", p.Stage(), StageSucceeded)
	}
	if p.FailedAt() != Stage("") {
		t.Errorf("failedAt = %s, want empty", p.FailedAt())
	}

	if rr.RunID == "" {
		t.Error("run id missing")
	}
	if rr.Execution.Status != "SUCCESS" {
		t.Errorf("status = %s", rr.Execution.Status)
	}
	if rr.Data.RawRows != 4 {
		t.Errorf("raw rows = %d, want 4", rr.Data.RawRows)
	}
	// One exact duplicate dropped.
	if rr.Data.CleanedRows != 3 {
		t.Errorf("cleaned rows = %d, want 3", rr.Data.CleanedRows)
	}
	if rr.Data.LoadedRows != 3 || rr.Data.LoadSuccessRate != 100 {
		t.Errorf("loaded = %d rate = %v", rr.Data.LoadedRows, rr.Data.LoadSuccessRate)
	}
	if rr.Artifacts == nil || len(rr.Artifacts.Charts) == 0 {
		t.Error("report artifacts missing")
	}
	if rr.Data.TableInfo == nil {
		t.Error("destination table info missing from run report")
	} else if rr.Data.TableInfo.RowCount != 3 || rr.Data.TableInfo.ColumnCount != 2 {
		t.Errorf("table info = %+v", rr.Data.TableInfo)
	}

	// The run report itself lands in the output directory.
	entries, err := os.ReadDir(cfg.Output.Dir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	var found bool
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "pipeline_report_") && strings.HasSuffix(e.Name(), ".json") {
			found = true
		}
	}
	if !found {
		t.Error("pipeline run report not written")
	}
}

func TestRunExtractFailure(t *testing.T) {
	cfg := testConfig(t)
	cfg.Source.CSVPath = filepath.Join(t.TempDir(), "absent.csv")
	p := New(cfg, &fakeDB{})

	_, err := p.Run(context.Background())
	if err == nil {
		t.Fatal("expected extract failure")
	}
	if !errors.Is(err, ErrInput) {
		t.Errorf("error = %v, want ErrInput", err)
	}
	if p.Stage() != StageFailed || p.FailedAt() != StageExtracting {
		t.Errorf("stage = %s failedAt = %s", p.Stage(), p.FailedAt())
	}
}

func TestRunLoadFailure(t *testing.T) {
	cfg := testConfig(t)
	db := &fakeDB{batchErr: errors.New("connection reset")}
	p := New(cfg, db)

	_, err := p.Run(context.Background())
	if err == nil {
		t.Fatal("expected load failure")
	}
	if !errors.Is(err, ErrStorage) {
		t.Errorf("error = %v, want ErrStorage", err)
	}
	if p.FailedAt() != StageLoading {
		t.Errorf("failedAt = %s, want %s", p.FailedAt(), StageLoading)
	}
}

func TestRunReportRequiredFailure(t *testing.T) {
	cfg := testConfig(t)
	cfg.Report.Required = true
	// Point the output directory at an existing file so artifact
	// generation cannot create it.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.Output.Dir = blocker
	p := New(cfg, &fakeDB{})

	_, err := p.Run(context.Background())
	if err == nil {
		t.Fatal("expected reporting failure to fail the run")
	}
	if !errors.Is(err, ErrReporting) {
		t.Errorf("error = %v, want ErrReporting", err)
	}
	if p.Stage() != StageFailed || p.FailedAt() != StageReporting {
		t.Errorf("stage = %s failedAt = %s", p.Stage(), p.FailedAt())
	}
}

func TestRunReportOptional(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg, &fakeDB{})

	rr, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// Reporting is best-effort by default: a successful run always carries
	// a non-nil artifacts block even if individual artifacts were skipped.
	if rr.Artifacts == nil {
		t.Error("artifacts must not be nil")
	}
}
