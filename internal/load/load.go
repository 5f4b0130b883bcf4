// Package load persists a cleaned dataset into PostgreSQL. Rows are
// written in bounded-size batches; the load verifies its own row count
// afterwards and emits a JSON load report. From the caller's viewpoint a
// load either succeeds completely or fails, even though the underlying
// batches are not one transaction.
package load

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Thiago-code-lab/data-engineering-netflix/internal/catalog"
)

// DB is the database surface the loader needs. Satisfied by
// *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Mode controls behavior when the destination table already exists.
type Mode string

const (
	ModeReplace Mode = "replace" // drop and recreate (default)
	ModeAppend  Mode = "append"  // create if absent, keep existing rows
	ModeFail    Mode = "fail"    // error if the table exists
)

// Options configure a load.
type Options struct {
	Table     string
	Mode      Mode
	BatchSize int
	OutputDir string // where the load report is written; empty disables it
}

// ToPostgres writes every dataset row to the destination table and
// verifies the result. Returns the load report on success.
func ToPostgres(ctx context.Context, db DB, ds *catalog.Dataset, opts Options) (*Report, error) {
	if ds.Len() == 0 {
		return nil, fmt.Errorf("cannot load an empty dataset")
	}
	if opts.Table == "" {
		return nil, fmt.Errorf("destination table name is required")
	}
	if opts.Mode == "" {
		opts.Mode = ModeReplace
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 1000
	}

	logger := slog.With("table", opts.Table, "mode", string(opts.Mode))
	logger.Info("starting load", "rows", ds.Len(), "batch_size", opts.BatchSize)

	if err := ensureTable(ctx, db, opts); err != nil {
		return nil, err
	}

	insertSQL := insertStatement(opts.Table)
	inserted := 0
	for start := 0; start < ds.Len(); start += opts.BatchSize {
		end := start + opts.BatchSize
		if end > ds.Len() {
			end = ds.Len()
		}

		batch := &pgx.Batch{}
		for i := start; i < end; i++ {
			batch.Queue(insertSQL, rowValues(&ds.Titles[i])...)
		}

		if err := sendBatch(ctx, db, batch); err != nil {
			return nil, fmt.Errorf("insert batch starting at row %d: %w", start, err)
		}
		inserted += end - start
	}

	loaded, err := countRows(ctx, db, opts.Table)
	if err != nil {
		return nil, fmt.Errorf("verify load: %w", err)
	}
	logger.Info("load complete", "inserted", inserted, "rows_in_table", loaded)

	report := newReport(ds, opts.Table, loaded)
	if opts.OutputDir != "" {
		if path, err := report.Save(opts.OutputDir); err != nil {
			logger.Warn("failed to save load report", "error", err)
		} else {
			logger.Info("load report saved", "path", path)
		}
	}
	return report, nil
}

func sendBatch(ctx context.Context, db DB, batch *pgx.Batch) error {
	results := db.SendBatch(ctx, batch)
	defer results.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return results.Close()
}

func ensureTable(ctx context.Context, db DB, opts Options) error {
	ddl := createTableStatement(opts.Table, opts.Mode)
	if opts.Mode == ModeReplace {
		if _, err := db.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteIdent(opts.Table))); err != nil {
			return fmt.Errorf("drop existing table: %w", err)
		}
	}
	if _, err := db.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("create table %s: %w", opts.Table, err)
	}
	return nil
}

func countRows(ctx context.Context, db DB, table string) (int, error) {
	var n int
	err := db.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteIdent(table))).Scan(&n)
	return n, err
}

// quoteIdent quotes a SQL identifier. Needed because the dataset includes
// reserved words like "cast" as column names.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func sqlType(kind catalog.ColumnKind) string {
	switch kind {
	case catalog.KindDate:
		return "date"
	case catalog.KindInteger:
		return "integer"
	case catalog.KindDouble:
		return "double precision"
	case catalog.KindBoolean:
		return "boolean"
	default:
		return "text"
	}
}

// createTableStatement builds DDL for the fixed dataset schema.
// Categorical columns are stored as plain text.
func createTableStatement(table string, mode Mode) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	if mode == ModeAppend {
		b.WriteString("IF NOT EXISTS ")
	}
	b.WriteString(quoteIdent(table))
	b.WriteString(" (\n")
	for i, col := range catalog.Columns {
		if i > 0 {
			b.WriteString(",\n")
		}
		b.WriteString("\t")
		b.WriteString(quoteIdent(col.Name))
		b.WriteString(" ")
		b.WriteString(sqlType(col.Kind))
	}
	b.WriteString("\n)")
	return b.String()
}

// insertStatement builds the parameterized insert covering every column.
func insertStatement(table string) string {
	cols := make([]string, len(catalog.Columns))
	params := make([]string, len(catalog.Columns))
	for i, col := range catalog.Columns {
		cols[i] = quoteIdent(col.Name)
		params[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(cols, ", "), strings.Join(params, ", "))
}

// rowValues extracts insert arguments for one record, sanitizing values
// for storage: invalid pgtype values become NULL and non-finite floats
// are replaced with NULL.
func rowValues(t *catalog.Title) []any {
	args := make([]any, len(catalog.Columns))
	for i, col := range catalog.Columns {
		args[i] = sanitizeValue(col.Value(t))
	}
	return args
}

func sanitizeValue(v any) any {
	if f, ok := v.(pgtype.Float8); ok {
		if f.Valid && (math.IsInf(f.Float64, 0) || math.IsNaN(f.Float64)) {
			return pgtype.Float8{}
		}
	}
	return v
}
