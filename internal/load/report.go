package load

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Thiago-code-lab/data-engineering-netflix/internal/catalog"
)

// Report summarizes one load: what was written, whether the destination
// row count matches, and the quality of the loaded data.
type Report struct {
	Timestamp   time.Time              `json:"timestamp"`
	TableName   string                 `json:"table_name"`
	SourceRows  int                    `json:"source_rows"`
	LoadedRows  int                    `json:"loaded_rows"`
	SuccessRate float64                `json:"load_success_rate"`
	Quality     *catalog.QualityReport `json:"data_quality"`
	Columns     []string               `json:"columns_loaded"`
	DataTypes   map[string]string      `json:"data_types"`
}

func newReport(ds *catalog.Dataset, table string, loaded int) *Report {
	types := make(map[string]string, len(catalog.Columns))
	for _, col := range catalog.Columns {
		types[col.Name] = sqlType(col.Kind)
	}

	rate := 0.0
	if ds.Len() > 0 {
		rate = float64(loaded) / float64(ds.Len()) * 100
	}

	return &Report{
		Timestamp:   time.Now(),
		TableName:   table,
		SourceRows:  ds.Len(),
		LoadedRows:  loaded,
		SuccessRate: rate,
		Quality:     ds.Quality(),
		Columns:     catalog.ColumnNames(),
		DataTypes:   types,
	}
}

// Save writes the report as timestamped JSON into dir and returns the
// file path.
func (r *Report) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	name := fmt.Sprintf("load_report_%s_%s.json", r.TableName, r.Timestamp.Format("20060102_150405"))
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal load report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write load report: %w", err)
	}
	return path, nil
}

// TableInfo describes a loaded destination table.
type TableInfo struct {
	TableName   string            `json:"table_name"`
	RowCount    int               `json:"row_count"`
	ColumnCount int               `json:"column_count"`
	Columns     map[string]string `json:"columns"`
}

// Info queries row count and column metadata for a table.
func Info(ctx context.Context, db DB, table string) (*TableInfo, error) {
	rows, err := db.Query(ctx,
		`SELECT column_name, data_type FROM information_schema.columns WHERE table_name = $1 ORDER BY ordinal_position`,
		table)
	if err != nil {
		return nil, fmt.Errorf("query columns for %s: %w", table, err)
	}
	defer rows.Close()

	cols := make(map[string]string)
	for rows.Next() {
		var name, typ string
		if err := rows.Scan(&name, &typ); err != nil {
			return nil, fmt.Errorf("scan column metadata: %w", err)
		}
		cols[name] = typ
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read column metadata: %w", err)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("table %s does not exist", table)
	}

	count, err := countRows(ctx, db, table)
	if err != nil {
		return nil, fmt.Errorf("count rows in %s: %w", table, err)
	}

	return &TableInfo{
		TableName:   table,
		RowCount:    count,
		ColumnCount: len(cols),
		Columns:     cols,
	}, nil
}
