package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Thiago-code-lab/data-engineering-netflix/internal/catalog"
	"github.com/Thiago-code-lab/data-engineering-netflix/internal/config"
	"github.com/Thiago-code-lab/data-engineering-netflix/internal/load"
	"github.com/Thiago-code-lab/data-engineering-netflix/internal/report"
	"github.com/Thiago-code-lab/data-engineering-netflix/internal/transform"
)

// RunReport is the timestamped record of one successful pipeline run.
type RunReport struct {
	RunID     string            `json:"run_id"`
	Execution ExecutionSummary  `json:"pipeline_execution"`
	Data      DataSummary       `json:"data_summary"`
	Artifacts *report.Artifacts `json:"artifacts"`
}

// ExecutionSummary records run timing and outcome.
type ExecutionSummary struct {
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationSeconds float64   `json:"duration_seconds"`
	Status          string    `json:"status"`
}

// DataSummary records row counts at each stage plus quality metrics.
type DataSummary struct {
	SourceFile      string                 `json:"source_file"`
	TargetTable     string                 `json:"target_table"`
	RawRows         int                    `json:"raw_data_rows"`
	CleanedRows     int                    `json:"transformed_data_rows"`
	LoadedRows      int                    `json:"loaded_rows"`
	LoadSuccessRate float64                `json:"load_success_rate"`
	TransformStats  *transform.Stats       `json:"transform_stats"`
	Quality         *catalog.QualityReport `json:"data_quality"`
	TableInfo       *load.TableInfo        `json:"table_info,omitempty"`
}

func newRunReport(
	runID string,
	started, ended time.Time,
	cfg *config.Config,
	rawRows int,
	ds *catalog.Dataset,
	stats *transform.Stats,
	loadReport *load.Report,
	tableInfo *load.TableInfo,
	artifacts *report.Artifacts,
) *RunReport {
	return &RunReport{
		RunID: runID,
		Execution: ExecutionSummary{
			StartTime:       started,
			EndTime:         ended,
			DurationSeconds: ended.Sub(started).Seconds(),
			Status:          "SUCCESS",
		},
		Data: DataSummary{
			SourceFile:      cfg.Source.CSVPath,
			TargetTable:     cfg.Load.Table,
			RawRows:         rawRows,
			CleanedRows:     ds.Len(),
			LoadedRows:      loadReport.LoadedRows,
			LoadSuccessRate: loadReport.SuccessRate,
			TransformStats:  stats,
			Quality:         loadReport.Quality,
			TableInfo:       tableInfo,
		},
		Artifacts: artifacts,
	}
}

// Save writes the run report as timestamped JSON into dir.
func (r *RunReport) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("pipeline_report_%s.json", r.Execution.StartTime.Format("20060102_150405")))
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal run report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write run report: %w", err)
	}
	return path, nil
}
