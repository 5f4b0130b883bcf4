// Package pipeline sequences the ETL stages: extract, transform, load,
// report. Exactly one run is in flight at a time; stages own the data
// wholesale and hand it to the next stage. The first stage failure stops
// the run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Thiago-code-lab/data-engineering-netflix/internal/catalog"
	"github.com/Thiago-code-lab/data-engineering-netflix/internal/config"
	"github.com/Thiago-code-lab/data-engineering-netflix/internal/extract"
	"github.com/Thiago-code-lab/data-engineering-netflix/internal/load"
	"github.com/Thiago-code-lab/data-engineering-netflix/internal/logging"
	"github.com/Thiago-code-lab/data-engineering-netflix/internal/report"
	"github.com/Thiago-code-lab/data-engineering-netflix/internal/transform"
)

// Stage identifies a step of a pipeline run.
type Stage string

const (
	StageNotStarted   Stage = "not_started"
	StageExtracting   Stage = "extracting"
	StageTransforming Stage = "transforming"
	StageLoading      Stage = "loading"
	StageReporting    Stage = "reporting"
	StageSucceeded    Stage = "succeeded"
	StageFailed       Stage = "failed"
)

// Error categories, one per failure class. Wrapped around the underlying
// stage error so callers can classify without string matching.
var (
	ErrInput      = errors.New("input error")
	ErrValidation = errors.New("validation error")
	ErrStorage    = errors.New("storage error")
	ErrReporting  = errors.New("reporting error")
)

// Pipeline runs the full ETL sequence against one source file and one
// destination table.
type Pipeline struct {
	cfg *config.Config
	db  load.DB

	stage    Stage
	failedAt Stage
}

// New builds a pipeline from configuration and an open database handle.
func New(cfg *config.Config, db load.DB) *Pipeline {
	return &Pipeline{cfg: cfg, db: db, stage: StageNotStarted}
}

// Stage reports the pipeline's current (or terminal) stage.
func (p *Pipeline) Stage() Stage { return p.stage }

// FailedAt reports the stage a failed run stopped in, or "" on success.
func (p *Pipeline) FailedAt() Stage { return p.failedAt }

// Run executes extract, transform, load and report in order and writes a
// run report on success. Reporting failures are non-fatal unless the
// configuration marks reporting as required.
func (p *Pipeline) Run(ctx context.Context) (*RunReport, error) {
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithFields(logging.FromContext(ctx), map[string]any{
		"source": p.cfg.Source.CSVPath,
		"table":  p.cfg.Load.Table,
	})
	started := time.Now()

	logger.Info("starting pipeline run")

	// Extract.
	p.stage = StageExtracting
	table, err := p.extractStage(ctx)
	if err != nil {
		return nil, p.fail(logger, StageExtracting, err)
	}
	rawRows := len(table.Rows)

	// Transform.
	p.stage = StageTransforming
	ds, stats, err := transform.Clean(table, transform.Options{ReferenceYear: p.cfg.Transform.ReferenceYear})
	if err != nil {
		return nil, p.fail(logger, StageTransforming, fmt.Errorf("%w: %v", ErrValidation, err))
	}
	logger.Info("transform stage complete",
		"raw_rows", rawRows,
		"cleaned_rows", ds.Len(),
		"rows_removed", rawRows-ds.Len(),
	)

	// Load.
	p.stage = StageLoading
	loadReport, err := load.ToPostgres(ctx, p.db, ds, load.Options{
		Table:     p.cfg.Load.Table,
		Mode:      load.Mode(p.cfg.Load.Mode),
		BatchSize: p.cfg.Load.BatchSize,
		OutputDir: p.cfg.Output.Dir,
	})
	if err != nil {
		return nil, p.fail(logger, StageLoading, fmt.Errorf("%w: %v", ErrStorage, err))
	}

	// Destination metadata for the run report; best effort.
	tableInfo, err := load.Info(ctx, p.db, p.cfg.Load.Table)
	if err != nil {
		logger.Warn("failed to read destination table info", "error", err)
		tableInfo = nil
	}

	// Report.
	p.stage = StageReporting
	artifacts, err := report.Generate(ds, report.Options{
		Dir:       p.cfg.Output.Dir,
		TableName: p.cfg.Load.Table,
		Timestamp: started,
	})
	if err != nil {
		if p.cfg.Report.Required {
			return nil, p.fail(logger, StageReporting, fmt.Errorf("%w: %v", ErrReporting, err))
		}
		logger.Warn("report generation failed, continuing", "error", err)
		artifacts = &report.Artifacts{}
	}

	p.stage = StageSucceeded
	ended := time.Now()

	runReport := newRunReport(runID, started, ended, p.cfg, rawRows, ds, stats, loadReport, tableInfo, artifacts)
	if path, err := runReport.Save(p.cfg.Output.Dir); err != nil {
		logger.Warn("failed to save pipeline run report", "error", err)
	} else {
		logger.Info("pipeline run report saved", "path", path)
	}

	logger.Info("pipeline completed successfully", "duration", ended.Sub(started).String())
	return runReport, nil
}

func (p *Pipeline) extractStage(ctx context.Context) (*catalog.Table, error) {
	if p.cfg.API.URL != "" {
		table, err := extract.FromAPI(ctx, p.cfg.API.URL, extract.APIOptions{
			Timeout:    p.cfg.API.Timeout,
			RetryCount: p.cfg.API.RetryCount,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInput, err)
		}
		return table, nil
	}

	table, err := extract.FromCSV(p.cfg.Source.CSVPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInput, err)
	}
	return table, nil
}

func (p *Pipeline) fail(logger *slog.Logger, at Stage, err error) error {
	p.stage = StageFailed
	p.failedAt = at
	logger.Error("pipeline failed", "stage", string(at), "error", err)
	return fmt.Errorf("pipeline failed at stage %s: %w", at, err)
}
