// Package app wires configuration, parsing, scoring and exports into one
// batch run.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mmynk/predictionsbetting/internal/config"
	"github.com/mmynk/predictionsbetting/internal/metrics"
	"github.com/mmynk/predictionsbetting/internal/parser"
	"github.com/mmynk/predictionsbetting/internal/report"
	"github.com/mmynk/predictionsbetting/internal/service"
	"github.com/mmynk/predictionsbetting/internal/storage/sqlite"
)

// Run executes one batch evaluation described by cfg. The console report
// goes to stdout unless cfg.Quiet is set; the other exports go to the
// paths in cfg.Output.
func Run(ctx context.Context, cfg *config.Config, stdout io.Writer) (*service.Result, error) {
	opts, err := cfg.ParserOptions()
	if err != nil {
		return nil, err
	}
	methods, err := cfg.PayoutMethods()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}

	f, err := os.Open(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	props, err := parser.Parse(f, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", cfg.Input, err)
	}
	slog.Info("Sheet loaded", "path", cfg.Input, "propositions", len(props))

	var recorder metrics.Recorder = metrics.Nop{}
	var prom *metrics.PrometheusMetrics
	if cfg.Output.Metrics != "" {
		prom = metrics.NewPrometheusMetrics()
		recorder = prom
	}

	res, err := service.NewRunner(opts.Roster, methods, recorder).Run(props)
	if err != nil {
		return nil, err
	}

	if !cfg.Quiet {
		if err := report.WriteText(stdout, res); err != nil {
			return nil, fmt.Errorf("failed to write report: %w", err)
		}
	}

	if err := writeFile(cfg.Output.SummaryCSV, res, report.WriteSummaryCSV); err != nil {
		return nil, err
	}
	if err := writeFile(cfg.Output.LedgerDOT, res, report.WriteLedgerDOT); err != nil {
		return nil, err
	}

	if cfg.Output.Database != "" {
		if err := archive(ctx, cfg.Output.Database, cfg.Input, res); err != nil {
			return nil, err
		}
	}

	if prom != nil {
		if err := ensureDir(cfg.Output.Metrics); err != nil {
			return nil, err
		}
		if err := prom.WriteTextfile(cfg.Output.Metrics); err != nil {
			return nil, fmt.Errorf("failed to write metrics: %w", err)
		}
		slog.Info("Metrics written", "path", cfg.Output.Metrics)
	}

	return res, nil
}

func archive(ctx context.Context, dbPath, source string, res *service.Result) error {
	store, err := sqlite.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer store.Close()

	run := res.ToRun(source)
	if err := store.SaveRun(ctx, run); err != nil {
		return fmt.Errorf("failed to archive run: %w", err)
	}
	slog.Info("Run archived", "database", dbPath, "run_id", run.ID)
	return nil
}

// ListRuns writes the headers of every run archived in dbPath.
func ListRuns(ctx context.Context, dbPath string, w io.Writer) error {
	store, err := sqlite.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer store.Close()

	runs, err := store.ListRuns(ctx)
	if err != nil {
		return err
	}
	return report.WriteRuns(w, runs)
}

// ShowRun writes one archived run in full.
func ShowRun(ctx context.Context, dbPath, runID string, w io.Writer) error {
	store, err := sqlite.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer store.Close()

	run, err := store.GetRun(ctx, runID)
	if err != nil {
		return err
	}
	return report.WriteRun(w, run)
}

func writeFile(path string, res *service.Result, write func(io.Writer, *service.Result) error) error {
	if path == "" {
		return nil
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f, res); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	slog.Info("Export written", "path", path)
	return nil
}

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	return nil
}
