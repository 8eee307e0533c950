// Command predictbet scores a prediction sheet: it plays every pair of
// forecasters against each other under each payout method, prints the
// resulting balances and Brier scores, and writes the configured exports.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mmynk/predictionsbetting/internal/app"
	"github.com/mmynk/predictionsbetting/internal/config"
	"github.com/mmynk/predictionsbetting/pkg/logging"
)

func main() {
	configPath := flag.String("config", "", "path to TOML configuration file")
	input := flag.String("input", "", "tab-delimited prediction sheet")
	roster := flag.String("roster", "", "comma-separated participants, in column order")
	methods := flag.String("methods", "", "comma-separated payout methods")
	outcomes := flag.String("outcomes", "", "resolution tokens: strict or lenient")
	dueBy := flag.String("due-by", "", "skip propositions due after this date (YYYY-MM-DD)")
	logLevel := flag.String("log-level", "", "debug, info, warn or error")
	quiet := flag.Bool("quiet", false, "suppress the console report")
	csvPath := flag.String("csv", "", "write the summary CSV to this path")
	dotPath := flag.String("dot", "", "write the head-to-head Graphviz ledger to this path")
	dbPath := flag.String("db", "", "archive the run in this SQLite database")
	metricsPath := flag.String("metrics", "", "write Prometheus textfile metrics to this path")
	listRuns := flag.Bool("list-runs", false, "list runs archived in the -db database and exit")
	showRun := flag.String("show-run", "", "print the archived run with this ID and exit")
	flag.Parse()

	logging.Setup()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}

	// Flags that were set explicitly win over the file and environment.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = *input
		case "roster":
			cfg.Roster = config.SplitList(*roster)
		case "methods":
			cfg.Methods = config.SplitList(*methods)
		case "outcomes":
			cfg.Outcomes = *outcomes
		case "due-by":
			cfg.DueBy = *dueBy
		case "log-level":
			cfg.LogLevel = *logLevel
		case "quiet":
			cfg.Quiet = *quiet
		case "csv":
			cfg.Output.SummaryCSV = *csvPath
		case "dot":
			cfg.Output.LedgerDOT = *dotPath
		case "db":
			cfg.Output.Database = *dbPath
		case "metrics":
			cfg.Output.Metrics = *metricsPath
		}
	})

	if *listRuns || *showRun != "" {
		if cfg.Output.Database == "" {
			slog.Error("An archive database is required", "flag", "-db")
			os.Exit(1)
		}
		logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))
		ctx := context.Background()
		var err error
		if *showRun != "" {
			err = app.ShowRun(ctx, cfg.Output.Database, *showRun, os.Stdout)
		} else {
			err = app.ListRuns(ctx, cfg.Output.Database, os.Stdout)
		}
		if err != nil {
			slog.Error("Archive query failed", "database", cfg.Output.Database, "error", err)
			os.Exit(1)
		}
		return
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := app.Run(ctx, cfg, os.Stdout); err != nil {
		slog.Error("Run failed", "error", err)
		stop()
		os.Exit(1)
	}
}
