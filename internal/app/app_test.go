package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/predictionsbetting/internal/config"
	"github.com/mmynk/predictionsbetting/internal/models"
	"github.com/mmynk/predictionsbetting/internal/storage/sqlite"
)

const sheet = "Domain\tPrediction\tBy\tNotes\tDue\tIvan\tJason\tDaffy\tErnie\tResult\tAlt\n" +
	"Politics\tIncumbent wins\t\t\t2022-01-01\t70\t40\t55\t90\tt\t\n" +
	"\tTurnout above 60%\t\t\t2022-01-01\t20\t20\t35\t10\t\tf\n" +
	"Sports\tHome team wins\t\t\t2022-01-01\t50\t50\t50\t50\t\t\n" +
	"Sports\tNext season\t\t\t2023-06-01\t50\t60\t50\t50\tt\t\n"

func setup(t *testing.T) (*config.Config, string) {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "data.tsv")
	require.NoError(t, os.WriteFile(input, []byte(sheet), 0o644))

	cfg := config.Defaults()
	cfg.Input = input
	cfg.Roster = []string{"ivan", "jason", "daffy", "ernie"}
	cfg.DueBy = "2022-01-01"
	require.NoError(t, cfg.Validate())
	return &cfg, dir
}

func TestRun_ConsoleReport(t *testing.T) {
	cfg, _ := setup(t)

	var out bytes.Buffer
	res, err := Run(context.Background(), cfg, &out)
	require.NoError(t, err)

	assert.Len(t, res.Propositions, 2)
	assert.Len(t, res.Skipped, 2)
	for _, m := range models.AllMethods {
		assert.InDelta(t, 0, res.Totals[m].Sum(), 1e-9)
	}
	// ernie was highest on the true proposition and lowest on the false one.
	assert.InDelta(t, 6, res.Totals[models.Straight]["ernie"], 1e-9)

	assert.Contains(t, out.String(), "Incumbent wins")
	assert.Contains(t, out.String(), "Totals over 2 propositions")
}

func TestRun_Exports(t *testing.T) {
	cfg, dir := setup(t)
	cfg.Quiet = true
	cfg.Output = config.OutputConfig{
		SummaryCSV: filepath.Join(dir, "out", "summary.csv"),
		LedgerDOT:  filepath.Join(dir, "out", "ledger.dot"),
		Database:   filepath.Join(dir, "out", "runs.db"),
		Metrics:    filepath.Join(dir, "out", "predictbet.prom"),
	}

	var out bytes.Buffer
	_, err := Run(context.Background(), cfg, &out)
	require.NoError(t, err)
	assert.Empty(t, out.String())

	summary, err := os.ReadFile(cfg.Output.SummaryCSV)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(summary), "kind,method,participant,value"))

	dot, err := os.ReadFile(cfg.Output.LedgerDOT)
	require.NoError(t, err)
	assert.Contains(t, string(dot), "digraph ledger")

	prom, err := os.ReadFile(cfg.Output.Metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "predictbet_propositions_scored_total 2")
	assert.Contains(t, string(prom), `predictbet_propositions_skipped_total{reason="not due yet"} 1`)

	store, err := sqlite.New(cfg.Output.Database)
	require.NoError(t, err)
	defer store.Close()
	runs, err := store.ListRuns(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 2, runs[0].Scored)
	assert.Equal(t, cfg.Input, runs[0].Source)
}

func TestListAndShowRuns(t *testing.T) {
	cfg, dir := setup(t)
	cfg.Quiet = true
	cfg.Output.Database = filepath.Join(dir, "runs.db")

	_, err := Run(context.Background(), cfg, &bytes.Buffer{})
	require.NoError(t, err)

	var list bytes.Buffer
	require.NoError(t, ListRuns(context.Background(), cfg.Output.Database, &list))
	lines := strings.Split(strings.TrimSpace(list.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], cfg.Input)
	runID := strings.Fields(lines[1])[0]

	var show bytes.Buffer
	require.NoError(t, ShowRun(context.Background(), cfg.Output.Database, runID, &show))
	assert.Contains(t, show.String(), "Run "+runID)
	assert.Contains(t, show.String(), "ernie: 6.00")

	err = ShowRun(context.Background(), cfg.Output.Database, "missing", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRun_Deterministic(t *testing.T) {
	cfg, _ := setup(t)
	cfg.Quiet = true

	first, err := Run(context.Background(), cfg, &bytes.Buffer{})
	require.NoError(t, err)
	second, err := Run(context.Background(), cfg, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRun_MissingInput(t *testing.T) {
	cfg, dir := setup(t)
	cfg.Input = filepath.Join(dir, "missing.tsv")

	_, err := Run(context.Background(), cfg, &bytes.Buffer{})
	assert.Error(t, err)
}
