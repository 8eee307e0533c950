package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/predictionsbetting/internal/models"
	"github.com/mmynk/predictionsbetting/internal/parser"
)

func validConfig() Config {
	cfg := Defaults()
	cfg.Input = "data.tsv"
	cfg.Roster = []string{"ivan", "jason", "daffy", "ernie"}
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	methods, err := cfg.PayoutMethods()
	require.NoError(t, err)
	assert.Equal(t, models.AllMethods, methods)
	assert.Equal(t, "strict", cfg.Outcomes)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing input", mutate: func(c *Config) { c.Input = "" }, wantErr: true},
		{name: "single participant", mutate: func(c *Config) { c.Roster = []string{"ivan"} }, wantErr: true},
		{name: "duplicate participant", mutate: func(c *Config) { c.Roster = []string{"ivan", "ivan"} }, wantErr: true},
		{name: "duplicate after trimming", mutate: func(c *Config) { c.Roster = []string{"ivan", " ivan"} }, wantErr: true},
		{name: "blank participant", mutate: func(c *Config) { c.Roster = []string{"ivan", "  "} }, wantErr: true},
		{name: "unknown method", mutate: func(c *Config) { c.Methods = []string{"Straight", "Lottery"} }, wantErr: true},
		{name: "alias listed twice", mutate: func(c *Config) { c.Methods = []string{"DiffBet", "AbsoluteDifference"} }, wantErr: true},
		{name: "no methods", mutate: func(c *Config) { c.Methods = nil }, wantErr: true},
		{name: "bad outcome mode", mutate: func(c *Config) { c.Outcomes = "fuzzy" }, wantErr: true},
		{name: "bad due date", mutate: func(c *Config) { c.DueBy = "01/01/2022" }, wantErr: true},
		{name: "good due date", mutate: func(c *Config) { c.DueBy = "2022-01-01" }},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_TrimsRoster(t *testing.T) {
	cfg := validConfig()
	cfg.Roster = []string{" ivan", "jason "}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{"ivan", "jason"}, cfg.Roster)
}

func TestParserOptions(t *testing.T) {
	cfg := validConfig()
	cfg.Outcomes = "lenient"
	cfg.DueBy = "2022-01-01"

	opts, err := cfg.ParserOptions()
	require.NoError(t, err)

	assert.Equal(t, parser.OutcomeLenient, opts.Outcomes)
	assert.Equal(t, time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), opts.DueBy)
	assert.Equal(t, []models.Participant{"ivan", "jason", "daffy", "ernie"}, opts.Roster)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "predictbet.toml")
	content := `
input = "sheet.tsv"
roster = ["ivan", "jason"]
methods = ["Straight", "Multiplicative"]
outcomes = "lenient"

[output]
summary_csv = "out/summary.csv"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("PREDICTBET_ROSTER", "ivan, jason , daffy")
	t.Setenv("PREDICTBET_OUTPUT_DATABASE", "out/runs.db")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sheet.tsv", cfg.Input)
	assert.Equal(t, []string{"ivan", "jason", "daffy"}, cfg.Roster)
	assert.Equal(t, []string{"Straight", "Multiplicative"}, cfg.Methods)
	assert.Equal(t, "lenient", cfg.Outcomes)
	assert.Equal(t, "out/summary.csv", cfg.Output.SummaryCSV)
	assert.Equal(t, "out/runs.db", cfg.Output.Database)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitList(" a, ,b,"))
	assert.Nil(t, SplitList(""))
}
