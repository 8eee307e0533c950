package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load builds a Config from the built-in defaults, the TOML file at path
// (skipped when path is empty) and PREDICTBET_* environment overrides.
// The returned Config has NOT been validated; call Validate after applying
// any command-line overrides.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Input, "PREDICTBET_INPUT")
	setList(&cfg.Roster, "PREDICTBET_ROSTER")
	setList(&cfg.Methods, "PREDICTBET_METHODS")
	setStr(&cfg.Outcomes, "PREDICTBET_OUTCOMES")
	setStr(&cfg.DueBy, "PREDICTBET_DUE_BY")
	setStr(&cfg.LogLevel, "LOG_LEVEL")
	setStr(&cfg.LogLevel, "PREDICTBET_LOG_LEVEL")
	setBool(&cfg.Quiet, "PREDICTBET_QUIET")

	setStr(&cfg.Output.SummaryCSV, "PREDICTBET_OUTPUT_SUMMARY_CSV")
	setStr(&cfg.Output.LedgerDOT, "PREDICTBET_OUTPUT_LEDGER_DOT")
	setStr(&cfg.Output.Database, "PREDICTBET_OUTPUT_DATABASE")
	setStr(&cfg.Output.Metrics, "PREDICTBET_OUTPUT_METRICS")
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

// setList reads a comma-separated list.
func setList(dst *[]string, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	*dst = SplitList(v)
}

// SplitList splits a comma-separated value, dropping empty entries.
func SplitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
