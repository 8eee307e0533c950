// Package config holds the settings for one batch evaluation run.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mmynk/predictionsbetting/internal/models"
	"github.com/mmynk/predictionsbetting/internal/parser"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// DateLayout is the format of the due_by setting.
const DateLayout = "2006-01-02"

// Config is the top-level run configuration.
type Config struct {
	// Input is the path of the tab-delimited prediction sheet.
	Input string `toml:"input" validate:"required"`

	// Roster lists participants in the order their estimate columns appear.
	Roster []string `toml:"roster" validate:"min=2,unique,dive,required"`

	// Methods are the payout methods to evaluate, in report order.
	Methods []string `toml:"methods" validate:"min=1,unique,dive,required"`

	// Outcomes selects the accepted resolution tokens: strict or lenient.
	Outcomes string `toml:"outcomes" validate:"oneof=strict lenient"`

	// DueBy excludes propositions due after this date (YYYY-MM-DD).
	DueBy string `toml:"due_by" validate:"omitempty,datetime=2006-01-02"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level" validate:"oneof=debug info warn error"`

	// Quiet suppresses the console report.
	Quiet bool `toml:"quiet"`

	Output OutputConfig `toml:"output"`
}

// OutputConfig names the optional export targets. Empty paths are skipped.
type OutputConfig struct {
	SummaryCSV string `toml:"summary_csv"`
	LedgerDOT  string `toml:"ledger_dot"`
	Database   string `toml:"database"`
	Metrics    string `toml:"metrics"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	methods := make([]string, len(models.AllMethods))
	for i, m := range models.AllMethods {
		methods[i] = m.String()
	}
	return Config{
		Methods:  methods,
		Outcomes: string(parser.OutcomeStrict),
		LogLevel: "info",
	}
}

// Validate trims roster names, then checks struct constraints and that
// every method name resolves.
func (c *Config) Validate() error {
	for i, name := range c.Roster {
		c.Roster[i] = strings.TrimSpace(name)
	}
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := c.PayoutMethods(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Participants returns the roster as participants.
func (c *Config) Participants() []models.Participant {
	out := make([]models.Participant, len(c.Roster))
	for i, name := range c.Roster {
		out[i] = models.Participant(strings.TrimSpace(name))
	}
	return out
}

// PayoutMethods resolves the configured method names.
func (c *Config) PayoutMethods() ([]models.Method, error) {
	out := make([]models.Method, 0, len(c.Methods))
	seen := make(map[models.Method]bool, len(c.Methods))
	for _, name := range c.Methods {
		m, err := models.ParseMethod(name)
		if err != nil {
			return nil, err
		}
		if seen[m] {
			return nil, fmt.Errorf("payout method %s listed twice", m)
		}
		seen[m] = true
		out = append(out, m)
	}
	return out, nil
}

// ParserOptions builds the sheet reader options.
func (c *Config) ParserOptions() (parser.Options, error) {
	opts := parser.Options{
		Roster:   c.Participants(),
		Outcomes: parser.OutcomeMode(c.Outcomes),
	}
	if c.DueBy != "" {
		due, err := time.Parse(DateLayout, c.DueBy)
		if err != nil {
			return parser.Options{}, fmt.Errorf("%w: due_by: %v", ErrInvalidConfig, err)
		}
		opts.DueBy = due
	}
	return opts, nil
}
