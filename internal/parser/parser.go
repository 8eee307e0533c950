// Package parser reads tab-delimited prediction sheets into propositions.
//
// A sheet has one header line followed by one proposition per line:
//
//	domain  text  _  _  due-date  est(1) .. est(n)  resolution  fallback-resolution
//
// Records that cannot be scored are returned with Valid=false and a reason;
// only I/O problems are reported as errors.
package parser

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mmynk/predictionsbetting/internal/models"
)

// Column positions in a sheet row.
const (
	colDomain    = 0
	colText      = 1
	colDueDate   = 4
	colEstimates = 5
)

// maxLineBytes bounds a single sheet row.
const maxLineBytes = 1024 * 1024

// Reasons attached to invalid propositions.
const (
	ReasonEmpty        = "empty"
	ReasonFieldCount   = "wrong field count"
	ReasonBadDueDate   = "unparseable due date"
	ReasonNotDue       = "not due yet"
	ReasonBadEstimate  = "no meaningful numerical bet"
	ReasonNoResolution = "no result yet"
)

// OutcomeMode selects which resolution tokens are recognised.
type OutcomeMode string

const (
	// OutcomeStrict accepts only "t" and "f".
	OutcomeStrict OutcomeMode = "strict"
	// OutcomeLenient also accepts 1/0, true/false and yes/no.
	OutcomeLenient OutcomeMode = "lenient"
)

var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"2 Jan 2006",
	time.RFC3339,
}

// Options controls how a sheet is read.
type Options struct {
	// Roster is the ordered participant list; estimate columns map onto it.
	Roster []models.Participant

	// Outcomes selects the accepted resolution tokens. Defaults to strict.
	Outcomes OutcomeMode

	// DueBy, when non-zero, marks propositions due after it as not due yet.
	DueBy time.Time
}

// Parse reads every proposition from r. The header line is discarded and
// blank lines are skipped. Blank domains inherit the last non-empty domain.
func Parse(r io.Reader, opts Options) ([]models.Proposition, error) {
	if len(opts.Roster) < 2 {
		return nil, fmt.Errorf("roster must have at least two participants, got %d", len(opts.Roster))
	}

	// Cells are split on tabs only; quotes are literal text.
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var props []models.Proposition
	header := true
	lastDomain := ""
	for scanner.Scan() {
		record := strings.Split(strings.TrimRight(scanner.Text(), "\r"), "\t")
		if isBlank(record) {
			continue
		}
		if header {
			header = false
			continue
		}

		p := ParseRecord(record, opts)
		if p.Domain != "" {
			lastDomain = p.Domain
		} else {
			p.Domain = lastDomain
		}
		if !p.Valid {
			slog.Debug("Invalid proposition", "text", p.Text, "reason", p.InvalidReason)
		}
		props = append(props, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	return props, nil
}

// ParseRecord converts one sheet row into a proposition.
func ParseRecord(record []string, opts Options) models.Proposition {
	p := models.Proposition{Valid: true}
	invalid := func(reason string) models.Proposition {
		p.Valid = false
		p.InvalidReason = reason
		return p
	}

	if isBlank(record) {
		return invalid(ReasonEmpty)
	}

	n := len(opts.Roster)
	resolutionCol := colEstimates + n
	if len(record) > colDomain {
		p.Domain = strings.TrimSpace(record[colDomain])
	}
	if len(record) > colText {
		p.Text = strings.TrimRight(record[colText], " \t\r")
	}
	if len(record) <= resolutionCol {
		return invalid(ReasonFieldCount)
	}

	due, err := parseDate(record[colDueDate])
	if err != nil {
		return invalid(ReasonBadDueDate)
	}
	p.DueDate = due
	if !opts.DueBy.IsZero() && due.After(opts.DueBy) {
		return invalid(ReasonNotDue)
	}

	p.Estimates = make([]models.Estimate, 0, n)
	for i, participant := range opts.Roster {
		v, err := parseEstimate(record[colEstimates+i])
		if err != nil {
			return invalid(ReasonBadEstimate)
		}
		p.Estimates = append(p.Estimates, models.Estimate{Participant: participant, Value: v})
	}

	if outcome, ok := parseOutcome(record[resolutionCol], opts.Outcomes); ok {
		p.Outcome = outcome
	} else if len(record) > resolutionCol+1 {
		if outcome, ok := parseOutcome(record[resolutionCol+1], opts.Outcomes); ok {
			p.Outcome = outcome
		} else {
			return invalid(ReasonNoResolution)
		}
	} else {
		return invalid(ReasonNoResolution)
	}

	return p
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

func parseEstimate(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || v < 0 || v > 100 {
		return 0, fmt.Errorf("estimate %g outside [0, 100]", v)
	}
	return v, nil
}

func parseOutcome(s string, mode OutcomeMode) (outcome bool, ok bool) {
	token := strings.ToLower(strings.TrimSpace(s))
	switch token {
	case "t":
		return true, true
	case "f":
		return false, true
	}
	if mode != OutcomeLenient {
		return false, false
	}
	switch token {
	case "1", "true", "yes", "y":
		return true, true
	case "0", "false", "no", "n":
		return false, true
	}
	return false, false
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
