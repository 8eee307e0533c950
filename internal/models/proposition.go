package models

import (
	"fmt"
	"strings"
	"time"
)

// Participant is a forecaster identified by a unique name.
type Participant string

// Estimate is a participant's stated probability, as a percentage,
// that a proposition resolves true.
type Estimate struct {
	// Participant is the forecaster who made the estimate.
	Participant Participant

	// Value is the probability in the range [0, 100].
	Value float64
}

// String renders the estimate as "name:value".
func (e Estimate) String() string {
	return fmt.Sprintf("%s:%g", e.Participant, e.Value)
}

// Proposition is a forecastable statement together with the estimates
// made for it and its eventual outcome.
type Proposition struct {
	// Text is the human-readable description of the statement.
	Text string

	// Domain is a grouping label (e.g. "Politics"). Blank domains are filled
	// from the previous record by the parser.
	Domain string

	// DueDate is the date the proposition resolves.
	DueDate time.Time

	// Outcome is true when the proposition resolved true.
	Outcome bool

	// Estimates holds one estimate per roster member, in roster order.
	Estimates []Estimate

	// Valid is false when the record could not be scored.
	Valid bool

	// InvalidReason explains why Valid is false.
	InvalidReason string
}

// EstimateFor returns the estimate made by p. The second return value is
// the number of matching estimates, so callers can reject both missing
// and duplicated entries.
func (p *Proposition) EstimateFor(participant Participant) (Estimate, int) {
	var found Estimate
	n := 0
	for _, e := range p.Estimates {
		if e.Participant == participant {
			if n == 0 {
				found = e
			}
			n++
		}
	}
	return found, n
}

// OutcomeValue returns 1 for a true outcome and 0 otherwise.
func (p *Proposition) OutcomeValue() float64 {
	if p.Outcome {
		return 1
	}
	return 0
}

func (p *Proposition) String() string {
	if !p.Valid {
		return fmt.Sprintf("%s (invalid: %s)", p.Text, p.InvalidReason)
	}
	parts := make([]string, len(p.Estimates))
	for i, e := range p.Estimates {
		parts[i] = e.String()
	}
	return fmt.Sprintf("%s [%s], Resolution:%t", p.Text, strings.Join(parts, " "), p.Outcome)
}
