package models

// Run is the archived summary of one batch evaluation.
type Run struct {
	// ID is the unique identifier for the run (UUID format).
	ID string

	// Source is the input the run was computed from (usually a file path).
	Source string

	// Roster is the ordered participant list used for the run.
	Roster []Participant

	// Methods are the payout methods evaluated, in evaluation order.
	Methods []Method

	// Scored is the number of valid propositions that were scored.
	Scored int

	// Skipped is the number of invalid propositions excluded from scoring.
	Skipped int

	// Totals holds the accumulated settlement per method.
	Totals map[Method]Settlement

	// Brier holds the Brier score per participant.
	Brier map[Participant]float64

	// CreatedAt is the Unix timestamp when the run was archived.
	CreatedAt int64
}
