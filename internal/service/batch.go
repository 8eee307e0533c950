package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/predictionsbetting/internal/calculator"
	"github.com/mmynk/predictionsbetting/internal/metrics"
	"github.com/mmynk/predictionsbetting/internal/models"
)

// PropositionResult holds one scored proposition and its outcome per method.
type PropositionResult struct {
	Proposition models.Proposition
	Transfers   map[models.Method][]models.Transfer
	Settlements map[models.Method]models.Settlement
}

// Skip records a proposition excluded from scoring.
type Skip struct {
	Text   string
	Reason string
}

// Result is everything a batch run produces.
type Result struct {
	Roster  []models.Participant
	Methods []models.Method

	// Propositions are the scored propositions, in input order.
	Propositions []PropositionResult

	// Skipped lists invalid propositions, in input order.
	Skipped []Skip

	// Totals accumulates each method's settlements across all propositions.
	Totals map[models.Method]models.Settlement

	// Ledgers hold net head-to-head amounts per method.
	Ledgers map[models.Method]calculator.Ledger

	// Brier is the overall Brier score per participant.
	Brier map[models.Participant]float64

	// MeanBrier is the average squared error per scored proposition.
	MeanBrier map[models.Participant]float64

	// DomainBrier is the Brier score per participant within each domain.
	DomainBrier map[string]map[models.Participant]float64
}

// Runner scores a set of propositions with a fixed roster and method list.
type Runner struct {
	roster   []models.Participant
	methods  []models.Method
	recorder metrics.Recorder
}

// NewRunner creates a Runner. A nil recorder discards metrics.
func NewRunner(roster []models.Participant, methods []models.Method, recorder metrics.Recorder) *Runner {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &Runner{roster: roster, methods: methods, recorder: recorder}
}

// Run evaluates every valid proposition under every configured method and
// accumulates running totals. Invalid propositions are skipped. A valid
// proposition whose estimates do not match the roster is a hard failure.
func (r *Runner) Run(props []models.Proposition) (*Result, error) {
	start := time.Now()
	slog.Info("Batch run started",
		"propositions", len(props),
		"participants", len(r.roster),
		"methods", len(r.methods),
	)

	res := &Result{
		Roster:  r.roster,
		Methods: r.methods,
		Totals:  make(map[models.Method]models.Settlement, len(r.methods)),
		Ledgers: make(map[models.Method]calculator.Ledger, len(r.methods)),
	}
	for _, m := range r.methods {
		res.Totals[m] = calculator.SettleRoster(r.roster, nil)
		res.Ledgers[m] = make(calculator.Ledger)
	}

	for i := range props {
		p := &props[i]
		if !p.Valid {
			res.Skipped = append(res.Skipped, Skip{Text: p.Text, Reason: p.InvalidReason})
			r.recorder.PropositionSkipped(p.InvalidReason)
			slog.Debug("Proposition skipped", "text", p.Text, "reason", p.InvalidReason)
			continue
		}
		if err := r.checkRoster(p); err != nil {
			return nil, err
		}

		pr, err := r.scoreProposition(p)
		if err != nil {
			return nil, err
		}
		for _, m := range r.methods {
			res.Totals[m].Add(pr.Settlements[m])
			res.Ledgers[m].Record(pr.Transfers[m])
		}
		res.Propositions = append(res.Propositions, pr)
		r.recorder.PropositionScored()
	}

	brier, err := calculator.BrierScores(props, r.roster)
	if err != nil {
		return nil, fmt.Errorf("failed to compute brier scores: %w", err)
	}
	res.Brier = brier

	meanBrier, err := calculator.MeanBrierScores(props, r.roster)
	if err != nil {
		return nil, fmt.Errorf("failed to compute mean brier scores: %w", err)
	}
	res.MeanBrier = meanBrier

	domainBrier, err := calculator.BrierByDomain(props, r.roster)
	if err != nil {
		return nil, fmt.Errorf("failed to compute domain brier scores: %w", err)
	}
	res.DomainBrier = domainBrier

	slog.Info("Batch run completed",
		"scored", len(res.Propositions),
		"skipped", len(res.Skipped),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

func (r *Runner) scoreProposition(p *models.Proposition) (PropositionResult, error) {
	pr := PropositionResult{
		Proposition: *p,
		Transfers:   make(map[models.Method][]models.Transfer, len(r.methods)),
		Settlements: make(map[models.Method]models.Settlement, len(r.methods)),
	}
	for _, m := range r.methods {
		transfers, err := calculator.EvaluatePairs(p, m)
		if err != nil {
			return PropositionResult{}, fmt.Errorf("failed to evaluate %q: %w", p.Text, err)
		}
		pr.Transfers[m] = transfers
		pr.Settlements[m] = calculator.SettleRoster(r.roster, transfers)
		r.recorder.TransfersRecorded(m, transfers)
	}
	slog.Debug("Proposition scored", "text", p.Text, "outcome", p.Outcome)
	return pr, nil
}

// checkRoster verifies the proposition holds exactly one estimate per
// roster member, in roster order.
func (r *Runner) checkRoster(p *models.Proposition) error {
	if len(p.Estimates) != len(r.roster) {
		return fmt.Errorf("%w: %q has %d estimates for %d participants",
			calculator.ErrMissingEstimate, p.Text, len(p.Estimates), len(r.roster))
	}
	for i, participant := range r.roster {
		if p.Estimates[i].Participant != participant {
			return fmt.Errorf("%w: %q expected %s at position %d, got %s",
				calculator.ErrMissingEstimate, p.Text, participant, i, p.Estimates[i].Participant)
		}
	}
	return nil
}

// ToRun summarises the result for archiving.
func (res *Result) ToRun(source string) *models.Run {
	totals := make(map[models.Method]models.Settlement, len(res.Totals))
	for m, s := range res.Totals {
		totals[m] = s.Clone()
	}
	brier := make(map[models.Participant]float64, len(res.Brier))
	for p, v := range res.Brier {
		brier[p] = v
	}
	return &models.Run{
		Source:  source,
		Roster:  append([]models.Participant(nil), res.Roster...),
		Methods: append([]models.Method(nil), res.Methods...),
		Scored:  len(res.Propositions),
		Skipped: len(res.Skipped),
		Totals:  totals,
		Brier:   brier,
	}
}
