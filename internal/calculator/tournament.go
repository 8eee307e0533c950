package calculator

import (
	"fmt"
	"log/slog"

	"github.com/mmynk/predictionsbetting/internal/models"
)

// PairCount returns the number of unordered pairs among n participants.
func PairCount(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}

// EvaluatePairs plays every unordered pair of estimates on the proposition
// against each other under method m and returns one transfer per decided pair.
//
// Algorithm:
// - Pairs (i, j) with i < j are visited in estimate order
// - Equal estimates are a tie and produce no transfer
// - Outcome true: the higher estimate wins; outcome false: the lower one wins
// - The loser pays the winner the amount computed by Payout
//
// Invalid propositions yield no transfers and no error; the skip is logged.
func EvaluatePairs(p *models.Proposition, m models.Method) ([]models.Transfer, error) {
	if !p.Valid {
		slog.Warn("Skipping invalid proposition",
			"proposition", p.Text,
			"reason", p.InvalidReason,
			"method", m.String(),
		)
		return nil, nil
	}

	n := len(p.Estimates)
	transfers := make([]models.Transfer, 0, PairCount(n))
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b := p.Estimates[i], p.Estimates[j]
			if a.Value == b.Value {
				continue
			}

			winner, loser := rankPair(p.Outcome, a, b)
			amount, err := Payout(m, p.Outcome, winner, loser)
			if err != nil {
				return nil, fmt.Errorf("failed to evaluate %s vs %s: %w", a, b, err)
			}

			slog.Debug("Pair evaluated",
				"method", m.String(),
				"winner", winner.String(),
				"loser", loser.String(),
				"amount", amount,
			)

			transfers = append(transfers, models.Transfer{
				Amount: amount,
				Payer:  loser.Participant,
				Payee:  winner.Participant,
				Method: m,
			})
		}
	}
	return transfers, nil
}

// rankPair orders two unequal estimates into (winner, loser).
func rankPair(outcome bool, a, b models.Estimate) (models.Estimate, models.Estimate) {
	aWins := a.Value < b.Value
	if outcome {
		aWins = a.Value > b.Value
	}
	if aWins {
		return a, b
	}
	return b, a
}
