package calculator

import (
	"errors"
	"fmt"
	"math"

	"github.com/mmynk/predictionsbetting/internal/models"
)

// ErrUnknownMethod is returned for a Method value outside the known set.
var ErrUnknownMethod = errors.New("unknown payout method")

// Payout computes the amount the loser pays the winner under method m.
// The caller decides who won; the formulas never look at direction.
func Payout(m models.Method, outcome bool, winner, loser models.Estimate) (float64, error) {
	switch m {
	case models.Straight:
		return straight(), nil
	case models.AbsoluteDifference:
		return absoluteDifference(winner, loser), nil
	case models.FullContract:
		return fullContract(outcome, winner, loser), nil
	case models.Multiplicative:
		return multiplicative(outcome, winner, loser), nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnknownMethod, m)
	}
}

func straight() float64 {
	return 1
}

func absoluteDifference(winner, loser models.Estimate) float64 {
	return math.Abs(winner.Value-loser.Value) / 100.0
}

// fullContract settles a contract struck at the midpoint of the two
// estimates. Near 0% and 100% tiny differences pay far more than the same
// gap mid-range (10 vs 0 on a true outcome pays 0.95, 100 vs 90 pays 0.05).
// Downstream totals depend on this behavior, so it is kept as is.
func fullContract(outcome bool, winner, loser models.Estimate) float64 {
	if winner.Value == loser.Value {
		return 0
	}
	correct := outcomeValue(outcome)
	middle := (winner.Value + loser.Value) / 200
	return math.Abs(correct - middle)
}

// multiplicative pays the winner's relative reduction in absolute error.
// A perfect call always collects 1.
func multiplicative(outcome bool, winner, loser models.Estimate) float64 {
	correct := outcomeValue(outcome)
	winnerGap := math.Abs(winner.Value/100.0 - correct)
	loserGap := math.Abs(loser.Value/100.0 - correct)
	if winnerGap == 0 {
		return 1
	}
	return (loserGap - winnerGap) / loserGap
}

func outcomeValue(outcome bool) float64 {
	if outcome {
		return 1
	}
	return 0
}
