package calculator

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/mmynk/predictionsbetting/internal/models"
)

// ErrMissingEstimate means a valid proposition does not hold exactly one
// estimate for a roster member.
var ErrMissingEstimate = errors.New("no matching estimate")

// Brier returns the participant's Brier score over the valid propositions:
// the sum (not the mean) of (estimate/100 - outcome)^2. Lower is better.
func Brier(props []models.Proposition, participant models.Participant) (float64, error) {
	gaps, err := brierGaps(props, participant)
	if err != nil {
		return 0, err
	}
	return floats.Sum(gaps), nil
}

// MeanBrier returns the participant's average squared error per valid
// proposition, or 0 when none are valid.
func MeanBrier(props []models.Proposition, participant models.Participant) (float64, error) {
	gaps, err := brierGaps(props, participant)
	if err != nil {
		return 0, err
	}
	if len(gaps) == 0 {
		return 0, nil
	}
	return stat.Mean(gaps, nil), nil
}

func brierGaps(props []models.Proposition, participant models.Participant) ([]float64, error) {
	gaps := make([]float64, 0, len(props))
	for i := range props {
		p := &props[i]
		if !p.Valid {
			continue
		}
		e, n := p.EstimateFor(participant)
		if n != 1 {
			return nil, fmt.Errorf("%w: %s has %d estimates for %q", ErrMissingEstimate, participant, n, p.Text)
		}
		gaps = append(gaps, math.Pow(e.Value/100.0-p.OutcomeValue(), 2))
	}
	return gaps, nil
}

// BrierScores computes Brier for every roster member.
func BrierScores(props []models.Proposition, roster []models.Participant) (map[models.Participant]float64, error) {
	return scoreRoster(props, roster, Brier)
}

// MeanBrierScores computes MeanBrier for every roster member.
func MeanBrierScores(props []models.Proposition, roster []models.Participant) (map[models.Participant]float64, error) {
	return scoreRoster(props, roster, MeanBrier)
}

func scoreRoster(
	props []models.Proposition,
	roster []models.Participant,
	score func([]models.Proposition, models.Participant) (float64, error),
) (map[models.Participant]float64, error) {
	scores := make(map[models.Participant]float64, len(roster))
	for _, participant := range roster {
		v, err := score(props, participant)
		if err != nil {
			return nil, err
		}
		scores[participant] = v
	}
	return scores, nil
}

// BrierByDomain computes BrierScores separately for each domain.
func BrierByDomain(props []models.Proposition, roster []models.Participant) (map[string]map[models.Participant]float64, error) {
	grouped := make(map[string][]models.Proposition)
	for _, p := range props {
		if !p.Valid {
			continue
		}
		grouped[p.Domain] = append(grouped[p.Domain], p)
	}

	out := make(map[string]map[models.Participant]float64, len(grouped))
	for domain, domainProps := range grouped {
		scores, err := BrierScores(domainProps, roster)
		if err != nil {
			return nil, fmt.Errorf("domain %q: %w", domain, err)
		}
		out[domain] = scores
	}
	return out, nil
}
