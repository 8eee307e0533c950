package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/predictionsbetting/internal/models"
)

func est(name string, v float64) models.Estimate {
	return models.Estimate{Participant: models.Participant(name), Value: v}
}

func TestPayout(t *testing.T) {
	tests := []struct {
		name    string
		method  models.Method
		outcome bool
		winner  float64
		loser   float64
		want    float64
	}{
		{name: "straight pays one on true", method: models.Straight, outcome: true, winner: 90, loser: 10, want: 1},
		{name: "straight pays one on a sliver", method: models.Straight, outcome: false, winner: 49.9, loser: 50, want: 1},
		{name: "difference 70 vs 40", method: models.AbsoluteDifference, outcome: true, winner: 70, loser: 40, want: 0.30},
		{name: "difference ignores side of 50", method: models.AbsoluteDifference, outcome: false, winner: 5, loser: 95, want: 0.90},
		{name: "full contract equal estimates", method: models.FullContract, outcome: true, winner: 60, loser: 60, want: 0},
		{name: "full contract 100 vs 0", method: models.FullContract, outcome: true, winner: 100, loser: 0, want: 0.5},
		{name: "full contract 10 vs 0 oversensitive", method: models.FullContract, outcome: true, winner: 10, loser: 0, want: 0.95},
		{name: "full contract 100 vs 90", method: models.FullContract, outcome: true, winner: 100, loser: 90, want: 0.05},
		{name: "full contract false outcome", method: models.FullContract, outcome: false, winner: 20, loser: 40, want: 0.30},
		{name: "multiplicative perfect call", method: models.Multiplicative, outcome: true, winner: 100, loser: 30, want: 1},
		{name: "multiplicative 90 vs 80", method: models.Multiplicative, outcome: true, winner: 90, loser: 80, want: 0.5},
		{name: "multiplicative false outcome", method: models.Multiplicative, outcome: false, winner: 10, loser: 40, want: 0.75},
		{name: "multiplicative perfect on false", method: models.Multiplicative, outcome: false, winner: 0, loser: 1, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Payout(tt.method, tt.outcome, est("a", tt.winner), est("b", tt.loser))
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestPayout_StraightIsExact(t *testing.T) {
	got, err := Payout(models.Straight, true, est("a", 51), est("b", 50))
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)
}

func TestPayout_FullContractExtremesPayMore(t *testing.T) {
	// A 0.1 point gap near zero pays far more than a one point gap near 90.
	extreme, err := Payout(models.FullContract, true, est("a", 0.1), est("b", 0))
	require.NoError(t, err)
	mid, err := Payout(models.FullContract, true, est("a", 90), est("b", 89))
	require.NoError(t, err)

	assert.InDelta(t, 0.9995, extreme, 1e-9)
	assert.InDelta(t, 0.105, mid, 1e-9)
	assert.Greater(t, extreme, mid)
}

func TestPayout_UnknownMethod(t *testing.T) {
	_, err := Payout(models.Method(42), true, est("a", 60), est("b", 40))
	assert.ErrorIs(t, err, ErrUnknownMethod)
}
