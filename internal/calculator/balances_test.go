package calculator

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/predictionsbetting/internal/models"
)

func TestSettle(t *testing.T) {
	transfers := []models.Transfer{
		{Amount: 1, Payer: "Alice", Payee: "Bob"},
		{Amount: 0.5, Payer: "Charlie", Payee: "Bob"},
		{Amount: 0.25, Payer: "Bob", Payee: "Alice"},
	}

	got := Settle(transfers)

	assert.InDelta(t, -0.75, got["Alice"], 1e-9)
	assert.InDelta(t, 1.25, got["Bob"], 1e-9)
	assert.InDelta(t, -0.5, got["Charlie"], 1e-9)
	assert.InDelta(t, 0, got.Sum(), 1e-9)
}

func TestSettle_Empty(t *testing.T) {
	got := Settle(nil)
	assert.Empty(t, got)
	assert.Equal(t, 0.0, got.Sum())
}

func TestSettleRoster_IncludesIdleMembers(t *testing.T) {
	roster := []models.Participant{"Alice", "Bob", "Charlie"}
	got := SettleRoster(roster, []models.Transfer{{Amount: 2, Payer: "Alice", Payee: "Bob"}})

	require.Len(t, got, 3)
	assert.Equal(t, 0.0, got["Charlie"])
}

func TestSettle_ZeroSumAcrossMethodsAndSizes(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, n := range []int{2, 3, 4, 9} {
		for _, m := range models.AllMethods {
			t.Run(fmt.Sprintf("%v/n=%d", m, n), func(t *testing.T) {
				for trial := 0; trial < 25; trial++ {
					values := make([]float64, n)
					for i := range values {
						values[i] = float64(rng.Intn(101))
					}
					transfers, err := EvaluatePairs(proposition(rng.Intn(2) == 0, values...), m)
					require.NoError(t, err)
					assert.InDelta(t, 0, Settle(transfers).Sum(), 1e-9)
				}
			})
		}
	}
}

func TestSimplifyDebts(t *testing.T) {
	s := models.Settlement{"Alice": 3, "Bob": -1, "Charlie": -2, "Diana": 0}

	edges := SimplifyDebts(s)

	require.Len(t, edges, 2)
	assert.Equal(t, DebtEdge{From: "Charlie", To: "Alice", Amount: 2}, edges[0])
	assert.Equal(t, DebtEdge{From: "Bob", To: "Alice", Amount: 1}, edges[1])
}

func TestSimplifyDebts_SquaresEveryone(t *testing.T) {
	s := models.Settlement{"a": 4.5, "b": -1.25, "c": 0.75, "d": -4}

	after := s.Clone()
	for _, e := range SimplifyDebts(s) {
		after[e.From] += e.Amount
		after[e.To] -= e.Amount
	}
	for p, v := range after {
		assert.InDelta(t, 0, v, 0.01, "participant %s", p)
	}
}
