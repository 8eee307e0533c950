package models

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Settlement maps each participant to a net balance.
// Positive = received more than paid, Negative = paid more than received.
type Settlement map[Participant]float64

// Participants returns the participants in the settlement, sorted by name.
func (s Settlement) Participants() []Participant {
	out := make([]Participant, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Sum returns the sum of all balances. For a settlement built from
// transfers this is zero up to floating-point error.
func (s Settlement) Sum() float64 {
	participants := s.Participants()
	values := make([]float64, len(participants))
	for i, p := range participants {
		values[i] = s[p]
	}
	return floats.Sum(values)
}

// Add accumulates other into s, creating missing entries at zero.
func (s Settlement) Add(other Settlement) {
	for p, v := range other {
		s[p] += v
	}
}

// Clone returns an independent copy of s.
func (s Settlement) Clone() Settlement {
	out := make(Settlement, len(s))
	for p, v := range s {
		out[p] = v
	}
	return out
}
