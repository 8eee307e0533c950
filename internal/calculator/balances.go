package calculator

import (
	"sort"

	"github.com/mmynk/predictionsbetting/internal/models"
)

// settleEpsilon is the smallest balance treated as non-zero when squaring up.
const settleEpsilon = 0.005

// DebtEdge represents a payment from one person to another.
type DebtEdge struct {
	From   models.Participant // Person who owes
	To     models.Participant // Person who is owed
	Amount float64
}

// Settle reduces transfers to one net balance per participant.
// The payer of each transfer is debited and the payee credited; both start
// at zero on first reference, so the result always sums to zero.
func Settle(transfers []models.Transfer) models.Settlement {
	balances := make(models.Settlement)
	for _, t := range transfers {
		balances[t.Payer] -= t.Amount
		balances[t.Payee] += t.Amount
	}
	return balances
}

// SettleRoster is Settle with every roster member present, so participants
// who tied every pair still show a zero balance.
func SettleRoster(roster []models.Participant, transfers []models.Transfer) models.Settlement {
	balances := Settle(transfers)
	for _, p := range roster {
		if _, ok := balances[p]; !ok {
			balances[p] = 0
		}
	}
	return balances
}

// SimplifyDebts turns a settlement into a short list of payments that
// squares everyone up.
//
// Algorithm:
// - Split participants into debtors (negative) and creditors (positive)
// - Order each side by size, largest first, names breaking ties
// - Greedily match the current debtor with the current creditor
func SimplifyDebts(s models.Settlement) []DebtEdge {
	type side struct {
		name   models.Participant
		amount float64
	}

	var debtors, creditors []side
	for _, p := range s.Participants() {
		switch bal := s[p]; {
		case bal > settleEpsilon:
			creditors = append(creditors, side{p, bal})
		case bal < -settleEpsilon:
			debtors = append(debtors, side{p, -bal})
		}
	}
	bySize := func(xs []side) {
		sort.SliceStable(xs, func(i, j int) bool { return xs[i].amount > xs[j].amount })
	}
	bySize(debtors)
	bySize(creditors)

	var edges []DebtEdge
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := debtors[i].amount
		if creditors[j].amount < amount {
			amount = creditors[j].amount
		}

		if amount > settleEpsilon {
			edges = append(edges, DebtEdge{
				From:   debtors[i].name,
				To:     creditors[j].name,
				Amount: amount,
			})
		}

		debtors[i].amount -= amount
		creditors[j].amount -= amount

		if debtors[i].amount < settleEpsilon {
			i++
		}
		if creditors[j].amount < settleEpsilon {
			j++
		}
	}
	return edges
}
