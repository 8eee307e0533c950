package calculator

import "github.com/mmynk/predictionsbetting/internal/models"

// Ledger tracks net head-to-head amounts: l[a][b] is what b has paid a,
// net of what a has paid b. It is antisymmetric, l[a][b] == -l[b][a].
type Ledger map[models.Participant]map[models.Participant]float64

// Record books each transfer against its pair.
func (l Ledger) Record(transfers []models.Transfer) {
	for _, t := range transfers {
		l.add(t.Payee, t.Payer, t.Amount)
		l.add(t.Payer, t.Payee, -t.Amount)
	}
}

// Net returns what b owes a on balance; negative when a owes b.
func (l Ledger) Net(a, b models.Participant) float64 {
	return l[a][b]
}

func (l Ledger) add(a, b models.Participant, amount float64) {
	row, ok := l[a]
	if !ok {
		row = make(map[models.Participant]float64)
		l[a] = row
	}
	row[b] += amount
}
