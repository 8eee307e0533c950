package models

import (
	"fmt"
	"strings"
)

// Method identifies a payout formula.
type Method int

const (
	// Straight pays a fixed unit to the winner of every pair.
	Straight Method = iota
	// AbsoluteDifference pays the gap between the two estimates.
	AbsoluteDifference
	// FullContract settles a contract struck at the midpoint of the two estimates.
	FullContract
	// Multiplicative pays the winner's proportional improvement in error.
	Multiplicative
)

// AllMethods lists every payout method in report order.
var AllMethods = []Method{Straight, AbsoluteDifference, FullContract, Multiplicative}

func (m Method) String() string {
	switch m {
	case Straight:
		return "Straight"
	case AbsoluteDifference:
		return "AbsoluteDifference"
	case FullContract:
		return "FullContract"
	case Multiplicative:
		return "Multiplicative"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod resolves a method name, case-insensitively. The historical
// names "StraightBet" and "DiffBet" are accepted as aliases.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "straight", "straightbet":
		return Straight, nil
	case "absolutedifference", "diff", "diffbet":
		return AbsoluteDifference, nil
	case "fullcontract":
		return FullContract, nil
	case "multiplicative":
		return Multiplicative, nil
	default:
		return 0, fmt.Errorf("unknown payout method %q", s)
	}
}

// Transfer is a directed amount from the loser of a pairwise comparison
// (Payer) to the winner (Payee).
type Transfer struct {
	Amount float64
	Payer  Participant
	Payee  Participant
	Method Method
}

func (t Transfer) String() string {
	return fmt.Sprintf("%s pays %g to %s", t.Payer, t.Amount, t.Payee)
}
