// Package report renders batch results for people and for other tools.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/mmynk/predictionsbetting/internal/calculator"
	"github.com/mmynk/predictionsbetting/internal/models"
	"github.com/mmynk/predictionsbetting/internal/service"
)

// Money renders an amount with two decimals.
func Money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Score renders a Brier score with four decimals.
func Score(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(4)
}

// WriteText writes the human-readable run report.
func WriteText(w io.Writer, res *service.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for _, pr := range res.Propositions {
		p := pr.Proposition
		fmt.Fprintf(tw, "%s\n", p.Text)
		if p.Domain != "" {
			fmt.Fprintf(tw, "\tDomain: %s\n", p.Domain)
		}
		fmt.Fprintf(tw, "\tResolution: %t\n", p.Outcome)
		estimates := make([]string, len(p.Estimates))
		for i, e := range p.Estimates {
			estimates[i] = e.String()
		}
		fmt.Fprintf(tw, "\t%s\n", strings.Join(estimates, " "))
		for _, m := range res.Methods {
			fmt.Fprintf(tw, "\t\t%s\t%s\n", m, balances(res.Roster, pr.Settlements[m]))
		}
	}

	if len(res.Skipped) > 0 {
		fmt.Fprintf(tw, "\nSkipped (%d):\n", len(res.Skipped))
		for _, s := range res.Skipped {
			fmt.Fprintf(tw, "\t%s\t%s\n", s.Text, s.Reason)
		}
	}

	fmt.Fprintf(tw, "\nTotals over %d propositions:\n", len(res.Propositions))
	for _, m := range res.Methods {
		fmt.Fprintf(tw, "\t%s\t%s\n", m, balances(res.Roster, res.Totals[m]))
	}

	fmt.Fprintf(tw, "\nSettle up:\n")
	for _, m := range res.Methods {
		edges := calculator.SimplifyDebts(res.Totals[m])
		if len(edges) == 0 {
			fmt.Fprintf(tw, "\t%s\tall square\n", m)
			continue
		}
		for _, e := range edges {
			fmt.Fprintf(tw, "\t%s\t%s pays %s to %s\n", m, e.From, Money(e.Amount), e.To)
		}
	}

	fmt.Fprintf(tw, "\nBrier scores (lower is better):\n")
	fmt.Fprintf(tw, "\t\tsum\tmean\n")
	for _, p := range res.Roster {
		fmt.Fprintf(tw, "\t%s\t%s\t%s\n", p, Score(res.Brier[p]), Score(res.MeanBrier[p]))
	}

	if len(res.DomainBrier) > 0 {
		fmt.Fprintf(tw, "\nBrier scores by domain:\n")
		for _, domain := range sortedDomains(res.DomainBrier) {
			scores := res.DomainBrier[domain]
			parts := make([]string, len(res.Roster))
			for i, p := range res.Roster {
				parts[i] = fmt.Sprintf("%s: %s", p, Score(scores[p]))
			}
			fmt.Fprintf(tw, "\t%s\t%s\n", domainLabel(domain), strings.Join(parts, "\t"))
		}
	}

	return tw.Flush()
}

func balances(roster []models.Participant, s models.Settlement) string {
	parts := make([]string, len(roster))
	for i, p := range roster {
		parts[i] = fmt.Sprintf("%s: %s", p, Money(s[p]))
	}
	return strings.Join(parts, "\t")
}

func sortedDomains(m map[string]map[models.Participant]float64) []string {
	out := make([]string, 0, len(m))
	for d := range m {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

func domainLabel(d string) string {
	if d == "" {
		return "(none)"
	}
	return d
}
