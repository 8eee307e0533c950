package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/mmynk/predictionsbetting/internal/models"
)

// WriteRuns writes one line per archived run header.
func WriteRuns(w io.Writer, runs []*models.Run) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tCreated\tScored\tSkipped\tSource\n")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", r.ID, created(r), r.Scored, r.Skipped, r.Source)
	}
	return tw.Flush()
}

// WriteRun writes an archived run with its totals and Brier scores.
func WriteRun(w io.Writer, run *models.Run) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Run %s\n", run.ID)
	fmt.Fprintf(tw, "\tSource:\t%s\n", run.Source)
	fmt.Fprintf(tw, "\tCreated:\t%s\n", created(run))
	fmt.Fprintf(tw, "\tPropositions:\t%d scored, %d skipped\n", run.Scored, run.Skipped)

	fmt.Fprintf(tw, "\nTotals:\n")
	for _, m := range run.Methods {
		fmt.Fprintf(tw, "\t%s\t%s\n", m, balances(run.Roster, run.Totals[m]))
	}

	fmt.Fprintf(tw, "\nBrier scores:\n")
	for _, p := range run.Roster {
		fmt.Fprintf(tw, "\t%s\t%s\n", p, Score(run.Brier[p]))
	}
	return tw.Flush()
}

func created(r *models.Run) string {
	return time.Unix(r.CreatedAt, 0).UTC().Format(time.RFC3339)
}
