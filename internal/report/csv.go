package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/mmynk/predictionsbetting/internal/service"
)

// SummaryHeader is the first row of the summary CSV.
var SummaryHeader = []string{"kind", "method", "participant", "value"}

// WriteSummaryCSV writes one row per method and participant with the
// accumulated balance, followed by one Brier row per participant.
func WriteSummaryCSV(w io.Writer, res *service.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SummaryHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, m := range res.Methods {
		totals := res.Totals[m]
		for _, p := range res.Roster {
			row := []string{"total", m.String(), string(p), formatFloat(totals[p])}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write csv row: %w", err)
			}
		}
	}

	for _, p := range res.Roster {
		row := []string{"brier", "", string(p), formatFloat(res.Brier[p])}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
