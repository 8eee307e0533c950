package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/mmynk/predictionsbetting/internal/service"
)

// WriteLedgerDOT renders the head-to-head ledgers as a Graphviz digraph,
// one cluster per method. An edge a -> b labelled x means a has paid b a
// net x over the run. Pairs that came out even are drawn grey.
func WriteLedgerDOT(w io.Writer, res *service.Result) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "digraph ledger {")
	fmt.Fprintln(bw, "  node [shape=circle, style=filled, fillcolor=lightblue];")
	for i, m := range res.Methods {
		ledger := res.Ledgers[m]
		fmt.Fprintf(bw, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(bw, "    label=%s;\n", strconv.Quote(m.String()))
		for _, p := range res.Roster {
			fmt.Fprintf(bw, "    %s [label=%s];\n", nodeID(i, string(p)), strconv.Quote(string(p)))
		}
		for a := 0; a < len(res.Roster); a++ {
			for b := a + 1; b < len(res.Roster); b++ {
				pa, pb := res.Roster[a], res.Roster[b]
				net := ledger.Net(pb, pa) // what pa has paid pb
				from, to := pa, pb
				color := "black"
				switch {
				case net < 0:
					from, to, net = pb, pa, -net
				case net == 0:
					color = "grey"
				}
				fmt.Fprintf(bw, "    %s -> %s [label=%s, color=%s];\n",
					nodeID(i, string(from)), nodeID(i, string(to)), strconv.Quote(Money(net)), color)
			}
		}
		fmt.Fprintln(bw, "  }")
	}
	fmt.Fprintln(bw, "}")

	return bw.Flush()
}

func nodeID(cluster int, name string) string {
	return strconv.Quote(fmt.Sprintf("%d:%s", cluster, name))
}
