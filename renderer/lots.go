package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/fifotax"
)

// LotsMarkdown renders the lots of the state grouped by asset. Only open lots
// are listed unless all is true. An empty asset selects every asset.
func LotsMarkdown(s *fifotax.PortfolioState, asset string, all bool) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Lots\n\n")
	printed := false
	for _, a := range s.Assets() {
		if asset != "" && a != asset {
			continue
		}
		ConditionalBlock(&b, func(w io.Writer) bool {
			fmt.Fprintf(w, "## %s\n\n", a)
			fmt.Fprintln(w, "| Acquired | Original | Remaining | Unit Cost | Fee | Remaining Cost Basis |")
			fmt.Fprintln(w, "|:---|---:|---:|---:|---:|---:|")
			rows := 0
			total := fifotax.M(0, s.Currency)
			for _, l := range s.Lots {
				if l.Asset != a || (!all && !l.IsOpen()) {
					continue
				}
				rows++
				cb := l.UnrealizedCostBasis()
				total = total.Add(cb)
				fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s |\n",
					l.AcquisitionDate, l.OriginalAmount, l.RemainingAmount, l.UnitCost, l.Fee, cb)
			}
			fmt.Fprintf(w, "| **Total** | | **%s** | | | **%s** |\n\n", s.Balance(a), total)
			printed = printed || rows > 0
			return rows > 0
		})
	}
	if !printed {
		fmt.Fprint(&b, "No lots.\n")
	}
	return b.String()
}
