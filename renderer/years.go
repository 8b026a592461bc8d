package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/fifotax"
)

// YearsMarkdown renders the fiscal years spanned by the state, including the
// years without any transaction.
func YearsMarkdown(s *fifotax.PortfolioState) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Fiscal Years\n\n")
	if len(s.FiscalYears) == 0 {
		fmt.Fprint(&b, "No transactions.\n")
		return b.String()
	}
	fmt.Fprintln(&b, "| Tax Year | From | To | Days | Transactions | Disposals | Net Gain/Loss |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|---:|")
	for _, fy := range s.FiscalYears {
		sum := s.Summary(fy.Label)
		if sum == nil {
			fmt.Fprintf(&b, "| %s | %s | %s | %d | 0 | 0 | - |\n", fy.Label, fy.From, fy.To, fy.Days())
			continue
		}
		disposals := 0
		for _, tx := range sum.Transactions {
			if tx.IsDisposal() {
				disposals++
			}
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %d | %d | %s |\n",
			fy.Label, fy.From, fy.To, fy.Days(), len(sum.Transactions), disposals, sum.NetGainOrLoss.SignedString())
	}
	return b.String()
}

// WarningsMarkdown renders the data quality issues found while processing.
func WarningsMarkdown(s *fifotax.PortfolioState) string {
	var b strings.Builder
	if len(s.Warnings) == 0 {
		fmt.Fprint(&b, "No warnings.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "# Warnings\n\n")
	fmt.Fprintln(&b, "| Date | Asset | Kind | Requested | Matched | Unmatched |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|")
	for _, w := range s.Warnings {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n", w.Date, w.Asset, w.Kind, w.Requested, w.Matched, w.Unmatched)
	}
	return b.String()
}
