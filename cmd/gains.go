package cmd

import (
	"context"
	"flag"
	"fmt"
	"slices"

	"github.com/etnz/fifotax/date"
	"github.com/etnz/fifotax/renderer"
	"github.com/google/subcommands"
)

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct {
	year    string
	details bool
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "realized gains per fiscal year" }
func (*gainsCmd) Usage() string {
	return `cgt gains [-y <fiscal year>] [-details] [<ledger.jsonl>...]

  Matches disposals against acquisitions with the FIFO method and reports the
  realized gains and losses of each fiscal year, and the cost basis of the
  assets still held.

  With -y, reports a single fiscal year (e.g. 2024/2025), and its disposals.
  Add -details to list the lots consumed by each disposal.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.year, "y", "", "Fiscal year to report on, e.g. 2024/2025. Reports every year by default.")
	f.BoolVar(&c.details, "details", false, "List the lot matches of each disposal (requires -y)")
}

func (c *gainsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.details && c.year == "" {
		fmt.Fprintln(stderr, "-details requires -y")
		return subcommands.ExitUsageError
	}

	ledgers, err := loadLedgers(ctx, f.Args(), false)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, l := range ledgers {
		if c.year == "" {
			printMarkdown(titled(l, len(ledgers), renderer.RenderGains(l.State)))
			continue
		}

		fy := l.State.Summary(c.year)
		if fy == nil {
			known := slices.ContainsFunc(l.State.FiscalYears, func(y date.FiscalYear) bool { return y.Label == c.year })
			if !known {
				fmt.Fprintf(stderr, "Error: fiscal year %q is not covered by ledger %q\n", c.year, l.Name)
				return subcommands.ExitFailure
			}
			printMarkdown(titled(l, len(ledgers), fmt.Sprintf("# Tax Year %s\n\nNo transactions.\n", c.year)))
			continue
		}
		opts := renderer.TaxYearRenderOptions{Details: c.details}
		printMarkdown(titled(l, len(ledgers), renderer.RenderTaxYear(l.State, fy, opts)))
	}
	return subcommands.ExitSuccess
}
