package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/fifotax/renderer"
	"github.com/google/subcommands"
)

type checkCmd struct{}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "reports invalid transactions and data quality warnings" }
func (*checkCmd) Usage() string {
	return `cgt check [<ledger.jsonl>...]

  Validates every transaction and reports the disposals not covered by
  earlier acquisitions, whose unmatched part has a zero cost basis.
  Exits with a non-zero status if any issue is found.
`
}

func (*checkCmd) SetFlags(f *flag.FlagSet) {}

func (*checkCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledgers, err := loadLedgers(ctx, f.Args(), true)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	status := subcommands.ExitSuccess
	for _, l := range ledgers {
		var b strings.Builder
		if l.Invalid != nil {
			status = subcommands.ExitFailure
			fmt.Fprint(&b, "# Invalid Transactions\n\n")
			for _, verr := range unwrapJoined(l.Invalid) {
				fmt.Fprintf(&b, "- %s\n", verr)
			}
			fmt.Fprintln(&b)
		}
		if len(l.State.Warnings) > 0 {
			status = subcommands.ExitFailure
		}
		b.WriteString(renderer.WarningsMarkdown(l.State))
		printMarkdown(titled(l, len(ledgers), b.String()))
	}
	return status
}

// unwrapJoined returns the errors joined in err.
func unwrapJoined(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
