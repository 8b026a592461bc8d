package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/fifotax/renderer"
	"github.com/google/subcommands"
)

type yearsCmd struct{}

func (*yearsCmd) Name() string     { return "years" }
func (*yearsCmd) Synopsis() string { return "lists the fiscal years spanned by the ledger" }
func (*yearsCmd) Usage() string {
	return `cgt years [<ledger.jsonl>...]

  Lists every fiscal year from the first to the last transaction, including
  the years without any transaction. The calendar is set in the [fiscal]
  section of the configuration file.
`
}

func (*yearsCmd) SetFlags(f *flag.FlagSet) {}

func (*yearsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledgers, err := loadLedgers(ctx, f.Args(), false)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, l := range ledgers {
		printMarkdown(titled(l, len(ledgers), renderer.YearsMarkdown(l.State)))
	}
	return subcommands.ExitSuccess
}
