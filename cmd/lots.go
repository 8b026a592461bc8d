package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/fifotax/renderer"
	"github.com/google/subcommands"
)

type lotsCmd struct {
	asset string
	all   bool
}

func (*lotsCmd) Name() string     { return "lots" }
func (*lotsCmd) Synopsis() string { return "lists the acquisition lots still held" }
func (*lotsCmd) Usage() string {
	return `cgt lots [-a <asset>] [-all] [<ledger.jsonl>...]

  Lists the open lots of each asset, oldest first, with the cost basis of
  their remaining units. Use -all to include the lots fully disposed of.
`
}

func (c *lotsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "a", "", "Asset to list the lots of. Lists every asset by default.")
	f.BoolVar(&c.all, "all", false, "Include closed lots")
}

func (c *lotsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledgers, err := loadLedgers(ctx, f.Args(), false)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	asset := strings.ToUpper(strings.TrimSpace(c.asset))
	for _, l := range ledgers {
		printMarkdown(titled(l, len(ledgers), renderer.LotsMarkdown(l.State, asset, c.all)))
	}
	return subcommands.ExitSuccess
}
