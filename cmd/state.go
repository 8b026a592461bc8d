package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/fifotax"
	"github.com/google/subcommands"
)

type stateCmd struct {
	query string
}

func (*stateCmd) Name() string     { return "state" }
func (*stateCmd) Synopsis() string { return "prints the complete portfolio state as JSON" }
func (*stateCmd) Usage() string {
	return `cgt state [-q <jsonpath>] [<ledger.jsonl>]

  Prints the portfolio state computed from the ledger as JSON: the lots, the
  processed transactions, the fiscal year summaries, and the balances.

  Use -q to print only the result of a JSONPath query, for instance:

  $ cgt state -q '$.currentBalances.BTC'
  $ cgt state -q '$.taxYearSummaries[*].netGainOrLoss'
`
}

func (c *stateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.query, "q", "", "JSONPath query to evaluate on the state")
}

func (c *stateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		fmt.Fprintln(stderr, "state accepts a single ledger")
		return subcommands.ExitUsageError
	}
	ledgers, err := loadLedgers(ctx, f.Args(), false)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	state := ledgers[0].State

	if c.query == "" {
		if err := fifotax.EncodeState(stdout, state); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	val, err := query(state, c.query)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	enc := json.NewEncoder(stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(val); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// query evaluates the JSONPath path on the JSON representation of s.
func query(s *fifotax.PortfolioState, path string) (any, error) {
	var buf bytes.Buffer
	if err := fifotax.EncodeState(&buf, s); err != nil {
		return nil, err
	}
	var jobj any
	if err := json.Unmarshal(buf.Bytes(), &jobj); err != nil {
		return nil, fmt.Errorf("could not decode portfolio state: %w", err)
	}
	val, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	return val, nil
}
