package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/etnz/fifotax"
	"github.com/google/subcommands"
)

type fmtCmd struct {
	dryRun bool
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger files into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `cgt fmt [-n] [<ledger.jsonl>...]

  Validates and formats the ledger files. This command reads all transactions,
  validates them, sorts them by date (keeping the order of transactions on the
  same day), and writes them back in a canonical JSONL format: type aliases
  are replaced by their canonical name, and dates use the YYYY-MM-DD format.

  Nothing is written if any transaction is invalid.

Usage Examples:
# Formats the default ledger file in place.
$ cgt fmt

# Prints the formatted ledger instead.
$ cgt fmt -n transactions.jsonl
`
}

func (p *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.dryRun, "n", false, "Print the formatted ledger instead of writing it")
}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	for _, file := range ledgerFiles(f.Args()) {
		formatted, err := formatLedger(file)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if p.dryRun {
			stdout.Write(formatted)
			continue
		}
		if err := os.WriteFile(file, formatted, 0644); err != nil {
			fmt.Fprintf(stderr, "Error writing ledger %q: %v\n", file, err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(stderr, "Ledger file '%s' has been formatted.\n", file)
	}
	return subcommands.ExitSuccess
}

// formatLedger returns the canonical content of the ledger file.
func formatLedger(file string) ([]byte, error) {
	txs, err := decodeFile(file)
	if err != nil {
		return nil, err
	}
	if _, err := fifotax.ValidateAll(txs); err != nil {
		return nil, fmt.Errorf("invalid ledger %q: %w", file, err)
	}
	slices.SortStableFunc(txs, func(a, b fifotax.Transaction) int { return a.Date.Compare(b.Date) })

	var buf bytes.Buffer
	if err := fifotax.EncodeTransactions(&buf, txs); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
