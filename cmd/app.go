// Package cmd implements the cgt command line application: capital gains
// reports computed from JSONL ledgers with the FIFO method.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/fifotax"
	"github.com/etnz/fifotax/config"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&gainsCmd{}, "reports")
	c.Register(&lotsCmd{}, "reports")
	c.Register(&yearsCmd{}, "reports")
	c.Register(&stateCmd{}, "reports")

	c.Register(&checkCmd{}, "ledgers")
	c.Register(&fmtCmd{}, "ledgers")

	c.Register(&topicCmd{}, "help")
}

// DefaultLedgerFile is the ledger read when no file is given on the command line.
const DefaultLedgerFile = "transactions.jsonl"

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", config.DefaultPath, "Path to the TOML configuration file. A missing file means default settings.")
var logLevel = flag.String("log-level", "", "Log level (debug, info, warn, error). Overrides the configuration.")
var raw = flag.Bool("raw", false, "Print plain markdown instead of rendering it for the terminal")

// stdout and stderr are the outputs of the commands.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Ledger is a ledger file and the state computed from its valid transactions.
type Ledger struct {
	Name         string
	Transactions []fifotax.Transaction
	// Invalid joins the validation errors of the transactions excluded
	// from the state, it is nil if the ledger is valid.
	Invalid error
	State   *fifotax.PortfolioState
}

// settings loads the configuration and creates the logger.
func settings() (*config.Config, *zerolog.Logger, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, nil, err
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}
	level, _ := cfg.Level()
	return cfg, NewLogger(level, stderr), nil
}

// ledgerFiles returns the ledger files named on the command line.
func ledgerFiles(args []string) []string {
	if len(args) == 0 {
		return []string{DefaultLedgerFile}
	}
	return args
}

// loadLedgers loads the settings and decodes the ledgers named by args.
// Invalid ledgers are an error unless allowInvalid is set.
func loadLedgers(ctx context.Context, args []string, allowInvalid bool) ([]*Ledger, error) {
	cfg, logger, err := settings()
	if err != nil {
		return nil, err
	}
	ledgers, err := DecodeLedgers(ctx, ledgerFiles(args), cfg.Options(logger))
	if err != nil {
		return nil, err
	}
	if !allowInvalid {
		for _, l := range ledgers {
			if l.Invalid != nil {
				return nil, fmt.Errorf("invalid ledger %q: %w", l.Name, l.Invalid)
			}
		}
	}
	return ledgers, nil
}

// DecodeLedgers reads, validates and processes every file concurrently. The
// ledgers are returned in the order of files.
func DecodeLedgers(ctx context.Context, files []string, opts fifotax.Options) ([]*Ledger, error) {
	ledgers := make([]*Ledger, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			txs, err := decodeFile(file)
			if err != nil {
				return err
			}
			valid, invalid := fifotax.ValidateAll(txs)

			o := opts
			if opts.Logger != nil {
				logger := opts.Logger.With().Str("ledger", file).Logger()
				o.Logger = &logger
			}
			ledgers[i] = &Ledger{
				Name:         file,
				Transactions: txs,
				Invalid:      invalid,
				State:        fifotax.Build(valid, o),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ledgers, nil
}

// decodeFile reads the transactions of a JSONL file.
func decodeFile(path string) ([]fifotax.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open ledger: %w", err)
	}
	defer f.Close()

	txs, err := fifotax.DecodeTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger %q: %w", path, err)
	}
	return txs, nil
}

// titled prefixes md with the ledger name when several ledgers are reported.
func titled(l *Ledger, count int, md string) string {
	if count < 2 {
		return md
	}
	return fmt.Sprintf("Ledger `%s`\n\n%s", l.Name, md)
}
