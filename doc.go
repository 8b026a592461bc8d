// Package fifotax computes capital gains with the FIFO (first in, first out)
// lot matching method.
//
// Build processes a list of normalized transactions and returns a
// PortfolioState:
//   - Each Acquire transaction opens a Lot.
//   - Each Dispose or Exchange transaction consumes the oldest open lots of
//     its asset, producing one LotMatch per lot with its cost basis, proceeds,
//     gain or loss, and holding period.
//   - Transactions are grouped by fiscal year (see date.FiscalCalendar) into
//     FiscalYearSummary values, where gains and losses are netted per asset.
//
// Disposals not covered by open lots are not an error: the unmatched part has
// a zero cost basis and a Warning is attached to the transaction.
//
// Build is deterministic and keeps no state: the same input always produces
// the same output, including identifiers.
//
// This package serves as the foundational logic for the `cgt` command-line
// tool.
package fifotax
