package fifotax

import (
	"slices"

	"github.com/etnz/fifotax/date"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultEpsilon is the tolerance used to decide that a disposal is fully
// matched.
var DefaultEpsilon = Q(decimal.New(1, -8))

// DefaultCurrency is the reporting currency used when none is set.
const DefaultCurrency = "ZAR"

// Options configures Build. The zero value is ready to use.
type Options struct {
	// Calendar defines the fiscal years, defaults to date.DefaultFiscalCalendar.
	// A non-zero calendar must be valid, see date.NewFiscalCalendar; Build
	// panics otherwise.
	Calendar date.FiscalCalendar
	// Epsilon defaults to DefaultEpsilon.
	Epsilon Quantity
	// Currency every amount is expressed in, defaults to DefaultCurrency.
	Currency string
	// Logger receives debug traces of the matching, and shortfall warnings.
	// Nil discards everything.
	Logger *zerolog.Logger
}

func (o Options) withDefaults() Options {
	if o.Calendar == (date.FiscalCalendar{}) {
		o.Calendar = date.DefaultFiscalCalendar
	}
	if err := o.Calendar.Validate(); err != nil {
		panic("fifotax: " + err.Error())
	}
	if o.Epsilon.IsZero() {
		o.Epsilon = DefaultEpsilon
	}
	if o.Currency == "" {
		o.Currency = DefaultCurrency
	}
	if o.Logger == nil {
		nop := zerolog.Nop()
		o.Logger = &nop
	}
	return o
}

// PortfolioState is the complete result of processing a set of transactions.
type PortfolioState struct {
	Currency string `json:"currency"`
	// Lots holds every lot, open and closed.
	Lots []*Lot `json:"lots"`
	// Transactions holds every transaction in processing order.
	Transactions []*ProcessedTransaction `json:"transactions"`
	// Summaries holds a summary per fiscal year with transactions, ordered by start date.
	Summaries []*FiscalYearSummary `json:"taxYearSummaries"`
	// FiscalYears lists every fiscal year from the first to the last
	// transaction, including years without transactions.
	FiscalYears []date.FiscalYear `json:"fiscalYears"`
	// Balances is the final balance of each asset.
	Balances map[string]Quantity `json:"currentBalances"`
	// Warnings lists all the data quality issues found, in processing order.
	Warnings []Warning `json:"warnings"`
}

// Build processes txs with the FIFO method and returns the resulting state.
//
// Transactions are stably sorted by date first, so that transactions on the
// same day are processed in input order. txs is not modified, and Build keeps
// no state between calls: it is safe to call concurrently.
func Build(txs []Transaction, opts Options) *PortfolioState {
	opts = opts.withDefaults()

	sorted := slices.Clone(txs)
	slices.SortStableFunc(sorted, func(a, b Transaction) int { return a.Date.Compare(b.Date) })

	ids := &sequence{}
	m := newMatcher(opts.Epsilon, *opts.Logger, ids)

	state := &PortfolioState{
		Currency:     opts.Currency,
		Transactions: make([]*ProcessedTransaction, 0, len(sorted)),
		Balances:     make(map[string]Quantity),
		Warnings:     make([]Warning, 0),
	}
	dates := make([]date.Date, 0, len(sorted))
	for _, tx := range sorted {
		tx = tx.in(opts.Currency)
		ctx := ClassifiedTransaction{
			Transaction: tx,
			ID:          ids.next("tx"),
			FiscalYear:  opts.Calendar.Classify(tx.Date).Label,
		}
		p := m.process(ctx)
		state.Transactions = append(state.Transactions, p)
		state.Warnings = append(state.Warnings, p.Warnings...)
		dates = append(dates, tx.Date)
	}

	state.Lots = m.lots()
	for asset, balance := range m.balances {
		state.Balances[asset] = balance
	}
	state.Summaries = summarize(opts.Calendar, state.Transactions, state.Lots, opts.Currency)
	state.FiscalYears = opts.Calendar.RangeOf(dates)
	if state.FiscalYears == nil {
		state.FiscalYears = make([]date.FiscalYear, 0)
	}
	opts.Logger.Debug().
		Int("transactions", len(state.Transactions)).
		Int("lots", len(state.Lots)).
		Int("warnings", len(state.Warnings)).
		Msg("portfolio state built")
	return state
}

// Summary returns the summary of the fiscal year labelled 'label', or nil.
func (s *PortfolioState) Summary(label string) *FiscalYearSummary {
	for _, fy := range s.Summaries {
		if fy.Label == label {
			return fy
		}
	}
	return nil
}

// Assets returns the assets in order of first appearance.
func (s *PortfolioState) Assets() []string {
	var assets []string
	for _, l := range s.Transactions {
		if !slices.Contains(assets, l.Asset) {
			assets = append(assets, l.Asset)
		}
	}
	return assets
}

// Balance returns the final balance of asset.
func (s *PortfolioState) Balance(asset string) Quantity { return s.Balances[asset] }

// OpenLots returns the lots of asset that are still open, oldest first.
// An empty asset returns the open lots of every asset.
func (s *PortfolioState) OpenLots(asset string) []*Lot {
	var open []*Lot
	for _, l := range s.Lots {
		if l.IsOpen() && (asset == "" || l.Asset == asset) {
			open = append(open, l)
		}
	}
	return open
}

// Transaction returns the processed transaction with the given id, or nil.
func (s *PortfolioState) Transaction(id string) *ProcessedTransaction {
	for _, tx := range s.Transactions {
		if tx.ID == id {
			return tx
		}
	}
	return nil
}

// UnrealizedCostBasis returns the cost basis of all the open lots of asset.
func (s *PortfolioState) UnrealizedCostBasis(asset string) Money {
	total := M(0, s.Currency)
	for _, l := range s.OpenLots(asset) {
		total = total.Add(l.UnrealizedCostBasis())
	}
	return total
}
