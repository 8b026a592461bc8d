package fifotax

import (
	"slices"

	"github.com/etnz/fifotax/date"
)

// CoinSummary aggregates the activity of one asset during one fiscal year.
type CoinSummary struct {
	Asset              string   `json:"asset"`
	TotalAcquired      Quantity `json:"totalAcquired"`
	TotalDisposed      Quantity `json:"totalDisposed"`
	CurrentBalance     Quantity `json:"currentBalance"` // running balance after the asset's last transaction of the year
	TotalCostBasis     Money    `json:"totalCostBasis"` // acquisitions total value plus fees
	TotalProceeds      Money    `json:"totalProceeds"`
	RealizedGainOrLoss Money    `json:"realizedGainOrLoss"`
	// UnrealizedCostBasis is the cost basis of the asset's lots still open at
	// the end of the whole computation, whatever year they were acquired in.
	UnrealizedCostBasis Money `json:"unrealizedCostBasis"`
}

// FiscalYearSummary aggregates the transactions of a fiscal year.
type FiscalYearSummary struct {
	date.FiscalYear
	Transactions []*ProcessedTransaction `json:"transactions"`
	Coins        []*CoinSummary          `json:"coins"`
	// TotalRealizedGains sums the net realized gain of assets with a net gain.
	TotalRealizedGains Money `json:"totalRealizedGains"`
	// TotalRealizedLosses sums the absolute net realized loss of assets with a net loss.
	TotalRealizedLosses Money `json:"totalRealizedLosses"`
	NetGainOrLoss       Money `json:"netGainOrLoss"`
}

// Coin returns the summary of asset, or nil if the asset had no transaction
// that year.
func (s *FiscalYearSummary) Coin(asset string) *CoinSummary {
	for _, c := range s.Coins {
		if c.Asset == asset {
			return c
		}
	}
	return nil
}

// summarize groups processed transactions by fiscal year and computes the
// per asset statistics. lots is the final state of every lot.
func summarize(cal date.FiscalCalendar, txs []*ProcessedTransaction, lots []*Lot, currency string) []*FiscalYearSummary {
	zero := M(0, currency)

	unrealized := make(map[string]Money)
	for _, l := range lots {
		if !l.IsOpen() {
			continue
		}
		u, ok := unrealized[l.Asset]
		if !ok {
			u = zero
		}
		unrealized[l.Asset] = u.Add(l.UnrealizedCostBasis())
	}

	byLabel := make(map[string]*FiscalYearSummary)
	summaries := make([]*FiscalYearSummary, 0)
	coins := make(map[string]map[string]*CoinSummary)

	for _, tx := range txs {
		s, ok := byLabel[tx.FiscalYear]
		if !ok {
			s = &FiscalYearSummary{
				FiscalYear:          cal.Classify(tx.Date),
				Transactions:        make([]*ProcessedTransaction, 0),
				Coins:               make([]*CoinSummary, 0),
				TotalRealizedGains:  zero,
				TotalRealizedLosses: zero,
				NetGainOrLoss:       zero,
			}
			byLabel[tx.FiscalYear] = s
			summaries = append(summaries, s)
			coins[tx.FiscalYear] = make(map[string]*CoinSummary)
		}
		s.Transactions = append(s.Transactions, tx)

		c, ok := coins[tx.FiscalYear][tx.Asset]
		if !ok {
			c = &CoinSummary{
				Asset:               tx.Asset,
				TotalCostBasis:      zero,
				TotalProceeds:       zero,
				RealizedGainOrLoss:  zero,
				UnrealizedCostBasis: zero,
			}
			if u, ok := unrealized[tx.Asset]; ok {
				c.UnrealizedCostBasis = u
			}
			coins[tx.FiscalYear][tx.Asset] = c
			s.Coins = append(s.Coins, c)
		}

		if d := tx.Disposal; d != nil {
			c.TotalDisposed = c.TotalDisposed.Add(tx.Amount)
			c.TotalProceeds = c.TotalProceeds.Add(d.TotalProceeds)
			c.RealizedGainOrLoss = c.RealizedGainOrLoss.Add(d.TotalGainOrLoss)
		} else {
			c.TotalAcquired = c.TotalAcquired.Add(tx.Amount)
			c.TotalCostBasis = c.TotalCostBasis.Add(tx.TotalValue.Add(tx.Fee))
		}
		c.CurrentBalance = tx.RunningBalance
	}

	for _, s := range summaries {
		// net per asset first, then split between gains and losses.
		for _, c := range s.Coins {
			switch {
			case c.RealizedGainOrLoss.IsPositive():
				s.TotalRealizedGains = s.TotalRealizedGains.Add(c.RealizedGainOrLoss)
			case c.RealizedGainOrLoss.IsNegative():
				s.TotalRealizedLosses = s.TotalRealizedLosses.Add(c.RealizedGainOrLoss.Abs())
			}
		}
		s.NetGainOrLoss = s.TotalRealizedGains.Sub(s.TotalRealizedLosses)
	}

	slices.SortStableFunc(summaries, func(a, b *FiscalYearSummary) int { return a.From.Compare(b.From) })
	return summaries
}
