package renderer

import (
	"github.com/etnz/fifotax"
	"github.com/etnz/fifotax/date"
)

// gainsView is the data of the gains overview template.
type gainsView struct {
	*fifotax.PortfolioState
}

func newGainsView(s *fifotax.PortfolioState) *gainsView { return &gainsView{s} }

// holdingRow is an asset still held at the end of the ledger.
type holdingRow struct {
	Asset               string
	Balance             fifotax.Quantity
	OpenLots            int
	UnrealizedCostBasis fifotax.Money
}

// First returns the first fiscal year covered by the ledger.
func (v *gainsView) First() date.FiscalYear {
	if len(v.FiscalYears) == 0 {
		return date.FiscalYear{}
	}
	return v.FiscalYears[0]
}

// Last returns the last fiscal year covered by the ledger.
func (v *gainsView) Last() date.FiscalYear {
	if len(v.FiscalYears) == 0 {
		return date.FiscalYear{}
	}
	return v.FiscalYears[len(v.FiscalYears)-1]
}

// TotalNet sums the net gain or loss of every fiscal year.
func (v *gainsView) TotalNet() fifotax.Money {
	total := fifotax.M(0, v.Currency)
	for _, fy := range v.Summaries {
		total = total.Add(fy.NetGainOrLoss)
	}
	return total
}

// Holdings lists the assets with open lots, in order of first appearance.
func (v *gainsView) Holdings() []holdingRow {
	var rows []holdingRow
	for _, asset := range v.Assets() {
		lots := v.OpenLots(asset)
		if len(lots) == 0 {
			continue
		}
		rows = append(rows, holdingRow{
			Asset:               asset,
			Balance:             v.Balance(asset),
			OpenLots:            len(lots),
			UnrealizedCostBasis: v.UnrealizedCostBasis(asset),
		})
	}
	return rows
}

// taxYearView is the data of the tax year template.
type taxYearView struct {
	State *fifotax.PortfolioState
	Year  *fifotax.FiscalYearSummary
}

func newTaxYearView(s *fifotax.PortfolioState, fy *fifotax.FiscalYearSummary) *taxYearView {
	return &taxYearView{State: s, Year: fy}
}

// Disposals returns the disposals of the year in processing order.
func (v *taxYearView) Disposals() []*fifotax.ProcessedTransaction {
	var res []*fifotax.ProcessedTransaction
	for _, tx := range v.Year.Transactions {
		if tx.IsDisposal() {
			res = append(res, tx)
		}
	}
	return res
}

// Warnings returns the warnings raised by the transactions of the year.
func (v *taxYearView) Warnings() []fifotax.Warning {
	var res []fifotax.Warning
	for _, tx := range v.Year.Transactions {
		res = append(res, tx.Warnings...)
	}
	return res
}
