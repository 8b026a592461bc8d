package fifotax

import (
	"testing"

	"github.com/etnz/fifotax/date"
	"github.com/shopspring/decimal"
)

// tolerance used to compare computed amounts.
var tolerance = decimal.New(1, -6)

// on is a shortcut for date.MustParse.
func on(s string) date.Date { return date.MustParse(s) }

// assertMoney fails the test if got is not within tolerance of want.
func assertMoney(t *testing.T, name string, got Money, want float64) {
	t.Helper()
	if !got.WithinEpsilon(M(want, ""), tolerance) {
		t.Errorf("%s = %s, want %v", name, got.Decimal(), want)
	}
}

// assertQuantity fails the test if got is not within tolerance of want.
func assertQuantity(t *testing.T, name string, got Quantity, want float64) {
	t.Helper()
	if !got.WithinEpsilon(Q(want), Q(tolerance)) {
		t.Errorf("%s = %s, want %v", name, got, want)
	}
}

// checkInvariants asserts the properties any state must have.
func checkInvariants(t *testing.T, s *PortfolioState) {
	t.Helper()
	shortfall := make(map[string]bool)
	for _, w := range s.Warnings {
		shortfall[w.Asset] = true
	}
	for asset, balance := range s.Balances {
		if shortfall[asset] {
			continue
		}
		var open Quantity
		for _, l := range s.OpenLots(asset) {
			open = open.Add(l.RemainingAmount)
		}
		if !open.WithinEpsilon(balance, Q(tolerance)) {
			t.Errorf("%s: open lots hold %s, balance is %s", asset, open, balance)
		}
	}
	for _, l := range s.Lots {
		if l.RemainingAmount.IsNegative() || l.RemainingAmount.GreaterThan(l.OriginalAmount) {
			t.Errorf("lot %s remaining amount %s out of [0, %s]", l.ID, l.RemainingAmount, l.OriginalAmount)
		}
	}
	for _, tx := range s.Transactions {
		d := tx.Disposal
		if d == nil {
			continue
		}
		if !d.TotalCostBasis.Add(d.TotalGainOrLoss).WithinEpsilon(d.TotalProceeds, tolerance) {
			t.Errorf("%s: cost basis %s + gain %s != proceeds %s", tx.ID, d.TotalCostBasis.Decimal(), d.TotalGainOrLoss.Decimal(), d.TotalProceeds.Decimal())
		}
	}
}
