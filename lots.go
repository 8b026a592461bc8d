package fifotax

import (
	"github.com/etnz/fifotax/date"
)

// Lot represents a single acquisition of an asset, tracked until fully
// disposed of.
//
// RemainingAmount is the only field that changes after creation. It never
// increases and never goes below zero.
type Lot struct {
	ID              string    `json:"id"`
	AcquisitionDate date.Date `json:"acquisitionDate"`
	Asset           string    `json:"asset"`
	OriginalAmount  Quantity  `json:"originalAmount"`
	RemainingAmount Quantity  `json:"remainingAmount"`
	UnitCost        Money     `json:"unitCost"`
	TotalCost       Money     `json:"totalCost"` // as reported by the acquisition, fee excluded
	Fee             Money     `json:"fee"`
}

// IsOpen reports whether some of the lot is still held.
func (l *Lot) IsOpen() bool { return l.RemainingAmount.IsPositive() }

// costOf returns the cost basis of q units of the lot: their acquisition cost
// plus the share of the fee proportional to the fraction of the original lot.
func (l *Lot) costOf(q Quantity) Money {
	return l.UnitCost.Mul(q).Add(l.Fee.Mul(q.Div(l.OriginalAmount)))
}

// UnrealizedCostBasis returns the cost basis of the remaining units.
func (l *Lot) UnrealizedCostBasis() Money {
	if !l.IsOpen() {
		return Money{cur: l.UnitCost.cur}
	}
	return l.costOf(l.RemainingAmount)
}

// LotMatch is the contribution of one lot to one disposal.
type LotMatch struct {
	LotID           string    `json:"lotId"`
	AcquisitionDate date.Date `json:"acquisitionDate"`
	AmountUsed      Quantity  `json:"amountUsed"`
	CostBasis       Money     `json:"costBasis"`
	Proceeds        Money     `json:"proceeds"`
	GainOrLoss      Money     `json:"gainOrLoss"`
	HoldingDays     int       `json:"holdingDays"`
}

// lotQueue holds the lots of a single asset in acquisition order.
// Lots before head are fully consumed.
type lotQueue struct {
	lots []*Lot
	head int
}

// push appends a lot. Lots must be pushed in acquisition order.
func (q *lotQueue) push(l *Lot) { q.lots = append(q.lots, l) }

// open returns the total remaining amount of the open lots.
func (q *lotQueue) open() Quantity {
	var sum Quantity
	for _, l := range q.lots[q.head:] {
		sum = sum.Add(l.RemainingAmount)
	}
	return sum
}

// consume disposes of 'amount' units on date 'on' at unitPrice, oldest lots
// first. It stops once what is left to match is below eps or when the lots
// are exhausted, and returns the matches and the unmatched amount.
func (q *lotQueue) consume(on date.Date, amount Quantity, unitPrice Money, eps Quantity) (matches []LotMatch, unmatched Quantity) {
	toMatch := amount
	for q.head < len(q.lots) && toMatch.GreaterThan(eps) {
		l := q.lots[q.head]
		if !l.IsOpen() {
			q.head++
			continue
		}
		used := l.RemainingAmount.Min(toMatch)
		cost := l.costOf(used)
		proceeds := unitPrice.Mul(used)
		matches = append(matches, LotMatch{
			LotID:           l.ID,
			AcquisitionDate: l.AcquisitionDate,
			AmountUsed:      used,
			CostBasis:       cost,
			Proceeds:        proceeds,
			GainOrLoss:      proceeds.Sub(cost),
			HoldingDays:     date.DaysBetween(l.AcquisitionDate, on),
		})
		l.RemainingAmount = l.RemainingAmount.Sub(used)
		toMatch = toMatch.Sub(used)
		if !l.IsOpen() {
			q.head++
		}
	}
	return matches, toMatch
}
