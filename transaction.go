package fifotax

import (
	"fmt"

	"github.com/etnz/fifotax/date"
)

// Transaction is a normalized acquisition or disposal record, as produced by
// an importer. The engine trusts its content, see Validate.
type Transaction struct {
	Date       date.Date `json:"date"`
	Type       EventType `json:"type"`
	Asset      string    `json:"asset"`
	Amount     Quantity  `json:"amount"`
	UnitPrice  Money     `json:"unitPrice"`
	TotalValue Money     `json:"totalValue"`
	Fee        Money     `json:"fee"`
	Notes      string    `json:"notes,omitempty"`
}

// NewAcquire returns an Acquire transaction. totalValue is amount*unitPrice.
func NewAcquire(on date.Date, asset string, amount, unitPrice, fee float64) Transaction {
	return newTransaction(on, Acquire, asset, amount, unitPrice, fee)
}

// NewDispose returns a Dispose transaction. totalValue is amount*unitPrice.
func NewDispose(on date.Date, asset string, amount, unitPrice, fee float64) Transaction {
	return newTransaction(on, Dispose, asset, amount, unitPrice, fee)
}

// NewExchange returns an Exchange transaction disposing of amount units of asset.
func NewExchange(on date.Date, asset string, amount, unitPrice, fee float64) Transaction {
	return newTransaction(on, Exchange, asset, amount, unitPrice, fee)
}

func newTransaction(on date.Date, t EventType, asset string, amount, unitPrice, fee float64) Transaction {
	q, p := Q(amount), M(unitPrice, "")
	return Transaction{
		Date:       on,
		Type:       t,
		Asset:      asset,
		Amount:     q,
		UnitPrice:  p,
		TotalValue: p.Mul(q),
		Fee:        M(fee, ""),
	}
}

// in returns a copy of tx with every amount expressed in currency c.
func (tx Transaction) in(c string) Transaction {
	tx.UnitPrice = tx.UnitPrice.In(c)
	tx.TotalValue = tx.TotalValue.In(c)
	tx.Fee = tx.Fee.In(c)
	return tx
}

func (tx Transaction) String() string {
	return fmt.Sprintf("%s %s %s %s @ %s", tx.Date, tx.Type, tx.Amount, tx.Asset, tx.UnitPrice)
}

// ClassifiedTransaction is a Transaction with an identifier and its fiscal year.
type ClassifiedTransaction struct {
	Transaction
	ID         string
	FiscalYear string
}

// Disposal holds the result of matching a Dispose or Exchange transaction
// against the open lots.
type Disposal struct {
	LotMatches      []LotMatch
	TotalCostBasis  Money
	TotalProceeds   Money
	TotalGainOrLoss Money
}

// matched returns the total amount covered by lots.
func (d *Disposal) matched() Quantity {
	var q Quantity
	for _, m := range d.LotMatches {
		q = q.Add(m.AmountUsed)
	}
	return q
}

// ProcessedTransaction is the outcome of processing a ClassifiedTransaction.
// Disposal is nil for Acquire transactions.
type ProcessedTransaction struct {
	ClassifiedTransaction
	RunningBalance Quantity
	Disposal       *Disposal
	Warnings       []Warning
}

// IsDisposal reports whether the transaction reduced a position.
func (p *ProcessedTransaction) IsDisposal() bool { return p.Disposal != nil }

// MarshalJSON writes a flat object, disposal fields are only present for
// disposals.
func (p ProcessedTransaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.field("id", p.ID)
	w.embed(p.Transaction)
	w.field("fiscalYear", p.FiscalYear)
	w.field("runningBalance", p.RunningBalance)
	if d := p.Disposal; d != nil {
		matches := d.LotMatches
		if matches == nil {
			matches = []LotMatch{}
		}
		w.field("lotMatches", matches)
		w.field("totalCostBasis", d.TotalCostBasis)
		w.field("totalProceeds", d.TotalProceeds)
		w.field("totalGainOrLoss", d.TotalGainOrLoss)
	}
	w.optional("warnings", p.Warnings)
	return w.MarshalJSON()
}
