package fifotax

import (
	"fmt"

	"github.com/rs/zerolog"
)

// matcher owns the lots and balances of a single Build call.
type matcher struct {
	eps      Quantity
	log      zerolog.Logger
	ids      *sequence
	assets   []string // in order of first appearance
	queues   map[string]*lotQueue
	balances map[string]Quantity
}

func newMatcher(eps Quantity, log zerolog.Logger, ids *sequence) *matcher {
	return &matcher{
		eps:      eps,
		log:      log,
		ids:      ids,
		queues:   make(map[string]*lotQueue),
		balances: make(map[string]Quantity),
	}
}

// queue returns the lot queue of asset, creating it on first use.
func (m *matcher) queue(asset string) *lotQueue {
	q, ok := m.queues[asset]
	if !ok {
		q = &lotQueue{}
		m.queues[asset] = q
		m.assets = append(m.assets, asset)
		m.balances[asset] = Quantity{}
	}
	return q
}

// process applies tx to the lots. Transactions must be processed in date order.
func (m *matcher) process(tx ClassifiedTransaction) *ProcessedTransaction {
	q := m.queue(tx.Asset)
	switch tx.Type {
	case Acquire:
		return m.acquire(q, tx)
	case Dispose:
		return m.dispose(q, tx, tx.TotalValue.Sub(tx.Fee))
	case Exchange:
		// the fee of a trade does not reduce its proceeds.
		return m.dispose(q, tx, tx.TotalValue)
	}
	panic(fmt.Sprintf("transaction %s has an invalid event type %d", tx.ID, tx.Type))
}

func (m *matcher) acquire(q *lotQueue, tx ClassifiedTransaction) *ProcessedTransaction {
	q.push(&Lot{
		ID:              m.ids.next("lot"),
		AcquisitionDate: tx.Date,
		Asset:           tx.Asset,
		OriginalAmount:  tx.Amount,
		RemainingAmount: tx.Amount,
		UnitCost:        tx.UnitPrice,
		TotalCost:       tx.TotalValue,
		Fee:             tx.Fee,
	})
	balance := m.balances[tx.Asset].Add(tx.Amount)
	m.balances[tx.Asset] = balance
	return &ProcessedTransaction{ClassifiedTransaction: tx, RunningBalance: balance}
}

func (m *matcher) dispose(q *lotQueue, tx ClassifiedTransaction, proceeds Money) *ProcessedTransaction {
	matches, unmatched := q.consume(tx.Date, tx.Amount, tx.UnitPrice, m.eps)

	d := &Disposal{LotMatches: matches, TotalProceeds: proceeds}
	// an empty sum still carries the currency.
	d.TotalCostBasis = Money{cur: proceeds.cur}
	for _, lm := range matches {
		d.TotalCostBasis = d.TotalCostBasis.Add(lm.CostBasis)
		m.log.Debug().
			Str("tx", tx.ID).
			Str("lot", lm.LotID).
			Str("asset", tx.Asset).
			Stringer("amount", lm.AmountUsed).
			Stringer("costBasis", lm.CostBasis.Decimal()).
			Int("holdingDays", lm.HoldingDays).
			Msg("lot matched")
	}
	d.TotalGainOrLoss = d.TotalProceeds.Sub(d.TotalCostBasis)

	// the balance always drops by the full amount, covered or not.
	balance := m.balances[tx.Asset].Sub(tx.Amount)
	m.balances[tx.Asset] = balance

	p := &ProcessedTransaction{ClassifiedTransaction: tx, RunningBalance: balance, Disposal: d}
	if unmatched.GreaterThan(m.eps) {
		w := Warning{
			Kind:          Shortfall,
			TransactionID: tx.ID,
			Date:          tx.Date,
			Asset:         tx.Asset,
			Requested:     tx.Amount,
			Matched:       d.matched(),
			Unmatched:     unmatched,
		}
		p.Warnings = append(p.Warnings, w)
		m.log.Warn().Str("tx", tx.ID).Str("asset", tx.Asset).Stringer("unmatched", unmatched).Msg(w.String())
	}
	return p
}

// lots returns every lot, open or closed, grouped by asset in order of first
// appearance and in acquisition order within an asset.
func (m *matcher) lots() []*Lot {
	all := make([]*Lot, 0)
	for _, asset := range m.assets {
		all = append(all, m.queues[asset].lots...)
	}
	return all
}
