package fifotax

import (
	"testing"
	"time"

	"github.com/etnz/fifotax/date"
)

func TestSummaries_Netting(t *testing.T) {
	s := Build([]Transaction{
		NewAcquire(on("2024-04-01"), "ETH", 2, 100, 0),
		NewDispose(on("2024-05-01"), "ETH", 1, 200, 0), // +100
		NewDispose(on("2024-06-01"), "ETH", 1, 60, 0),  // -40
	}, Options{})
	checkInvariants(t, s)

	if len(s.Summaries) != 1 {
		t.Fatalf("got %d summaries, want 1", len(s.Summaries))
	}
	fy := s.Summaries[0]
	assertMoney(t, "ETH realized", fy.Coin("ETH").RealizedGainOrLoss, 60)
	assertMoney(t, "totalRealizedGains", fy.TotalRealizedGains, 60)
	assertMoney(t, "totalRealizedLosses", fy.TotalRealizedLosses, 0)
	assertMoney(t, "netGainOrLoss", fy.NetGainOrLoss, 60)
}

func TestSummaries_GainsAndLossesAcrossAssets(t *testing.T) {
	s := Build([]Transaction{
		NewAcquire(on("2024-04-01"), "ETH", 2, 100, 0),
		NewAcquire(on("2024-04-01"), "LTC", 1, 50, 0),
		NewDispose(on("2024-05-01"), "ETH", 1, 200, 0), // +100
		NewDispose(on("2024-05-01"), "LTC", 1, 30, 0),  // -20
	}, Options{})

	fy := s.Summaries[0]
	assertMoney(t, "totalRealizedGains", fy.TotalRealizedGains, 100)
	assertMoney(t, "totalRealizedLosses", fy.TotalRealizedLosses, 20)
	assertMoney(t, "netGainOrLoss", fy.NetGainOrLoss, 80)
}

func TestSummaries_CoinStatistics(t *testing.T) {
	s := Build([]Transaction{
		NewAcquire(on("2023-06-01"), "BTC", 1, 100, 2),
		NewAcquire(on("2024-06-01"), "BTC", 2, 150, 4),
		NewAcquire(on("2024-06-02"), "ETH", 1, 10, 0),
		NewDispose(on("2024-09-01"), "BTC", 2, 200, 1),
		NewAcquire(on("2024-10-01"), "BTC", 1, 300, 0),
	}, Options{})
	checkInvariants(t, s)

	if len(s.Summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(s.Summaries))
	}
	older, newer := s.Summaries[0], s.Summaries[1]
	if older.Label != "2023/2024" || newer.Label != "2024/2025" {
		t.Fatalf("summaries = %q, %q", older.Label, newer.Label)
	}
	if older.From != date.New(2023, time.March, 1) || older.To != date.New(2024, time.February, 29) {
		t.Errorf("older summary range = %v", older.Range)
	}
	if len(older.Transactions) != 1 || len(newer.Transactions) != 4 {
		t.Errorf("transactions per year = %d, %d, want 1, 4", len(older.Transactions), len(newer.Transactions))
	}

	btc := newer.Coin("BTC")
	if btc == nil {
		t.Fatal("missing BTC summary")
	}
	assertQuantity(t, "totalAcquired", btc.TotalAcquired, 3)
	assertQuantity(t, "totalDisposed", btc.TotalDisposed, 2)
	assertQuantity(t, "currentBalance", btc.CurrentBalance, 2)
	// 300+4 + 300+0
	assertMoney(t, "totalCostBasis", btc.TotalCostBasis, 604)
	assertMoney(t, "totalProceeds", btc.TotalProceeds, 399)
	// cost: 100+2 + 150+2 = 254
	assertMoney(t, "realizedGainOrLoss", btc.RealizedGainOrLoss, 145)
	// open lots: 1 of the second lot (150 + 2) and the last one (300)
	assertMoney(t, "unrealizedCostBasis", btc.UnrealizedCostBasis, 452)

	// the unrealized cost basis reflects the final lots, not the year's ones.
	oldBTC := older.Coin("BTC")
	assertMoney(t, "older unrealizedCostBasis", oldBTC.UnrealizedCostBasis, 452)
	assertQuantity(t, "older currentBalance", oldBTC.CurrentBalance, 1)
	assertMoney(t, "older totalCostBasis", oldBTC.TotalCostBasis, 102)

	if newer.Coins[0].Asset != "BTC" || newer.Coins[1].Asset != "ETH" {
		t.Errorf("coins are not in order of first appearance")
	}
	if older.Coin("ETH") != nil {
		t.Errorf("ETH has no transaction in %s", older.Label)
	}
}

func TestSummaries_OrderAndGapYears(t *testing.T) {
	s := Build([]Transaction{
		NewDispose(on("2024-05-01"), "BTC", 1, 200, 0),
		NewAcquire(on("2021-05-01"), "BTC", 1, 100, 0),
	}, Options{})

	if len(s.Summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(s.Summaries))
	}
	if s.Summaries[0].Label != "2021/2022" || s.Summaries[1].Label != "2024/2025" {
		t.Errorf("summaries are not ordered by start date")
	}
	var labels []string
	for _, fy := range s.FiscalYears {
		labels = append(labels, fy.Label)
	}
	want := []string{"2021/2022", "2022/2023", "2023/2024", "2024/2025"}
	if len(labels) != len(want) {
		t.Fatalf("fiscal years = %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("fiscal years = %v, want %v", labels, want)
		}
	}
	if s.Summary("2022/2023") != nil {
		t.Errorf("a year without transactions has a summary")
	}
}

func TestSummaries_LeapDayBoundary(t *testing.T) {
	s := Build([]Transaction{
		NewAcquire(on("2024-02-29"), "BTC", 1, 100, 0),
		NewDispose(on("2024-03-01"), "BTC", 1, 110, 0),
	}, Options{})

	if got := s.Transactions[0].FiscalYear; got != "2023/2024" {
		t.Errorf("Feb 29 classified in %q", got)
	}
	if got := s.Transactions[1].FiscalYear; got != "2024/2025" {
		t.Errorf("March 1 classified in %q", got)
	}
	assertMoney(t, "2024/2025 net", s.Summary("2024/2025").NetGainOrLoss, 10)
	assertMoney(t, "2023/2024 net", s.Summary("2023/2024").NetGainOrLoss, 0)
}

func TestSummaries_CustomCalendar(t *testing.T) {
	s := Build([]Transaction{
		NewAcquire(on("2024-04-05"), "BTC", 1, 100, 0),
		NewDispose(on("2024-04-06"), "BTC", 1, 110, 0),
	}, Options{Calendar: date.FiscalCalendar{StartMonth: time.April, StartDay: 6}})

	if len(s.Summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(s.Summaries))
	}
	if s.Summaries[1].Label != "2024/2025" || s.Summaries[1].From != date.New(2024, time.April, 6) {
		t.Errorf("second summary = %q from %v", s.Summaries[1].Label, s.Summaries[1].From)
	}
}
