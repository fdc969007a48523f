package engine

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"pgregory.net/rapid"
)

// drawBook generates a random book with up to a handful of orders per side.
func drawBook(t *rapid.T) *Book {
	b := NewBook()
	owner := uuid.New()

	nBids := rapid.IntRange(0, 8).Draw(t, "nBids")
	nAsks := rapid.IntRange(0, 8).Draw(t, "nAsks")

	for i := 0; i < nBids; i++ {
		price := rapid.Float64Range(1, 200).Draw(t, "bidPrice")
		size := rapid.Float64Range(0.5, 50).Draw(t, "bidSize")
		if err := b.Insert(NewOrder(price, size, SideBid, owner)); err != nil {
			t.Fatalf("insert bid: %v", err)
		}
	}
	for i := 0; i < nAsks; i++ {
		price := rapid.Float64Range(1, 200).Draw(t, "askPrice")
		size := rapid.Float64Range(0.5, 50).Draw(t, "askSize")
		if err := b.Insert(NewOrder(price, size, SideAsk, owner)); err != nil {
			t.Fatalf("insert ask: %v", err)
		}
	}
	return b
}

func totalSize(qs []Quote) float64 {
	var sum float64
	for _, q := range qs {
		sum += q.Size
	}
	return sum
}

func TestProperty_MatchLeavesNoCrossablePair(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := drawBook(t)
		Match(b)

		bid, hasBid := b.BestBid()
		ask, hasAsk := b.BestAsk()
		if hasBid && hasAsk && bid.Price >= ask.Price {
			t.Fatalf("residual cross: bid %v >= ask %v", bid.Price, ask.Price)
		}
	})
}

func TestProperty_TradePriceWithinSpreadAndSizeConserved(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := drawBook(t)

		bidBefore := totalSize(b.Bids())
		askBefore := totalSize(b.Asks())

		trades := Match(b)

		var traded float64
		for _, tr := range trades {
			if tr.Size <= 0 {
				t.Fatalf("non-positive trade size %v", tr.Size)
			}
			traded += tr.Size
		}

		// each unit traded leaves exactly once from each side
		bidRemoved := bidBefore - totalSize(b.Bids())
		askRemoved := askBefore - totalSize(b.Asks())
		if math.Abs(bidRemoved-traded) > 1e-9 {
			t.Fatalf("bid size not conserved: removed %v, traded %v", bidRemoved, traded)
		}
		if math.Abs(askRemoved-traded) > 1e-9 {
			t.Fatalf("ask size not conserved: removed %v, traded %v", askRemoved, traded)
		}
	})
}

func TestProperty_TradePriceIsMidpointOfCross(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		bidPrice := rapid.Float64Range(1, 200).Draw(t, "bidPrice")
		askPrice := rapid.Float64Range(1, 200).Draw(t, "askPrice")
		size := rapid.Float64Range(0.5, 50).Draw(t, "size")

		b := NewBook()
		if err := b.Insert(NewOrder(bidPrice, size, SideBid, uuid.New())); err != nil {
			t.Fatalf("insert: %v", err)
		}
		if err := b.Insert(NewOrder(askPrice, size, SideAsk, uuid.New())); err != nil {
			t.Fatalf("insert: %v", err)
		}

		trades := Match(b)
		shouldMatch := bidPrice >= askPrice

		if shouldMatch != (len(trades) == 1) {
			t.Fatalf("bid=%v ask=%v trades=%d", bidPrice, askPrice, len(trades))
		}
		if shouldMatch {
			want := (bidPrice + askPrice) / 2
			if trades[0].Price != want {
				t.Fatalf("expected midpoint %v, got %v", want, trades[0].Price)
			}
			lo, hi := askPrice, bidPrice
			if trades[0].Price < lo || trades[0].Price > hi {
				t.Fatalf("trade price %v outside spread [%v,%v]", trades[0].Price, lo, hi)
			}
		}
	})
}
