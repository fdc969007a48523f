package trader

import (
	"math/rand"

	"github.com/google/uuid"

	"auctionsim/internal/engine"
)

// NoiseTrader places at most one order per tick: a fair coin picks the side,
// and the price is drawn from a normal distribution centered on the book's
// mid. With only one side quoted that side's price is used as the center;
// with an empty book the trader abstains.
type NoiseTrader struct {
	acct Account
	size float64
	vol  float64
	rng  *rand.Rand
}

func NewNoiseTrader(size, vol, cash, lots float64, rng *rand.Rand) *NoiseTrader {
	return &NoiseTrader{
		acct: Account{ID: uuid.New(), Cash: cash, Lots: lots},
		size: size,
		vol:  vol,
		rng:  rng,
	}
}

func (n *NoiseTrader) Account() *Account { return &n.acct }

func (n *NoiseTrader) GenerateOrders(state engine.MarketState) []*engine.Order {
	mid, ok := midPrice(state.Book)
	if !ok {
		return nil // no quotes, no information, don't trade
	}

	side := engine.SideBid
	if n.rng.NormFloat64() <= 0 {
		side = engine.SideAsk
	}

	price := mid + n.vol*n.rng.NormFloat64()
	return []*engine.Order{
		engine.NewOrder(price, n.size, side, n.acct.ID),
	}
}

// midPrice derives the reference mid from the best quotes, falling back to
// whichever single side is present.
func midPrice(book *engine.Book) (float64, bool) {
	bid, hasBid := book.BestBid()
	ask, hasAsk := book.BestAsk()
	switch {
	case hasBid && hasAsk:
		return (bid.Price + ask.Price) / 2, true
	case hasBid:
		return bid.Price, true
	case hasAsk:
		return ask.Price, true
	default:
		return 0, false
	}
}
