package trader

import (
	"github.com/google/uuid"

	"auctionsim/internal/engine"
)

// MarketMaker quotes both sides of the reference price every tick: a bid at
// price*(1-markup) and an ask at price*(1+markup), both of fixed size.
// Deterministic given the reference price.
type MarketMaker struct {
	acct   Account
	markup float64
	size   float64
}

func NewMarketMaker(markup, size, cash, lots float64) *MarketMaker {
	return &MarketMaker{
		acct:   Account{ID: uuid.New(), Cash: cash, Lots: lots},
		markup: markup,
		size:   size,
	}
}

func (m *MarketMaker) Account() *Account { return &m.acct }

func (m *MarketMaker) GenerateOrders(state engine.MarketState) []*engine.Order {
	p := state.TruePrice
	return []*engine.Order{
		engine.NewOrder(p*(1-m.markup), m.size, engine.SideBid, m.acct.ID),
		engine.NewOrder(p*(1+m.markup), m.size, engine.SideAsk, m.acct.ID),
	}
}
