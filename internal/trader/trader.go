// Package trader holds the strategy implementations that place orders each
// tick. Strategies share a common Account record (identifier, cash,
// position); the account is mutated only by settlement, never by the
// strategy itself.
package trader

import (
	"github.com/google/uuid"

	"auctionsim/internal/engine"
)

// Account is the cash/position record common to every trader.
type Account struct {
	ID   uuid.UUID
	Cash float64
	Lots float64
}

// PortfolioValue marks the position to the given price:
// cash + lots * price.
func (a *Account) PortfolioValue(price float64) float64 {
	return a.Cash + a.Lots*price
}

// Trader is the strategy interface. GenerateOrders is called once per tick
// with the current market state and returns zero or more new orders; an
// empty result means the trader abstains this tick.
type Trader interface {
	Account() *Account
	GenerateOrders(state engine.MarketState) []*engine.Order
}
