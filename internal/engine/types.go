package engine

import "github.com/google/uuid"

// Side of a resting order.
type Side uint8

const (
	SideBid Side = iota
	SideAsk
)

func (s Side) String() string {
	switch s {
	case SideBid:
		return "BID"
	case SideAsk:
		return "ASK"
	default:
		return "UNKNOWN"
	}
}

// Order is a resting limit order. Price and Owner are fixed at creation;
// Size is reduced by the matcher on partial fills and never goes negative.
type Order struct {
	ID    uuid.UUID
	Price float64
	Size  float64
	Side  Side
	Owner uuid.UUID

	// insertion sequence, assigned by the book; breaks price ties
	seq uint64
}

// NewOrder creates an order with a fresh identifier.
func NewOrder(price, size float64, side Side, owner uuid.UUID) *Order {
	return &Order{
		ID:    uuid.New(),
		Price: price,
		Size:  size,
		Side:  side,
		Owner: owner,
	}
}

// Trade is an executed cross between a bid and an ask. Immutable.
type Trade struct {
	Buyer  uuid.UUID `json:"buyer"`
	Seller uuid.UUID `json:"seller"`
	Size   float64   `json:"size"`
	Price  float64   `json:"price"`
}

// Quote is a price/size pair from one side of the book.
type Quote struct {
	Price float64 `json:"price"`
	Size  float64 `json:"size"`
}

// MarketState is the read view handed to traders each tick. Traders observe
// the book and the reference price; they must not mutate either.
type MarketState struct {
	Book      *Book
	TruePrice float64
}
