package engine

import (
	"container/heap"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

var (
	ErrInvalidSide = errors.New("invalid order side")
	ErrDuplicateID = errors.New("duplicate order id")
)

// -----------------------------------------------------------------------------
// Heap of orders for one side
// -----------------------------------------------------------------------------

// orderHeap keeps one side of the book ordered so the best order is always at
// the root: a max-heap by price for bids, a min-heap for asks. Equal prices
// are broken by insertion sequence (earliest inserted wins).
type orderHeap struct {
	orders []*Order
	index  map[uuid.UUID]int // order ID -> index in orders
	isBid  bool
}

func newOrderHeap(isBid bool) *orderHeap {
	return &orderHeap{
		index: make(map[uuid.UUID]int),
		isBid: isBid,
	}
}

func (h *orderHeap) Len() int { return len(h.orders) }

func (h *orderHeap) Less(i, j int) bool {
	a, b := h.orders[i], h.orders[j]
	if a.Price != b.Price {
		if h.isBid {
			return a.Price > b.Price
		}
		return a.Price < b.Price
	}
	return a.seq < b.seq
}

func (h *orderHeap) Swap(i, j int) {
	h.orders[i], h.orders[j] = h.orders[j], h.orders[i]
	h.index[h.orders[i].ID] = i
	h.index[h.orders[j].ID] = j
}

func (h *orderHeap) Push(x interface{}) {
	o := x.(*Order)
	h.orders = append(h.orders, o)
	h.index[o.ID] = len(h.orders) - 1
}

func (h *orderHeap) Pop() interface{} {
	n := len(h.orders)
	if n == 0 {
		return nil
	}
	o := h.orders[n-1]
	h.orders = h.orders[:n-1]
	delete(h.index, o.ID)
	return o
}

func (h *orderHeap) best() *Order {
	if len(h.orders) == 0 {
		return nil
	}
	return h.orders[0]
}

// remove deletes an arbitrary order by ID. Returns false if absent.
func (h *orderHeap) remove(id uuid.UUID) bool {
	i, ok := h.index[id]
	if !ok {
		return false
	}
	heap.Remove(h, i)
	return true
}

// -----------------------------------------------------------------------------
// Book
// -----------------------------------------------------------------------------

// Book holds the resting bids and asks for a single instrument. It is not
// safe for concurrent use; each simulation replica owns its own book.
type Book struct {
	bids *orderHeap
	asks *orderHeap

	orders  map[uuid.UUID]*Order // ID -> order, both sides
	nextSeq uint64
}

func NewBook() *Book {
	return &Book{
		bids:   newOrderHeap(true),
		asks:   newOrderHeap(false),
		orders: make(map[uuid.UUID]*Order),
	}
}

func (b *Book) sideFor(s Side) (*orderHeap, error) {
	switch s {
	case SideBid:
		return b.bids, nil
	case SideAsk:
		return b.asks, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidSide, s)
	}
}

// Insert adds an order to the side matching its Side field.
func (b *Book) Insert(o *Order) error {
	side, err := b.sideFor(o.Side)
	if err != nil {
		return err
	}
	if _, exists := b.orders[o.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, o.ID)
	}
	b.nextSeq++
	o.seq = b.nextSeq
	heap.Push(side, o)
	b.orders[o.ID] = o
	return nil
}

// BestBid returns the highest-priced bid, or ok=false when no bids rest.
func (b *Book) BestBid() (*Order, bool) {
	o := b.bids.best()
	return o, o != nil
}

// BestAsk returns the lowest-priced ask, or ok=false when no asks rest.
func (b *Book) BestAsk() (*Order, bool) {
	o := b.asks.best()
	return o, o != nil
}

// Cancel removes the order with the given ID. Cancelling an unknown ID is a
// no-op, so Cancel is idempotent.
func (b *Book) Cancel(id uuid.UUID) {
	o, ok := b.orders[id]
	if !ok {
		return
	}
	side, err := b.sideFor(o.Side)
	if err != nil {
		// side was validated on insert; cannot happen
		panic(err)
	}
	side.remove(id)
	delete(b.orders, id)
}

// Amend replaces the resting order with the same ID, keeping the given
// price/size. Used to push a partially filled order back with reduced size.
func (b *Book) Amend(o *Order) error {
	if _, err := b.sideFor(o.Side); err != nil {
		return err
	}
	b.Cancel(o.ID)
	return b.Insert(o)
}

// Clear empties both sides.
func (b *Book) Clear() {
	b.bids = newOrderHeap(true)
	b.asks = newOrderHeap(false)
	b.orders = make(map[uuid.UUID]*Order)
}

// Len reports the number of resting orders on one side.
func (b *Book) Len(s Side) int {
	side, err := b.sideFor(s)
	if err != nil {
		return 0
	}
	return side.Len()
}

// Bids returns all bid quotes sorted best (highest) first. Inspection only,
// not on the matching path.
func (b *Book) Bids() []Quote {
	return snapshotQuotes(b.bids)
}

// Asks returns all ask quotes sorted best (lowest) first.
func (b *Book) Asks() []Quote {
	return snapshotQuotes(b.asks)
}

func snapshotQuotes(h *orderHeap) []Quote {
	out := make([]Quote, len(h.orders))
	for i, o := range h.orders {
		out[i] = Quote{Price: o.Price, Size: o.Size}
	}
	sort.Slice(out, func(i, j int) bool {
		if h.isBid {
			return out[i].Price > out[j].Price
		}
		return out[i].Price < out[j].Price
	})
	return out
}
