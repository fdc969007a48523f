package engine

// Match repeatedly crosses the best bid against the best ask while the bid
// price is at or above the ask price. Each cross trades the smaller of the
// two resting sizes at the midpoint of the two prices. The smaller order is
// removed from the book, the larger pushed back with its size reduced; equal
// sizes remove both. On return the book holds no crossable pair unless one
// side was exhausted.
//
// The loop terminates because every iteration removes at least one order.
func Match(book *Book) []Trade {
	var trades []Trade

	for {
		bid, ok := book.BestBid()
		if !ok {
			break
		}
		ask, ok := book.BestAsk()
		if !ok {
			break
		}
		if bid.Price < ask.Price {
			break // no (more) trades possible
		}

		trade := cross(bid, ask)
		trades = append(trades, trade)

		switch {
		case bid.Size > ask.Size:
			book.Cancel(ask.ID)
			bid.Size -= trade.Size
			reinsert(book, bid)
		case bid.Size < ask.Size:
			book.Cancel(bid.ID)
			ask.Size -= trade.Size
			reinsert(book, ask)
		default:
			book.Cancel(bid.ID)
			book.Cancel(ask.ID)
		}
	}

	return trades
}

// cross builds the trade for one bid/ask pair: midpoint price, min size.
func cross(bid, ask *Order) Trade {
	size := bid.Size
	if ask.Size < size {
		size = ask.Size
	}
	return Trade{
		Buyer:  bid.Owner,
		Seller: ask.Owner,
		Size:   size,
		Price:  (bid.Price + ask.Price) / 2,
	}
}

func reinsert(book *Book, o *Order) {
	if err := book.Amend(o); err != nil {
		// the order came out of this book; its side is already validated
		panic(err)
	}
}
