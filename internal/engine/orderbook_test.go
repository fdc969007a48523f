package engine

import (
	"testing"

	"github.com/google/uuid"
)

func mustInsert(t *testing.T, b *Book, o *Order) {
	t.Helper()
	if err := b.Insert(o); err != nil {
		t.Fatalf("Insert err=%v", err)
	}
}

func TestInsertAndBestQuotes(t *testing.T) {
	b := NewBook()
	owner := uuid.New()

	mustInsert(t, b, NewOrder(100, 5, SideBid, owner))
	mustInsert(t, b, NewOrder(101, 3, SideBid, owner))
	mustInsert(t, b, NewOrder(105, 2, SideAsk, owner))
	mustInsert(t, b, NewOrder(104, 1, SideAsk, owner))

	bid, ok := b.BestBid()
	if !ok || bid.Price != 101 || bid.Size != 3 {
		t.Fatalf("best bid got ok=%v order=%+v", ok, bid)
	}
	ask, ok := b.BestAsk()
	if !ok || ask.Price != 104 || ask.Size != 1 {
		t.Fatalf("best ask got ok=%v order=%+v", ok, ask)
	}
}

func TestBestQuotes_EmptySideIsNotAnError(t *testing.T) {
	b := NewBook()

	if _, ok := b.BestBid(); ok {
		t.Fatalf("expected no best bid on empty book")
	}
	if _, ok := b.BestAsk(); ok {
		t.Fatalf("expected no best ask on empty book")
	}
}

func TestBestQuotes_TieBreakIsInsertionOrder(t *testing.T) {
	b := NewBook()

	first := NewOrder(100, 1, SideBid, uuid.New())
	second := NewOrder(100, 2, SideBid, uuid.New())
	mustInsert(t, b, first)
	mustInsert(t, b, second)

	bid, ok := b.BestBid()
	if !ok || bid.ID != first.ID {
		t.Fatalf("expected earliest-inserted bid to win the tie, got %+v", bid)
	}
}

func TestInsert_InvalidSideRejected(t *testing.T) {
	b := NewBook()

	o := NewOrder(100, 1, Side(42), uuid.New())
	if err := b.Insert(o); err == nil {
		t.Fatalf("expected ErrInvalidSide")
	}
}

func TestInsert_DuplicateIDRejected(t *testing.T) {
	b := NewBook()
	o := NewOrder(100, 1, SideBid, uuid.New())

	mustInsert(t, b, o)
	if err := b.Insert(o); err == nil {
		t.Fatalf("expected duplicate ID error")
	}
}

func TestCancel_RemovesOrder(t *testing.T) {
	b := NewBook()
	owner := uuid.New()

	o1 := NewOrder(101, 1, SideBid, owner)
	o2 := NewOrder(100, 1, SideBid, owner)
	mustInsert(t, b, o1)
	mustInsert(t, b, o2)

	b.Cancel(o1.ID)

	bid, ok := b.BestBid()
	if !ok || bid.ID != o2.ID {
		t.Fatalf("expected remaining bid %v, got %+v", o2.ID, bid)
	}
	if b.Len(SideBid) != 1 {
		t.Fatalf("expected 1 bid, got %d", b.Len(SideBid))
	}
}

func TestCancel_UnknownIDIsIdempotent(t *testing.T) {
	b := NewBook()
	mustInsert(t, b, NewOrder(100, 1, SideBid, uuid.New()))

	b.Cancel(uuid.New())
	b.Cancel(uuid.New())

	if b.Len(SideBid) != 1 {
		t.Fatalf("cancel of unknown id changed the book")
	}
}

func TestAmend_ReplacesSize(t *testing.T) {
	b := NewBook()
	o := NewOrder(100, 10, SideBid, uuid.New())
	mustInsert(t, b, o)

	o.Size = 4
	if err := b.Amend(o); err != nil {
		t.Fatalf("Amend err=%v", err)
	}

	bid, ok := b.BestBid()
	if !ok || bid.Size != 4 {
		t.Fatalf("expected amended size 4, got %+v", bid)
	}
	if b.Len(SideBid) != 1 {
		t.Fatalf("amend duplicated the order")
	}
}

func TestClear_EmptiesBothSides(t *testing.T) {
	b := NewBook()
	owner := uuid.New()
	mustInsert(t, b, NewOrder(100, 1, SideBid, owner))
	mustInsert(t, b, NewOrder(105, 1, SideAsk, owner))

	b.Clear()

	if _, ok := b.BestBid(); ok {
		t.Fatalf("expected no bids after clear")
	}
	if _, ok := b.BestAsk(); ok {
		t.Fatalf("expected no asks after clear")
	}
}

func TestSnapshots_SortedBestFirst(t *testing.T) {
	b := NewBook()
	owner := uuid.New()

	mustInsert(t, b, NewOrder(100, 1, SideBid, owner))
	mustInsert(t, b, NewOrder(101, 2, SideBid, owner))
	mustInsert(t, b, NewOrder(103, 3, SideAsk, owner))
	mustInsert(t, b, NewOrder(102, 4, SideAsk, owner))

	bids := b.Bids()
	if len(bids) != 2 || bids[0].Price != 101 || bids[1].Price != 100 {
		t.Fatalf("bids snapshot=%+v", bids)
	}
	asks := b.Asks()
	if len(asks) != 2 || asks[0].Price != 102 || asks[1].Price != 103 {
		t.Fatalf("asks snapshot=%+v", asks)
	}
}

func TestSideString(t *testing.T) {
	if SideBid.String() != "BID" || SideAsk.String() != "ASK" {
		t.Fatalf("side strings wrong: %s %s", SideBid, SideAsk)
	}
	if Side(7).String() != "UNKNOWN" {
		t.Fatalf("unknown side should render UNKNOWN")
	}
}
