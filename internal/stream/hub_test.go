package stream

import "testing"

func TestHub_BroadcastReachesAllSubscribers(t *testing.T) {
	h := NewHub[int]()
	a := h.Subscribe(4)
	b := h.Subscribe(4)

	h.Broadcast(7)

	if got := <-a.C(); got != 7 {
		t.Fatalf("subscriber a got %d", got)
	}
	if got := <-b.C(); got != 7 {
		t.Fatalf("subscriber b got %d", got)
	}
}

func TestHub_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	h := NewHub[int]()
	sub := h.Subscribe(1)

	h.Broadcast(1)
	h.Broadcast(2) // buffer full; must not block

	if got := <-sub.C(); got != 1 {
		t.Fatalf("expected first value, got %d", got)
	}
	select {
	case v := <-sub.C():
		t.Fatalf("expected overflow value dropped, got %d", v)
	default:
	}
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	h := NewHub[int]()
	sub := h.Subscribe(1)

	h.Unsubscribe(sub)

	if _, ok := <-sub.C(); ok {
		t.Fatalf("expected closed channel after unsubscribe")
	}

	// broadcasting after unsubscribe must not panic
	h.Broadcast(3)
}
