package panels

import "auctionsim/internal/sim"

// TickMsg carries one completed simulation tick into the TUI.
type TickMsg struct {
	Event sim.TickEvent
}

// SimDoneMsg signals that the simulation's event channel closed.
type SimDoneMsg struct{}
