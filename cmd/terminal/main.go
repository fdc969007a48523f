package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"auctionsim/internal/sim"
	"auctionsim/tui"
)

func main() {
	cfg := sim.LoadFromEnv()
	if cfg.TickDelay == 0 {
		// pace the run so the panels are watchable
		cfg.TickDelay = 50 * time.Millisecond
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := sim.New(cfg, nil)
	go s.Run(ctx)

	model := tui.NewModel(s.Events())
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running TUI: %v\n", err)
		os.Exit(1)
	}
}
