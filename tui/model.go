package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"auctionsim/internal/sim"
	"auctionsim/tui/panels"
	"auctionsim/tui/styles"
)

// PanelFocus represents which panel is currently focused.
type PanelFocus int

const (
	FocusBook      PanelFocus = 0
	FocusPortfolio PanelFocus = 1
	FocusTape      PanelFocus = 2

	panelCount = 3
)

type keyMap struct {
	Quit  key.Binding
	Cycle key.Binding
}

var keys = keyMap{
	Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c")),
	Cycle: key.NewBinding(key.WithKeys("tab")),
}

// Model is the TUI application model. It consumes the simulation's tick
// events and renders book depth, the portfolio chart, and the trade tape.
type Model struct {
	events <-chan sim.TickEvent

	bookPanel      *panels.BookPanel
	portfolioPanel *panels.PortfolioPanel
	tapePanel      *panels.TapePanel

	focusedPanel PanelFocus

	width  int
	height int

	finished bool
	bankrupt bool
	lastTick int
	ready    bool
}

// NewModel creates a TUI model fed by the given event channel.
func NewModel(events <-chan sim.TickEvent) *Model {
	return &Model{
		events:         events,
		bookPanel:      panels.NewBookPanel(),
		portfolioPanel: panels.NewPortfolioPanel(),
		tapePanel:      panels.NewTapePanel(),
		focusedPanel:   FocusPortfolio,
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.bookPanel.Init(),
		m.portfolioPanel.Init(),
		m.tapePanel.Init(),
		m.listenTicks(),
	)
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Cycle):
			m.focusedPanel = (m.focusedPanel + 1) % panelCount
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case panels.TickMsg:
		m.applyTick(msg.Event)
		cmds = append(cmds, m.listenTicks())

	case panels.SimDoneMsg:
		m.finished = true
	}

	m.updateFocusedPanel(msg, &cmds)

	return m, tea.Batch(cmds...)
}

func (m *Model) updateFocusedPanel(msg tea.Msg, cmds *[]tea.Cmd) {
	var cmd tea.Cmd

	switch m.focusedPanel {
	case FocusBook:
		m.bookPanel, cmd = m.bookPanel.Update(msg)
	case FocusPortfolio:
		m.portfolioPanel, cmd = m.portfolioPanel.Update(msg)
	case FocusTape:
		m.tapePanel, cmd = m.tapePanel.Update(msg)
	}

	if cmd != nil {
		*cmds = append(*cmds, cmd)
	}
}

func (m *Model) applyTick(ev sim.TickEvent) {
	m.lastTick = ev.Tick
	m.bankrupt = ev.Bankrupt
	m.bookPanel.SetDepth(ev.Bids, ev.Asks, ev.TruePrice)
	m.portfolioPanel.AddSample(ev.Tick, ev.Portfolio)
	m.tapePanel.AddTrades(ev.Tick, ev.Trades)
}

// View renders the UI.
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	m.bookPanel.SetFocus(m.focusedPanel == FocusBook)
	m.portfolioPanel.SetFocus(m.focusedPanel == FocusPortfolio)
	m.tapePanel.SetFocus(m.focusedPanel == FocusTape)

	// Layout:
	// ┌────────────┬──────────────────────┐
	// │ Order Book │      Portfolio       │
	// ├────────────┼──────────────────────┤
	// │            │        Tape          │
	// └────────────┴──────────────────────┘
	leftWidth := m.width * 2 / 5
	rightWidth := m.width - leftWidth
	topHeight := (m.height - 1) * 2 / 3
	bottomHeight := m.height - 1 - topHeight

	m.bookPanel.SetSize(leftWidth, m.height-1)
	m.portfolioPanel.SetSize(rightWidth, topHeight)
	m.tapePanel.SetSize(rightWidth, bottomHeight)

	right := lipgloss.JoinVertical(lipgloss.Left,
		m.portfolioPanel.View(),
		m.tapePanel.View(),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.bookPanel.View(),
		right,
	)

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
}

func (m *Model) renderStatusBar() string {
	help := styles.StatusBarKeyStyle.Render("tab") + styles.StatusBarDescStyle.Render(" panels") +
		" │ " + styles.StatusBarKeyStyle.Render("q") + styles.StatusBarDescStyle.Render(" quit")

	status := ""
	switch {
	case m.bankrupt:
		status = " │ " + styles.AlertStyle.Render("BANKRUPT — simulation stopped")
	case m.finished:
		status = " │ " + styles.MutedStyle.Render("simulation finished")
	}

	return styles.StatusBarStyle.Width(m.width).Render(help + status)
}

// listenTicks waits for the next tick event; re-armed after every message.
func (m *Model) listenTicks() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return panels.SimDoneMsg{}
		}
		return panels.TickMsg{Event: ev}
	}
}
