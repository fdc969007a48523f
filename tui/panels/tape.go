package panels

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"auctionsim/internal/engine"
	"auctionsim/tui/styles"
)

type tapeRow struct {
	tick  int
	trade engine.Trade
}

// TapePanel shows the most recent executions.
type TapePanel struct {
	rows []tapeRow

	focused bool
	width   int
	height  int

	maxRows int
}

func NewTapePanel() *TapePanel {
	return &TapePanel{maxRows: 100}
}

// Init initializes the panel.
func (p *TapePanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel.
func (p *TapePanel) Update(msg tea.Msg) (*TapePanel, tea.Cmd) {
	return p, nil
}

// AddTrades appends a tick's executions, newest first.
func (p *TapePanel) AddTrades(tick int, trades []engine.Trade) {
	for _, t := range trades {
		p.rows = append([]tapeRow{{tick: tick, trade: t}}, p.rows...)
	}
	if len(p.rows) > p.maxRows {
		p.rows = p.rows[:p.maxRows]
	}
}

// View renders the panel.
func (p *TapePanel) View() string {
	var content strings.Builder

	content.WriteString(styles.HeaderStyle.Render(
		fmt.Sprintf("%8s %12s %8s", "Tick", "Price", "Size")))
	content.WriteString("\n")

	visible := p.height - 5
	if visible < 1 {
		visible = 1
	}
	rows := p.rows
	if len(rows) > visible {
		rows = rows[:visible]
	}

	if len(rows) == 0 {
		content.WriteString(styles.MutedStyle.Render("no trades yet"))
	}
	for _, r := range rows {
		content.WriteString(styles.RowStyle.Render(
			fmt.Sprintf("%8d %12.3f %8.1f", r.tick, r.trade.Price, r.trade.Size)))
		content.WriteString("\n")
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}
	title := styles.RenderTitle("Tape", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())
	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

// SetFocus sets the focus state of the panel.
func (p *TapePanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *TapePanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}
