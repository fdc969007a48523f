package panels

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"auctionsim/internal/engine"
	"auctionsim/tui/styles"
)

// BookPanel displays the bid and ask depth from the latest tick, best
// quotes first.
type BookPanel struct {
	bids []engine.Quote
	asks []engine.Quote

	truePrice float64

	focused bool
	width   int
	height  int
}

func NewBookPanel() *BookPanel {
	return &BookPanel{}
}

// Init initializes the panel.
func (p *BookPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel.
func (p *BookPanel) Update(msg tea.Msg) (*BookPanel, tea.Cmd) {
	return p, nil
}

// SetDepth replaces the displayed depth.
func (p *BookPanel) SetDepth(bids, asks []engine.Quote, truePrice float64) {
	p.bids = bids
	p.asks = asks
	p.truePrice = truePrice
}

// View renders the panel.
func (p *BookPanel) View() string {
	var content strings.Builder

	content.WriteString(styles.HeaderStyle.Render(
		fmt.Sprintf("%-12s %8s   %-12s %8s", "Bid", "Size", "Ask", "Size")))
	content.WriteString("\n")

	rows := len(p.bids)
	if len(p.asks) > rows {
		rows = len(p.asks)
	}
	maxRows := p.height - 6
	if maxRows > 0 && rows > maxRows {
		rows = maxRows
	}

	for i := 0; i < rows; i++ {
		bid, ask := "", ""
		if i < len(p.bids) {
			bid = styles.BidStyle.Render(fmt.Sprintf("%-12.3f", p.bids[i].Price)) +
				styles.RowStyle.Render(fmt.Sprintf(" %8.1f", p.bids[i].Size))
		} else {
			bid = strings.Repeat(" ", 21)
		}
		if i < len(p.asks) {
			ask = styles.AskStyle.Render(fmt.Sprintf("%-12.3f", p.asks[i].Price)) +
				styles.RowStyle.Render(fmt.Sprintf(" %8.1f", p.asks[i].Size))
		}
		content.WriteString(bid + "  " + ask + "\n")
	}

	content.WriteString("\n")
	content.WriteString(styles.MutedStyle.Render(
		fmt.Sprintf("reference %.3f", p.truePrice)))

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}
	title := styles.RenderTitle("Order Book", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())
	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

// SetFocus sets the focus state of the panel.
func (p *BookPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *BookPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}
