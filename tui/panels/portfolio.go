package panels

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"auctionsim/tui/styles"
)

// PortfolioPanel charts the tracked trader's portfolio value over ticks.
type PortfolioPanel struct {
	values []float64
	latest float64
	tick   int

	focused bool
	width   int
	height  int

	maxPoints int
}

func NewPortfolioPanel() *PortfolioPanel {
	return &PortfolioPanel{maxPoints: 512}
}

// Init initializes the panel.
func (p *PortfolioPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel.
func (p *PortfolioPanel) Update(msg tea.Msg) (*PortfolioPanel, tea.Cmd) {
	return p, nil
}

// AddSample appends one portfolio observation.
func (p *PortfolioPanel) AddSample(tick int, value float64) {
	p.tick = tick
	p.latest = value
	p.values = append(p.values, value)
	if len(p.values) > p.maxPoints {
		p.values = p.values[len(p.values)-p.maxPoints:]
	}
}

// View renders the panel.
func (p *PortfolioPanel) View() string {
	chartWidth := p.width - 14 // leave room for the value axis
	chartHeight := p.height - 5
	if chartWidth < 10 {
		chartWidth = 10
	}
	if chartHeight < 4 {
		chartHeight = 4
	}

	var content strings.Builder
	content.WriteString(styles.HeaderStyle.Render(
		fmt.Sprintf("tick %d   value %.2f", p.tick, p.latest)))
	content.WriteString("\n")
	content.WriteString(p.renderChart(chartWidth, chartHeight))

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}
	title := styles.RenderTitle("Portfolio", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())
	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

// renderChart draws the series as a column chart, newest points on the
// right, scaled to the visible min/max.
func (p *PortfolioPanel) renderChart(width, height int) string {
	if len(p.values) == 0 {
		return styles.MutedStyle.Render("waiting for ticks...")
	}

	points := p.values
	if len(points) > width {
		points = points[len(points)-width:]
	}

	lo, hi := points[0], points[0]
	for _, v := range points {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	// levels[i] is the filled height of column i
	levels := make([]int, len(points))
	for i, v := range points {
		levels[i] = int((v - lo) / span * float64(height-1))
	}

	var b strings.Builder
	for row := height - 1; row >= 0; row-- {
		label := "          "
		switch row {
		case height - 1:
			label = fmt.Sprintf("%10.2f", hi)
		case 0:
			label = fmt.Sprintf("%10.2f", lo)
		}
		b.WriteString(styles.MutedStyle.Render(label))
		b.WriteString(" ")
		for _, lvl := range levels {
			if lvl >= row {
				b.WriteString("█")
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// SetFocus sets the focus state of the panel.
func (p *PortfolioPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *PortfolioPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}
