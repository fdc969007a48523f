package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	PrimaryColor = lipgloss.Color("#7C3AED") // Purple
	BidColor     = lipgloss.Color("#10B981") // Green
	AskColor     = lipgloss.Color("#EF4444") // Red

	BorderColor      = lipgloss.Color("#374151")
	FocusBorderColor = lipgloss.Color("#7C3AED")

	TextColor          = lipgloss.Color("#F9FAFB")
	TextSecondaryColor = lipgloss.Color("#9CA3AF")
	TextMutedColor     = lipgloss.Color("#6B7280")
	AlertColor         = lipgloss.Color("#F59E0B") // Amber
)

// Panel styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(FocusBorderColor).
				Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextSecondaryColor)

	RowStyle = lipgloss.NewStyle().
			Foreground(TextColor)
)

// Text styles
var (
	BidStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(BidColor)

	AskStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AskColor)

	MutedStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor)

	AlertStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AlertColor)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	StatusBarKeyStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(TextColor)

	StatusBarDescStyle = lipgloss.NewStyle().
				Foreground(TextMutedColor)
)

// RenderTitle renders a panel title, highlighted when focused.
func RenderTitle(title string, focused bool) string {
	style := TitleStyle
	if focused {
		style = style.Foreground(FocusBorderColor)
	}
	return style.Render(title)
}
