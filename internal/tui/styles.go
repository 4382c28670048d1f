package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/existflow/ironboard/internal/model"
)

// Fixed colours that do not follow the theme
var (
	PriorityHigh   = lipgloss.Color("#FF6B6B") // Red
	PriorityMedium = lipgloss.Color("#FFB347") // Orange
	PriorityLow    = lipgloss.Color("#4ECDC4") // Blue
	Overdue        = lipgloss.Color("#FF6B6B")
	DarkText       = lipgloss.Color("#F5F0F0")
	DarkSurface    = lipgloss.Color("#2B2427")
)

// styles is the set of styles derived from the user's settings
type styles struct {
	Accent    lipgloss.Color
	Surface   lipgloss.Color
	Text      lipgloss.Color
	TextMuted lipgloss.Color
	Border    lipgloss.Color

	Header         lipgloss.Style
	Tab            lipgloss.Style
	TabActive      lipgloss.Style
	Column         lipgloss.Style
	ColumnFocused  lipgloss.Style
	ColumnTitle    lipgloss.Style
	Task           lipgloss.Style
	TaskSelected   lipgloss.Style
	TaskOverdue    lipgloss.Style
	StatusBar      lipgloss.Style
	Modal          lipgloss.Style
	Help           lipgloss.Style
	PriorityStyles map[model.Priority]lipgloss.Style
}

// newStyles builds the palette from the theme colours. In light mode the
// dark coffee tone is used for text, in dark mode for surfaces.
func newStyles(s model.Settings) styles {
	c := s.ThemeColors
	st := styles{
		Accent:    lipgloss.Color(c.Rosewater),
		Surface:   lipgloss.Color(c.DustyRose),
		Text:      lipgloss.Color(c.CoffeePotDark),
		TextMuted: lipgloss.Color(c.CoffeePotLight),
		Border:    lipgloss.Color(c.CoffeePotLight),
	}
	if s.DarkMode {
		st.Surface = lipgloss.Color(c.CoffeePotDark)
		st.Text = DarkText
	}

	st.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(st.Accent).
		Padding(0, 1)

	st.Tab = lipgloss.NewStyle().
		Foreground(st.TextMuted).
		Padding(0, 1)

	st.TabActive = lipgloss.NewStyle().
		Foreground(st.Text).
		Background(st.Surface).
		Bold(true).
		Padding(0, 1)

	st.Column = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(st.Border).
		Padding(0, 1)

	st.ColumnFocused = st.Column.
		BorderForeground(st.Accent)

	st.ColumnTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(st.Accent)

	st.Task = lipgloss.NewStyle().
		Foreground(st.Text)

	st.TaskSelected = lipgloss.NewStyle().
		Foreground(st.Text).
		Background(st.Surface).
		Bold(true)

	st.TaskOverdue = lipgloss.NewStyle().
		Foreground(Overdue)

	st.StatusBar = lipgloss.NewStyle().
		Foreground(st.TextMuted).
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(st.Border)

	st.Modal = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(st.Accent).
		Padding(1, 2)

	st.Help = lipgloss.NewStyle().
		Foreground(st.TextMuted)

	st.PriorityStyles = map[model.Priority]lipgloss.Style{
		model.PriorityHigh:   lipgloss.NewStyle().Foreground(PriorityHigh).Bold(true),
		model.PriorityMedium: lipgloss.NewStyle().Foreground(PriorityMedium),
		model.PriorityLow:    lipgloss.NewStyle().Foreground(PriorityLow),
	}
	return st
}

// FormatPriority returns a short coloured priority badge
func (st styles) FormatPriority(p model.Priority) string {
	style, ok := st.PriorityStyles[p]
	if !ok {
		return "  "
	}
	switch p {
	case model.PriorityHigh:
		return style.Render("▲")
	case model.PriorityLow:
		return style.Render("▽")
	default:
		return style.Render("•")
	}
}
