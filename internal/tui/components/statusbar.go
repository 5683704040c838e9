package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/theirongolddev/spendlog/internal/tui/theme"
)

// StatusBar renders the bottom status bar with key hints on the left and
// info on the right.
func StatusBar(width int, hints, info string) string {
	t := theme.Active

	left := " " + hints
	right := info + " "
	padding := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))

	return lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width).
		Render(left + strings.Repeat(" ", padding) + right)
}

// TabBar renders tab names with the active one highlighted.
func TabBar(names []string, active int) string {
	t := theme.Active
	activeStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Padding(0, 1)
	inactiveStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Padding(0, 1)

	parts := make([]string, len(names))
	for i, n := range names {
		if i == active {
			parts[i] = activeStyle.Render(n)
		} else {
			parts[i] = inactiveStyle.Render(n)
		}
	}
	return strings.Join(parts, lipgloss.NewStyle().Foreground(t.TextDim).Render("│"))
}
