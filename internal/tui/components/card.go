// Package components provides reusable widgets for the spendlog dashboard.
package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/theirongolddev/spendlog/internal/tui/theme"
)

// Stat is one figure shown in a StatRow.
type Stat struct {
	Label string
	Value string
	Note  string
}

// LayoutRow distributes totalWidth into n widths that sum to exactly totalWidth.
// First items absorb the remainder from integer division.
func LayoutRow(totalWidth, n int) []int {
	if n <= 0 {
		return nil
	}
	base := totalWidth / n
	remainder := totalWidth % n
	widths := make([]int, n)
	for i := range widths {
		widths[i] = base
		if i < remainder {
			widths[i]++
		}
	}
	return widths
}

// StatCard renders a small bordered card with label, value and an optional note.
// outerWidth is the total rendered width including border.
func StatCard(s Stat, outerWidth int) string {
	t := theme.Active

	content := lipgloss.NewStyle().Foreground(t.TextMuted).Render(s.Label) + "\n" +
		lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true).Render(s.Value)
	if s.Note != "" {
		content += "\n" + lipgloss.NewStyle().Foreground(t.TextDim).Render(s.Note)
	}

	return cardStyle(t.Border, outerWidth).Render(content)
}

// StatRow renders stat cards side by side, summing to totalWidth.
func StatRow(stats []Stat, totalWidth int) string {
	if len(stats) == 0 {
		return ""
	}
	widths := LayoutRow(totalWidth, len(stats))
	rendered := make([]string, len(stats))
	for i, s := range stats {
		rendered[i] = StatCard(s, widths[i])
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// Panel renders a bordered card with an optional title. A focused panel
// uses the accent border.
func Panel(title, body string, outerWidth int, focused bool) string {
	t := theme.Active

	border := t.Border
	if focused {
		border = t.BorderAccent
	}

	content := body
	if title != "" {
		content = lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true).Render(title) + "\n" + body
	}
	return cardStyle(border, outerWidth).Render(content)
}

// PanelInnerWidth returns the usable text width inside a Panel
// given its outer width (subtracts border + padding).
func PanelInnerWidth(outerWidth int) int {
	return max(10, outerWidth-4)
}

func cardStyle(border lipgloss.Color, outerWidth int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(max(10, outerWidth-2)).
		Padding(0, 1)
}
