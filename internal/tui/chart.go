package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/spendlog/internal/cli"
	"github.com/theirongolddev/spendlog/internal/model"
	"github.com/theirongolddev/spendlog/internal/tui/components"
	"github.com/theirongolddev/spendlog/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const chartTitle = "Expenses by Category"

// ChartView is a full-screen bar chart of category totals, closed with
// q, esc or enter.
type ChartView struct {
	summary  model.Summary
	currency string
	width    int
	height   int
}

// NewChartView creates a chart over summary.
func NewChartView(summary model.Summary, currency string) ChartView {
	return ChartView{summary: summary, currency: currency}
}

// Init implements tea.Model.
func (c ChartView) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (c ChartView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
		c.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "enter", "ctrl+c":
			return c, tea.Quit
		}
	}
	return c, nil
}

// View implements tea.Model.
func (c ChartView) View() string {
	if c.width == 0 {
		return ""
	}
	t := theme.Active

	outer := min(c.width, maxContentWidth)
	inner := components.PanelInnerWidth(outer)
	chartH := max(6, c.height-9)

	values := make([]float64, len(c.summary))
	labels := make([]string, len(c.summary))
	for i, ct := range c.summary {
		values[i] = ct.Total.InexactFloat64()
		labels[i] = cli.FormatCategory(ct.Category)
	}

	body := components.ColumnChart(values, labels, inner, chartH)
	body += "\n\n" + lipgloss.NewStyle().Foreground(t.TextMuted).Render("Total ") +
		lipgloss.NewStyle().Foreground(t.Green).Bold(true).Render(cli.FormatAmount(c.summary.GrandTotal(), c.currency))

	panel := components.Panel(chartTitle, body, outer, true)
	status := components.StatusBar(c.width, "q/esc/enter close", fmt.Sprintf("%d categories", len(c.summary)))

	content := lipgloss.Place(c.width, max(1, c.height-1), lipgloss.Center, lipgloss.Center, panel)
	return content + "\n" + status
}

// ChartPlotter shows the chart in the alternate screen and blocks until it
// is dismissed.
type ChartPlotter struct {
	Currency string
}

// Plot implements tracker.Plotter.
func (p ChartPlotter) Plot(summary model.Summary) error {
	if _, err := tea.NewProgram(NewChartView(summary, p.Currency), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("chart window: %w", err)
	}
	return nil
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}
