// Package tui provides the Bubble Tea views for spendlog: the chart window,
// the live dashboard and the add and setup forms.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/theirongolddev/spendlog/internal/cli"
	"github.com/theirongolddev/spendlog/internal/model"
	"github.com/theirongolddev/spendlog/internal/pipeline"
	"github.com/theirongolddev/spendlog/internal/store"
	"github.com/theirongolddev/spendlog/internal/tui/components"
	"github.com/theirongolddev/spendlog/internal/tui/theme"
	"github.com/theirongolddev/spendlog/internal/watch"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// DataLoadedMsg is sent when the data file has been (re)read.
type DataLoadedMsg struct {
	Expenses []model.Expense
	Err      error
	LoadTime time.Duration
}

// FileChangedMsg is sent when the data file changes on disk.
type FileChangedMsg struct{}

// Options configures a Dashboard.
type Options struct {
	DataFile string
	Currency string
	Days     int
	Budget   *float64
}

var tabNames = []string{"Overview", "Expenses"}

// windows cycled with the d key; 0 means all time.
var dayWindows = []int{7, 30, 90, 0}

// Dashboard is the root Bubble Tea model of `spendlog tui`.
type Dashboard struct {
	opts Options
	now  func() time.Time

	// Data
	expenses []model.Expense
	loaded   bool
	loadErr  error
	loadTime time.Duration
	lastLoad time.Time
	reloads  int

	// Pre-computed for the current window
	filtered []model.Expense
	summary  model.Summary
	daily    []model.DailyTotal
	monthly  decimal.Decimal

	// UI state
	width     int
	height    int
	activeTab int
	days      int

	spinner spinner.Model
	table   table.Model
	changes chan tea.Msg
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 160
	minContentHeight = 5
	sparklineDays    = 30
)

// NewDashboard creates the dashboard model. Call Watch in a goroutine to
// get live reloads.
func NewDashboard(opts Options) Dashboard {
	if opts.Currency == "" {
		opts.Currency = "$"
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	return Dashboard{
		opts:    opts,
		now:     time.Now,
		days:    opts.Days,
		spinner: sp,
		table:   newExpenseTable(),
		changes: make(chan tea.Msg, 1),
	}
}

// Watch forwards data file changes to the dashboard until ctx is done.
func (d Dashboard) Watch(ctx context.Context, logger *slog.Logger) error {
	return watch.File(ctx, d.opts.DataFile, watch.DefaultDebounce, logger, func() {
		select {
		case d.changes <- FileChangedMsg{}:
		default:
		}
	})
}

// Init implements tea.Model.
func (d Dashboard) Init() tea.Cmd {
	return tea.Batch(
		loadDataCmd(d.opts.DataFile),
		d.spinner.Tick,
		waitForMsg(d.changes),
	)
}

// Update implements tea.Model.
func (d Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.height = msg.Height
		d.layoutTable()
		return d, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return d, tea.Quit
		case "tab":
			d.activeTab = (d.activeTab + 1) % len(tabNames)
			return d, nil
		case "1", "2":
			d.activeTab = int(msg.String()[0] - '1')
			return d, nil
		case "d":
			d.days = nextWindow(d.days)
			d.recompute()
			return d, nil
		case "r":
			return d, loadDataCmd(d.opts.DataFile)
		}
		if d.activeTab == 1 {
			var cmd tea.Cmd
			d.table, cmd = d.table.Update(msg)
			return d, cmd
		}
		return d, nil

	case DataLoadedMsg:
		if d.loaded {
			d.reloads++
		}
		d.loaded = true
		d.loadErr = msg.Err
		d.loadTime = msg.LoadTime
		d.lastLoad = d.now()
		if msg.Err == nil {
			d.expenses = msg.Expenses
			d.recompute()
		}
		return d, nil

	case FileChangedMsg:
		return d, tea.Batch(loadDataCmd(d.opts.DataFile), waitForMsg(d.changes))

	case spinner.TickMsg:
		if !d.loaded {
			var cmd tea.Cmd
			d.spinner, cmd = d.spinner.Update(msg)
			return d, cmd
		}
		return d, nil
	}

	return d, nil
}

func nextWindow(days int) int {
	for i, w := range dayWindows {
		if w == days {
			return dayWindows[(i+1)%len(dayWindows)]
		}
	}
	return dayWindows[0]
}

func (d *Dashboard) recompute() {
	now := d.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var since time.Time
	if d.days > 0 {
		since = today.AddDate(0, 0, -(d.days - 1))
	}
	d.filtered = pipeline.FilterByTime(d.expenses, since, time.Time{})
	d.summary = pipeline.Summarize(d.filtered)

	sparkSpan := d.days
	if sparkSpan <= 0 || sparkSpan > 90 {
		sparkSpan = sparklineDays
	}
	d.daily = pipeline.AggregateDays(d.expenses, today.AddDate(0, 0, -(sparkSpan-1)), now)

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	d.monthly = pipeline.Summarize(pipeline.FilterByTime(d.expenses, monthStart, time.Time{})).GrandTotal()

	d.table.SetRows(expenseRows(d.filtered, d.opts.Currency))
	d.table.GotoTop()
}

func (d Dashboard) contentWidth() int {
	return min(d.width, maxContentWidth)
}

// View implements tea.Model.
func (d Dashboard) View() string {
	if d.width == 0 {
		return ""
	}
	if d.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  spendlog needs at least %d columns.\n",
			d.width, minTerminalWidth)
	}
	if !d.loaded {
		return d.viewLoading()
	}
	return d.viewMain()
}

func (d Dashboard) viewLoading() string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3).
		Render(d.spinner.View() + lipgloss.NewStyle().Foreground(t.TextMuted).Render(" Loading "+d.opts.DataFile))
	return lipgloss.Place(d.width, d.height, lipgloss.Center, lipgloss.Center, card)
}

func (d Dashboard) viewMain() string {
	t := theme.Active
	cw := d.contentWidth()

	window := "all time"
	if d.days > 0 {
		window = fmt.Sprintf("last %dd", d.days)
	}
	header := components.TabBar(tabNames, d.activeTab) + "  " +
		lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Render(window)

	info := d.opts.DataFile
	if !d.lastLoad.IsZero() {
		info += " · loaded " + d.lastLoad.Format("15:04:05")
	}
	if d.reloads > 0 {
		info += fmt.Sprintf(" · %d reloads", d.reloads)
	}
	statusBar := components.StatusBar(d.width, "tab switch · d window · r reload · q quit", info)

	contentH := max(minContentHeight, d.height-lipgloss.Height(header)-lipgloss.Height(statusBar))

	var content string
	switch {
	case d.loadErr != nil:
		content = components.Panel("Error",
			lipgloss.NewStyle().Foreground(t.Red).Render(d.loadErr.Error())+"\n\n"+
				lipgloss.NewStyle().Foreground(t.TextMuted).Render("Fix the file and it will be reloaded."),
			cw, true)
	case d.activeTab == 0:
		content = d.renderOverview(cw)
	default:
		content = d.renderExpenses(cw)
	}
	content = padHeight(truncateHeight(content, contentH), contentH)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (d Dashboard) renderOverview(cw int) string {
	t := theme.Active
	cur := d.opts.Currency

	if len(d.expenses) == 0 {
		return components.Panel("", lipgloss.NewStyle().Foreground(t.TextMuted).Render("No expenses yet!"), cw, false)
	}

	total := d.summary.GrandTotal()
	top := "-"
	topNote := ""
	if ranked := pipeline.SortByTotal(d.summary); len(ranked) > 0 {
		top = cli.FormatCategory(ranked[0].Category)
		topNote = cli.FormatAmount(ranked[0].Total, cur)
	}

	stats := []components.Stat{
		{Label: "Total", Value: cli.FormatAmount(total, cur)},
		{Label: "Expenses", Value: cli.FormatNumber(int64(len(d.filtered)))},
		{Label: "Top category", Value: top, Note: topNote},
	}
	if d.opts.Budget != nil {
		budget := decimal.NewFromFloat(*d.opts.Budget)
		pct := cli.Share(d.monthly, budget)
		stats = append(stats, components.Stat{
			Label: "Budget this month",
			Value: cli.FormatAmount(d.monthly, cur) + " / " + cli.FormatAmount(budget, cur),
			Note:  cli.RenderProgressBar(pct, 12) + " " + cli.FormatPercent(pct),
		})
	}

	var b strings.Builder
	b.WriteString(components.StatRow(stats, cw))
	b.WriteString("\n")

	inner := components.PanelInnerWidth(cw)
	values := make([]float64, len(d.summary))
	labels := make([]string, len(d.summary))
	for i, ct := range d.summary {
		values[i] = ct.Total.InexactFloat64()
		labels[i] = cli.FormatCategory(ct.Category)
	}
	chart := lipgloss.NewStyle().Foreground(t.TextMuted).Render("No expenses in this window.")
	if len(values) > 0 {
		chart = components.ColumnChart(values, labels, inner, 10)
	}
	b.WriteString(components.Panel("By Category", chart, cw, false))
	b.WriteString("\n")

	b.WriteString(components.Panel(fmt.Sprintf("Daily · last %dd", len(d.daily)), d.renderDaily(inner), cw, false))
	return b.String()
}

// renderDaily draws the daily totals oldest first with the end dates below.
func (d Dashboard) renderDaily(width int) string {
	t := theme.Active
	if len(d.daily) == 0 {
		return ""
	}
	n := len(d.daily)
	values := make([]float64, n)
	for i, day := range d.daily {
		values[n-1-i] = day.Total.InexactFloat64()
	}
	if n > width {
		values = values[n-width:]
	}

	first := d.daily[min(n, width)-1].Date.Format("Jan 2")
	last := d.daily[0].Date.Format("Jan 2")
	gap := max(1, len(values)-len(first)-len(last))
	dim := lipgloss.NewStyle().Foreground(t.TextDim)

	return components.Sparkline(values, t.Accent) + "\n" +
		dim.Render(first+strings.Repeat(" ", gap)+last)
}

func (d Dashboard) renderExpenses(cw int) string {
	if len(d.filtered) == 0 {
		return components.Panel("Expenses", lipgloss.NewStyle().Foreground(theme.Active.TextMuted).Render("No expenses yet!"), cw, false)
	}
	return components.Panel(fmt.Sprintf("Expenses · %d", len(d.filtered)), d.table.View(), cw, true)
}

func newExpenseTable() table.Model {
	t := theme.Active
	tbl := table.New(
		table.WithColumns(expenseColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		BorderBottom(true).
		Foreground(t.TextMuted).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(t.TextPrimary).
		Background(t.Surface).
		Bold(true)
	tbl.SetStyles(s)
	return tbl
}

// expenseColumns sizes the table to width, giving the rest to Description.
func expenseColumns(width int) []table.Column {
	const dateW, catW, amtW = 16, 14, 12
	descW := max(10, width-dateW-catW-amtW-8)
	return []table.Column{
		{Title: "Date", Width: dateW},
		{Title: "Category", Width: catW},
		{Title: "Amount", Width: amtW},
		{Title: "Description", Width: descW},
	}
}

// expenseRows lists expenses newest first.
func expenseRows(expenses []model.Expense, currency string) []table.Row {
	sorted := pipeline.SortByDate(expenses)
	rows := make([]table.Row, 0, len(sorted))
	for i := len(sorted) - 1; i >= 0; i-- {
		e := sorted[i]
		amount := cli.FormatAmount(e.Amount, currency)
		rows = append(rows, table.Row{cli.FormatDate(e.Date), cli.FormatCategory(e.Category), amount, e.Description})
	}
	return rows
}

func (d *Dashboard) layoutTable() {
	inner := components.PanelInnerWidth(d.contentWidth())
	d.table.SetColumns(expenseColumns(inner))
	d.table.SetWidth(inner)
	d.table.SetHeight(max(3, d.height-6))
}

// loadDataCmd reads the data file in the background.
func loadDataCmd(path string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		expenses, err := store.NewJSONFile(path).Load()
		return DataLoadedMsg{Expenses: expenses, Err: err, LoadTime: time.Since(start)}
	}
}

// waitForMsg blocks until the next message arrives on sub.
func waitForMsg(sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}
