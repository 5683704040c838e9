package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/spendlog/internal/config"
	"github.com/theirongolddev/spendlog/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/shopspring/decimal"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func expense(amount, category, date string) model.Expense {
	return model.Expense{Amount: decimal.RequireFromString(amount), Category: category, Date: date}
}

func fixedNow() time.Time {
	return time.Date(2024, 5, 10, 12, 0, 0, 0, time.Local)
}

func loadedDashboard(t *testing.T, opts Options, expenses []model.Expense) Dashboard {
	t.Helper()
	d := NewDashboard(opts)
	d.now = fixedNow
	m, _ := d.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = m.Update(DataLoadedMsg{Expenses: expenses})
	return m.(Dashboard)
}

func TestChartViewRendersCategories(t *testing.T) {
	summary := model.Summary{
		{Category: "Food", Total: decimal.NewFromInt(15), Count: 2},
		{Category: "Rent", Total: decimal.NewFromInt(40), Count: 1},
	}
	m, _ := NewChartView(summary, "$").Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	out := m.View()

	for _, want := range []string{"Expenses by Category", "Food", "Rent", "$55.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("chart view missing %q", want)
		}
	}
}

func TestChartViewClosesOnKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyEnter},
	} {
		_, cmd := NewChartView(nil, "$").Update(key)
		if cmd == nil {
			t.Fatalf("%s did not close the chart", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s returned a non-quit command", key)
		}
	}

	_, cmd := NewChartView(nil, "$").Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if cmd != nil {
		t.Error("other keys should not close the chart")
	}
}

func TestDashboardWindowFiltersExpenses(t *testing.T) {
	d := loadedDashboard(t, Options{DataFile: "expenses.json", Days: 7}, []model.Expense{
		expense("10", "Food", "2024-05-09T08:00:00.000000"),
		expense("5", "Food", "2024-05-10T09:00:00.000000"),
		expense("100", "Rent", "2024-04-01T09:00:00.000000"),
	})

	if len(d.filtered) != 2 {
		t.Fatalf("filtered = %d, want 2", len(d.filtered))
	}
	if got := d.summary.Total("Food"); !got.Equal(decimal.NewFromInt(15)) {
		t.Errorf("Food = %s, want 15", got)
	}
	if len(d.daily) != 7 {
		t.Errorf("daily = %d days, want 7", len(d.daily))
	}

	m, _ := d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	d = m.(Dashboard)
	if d.days != 30 {
		t.Fatalf("window after d = %d, want 30", d.days)
	}
	if len(d.filtered) != 2 {
		t.Errorf("30d filtered = %d, want 2", len(d.filtered))
	}
}

func TestDashboardAllTimeIncludesUndated(t *testing.T) {
	d := loadedDashboard(t, Options{DataFile: "expenses.json", Days: 0}, []model.Expense{
		expense("10", "Food", "not a date"),
		expense("5", "Food", "2020-01-01"),
	})
	if len(d.filtered) != 2 {
		t.Errorf("filtered = %d, want 2", len(d.filtered))
	}
}

func TestDashboardMonthlyBudget(t *testing.T) {
	budget := 100.0
	d := loadedDashboard(t, Options{DataFile: "expenses.json", Days: 30, Budget: &budget}, []model.Expense{
		expense("25", "Food", "2024-05-02T08:00:00.000000"),
		expense("50", "Food", "2024-04-28T08:00:00.000000"),
	})
	if !d.monthly.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("monthly = %s, want 25", d.monthly)
	}
	if out := d.View(); !strings.Contains(out, "$25.00 / $100.00") {
		t.Errorf("budget card missing:\n%s", out)
	}
}

func TestDashboardReloadsOnFileChange(t *testing.T) {
	d := loadedDashboard(t, Options{DataFile: "expenses.json", Days: 30}, nil)

	_, cmd := d.Update(FileChangedMsg{})
	if cmd == nil {
		t.Fatal("file change should trigger a reload")
	}

	m, _ := d.Update(DataLoadedMsg{Expenses: []model.Expense{expense("3", "Tea", "2024-05-10T08:00:00.000000")}})
	d = m.(Dashboard)
	if d.reloads != 1 {
		t.Errorf("reloads = %d, want 1", d.reloads)
	}
	if len(d.table.Rows()) != 1 {
		t.Errorf("table rows = %d, want 1", len(d.table.Rows()))
	}
}

func TestDashboardKeepsDataOnLoadError(t *testing.T) {
	d := loadedDashboard(t, Options{DataFile: "expenses.json", Days: 30}, []model.Expense{
		expense("3", "Tea", "2024-05-10T08:00:00.000000"),
	})
	m, _ := d.Update(DataLoadedMsg{Err: errors.New("parsing expenses.json: unexpected EOF")})
	d = m.(Dashboard)

	if len(d.expenses) != 1 {
		t.Errorf("expenses dropped on error")
	}
	if out := d.View(); !strings.Contains(out, "unexpected EOF") {
		t.Errorf("error not shown:\n%s", out)
	}
}

func TestDashboardTabs(t *testing.T) {
	d := loadedDashboard(t, Options{DataFile: "expenses.json", Days: 30}, []model.Expense{
		expense("3", "Tea", "2024-05-10T08:00:00.000000"),
	})
	m, _ := d.Update(tea.KeyMsg{Type: tea.KeyTab})
	d = m.(Dashboard)
	if d.activeTab != 1 {
		t.Fatalf("activeTab = %d, want 1", d.activeTab)
	}
	if out := d.View(); !strings.Contains(out, "Description") || !strings.Contains(out, "Tea") {
		t.Errorf("expenses tab missing table:\n%s", out)
	}
}

func TestExpenseRowsNewestFirst(t *testing.T) {
	rows := expenseRows([]model.Expense{
		expense("1", "A", "2024-05-01T08:00:00.000000"),
		expense("2", "B", "2024-05-03T08:00:00.000000"),
	}, "$")
	if rows[0][1] != "B" || rows[1][1] != "A" {
		t.Errorf("rows = %v", rows)
	}
	if rows[0][0] != "2024-05-03 08:00" {
		t.Errorf("date = %q", rows[0][0])
	}
}

func TestValidateAmount(t *testing.T) {
	if err := validateAmount("12.50"); err != nil {
		t.Errorf("12.50: %v", err)
	}
	if err := validateAmount("abc"); err == nil {
		t.Error("abc should be rejected")
	}
}

func TestSetupValuesApply(t *testing.T) {
	cfg := config.DefaultConfig()
	v := newSetupValues(cfg)
	v.currency = " € "
	v.budget = "250"
	v.theme = "tokyo-night"
	v.days = 7

	got, err := v.apply(cfg)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got.General.Currency != "€" || got.General.DefaultDays != 7 || got.Appearance.Theme != "tokyo-night" {
		t.Errorf("config = %+v", got)
	}
	if got.Budget.Monthly == nil || *got.Budget.Monthly != 250 {
		t.Errorf("budget = %v", got.Budget.Monthly)
	}

	v.budget = "-1"
	if _, err := v.apply(cfg); err == nil {
		t.Error("negative budget should be rejected")
	}
	v.budget = ""
	got, err = v.apply(cfg)
	if err != nil || got.Budget.Monthly != nil {
		t.Errorf("blank budget: %v, %v", got.Budget.Monthly, err)
	}
}
