package pipeline

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/theirongolddev/spendlog/internal/model"
)

func exp(amount, category, date string) model.Expense {
	return model.Expense{Amount: decimal.RequireFromString(amount), Category: category, Date: date}
}

func TestSummarizeSumsPerCategory(t *testing.T) {
	expenses := []model.Expense{
		exp("10", "Food", "2024-05-01"),
		exp("2.5", "Transport", "2024-05-01"),
		exp("5", "Food", "2024-05-02"),
	}

	s := Summarize(expenses)

	if len(s) != 2 {
		t.Fatalf("got %d categories, want 2", len(s))
	}
	if s[0].Category != "Food" || s[1].Category != "Transport" {
		t.Fatalf("order = [%s %s], want first-seen order [Food Transport]", s[0].Category, s[1].Category)
	}
	if !s.Total("Food").Equal(decimal.NewFromInt(15)) {
		t.Errorf("Food = %s, want 15", s.Total("Food"))
	}
	if s[0].Count != 2 {
		t.Errorf("Food count = %d, want 2", s[0].Count)
	}
	if !s.Total("Transport").Equal(decimal.RequireFromString("2.5")) {
		t.Errorf("Transport = %s, want 2.5", s.Total("Transport"))
	}
}

func TestSummarizeIsExactForCents(t *testing.T) {
	var expenses []model.Expense
	for i := 0; i < 10; i++ {
		expenses = append(expenses, exp("0.1", "Coffee", "2024-05-01"))
	}
	if got := Summarize(expenses).Total("Coffee"); !got.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("ten 0.1 expenses total %s, want exactly 1", got)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s == nil || len(s) != 0 {
		t.Fatalf("Summarize(nil) = %#v, want empty non-nil summary", s)
	}
}

func TestSortByDate(t *testing.T) {
	expenses := []model.Expense{
		exp("1", "c", "2024-05-03T10:00:00.000000"),
		exp("2", "a", "garbage"),
		exp("3", "b", "2024-05-01"),
		exp("4", "d", "2024-05-02T23:59:59"),
	}

	sorted := SortByDate(expenses)

	want := []string{"3", "4", "1", "2"}
	for i, w := range want {
		if sorted[i].Amount.String() != w {
			t.Fatalf("position %d amount = %s, want %s", i, sorted[i].Amount, w)
		}
	}
	if expenses[0].Amount.String() != "1" {
		t.Fatal("SortByDate modified its input")
	}
}

func TestSortByTotal(t *testing.T) {
	s := model.Summary{
		{Category: "a", Total: decimal.NewFromInt(1)},
		{Category: "b", Total: decimal.NewFromInt(3)},
		{Category: "c", Total: decimal.NewFromInt(2)},
	}
	sorted := SortByTotal(s)
	if sorted[0].Category != "b" || sorted[1].Category != "c" || sorted[2].Category != "a" {
		t.Fatalf("SortByTotal = %+v", sorted)
	}
	if s[0].Category != "a" {
		t.Fatal("SortByTotal modified its input")
	}
}

func TestFilterByCategory(t *testing.T) {
	expenses := []model.Expense{
		exp("1", "Food", "2024-05-01"),
		exp("2", "food ", "2024-05-01"),
		exp("3", "Seafood", "2024-05-01"),
	}
	got := FilterByCategory(expenses, "FOOD")
	if len(got) != 2 {
		t.Fatalf("FilterByCategory matched %d, want 2", len(got))
	}
	if len(FilterByCategory(expenses, "")) != 3 {
		t.Fatal("empty category filter should keep everything")
	}
}

func TestFilterByTime(t *testing.T) {
	expenses := []model.Expense{
		exp("1", "a", "2024-04-30T23:59:59"),
		exp("2", "a", "2024-05-01T00:00:00"),
		exp("3", "a", "2024-05-31T12:00:00"),
		exp("4", "a", "2024-06-01T00:00:00"),
		exp("5", "a", "unknown"),
	}
	since := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	until := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)

	got := FilterByTime(expenses, since, until)
	if len(got) != 2 || got[0].Amount.String() != "2" || got[1].Amount.String() != "3" {
		t.Fatalf("FilterByTime = %+v", got)
	}
	if len(FilterByTime(expenses, time.Time{}, time.Time{})) != 5 {
		t.Fatal("open range should keep everything")
	}
}

func TestAggregateDaysFillsGaps(t *testing.T) {
	expenses := []model.Expense{
		exp("4", "a", "2024-05-01T09:00:00"),
		exp("6", "b", "2024-05-01T18:00:00"),
		exp("1", "a", "2024-05-03T12:00:00"),
	}
	since := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	until := time.Date(2024, 5, 3, 23, 0, 0, 0, time.Local)

	days := AggregateDays(expenses, since, until)

	if len(days) != 3 {
		t.Fatalf("got %d days, want 3", len(days))
	}
	if days[0].Date.Day() != 3 || days[2].Date.Day() != 1 {
		t.Fatalf("days not most-recent first: %v, %v", days[0].Date, days[2].Date)
	}
	if !days[2].Total.Equal(decimal.NewFromInt(10)) || days[2].Count != 2 {
		t.Errorf("May 1 = %s (%d), want 10 (2)", days[2].Total, days[2].Count)
	}
	if !days[1].Total.IsZero() {
		t.Errorf("May 2 = %s, want 0", days[1].Total)
	}
}
