// Package pipeline aggregates and filters expenses for the list, summary
// and chart views.
package pipeline

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/theirongolddev/spendlog/internal/model"
)

// Summarize totals amounts by category. Categories appear in the order they
// are first seen in expenses.
func Summarize(expenses []model.Expense) model.Summary {
	summary := model.Summary{}
	index := make(map[string]int)

	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(summary)
			index[e.Category] = i
			summary = append(summary, model.CategoryTotal{Category: e.Category, Total: decimal.Zero})
		}
		summary[i].Total = summary[i].Total.Add(e.Amount)
		summary[i].Count++
	}

	return summary
}

// SortByDate returns a copy of expenses ordered oldest first. Records whose
// date cannot be parsed sort after the rest, by their raw date string.
func SortByDate(expenses []model.Expense) []model.Expense {
	type keyed struct {
		e      model.Expense
		t      time.Time
		parsed bool
	}
	ks := make([]keyed, len(expenses))
	for i, e := range expenses {
		t, ok := e.Time()
		ks[i] = keyed{e: e, t: t, parsed: ok}
	}

	sort.SliceStable(ks, func(i, j int) bool {
		a, b := ks[i], ks[j]
		if a.parsed != b.parsed {
			return a.parsed
		}
		if a.parsed && !a.t.Equal(b.t) {
			return a.t.Before(b.t)
		}
		if !a.parsed {
			return a.e.Date < b.e.Date
		}
		return false
	})

	sorted := make([]model.Expense, len(ks))
	for i, k := range ks {
		sorted[i] = k.e
	}
	return sorted
}

// SortByTotal returns a copy of the summary ordered by total, largest first.
func SortByTotal(summary model.Summary) model.Summary {
	sorted := make(model.Summary, len(summary))
	copy(sorted, summary)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Total.GreaterThan(sorted[j].Total)
	})
	return sorted
}

// AggregateDays computes per-day totals within [since, until], filling days
// without spending with zeros. Most recent day first.
func AggregateDays(expenses []model.Expense, since, until time.Time) []model.DailyTotal {
	filtered := FilterByTime(expenses, since, until)

	dayMap := make(map[string]*model.DailyTotal)
	for _, e := range filtered {
		t, ok := e.Time()
		if !ok {
			continue
		}
		dayKey := t.Local().Format("2006-01-02")
		dt, ok := dayMap[dayKey]
		if !ok {
			d, _ := time.ParseInLocation("2006-01-02", dayKey, time.Local)
			dt = &model.DailyTotal{Date: d, Total: decimal.Zero}
			dayMap[dayKey] = dt
		}
		dt.Total = dt.Total.Add(e.Amount)
		dt.Count++
	}

	if !since.IsZero() && !until.IsZero() {
		day := startOfDay(since)
		end := startOfDay(until)
		for !day.After(end) {
			dayKey := day.Format("2006-01-02")
			if _, ok := dayMap[dayKey]; !ok {
				dayMap[dayKey] = &model.DailyTotal{Date: day, Total: decimal.Zero}
			}
			day = day.AddDate(0, 0, 1)
		}
	}

	days := make([]model.DailyTotal, 0, len(dayMap))
	for _, dt := range dayMap {
		days = append(days, *dt)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.After(days[j].Date)
	})
	return days
}

// FilterByTime returns expenses dated within [since, until). A zero bound is
// open. Expenses with unreadable dates are dropped when any bound is set.
func FilterByTime(expenses []model.Expense, since, until time.Time) []model.Expense {
	if since.IsZero() && until.IsZero() {
		return expenses
	}

	var result []model.Expense
	for _, e := range expenses {
		t, ok := e.Time()
		if !ok {
			continue
		}
		if !since.IsZero() && t.Before(since) {
			continue
		}
		if !until.IsZero() && !t.Before(until) {
			continue
		}
		result = append(result, e)
	}
	return result
}

// FilterByCategory returns expenses whose category matches, ignoring case.
func FilterByCategory(expenses []model.Expense, category string) []model.Expense {
	if category == "" {
		return expenses
	}
	var result []model.Expense
	for _, e := range expenses {
		if strings.EqualFold(strings.TrimSpace(e.Category), strings.TrimSpace(category)) {
			result = append(result, e)
		}
	}
	return result
}

func startOfDay(t time.Time) time.Time {
	l := t.Local()
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, time.Local)
}
