package cmd

import (
	"strconv"
	"time"

	"github.com/theirongolddev/spendlog/internal/model"
	"github.com/theirongolddev/spendlog/internal/pipeline"

	"github.com/spf13/cobra"
)

// filterFlags are the --category/--days flags shared by list and summary.
type filterFlags struct {
	category string
	days     int
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.category, "category", "", "Only this category (case-insensitive)")
	cmd.Flags().IntVarP(&f.days, "days", "n", 0, "Only the last N days (0 = all)")
}

func (f filterFlags) active() bool {
	return f.category != "" || f.days > 0
}

// apply filters expenses, counting today as the first of the last N days.
func (f filterFlags) apply(expenses []model.Expense, now time.Time) []model.Expense {
	filtered := expenses
	if f.days > 0 {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		filtered = pipeline.FilterByTime(filtered, today.AddDate(0, 0, -(f.days-1)), time.Time{})
	}
	if f.category != "" {
		filtered = pipeline.FilterByCategory(filtered, f.category)
	}
	return filtered
}

// emptyMessage explains an empty result given how many expenses exist
// before filtering.
func (f filterFlags) emptyMessage(total int) string {
	if total == 0 || !f.active() {
		return "No expenses yet!"
	}
	return "No expenses match the filters."
}

func (f filterFlags) describe() string {
	s := ""
	if f.days > 0 {
		s += "  Last " + strconv.Itoa(f.days) + "d"
	}
	if f.category != "" {
		s += "  " + f.category
	}
	return s
}
