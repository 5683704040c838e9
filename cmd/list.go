package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/theirongolddev/spendlog/internal/cli"
	"github.com/theirongolddev/spendlog/internal/model"
	"github.com/theirongolddev/spendlog/internal/pipeline"

	"github.com/spf13/cobra"
)

var listFilter filterFlags

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List expenses by date",
	RunE:  runList,
}

func init() {
	listFilter.register(listCmd)
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	t, err := loadTracker()
	if err != nil {
		return err
	}

	expenses := listFilter.apply(t.Expenses(), time.Now())
	if len(expenses) == 0 {
		fmt.Println("\n  " + listFilter.emptyMessage(t.Len()))
		return nil
	}

	rows := make([][]string, 0, len(expenses))
	for i, e := range pipeline.SortByDate(expenses) {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			cli.FormatDate(e.Date),
			cli.FormatCategory(e.Category),
			cli.FormatAmount(e.Amount, cfg.General.Currency),
			e.Description,
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("EXPENSES" + listFilter.describe()))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers:   []string{"#", "Date", "Category", "Amount", "Description"},
		Rows:      rows,
		LeftAlign: []bool{false, true, true, false, true},
	}))

	printTrend(t.Expenses(), time.Now())
	return nil
}

const trendDays = 30

// printTrend prints a sparkline of daily spending over the last trendDays.
func printTrend(expenses []model.Expense, now time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	days := pipeline.AggregateDays(expenses, today.AddDate(0, 0, -(trendDays-1)), now)

	values := make([]float64, len(days))
	for i, d := range days {
		values[len(days)-1-i] = d.Total.InexactFloat64()
	}
	fmt.Println()
	fmt.Printf("  %s %s\n", cli.RenderMuted(fmt.Sprintf("Last %dd", trendDays)), cli.RenderSparkline(values))
}
