package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/theirongolddev/spendlog/internal/cli"
	"github.com/theirongolddev/spendlog/internal/model"
	"github.com/theirongolddev/spendlog/internal/pipeline"
	"github.com/theirongolddev/spendlog/internal/store"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	summaryFilter filterFlags
	flagNoCache   bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Totals by category",
	RunE:  runSummary,
}

func init() {
	summaryFilter.register(summaryCmd)
	summaryCmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Skip the SQLite summary cache")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	summary, count, total, err := loadSummary()
	if err != nil {
		return err
	}
	if count == 0 {
		fmt.Println("\n  " + summaryFilter.emptyMessage(total))
		return nil
	}

	cur := cfg.General.Currency
	grand := summary.GrandTotal()

	rows := make([][]string, 0, len(summary)+2)
	for _, ct := range pipeline.SortByTotal(summary) {
		rows = append(rows, []string{
			cli.FormatCategory(ct.Category),
			cli.FormatNumber(int64(ct.Count)),
			cli.FormatAmount(ct.Total, cur),
			cli.FormatPercent(cli.Share(ct.Total, grand)),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"Total", cli.FormatNumber(int64(count)), cli.FormatAmount(grand, cur), ""})

	fmt.Println()
	fmt.Println(cli.RenderTitle("SUMMARY BY CATEGORY" + summaryFilter.describe()))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Category", "Count", "Total", "Share"},
		Rows:    rows,
	}))

	if cfg.Budget.Monthly != nil {
		printBudget(decimal.NewFromFloat(*cfg.Budget.Monthly))
	}
	return nil
}

// loadSummary returns category totals, the number of expenses they cover
// and the number in the file before filtering. The unfiltered summary goes
// through the cache unless it is disabled.
func loadSummary() (model.Summary, int, int, error) {
	data := store.NewJSONFile(dataFile())

	if !summaryFilter.active() && !flagNoCache && cfg.General.SummaryCache {
		cache, err := store.Open(pipeline.CachePath())
		if err != nil {
			slog.Warn("summary cache unavailable", "error", err)
		} else {
			defer cache.Close()
			cs, err := pipeline.SummarizeWithCache(data, cache)
			if err == nil {
				slog.Debug("summary", "cache_hit", cs.CacheHit, "expenses", cs.ExpenseCount)
				return cs.Summary, cs.ExpenseCount, cs.ExpenseCount, nil
			}
			slog.Warn("cached summary failed, reading file", "error", err)
		}
	}

	all, err := data.Load()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("loading %s: %w", data.Path(), err)
	}
	expenses := summaryFilter.apply(all, time.Now())
	return pipeline.Summarize(expenses), len(expenses), len(all), nil
}

// printBudget shows this month's spending against the monthly budget.
func printBudget(budget decimal.Decimal) {
	expenses, err := store.NewJSONFile(dataFile()).Load()
	if err != nil {
		slog.Warn("budget skipped", "error", err)
		return
	}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	spent := pipeline.Summarize(pipeline.FilterByTime(expenses, monthStart, time.Time{})).GrandTotal()
	pct := cli.Share(spent, budget)

	cur := cfg.General.Currency
	line := fmt.Sprintf("  Budget %s  %s of %s (%s)",
		cli.RenderProgressBar(pct, 20), cli.FormatAmount(spent, cur), cli.FormatAmount(budget, cur), cli.FormatPercent(pct))
	if pct > 1 {
		line += "  " + cli.RenderWarning("over budget")
	}
	fmt.Println()
	fmt.Println(line)
}
