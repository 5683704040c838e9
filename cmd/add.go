package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/theirongolddev/spendlog/internal/cli"
	"github.com/theirongolddev/spendlog/internal/model"
	"github.com/theirongolddev/spendlog/internal/tui"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagAmount      string
	flagCategory    string
	flagDescription string
	flagDate        string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an expense",
	Example: `  spendlog add --amount 12.5 --category Food --description lunch
  spendlog add   # interactive form`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&flagAmount, "amount", "", "Amount spent")
	addCmd.Flags().StringVar(&flagCategory, "category", "", "Category, e.g. Food")
	addCmd.Flags().StringVar(&flagDescription, "description", "", "Optional description")
	addCmd.Flags().StringVar(&flagDate, "date", "", "Date (YYYY-MM-DD or ISO 8601), default now")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, _ []string) error {
	amount, category, description, err := addInput(cmd)
	if err != nil {
		if errors.Is(err, tui.ErrAborted) {
			fmt.Println("  Nothing added.")
			return nil
		}
		return err
	}

	t, err := loadTracker()
	if err != nil {
		return err
	}

	e := model.Expense{Amount: amount, Category: category, Description: description}
	if flagDate != "" {
		d, err := model.ParseDate(flagDate)
		if err != nil {
			return err
		}
		e.Date = d.Format(model.DateLayout)
	}
	if err := t.Append(e); err != nil {
		return err
	}

	fmt.Printf("  Added %s to %s (%d expenses in %s)\n",
		cli.FormatAmount(amount, cfg.General.Currency), cli.FormatCategory(category), t.Len(), dataFile())
	return nil
}

// addInput takes the expense from flags, or from the form when --amount is
// missing and stdin is a terminal.
func addInput(cmd *cobra.Command) (decimal.Decimal, string, string, error) {
	if !cmd.Flags().Changed("amount") {
		if !isTerminal(os.Stdin) {
			return decimal.Zero, "", "", errors.New("--amount is required when stdin is not a terminal")
		}
		return tui.RunAddForm()
	}

	amount, err := model.ParseAmount(flagAmount)
	if err != nil {
		return decimal.Zero, "", "", err
	}
	return amount, strings.TrimSpace(flagCategory), strings.TrimSpace(flagDescription), nil
}
