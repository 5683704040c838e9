// Package tracker holds the in-memory expense list and the interactive
// menu that adds to, lists, summarizes and plots it.
package tracker

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/theirongolddev/spendlog/internal/cli"
	"github.com/theirongolddev/spendlog/internal/model"
	"github.com/theirongolddev/spendlog/internal/pipeline"
	"github.com/theirongolddev/spendlog/internal/store"
)

// Plotter shows category totals as a bar chart.
type Plotter interface {
	Plot(summary model.Summary) error
}

// Tracker owns the ordered expense list for one data file. Every mutation
// is written back to disk before it becomes visible.
type Tracker struct {
	store    *store.JSONFile
	expenses []model.Expense

	in       *bufio.Reader
	out      io.Writer
	currency string
	plotter  Plotter
	now      func() time.Time
}

// New creates a tracker over the given data file. Call Load before use.
func New(s *store.JSONFile, opts ...Option) *Tracker {
	t := &Tracker{
		store:    s,
		in:       bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		currency: "$",
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.plotter == nil {
		t.plotter = TextPlotter{Out: t.out, Currency: t.currency}
	}
	return t
}

// Load replaces the in-memory list with the contents of the data file.
func (t *Tracker) Load() error {
	expenses, err := t.store.Load()
	if err != nil {
		return err
	}
	t.expenses = expenses
	return nil
}

// Expenses returns a copy of the list in insertion order.
func (t *Tracker) Expenses() []model.Expense {
	out := make([]model.Expense, len(t.expenses))
	copy(out, t.expenses)
	return out
}

// Len returns the number of stored expenses.
func (t *Tracker) Len() int {
	return len(t.expenses)
}

// Add records a new expense stamped with the current time and persists the
// whole list.
func (t *Tracker) Add(amount decimal.Decimal, category, description string) (model.Expense, error) {
	e := model.NewExpense(amount, strings.TrimSpace(category), strings.TrimSpace(description), t.now())
	if err := t.Append(e); err != nil {
		return model.Expense{}, err
	}
	return e, nil
}

// Append records e as given, filling in the date when empty, and persists
// the whole list. The in-memory list is unchanged if saving fails.
func (t *Tracker) Append(e model.Expense) error {
	if e.Date == "" {
		e.Date = t.now().Format(model.DateLayout)
	}
	if err := e.Validate(); err != nil {
		return err
	}

	next := make([]model.Expense, len(t.expenses), len(t.expenses)+1)
	copy(next, t.expenses)
	next = append(next, e)

	if err := t.store.Save(next); err != nil {
		return fmt.Errorf("saving expense: %w", err)
	}
	t.expenses = next
	slog.Debug("expense added", "category", e.Category, "amount", e.Amount.String(), "count", len(next))
	return nil
}

// PromptAdd asks for amount, category and description. A non-numeric amount
// is reported and the add is abandoned without touching the list.
func (t *Tracker) PromptAdd() error {
	raw, err := t.prompt("Enter amount: ")
	if err != nil {
		return err
	}
	amount, err := model.ParseAmount(raw)
	if err != nil {
		fmt.Fprintln(t.out, "Invalid amount!")
		return nil
	}

	category, err := t.prompt("Enter category (Food, Transport, Bills, etc.): ")
	if err != nil {
		return err
	}
	description, err := t.prompt("Enter description (optional): ")
	if err != nil {
		return err
	}

	if _, err := t.Add(amount, category, description); err != nil {
		return err
	}
	fmt.Fprintln(t.out, "✅ Expense added successfully!")
	return nil
}

// List writes every expense, oldest first.
func (t *Tracker) List() {
	if len(t.expenses) == 0 {
		fmt.Fprintln(t.out, "No expenses yet!")
		return
	}

	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, "=== Expenses ===")
	for i, e := range pipeline.SortByDate(t.expenses) {
		fmt.Fprintf(t.out, "%d. %s - %s: %s (%s)\n",
			i+1, e.Date, e.Category, cli.FormatAmount(e.Amount, t.currency), e.Description)
	}
}

// Summarize writes and returns the per-category totals.
func (t *Tracker) Summarize() model.Summary {
	summary := pipeline.Summarize(t.expenses)

	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, "=== Summary by Category ===")
	for _, ct := range summary {
		fmt.Fprintf(t.out, "%s: %s\n", ct.Category, cli.FormatAmount(ct.Total, t.currency))
	}
	return summary
}

// Plot summarizes and then hands the totals to the plotter. Nothing is
// drawn when there are no expenses.
func (t *Tracker) Plot() error {
	summary := t.Summarize()
	if len(summary) == 0 {
		return nil
	}
	if err := t.plotter.Plot(summary); err != nil {
		return fmt.Errorf("plotting summary: %w", err)
	}
	return nil
}

const menu = `
=== Personal Expense Tracker ===
1. Add Expense
2. List Expenses
3. Summary by Category
4. Plot Summary
5. Exit`

// Run shows the menu and dispatches choices until the user exits or input
// ends.
func (t *Tracker) Run() error {
	for {
		fmt.Fprintln(t.out, menu)
		choice, err := t.prompt("Choose an option: ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(t.out)
			fmt.Fprintln(t.out, "Goodbye! 👋")
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = t.PromptAdd()
		case "2":
			t.List()
		case "3":
			t.Summarize()
		case "4":
			err = t.Plot()
		case "5":
			fmt.Fprintln(t.out, "Goodbye! 👋")
			return nil
		default:
			fmt.Fprintln(t.out, "Invalid choice. Try again.")
		}

		if errors.Is(err, io.EOF) {
			fmt.Fprintln(t.out)
			fmt.Fprintln(t.out, "Goodbye! 👋")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// prompt writes label and reads one trimmed line. A final line without a
// newline is still returned; io.EOF is only reported when nothing was read.
func (t *Tracker) prompt(label string) (string, error) {
	fmt.Fprint(t.out, label)
	line, err := t.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// TextPlotter draws the chart as text on Out.
type TextPlotter struct {
	Out      io.Writer
	Currency string
	Width    int
}

// Plot implements Plotter.
func (p TextPlotter) Plot(summary model.Summary) error {
	width := p.Width
	if width <= 0 {
		width = 40
	}
	_, err := fmt.Fprint(p.Out, "\n"+cli.RenderBarChart("Expenses by Category", summary, p.Currency, width))
	return err
}
