package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/spendlog/internal/model"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
)

// ErrAborted is returned when the user cancels a form.
var ErrAborted = errors.New("cancelled")

// AddValues holds the raw input of the add form.
type AddValues struct {
	Amount      string
	Category    string
	Description string
}

// NewAddForm builds the add-expense form bound to v.
func NewAddForm(v *AddValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Amount").
				Placeholder("12.50").
				Value(&v.Amount).
				Validate(validateAmount),
			huh.NewInput().
				Title("Category").
				Placeholder("Food").
				Value(&v.Category),
			huh.NewInput().
				Title("Description").
				Value(&v.Description),
		),
	).WithTheme(huh.ThemeCharm())
}

func validateAmount(s string) error {
	if _, err := model.ParseAmount(s); err != nil {
		return errors.New("enter a number, e.g. 12.50")
	}
	return nil
}

// RunAddForm shows the add form and returns the parsed amount with the
// trimmed category and description.
func RunAddForm() (decimal.Decimal, string, string, error) {
	var v AddValues
	if err := NewAddForm(&v).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return decimal.Zero, "", "", ErrAborted
		}
		return decimal.Zero, "", "", fmt.Errorf("add form: %w", err)
	}
	amount, err := model.ParseAmount(v.Amount)
	if err != nil {
		return decimal.Zero, "", "", err
	}
	return amount, strings.TrimSpace(v.Category), strings.TrimSpace(v.Description), nil
}
