package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/spendlog/internal/config"
	"github.com/theirongolddev/spendlog/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// setupValues holds the setup form's raw input.
type setupValues struct {
	currency string
	dataFile string
	days     int
	budget   string
	theme    string
}

func newSetupValues(cfg config.Config) setupValues {
	v := setupValues{
		currency: cfg.General.Currency,
		dataFile: cfg.General.DataFile,
		days:     cfg.General.DefaultDays,
		theme:    cfg.Appearance.Theme,
	}
	if cfg.Budget.Monthly != nil {
		v.budget = strconv.FormatFloat(*cfg.Budget.Monthly, 'f', -1, 64)
	}
	return v
}

func newSetupForm(v *setupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to spendlog!").
				Description("Let's set up a few things.\n"),
			huh.NewInput().
				Title("Currency symbol").
				Value(&v.currency).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("currency is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Data file").
				Description("Leave blank for expenses.json in the current directory.").
				Value(&v.dataFile),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Default time window").
				Options(
					huh.NewOption("7 days", 7),
					huh.NewOption("30 days", 30),
					huh.NewOption("90 days", 90),
					huh.NewOption("All time", 0),
				).
				Value(&v.days),
			huh.NewInput().
				Title("Monthly budget").
				Description("Leave blank for none.").
				Value(&v.budget).
				Validate(func(s string) error {
					_, err := parseBudget(s)
					return err
				}),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&v.theme),
		),
	).WithTheme(huh.ThemeCharm())
}

func parseBudget(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return nil, errors.New("enter a positive number or leave blank")
	}
	return &f, nil
}

// apply copies the form values onto cfg.
func (v setupValues) apply(cfg config.Config) (config.Config, error) {
	budget, err := parseBudget(v.budget)
	if err != nil {
		return cfg, err
	}
	cfg.General.Currency = strings.TrimSpace(v.currency)
	cfg.General.DataFile = strings.TrimSpace(v.dataFile)
	cfg.General.DefaultDays = v.days
	cfg.Budget.Monthly = budget
	cfg.Appearance.Theme = v.theme
	return cfg, cfg.Validate()
}

// RunSetup shows the setup form prefilled from cfg, saves the result and
// returns it.
func RunSetup(cfg config.Config) (config.Config, error) {
	v := newSetupValues(cfg)
	if err := newSetupForm(&v).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return cfg, ErrAborted
		}
		return cfg, fmt.Errorf("setup form: %w", err)
	}

	updated, err := v.apply(cfg)
	if err != nil {
		return cfg, fmt.Errorf("invalid settings: %w", err)
	}
	if err := config.Save(updated); err != nil {
		return cfg, fmt.Errorf("saving config: %w", err)
	}
	theme.SetActive(updated.Appearance.Theme)
	return updated, nil
}
