package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/theirongolddev/spendlog/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var flagTUIDays int

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Live dashboard that reloads when the data file changes",
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().IntVarP(&flagTUIDays, "days", "n", -1, "Time window in days (0 = all, default from config)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	days := cfg.General.DefaultDays
	if flagTUIDays >= 0 {
		days = flagTUIDays
	}

	dash := tui.NewDashboard(tui.Options{
		DataFile: dataFile(),
		Currency: cfg.General.Currency,
		Days:     days,
		Budget:   cfg.Budget.Monthly,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := dash.Watch(ctx, slog.Default()); err != nil {
			slog.Warn("live reload disabled", "error", err)
		}
	}()

	p := tea.NewProgram(dash, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
