// Package cmd implements the spendlog CLI commands.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/theirongolddev/spendlog/internal/config"
	"github.com/theirongolddev/spendlog/internal/store"
	"github.com/theirongolddev/spendlog/internal/tracker"
	"github.com/theirongolddev/spendlog/internal/tui"
	"github.com/theirongolddev/spendlog/internal/tui/theme"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	flagFile    string
	flagVerbose bool
	flagQuiet   bool
)

// cfg is the effective configuration, loaded before every command.
var cfg = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "spendlog",
	Short: "Personal expense tracker",
	Long: "Record expenses to a JSON file, list them, summarize by category and plot the totals.\n" +
		"Run without a command for the interactive menu.",
	SilenceUsage:      true,
	PersistentPreRunE: preRun,
	RunE:              runMenu,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "Expense data file (default from config, else expenses.json)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging on stderr")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress log output")
}

// preRun configures logging and loads the config shared by every command.
func preRun(cmd *cobra.Command, _ []string) error {
	slog.SetDefault(newLogger(os.Stderr, flagVerbose, flagQuiet))

	loaded, err := config.Load()
	if err != nil {
		// `config` and `setup` must still run to show or repair the file.
		if cmd != configCmd && cmd != setupCmd {
			return err
		}
		slog.Warn("using default config", "error", err)
		loaded = config.DefaultConfig()
	}
	cfg = loaded
	theme.SetActive(cfg.Appearance.Theme)
	return nil
}

func newLogger(w io.Writer, verbose, quiet bool) *slog.Logger {
	if quiet {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// dataFile resolves the data file from --file, then config and environment.
func dataFile() string {
	if flagFile != "" {
		return flagFile
	}
	return cfg.DataFile()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// loadTracker opens the data file and reads it into a tracker.
func loadTracker(opts ...tracker.Option) (*tracker.Tracker, error) {
	path := dataFile()
	slog.Debug("loading expenses", "path", path)

	opts = append([]tracker.Option{tracker.WithCurrency(cfg.General.Currency)}, opts...)
	t := tracker.New(store.NewJSONFile(path), opts...)
	if err := t.Load(); err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return t, nil
}

// chartPlotter picks the pop-up chart when both ends are a terminal.
func chartPlotter(plain bool) tracker.Plotter {
	if plain || !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return nil
	}
	return tui.ChartPlotter{Currency: cfg.General.Currency}
}

func runMenu(_ *cobra.Command, _ []string) error {
	var opts []tracker.Option
	if p := chartPlotter(false); p != nil {
		opts = append(opts, tracker.WithPlotter(p))
	}
	t, err := loadTracker(opts...)
	if err != nil {
		return err
	}
	return t.Run()
}
