package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/spendlog/internal/config"
	"github.com/theirongolddev/spendlog/internal/pipeline"
	"github.com/theirongolddev/spendlog/internal/store"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data file:     %s\n", dataFile())
	fmt.Printf("    Currency:      %s\n", cfg.General.Currency)
	fmt.Printf("    Default days:  %d\n", cfg.General.DefaultDays)
	fmt.Printf("    Summary cache: %v (%s)\n", cfg.General.SummaryCache, pipeline.CachePath())
	if n, ok := cachedFileCount(pipeline.CachePath()); ok {
		fmt.Printf("    Cached files:  %d\n", n)
	}
	fmt.Println()

	fmt.Println("  [Budget]")
	if cfg.Budget.Monthly != nil {
		fmt.Printf("    Monthly budget: %s%.2f\n", cfg.General.Currency, *cfg.Budget.Monthly)
	} else {
		fmt.Println("    Monthly budget: not set")
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	for _, env := range []string{config.EnvDataFile, config.EnvCurrency, config.EnvTheme} {
		if v := os.Getenv(env); v != "" {
			fmt.Printf("  %s=%s (overrides file)\n", env, v)
		}
	}

	fmt.Println("  Run `spendlog setup` to reconfigure.")
	return nil
}

// cachedFileCount reports how many data files the cache at path tracks. A
// cache that does not exist yet is left uncreated.
func cachedFileCount(path string) (int, bool) {
	if _, err := os.Stat(path); err != nil {
		return 0, false
	}
	cache, err := store.Open(path)
	if err != nil {
		return 0, false
	}
	defer cache.Close()
	n, err := cache.TrackedCount()
	if err != nil {
		return 0, false
	}
	return n, true
}
