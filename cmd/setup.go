package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/theirongolddev/spendlog/internal/config"
	"github.com/theirongolddev/spendlog/internal/tui"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive configuration",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	if !isTerminal(os.Stdin) {
		return errors.New("setup needs a terminal; edit " + config.ConfigPath() + " instead")
	}

	updated, err := tui.RunSetup(cfg)
	if errors.Is(err, tui.ErrAborted) {
		fmt.Println("  Setup cancelled, nothing saved.")
		return nil
	}
	if err != nil {
		return err
	}
	cfg = updated

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `spendlog setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
