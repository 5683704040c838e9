package cmd

import (
	"github.com/theirongolddev/spendlog/internal/tracker"

	"github.com/spf13/cobra"
)

var flagPlain bool

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Bar chart of totals by category",
	Long:  "Show totals by category as a bar chart: full-screen in a terminal, as text otherwise.",
	RunE:  runPlot,
}

func init() {
	plotCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a text chart instead of opening the chart window")
	rootCmd.AddCommand(plotCmd)
}

func runPlot(_ *cobra.Command, _ []string) error {
	var opts []tracker.Option
	if p := chartPlotter(flagPlain); p != nil {
		opts = append(opts, tracker.WithPlotter(p))
	}
	t, err := loadTracker(opts...)
	if err != nil {
		return err
	}
	if t.Len() == 0 {
		return nil
	}
	return t.Plot()
}
