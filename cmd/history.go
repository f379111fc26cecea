package cmd

import (
	"fmt"

	"flowcast/internal/cli"
	"flowcast/internal/pipeline"
	"flowcast/internal/store"

	"github.com/spf13/cobra"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Recent forecast runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "Number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	cache, err := store.Open(pipeline.CachePath())
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer func() { _ = cache.Close() }()

	runs, err := cache.ListRuns(flagHistoryLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("\n  No forecast runs recorded yet.")
		fmt.Println("  Run `flowcast forecast` first.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("FORECAST HISTORY"))
	fmt.Println()

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		crossing := "-"
		if r.CrossingPeriod != nil {
			crossing = fmt.Sprintf("W%d", *r.CrossingPeriod+1)
		}
		rows = append(rows, []string{
			r.CreatedAt.Local().Format("Jan 02 15:04"),
			string(r.Scenario),
			cli.FormatDate(r.StartDate),
			cli.FormatMoney(r.OpeningBalance),
			cli.FormatMoney(r.FinalBalance),
			crossing,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Run", "Scenario", "Start", "Opening", "Final", "Below Min"},
		Rows:    rows,
	}))
	fmt.Println()

	return nil
}
