package cmd

import (
	"fmt"

	"flowcast/internal/cli"
	"flowcast/internal/forecast"

	"github.com/spf13/cobra"
)

var runwayCmd = &cobra.Command{
	Use:   "runway",
	Short: "When each scenario drops below the cash threshold",
	RunE:  runRunway,
}

func init() {
	rootCmd.AddCommand(runwayCmd)
}

func runRunway(cmd *cobra.Command, _ []string) error {
	in, err := resolveInputs(cmd)
	if err != nil {
		return err
	}

	result, err := loadData(in)
	if err != nil {
		return err
	}

	pattern, err := forecast.ExtractPatterns(result.Transactions)
	if err != nil {
		return err
	}

	comparisons, err := forecast.CompareScenarios(in.start, in.opening, pattern)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("RUNWAY  threshold %s", cli.FormatMoney(in.threshold))))
	fmt.Println()

	for _, sf := range comparisons {
		runway, err := forecast.Runway(sf.Table, in.threshold)
		if err != nil {
			return err
		}

		balances := make([]float64, len(sf.Table.Rows))
		for i, r := range sf.Table.Rows {
			balances[i] = r.EndingBalance
		}

		fmt.Printf("  %-6s %s  %s\n", sf.Scenario,
			cli.RenderSparkline(balances),
			cli.FormatMoney(sf.Table.FinalBalance()))
		if runway.CrossingPeriod != nil {
			fmt.Printf("         %s\n", cli.Warn(runway.Message))
		} else {
			fmt.Printf("         %s\n", cli.Muted(runway.Message))
		}
		fmt.Println()
	}

	return nil
}
