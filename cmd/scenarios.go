package cmd

import (
	"fmt"

	"flowcast/internal/cli"
	"flowcast/internal/forecast"

	"github.com/spf13/cobra"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "Compare best, base, and worst scenario forecasts",
	RunE:  runScenarios,
}

func init() {
	rootCmd.AddCommand(scenariosCmd)
}

func runScenarios(cmd *cobra.Command, _ []string) error {
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
	fmt.Println(cli.RenderTitle("SCENARIO COMPARISON"))
	fmt.Println()

	// Summary table: one row per scenario.
	rows := make([][]string, 0, len(comparisons))
	for _, sf := range comparisons {
		runway, err := forecast.Runway(sf.Table, in.threshold)
		if err != nil {
			return err
		}
		crossing := "-"
		if runway.CrossingPeriod != nil {
			crossing = fmt.Sprintf("W%d", *runway.CrossingPeriod+1)
		}
		rows = append(rows, []string{
			string(sf.Scenario),
			cli.FormatMoney(sf.Table.TotalInflows()),
			cli.FormatMoney(sf.Table.TotalOutflows()),
			cli.FormatMoneyDelta(sf.Table.NetChange()),
			cli.FormatMoney(sf.Table.FinalBalance()),
			crossing,
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Scenario", "Inflows", "Outflows", "Net", "Final", "Below Min"},
		Rows:    rows,
	}))

	// Week-by-week ending balances across scenarios.
	weekRows := make([][]string, 0, 13)
	for i := 0; i < len(comparisons[0].Table.Rows); i++ {
		row := []string{
			fmt.Sprintf("W%d", i+1),
			cli.FormatWeek(comparisons[0].Table.Rows[i].PeriodStart),
		}
		for _, sf := range comparisons {
			row = append(row, cli.FormatMoney(sf.Table.Rows[i].EndingBalance))
		}
		weekRows = append(weekRows, row)
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Ending Balance by Week",
		Headers: []string{"Week", "Start", "best", "base", "worst"},
		Rows:    weekRows,
	}))

	spread := comparisons[0].Table.FinalBalance() - comparisons[len(comparisons)-1].Table.FinalBalance()
	fmt.Printf("\n  Best-to-worst spread at week 13: %s\n\n", cli.FormatMoney(spread))

	return nil
}
