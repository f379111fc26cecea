package cmd

import (
	"fmt"

	"flowcast/internal/cli"
	"flowcast/internal/config"
	"flowcast/internal/forecast"
	"flowcast/internal/store"

	"github.com/spf13/cobra"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "13-week forecast for a single scenario",
	RunE:  runForecast,
}

func init() {
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(cmd *cobra.Command, _ []string) error {
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

	mult, err := config.ResolveMultipliers(in.cfg, in.scenario)
	if err != nil {
		return err
	}

	table := forecast.Generate(in.start, in.opening, pattern, mult)
	table.Scenario = in.scenario

	runway, err := forecast.Runway(table, in.threshold)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("CASH FORECAST  %s scenario", in.scenario)))
	fmt.Println()

	rows := make([][]string, 0, len(table.Rows)+2)
	for _, r := range table.Rows {
		rows = append(rows, []string{
			fmt.Sprintf("W%d", r.PeriodIndex+1),
			cli.FormatWeek(r.PeriodStart),
			cli.FormatMoney(r.TotalInflow),
			cli.FormatMoney(r.TotalOutflow),
			cli.FormatMoneyDelta(r.NetChange),
			cli.FormatMoney(r.EndingBalance),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{
		"TOTAL", "",
		cli.FormatMoney(table.TotalInflows()),
		cli.FormatMoney(table.TotalOutflows()),
		cli.FormatMoneyDelta(table.NetChange()),
		cli.FormatMoney(table.FinalBalance()),
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Week", "Start", "Inflows", "Outflows", "Net", "Balance"},
		Rows:    rows,
	}))

	balances := make([]float64, len(table.Rows))
	for i, r := range table.Rows {
		balances[i] = r.EndingBalance
	}
	fmt.Printf("\n  Balance  %s  %s -> %s\n",
		cli.RenderSparkline(balances),
		cli.FormatMoney(in.opening),
		cli.FormatMoney(table.FinalBalance()))

	if runway.CrossingPeriod != nil {
		fmt.Printf("\n  %s\n\n", cli.Warn(runway.Message))
	} else {
		fmt.Printf("\n  %s\n\n", cli.Positive(runway.Message))
	}

	saveRun(store.RunRecord{
		Scenario:       in.scenario,
		StartDate:      in.start,
		OpeningBalance: in.opening,
		FinalBalance:   table.FinalBalance(),
		TotalInflows:   table.TotalInflows(),
		TotalOutflows:  table.TotalOutflows(),
		Threshold:      &in.threshold,
		CrossingPeriod: runway.CrossingPeriod,
	})

	return nil
}
