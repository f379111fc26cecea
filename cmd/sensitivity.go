package cmd

import (
	"fmt"

	"flowcast/internal/cli"
	"flowcast/internal/config"
	"flowcast/internal/forecast"
	"flowcast/internal/model"

	"github.com/spf13/cobra"
)

var flagPerturbation float64

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity",
	Short: "One-at-a-time driver sensitivity around a scenario",
	RunE:  runSensitivity,
}

func init() {
	sensitivityCmd.Flags().Float64VarP(&flagPerturbation, "perturbation", "p", forecast.DefaultPerturbation,
		"Driver perturbation as a fraction, e.g. 0.2 for +/-20%")
	rootCmd.AddCommand(sensitivityCmd)
}

func runSensitivity(cmd *cobra.Command, _ []string) error {
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

	base, err := config.ResolveMultipliers(in.cfg, in.scenario)
	if err != nil {
		return err
	}

	baseline := forecast.Generate(in.start, in.opening, pattern, base)
	results := forecast.AnalyzeSensitivity(in.start, in.opening, pattern, base, flagPerturbation)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SENSITIVITY  %s scenario, %s swing",
		in.scenario, cli.FormatPercent(flagPerturbation))))
	fmt.Println()

	rows := make([][]string, 0, len(results)+2)
	for _, r := range results {
		rows = append(rows, []string{
			driverLabel(r.Driver),
			cli.FormatSignedPercent(r.Perturbation),
			cli.FormatMoney(r.EndingBalance),
			cli.FormatMoneyDelta(r.DollarDelta),
			fmt.Sprintf("%+.1f%%", r.PercentDelta),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"baseline", "", cli.FormatMoney(baseline.FinalBalance()), "", ""})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Driver", "Swing", "Final Balance", "Delta", "Delta %"},
		Rows:    rows,
	}))
	fmt.Println()

	return nil
}

func driverLabel(d model.SensitivityDriver) string {
	switch d {
	case model.DriverRevenue:
		return "Revenue growth"
	case model.DriverCollection:
		return "Collection rate"
	case model.DriverExpense:
		return "Expense level"
	}
	return string(d)
}
