package cmd

import (
	"fmt"
	"os"
	"strconv"

	"flowcast/internal/config"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	dataFile := cfg.General.DataFile
	opening := strconv.FormatFloat(cfg.General.OpeningBalance, 'f', -1, 64)
	threshold := strconv.FormatFloat(cfg.General.Threshold, 'f', -1, 64)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Transaction CSV file").
				Description("Columns: date, category, amount, payment_terms").
				Placeholder("history.csv").
				Value(&dataFile).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if _, err := os.Stat(s); err != nil {
						return fmt.Errorf("cannot read %s", s)
					}
					return nil
				}),
			huh.NewInput().
				Title("Opening cash balance").
				Value(&opening).
				Validate(validFloat),
			huh.NewInput().
				Title("Minimum cash threshold").
				Description("Runway alerts fire when a forecast drops below this").
				Value(&threshold).
				Validate(validFloat),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("setup aborted: %w", err)
	}

	cfg.General.DataFile = dataFile
	cfg.General.OpeningBalance, _ = strconv.ParseFloat(opening, 64)
	cfg.General.Threshold, _ = strconv.ParseFloat(threshold, 64)

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `flowcast setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}

func validFloat(s string) error {
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("enter a number")
	}
	return nil
}
