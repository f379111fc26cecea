// Package cmd implements the flowcast CLI commands.
package cmd

import (
	"fmt"
	"sort"

	"flowcast/internal/cli"
	"flowcast/internal/config"

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
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	if cfg.General.DataFile != "" {
		fmt.Printf("    Data file:       %s\n", cfg.General.DataFile)
	} else {
		fmt.Println("    Data file:       not set")
	}
	fmt.Printf("    Opening balance: %s\n", cli.FormatMoney(cfg.General.OpeningBalance))
	fmt.Printf("    Threshold:       %s\n", cli.FormatMoney(cfg.General.Threshold))
	fmt.Println()

	if len(cfg.Scenarios) > 0 {
		fmt.Println("  [Scenario Overrides]")
		names := make([]string, 0, len(cfg.Scenarios))
		for name := range cfg.Scenarios {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			o := cfg.Scenarios[name]
			fmt.Printf("    %s:", name)
			if o.RevenueMult != nil {
				fmt.Printf(" revenue=%s", cli.FormatMultiplier(*o.RevenueMult))
			}
			if o.CollectionMult != nil {
				fmt.Printf(" collection=%s", cli.FormatMultiplier(*o.CollectionMult))
			}
			if o.ExpenseMult != nil {
				fmt.Printf(" expense=%s", cli.FormatMultiplier(*o.ExpenseMult))
			}
			fmt.Println()
		}
		fmt.Println()
	}

	fmt.Println("  Run `flowcast setup` to reconfigure.")
	return nil
}
