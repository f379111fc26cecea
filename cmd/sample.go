package cmd

import (
	"fmt"
	"time"

	"flowcast/internal/ingest"

	"github.com/spf13/cobra"
)

var (
	flagSampleOut  string
	flagSampleSeed int64
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Generate a sample transaction CSV to try flowcast with",
	RunE:  runSample,
}

func init() {
	sampleCmd.Flags().StringVarP(&flagSampleOut, "out", "o", "sample.csv", "Output file path")
	sampleCmd.Flags().Int64Var(&flagSampleSeed, "seed", 1, "Random seed")
	rootCmd.AddCommand(sampleCmd)
}

func runSample(_ *cobra.Command, _ []string) error {
	// History ends just before the default forecast start.
	start := nextMonday(time.Now()).AddDate(0, 0, -7*ingest.SampleWeeks)

	txs := ingest.SampleTransactions(start, flagSampleSeed)
	if err := ingest.WriteCSV(flagSampleOut, txs); err != nil {
		return fmt.Errorf("writing sample file: %w", err)
	}

	fmt.Printf("\n  Wrote %d transactions (%d weeks) to %s\n", len(txs), ingest.SampleWeeks, flagSampleOut)
	fmt.Printf("  Try: flowcast --file %s\n\n", flagSampleOut)
	return nil
}
