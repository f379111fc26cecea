package cmd

import (
	"fmt"

	"flowcast/internal/cli"
	"flowcast/internal/forecast"
	"flowcast/internal/model"
	"flowcast/internal/pipeline"

	"github.com/spf13/cobra"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Show the patterns extracted from historical transactions",
	RunE:  runPatterns,
}

func init() {
	rootCmd.AddCommand(patternsCmd)
}

func runPatterns(cmd *cobra.Command, _ []string) error {
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

	fmt.Println()
	fmt.Println(cli.RenderTitle("HISTORICAL PATTERNS"))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"History", fmt.Sprintf("%d weeks", pattern.HistoryWeeks)},
			{"Weekly growth", cli.FormatSignedPercent(pattern.WeeklyGrowthRate)},
			{"Last revenue week", cli.FormatMoney(pattern.LastRevenue)},
		},
	}))

	fmt.Println()
	fmt.Println("  Collection Lag")
	maxShare := 0.0
	for _, share := range pattern.CollectionLag {
		if share > maxShare {
			maxShare = share
		}
	}
	labels := []string{"same week", "1 week", "2 weeks", "3 weeks", "4+ weeks"}
	for lag, share := range pattern.CollectionLag {
		fmt.Printf("  %-11s %-24s %s\n", labels[lag],
			cli.Muted(bar(share, maxShare, 24)),
			cli.FormatPercent(share))
	}

	fmt.Println()
	fmt.Printf("  Seasonality  %s\n", cli.RenderSparkline(pattern.Seasonality[:]))

	fmt.Println()
	fmt.Println("  Weekly Outflows")
	maxOut := 0.0
	for _, amount := range pattern.LastOutflows {
		if amount > maxOut {
			maxOut = amount
		}
	}
	for _, cat := range model.OutflowCategories {
		amount, ok := pattern.LastOutflows[cat]
		if !ok {
			continue
		}
		fmt.Println(cli.RenderHorizontalBar(string(cat), amount, maxOut, 24))
	}

	// Recent history for context.
	weeks := pipeline.AggregateWeeks(result.Transactions)
	if len(weeks) > 8 {
		weeks = weeks[len(weeks)-8:]
	}
	rows := make([][]string, 0, len(weeks))
	for _, w := range weeks {
		rows = append(rows, []string{
			cli.FormatWeek(w.WeekStart),
			cli.FormatMoney(w.Revenue),
			cli.FormatMoney(w.Collections),
			cli.FormatMoney(w.Outflows),
		})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Recent Weeks",
		Headers: []string{"Week", "Revenue", "Collections", "Outflows"},
		Rows:    rows,
	}))
	fmt.Println()

	return nil
}

func bar(value, max float64, width int) string {
	if max <= 0 {
		return ""
	}
	n := int(value / max * float64(width))
	if n < 0 {
		n = 0
	}
	if n > width {
		n = width
	}
	s := make([]byte, 0, n*3)
	for i := 0; i < n; i++ {
		s = append(s, "█"...)
	}
	return string(s)
}
