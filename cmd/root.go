package cmd

import (
	"fmt"
	"os"
	"time"

	"flowcast/internal/config"
	"flowcast/internal/model"
	"flowcast/internal/pipeline"
	"flowcast/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagFile      string
	flagStart     string
	flagOpening   float64
	flagThreshold float64
	flagScenario  string
	flagNoCache   bool
	flagQuiet     bool
)

var rootCmd = &cobra.Command{
	Use:   "flowcast",
	Short: "13-week cash flow forecasting CLI",
	Long:  "Project cash position over a 13-week horizon from historical transactions: scenarios, sensitivity, and runway.",
	RunE:  runForecast,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "Transaction CSV file (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagStart, "start", "", "Forecast start date, YYYY-MM-DD (default: next Monday)")
	rootCmd.PersistentFlags().Float64VarP(&flagOpening, "opening", "b", 0, "Opening cash balance (default from config)")
	rootCmd.PersistentFlags().Float64VarP(&flagThreshold, "threshold", "t", 0, "Minimum cash threshold (default from config)")
	rootCmd.PersistentFlags().StringVarP(&flagScenario, "scenario", "s", "base", "Scenario: best, base, or worst")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip SQLite cache, reparse the file")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// inputs holds the effective forecast parameters after merging flags
// over the config file.
type inputs struct {
	cfg       config.Config
	file      string
	start     time.Time
	opening   float64
	threshold float64
	scenario  model.Scenario
}

// resolveInputs merges command-line flags over the config file. Flags
// win when set explicitly.
func resolveInputs(cmd *cobra.Command) (inputs, error) {
	cfg, err := config.Load()
	if err != nil {
		return inputs{}, err
	}

	in := inputs{
		cfg:       cfg,
		file:      flagFile,
		opening:   cfg.General.OpeningBalance,
		threshold: cfg.General.Threshold,
		scenario:  model.Scenario(flagScenario),
	}
	if in.file == "" {
		in.file = cfg.General.DataFile
	}
	if cmd.Flags().Changed("opening") {
		in.opening = flagOpening
	}
	if cmd.Flags().Changed("threshold") {
		in.threshold = flagThreshold
	}

	in.start = nextMonday(time.Now())
	if flagStart != "" {
		in.start, err = time.Parse("2006-01-02", flagStart)
		if err != nil {
			return inputs{}, fmt.Errorf("invalid --start date %q: want YYYY-MM-DD", flagStart)
		}
	}

	return in, nil
}

func nextMonday(now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return model.WeekStartOf(today).AddDate(0, 0, 7)
}

// loadData is the shared data loading path used by all commands.
// Uses the SQLite cache when available for fast subsequent runs.
func loadData(in inputs) (*pipeline.LoadResult, error) {
	if in.file == "" {
		return nil, fmt.Errorf("no transaction file: pass --file or run `flowcast setup`")
	}

	if !flagNoCache {
		cache, err := store.Open(pipeline.CachePath())
		if err != nil {
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "  Cache unavailable, parsing directly\n")
			}
		} else {
			defer func() { _ = cache.Close() }()

			result, err := pipeline.LoadWithCache(in.file, cache)
			if err == nil {
				if !flagQuiet && result.FromCache {
					fmt.Fprintf(os.Stderr, "  Loaded %d transactions from cache\n", len(result.Transactions))
				}
				return result, nil
			}
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "  Cache error, falling back to direct parse\n")
			}
		}
	}

	return pipeline.Load(in.file)
}

// saveRun records a forecast invocation in the run history, best-effort.
func saveRun(r store.RunRecord) {
	if flagNoCache {
		return
	}
	cache, err := store.Open(pipeline.CachePath())
	if err != nil {
		return
	}
	defer func() { _ = cache.Close() }()
	_ = cache.SaveRun(r)
}
