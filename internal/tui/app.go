// Package tui provides the interactive Bubble Tea dashboard for flowcast.
package tui

import (
	"fmt"
	"strings"
	"time"

	"flowcast/internal/cli"
	"flowcast/internal/forecast"
	"flowcast/internal/model"
	"flowcast/internal/pipeline"
	"flowcast/internal/store"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DataLoadedMsg is sent when the data pipeline finishes.
type DataLoadedMsg struct {
	Transactions []model.Transaction
	Err          error
	LoadTime     time.Duration
}

var tabs = []string{"Forecast", "Scenarios", "Sensitivity"}

// App is the root Bubble Tea model.
type App struct {
	// Inputs
	file      string
	start     time.Time
	opening   float64
	threshold float64
	useCache  bool

	// Data
	loaded   bool
	loadErr  error
	loadTime time.Duration

	// Pre-computed after load
	pattern     model.PatternSummary
	comparisons []forecast.ScenarioForecast
	runways     []model.RunwayResult
	sensitivity []model.SensitivityResult

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	spinner   spinner.Model
}

const minTerminalWidth = 72

// NewApp creates a new TUI app model.
func NewApp(file string, start time.Time, opening, threshold float64, useCache bool) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(cli.ColorAccent)

	return App{
		file:      file,
		start:     start,
		opening:   opening,
		threshold: threshold,
		useCache:  useCache,
		spinner:   sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		loadDataCmd(a.file, a.useCache),
		a.spinner.Tick,
	)
}

// loadDataCmd runs the data pipeline, preferring the SQLite cache.
func loadDataCmd(file string, useCache bool) tea.Cmd {
	return func() tea.Msg {
		begin := time.Now()

		if useCache {
			cache, err := store.Open(pipeline.CachePath())
			if err == nil {
				result, loadErr := pipeline.LoadWithCache(file, cache)
				_ = cache.Close()
				if loadErr == nil {
					return DataLoadedMsg{Transactions: result.Transactions, LoadTime: time.Since(begin)}
				}
			}
		}

		result, err := pipeline.Load(file)
		if err != nil {
			return DataLoadedMsg{Err: err, LoadTime: time.Since(begin)}
		}
		return DataLoadedMsg{Transactions: result.Transactions, LoadTime: time.Since(begin)}
	}
}

func (a *App) recompute(txs []model.Transaction) error {
	pattern, err := forecast.ExtractPatterns(txs)
	if err != nil {
		return err
	}
	a.pattern = pattern

	a.comparisons, err = forecast.CompareScenarios(a.start, a.opening, pattern)
	if err != nil {
		return err
	}

	a.runways = a.runways[:0]
	for _, sf := range a.comparisons {
		runway, err := forecast.Runway(sf.Table, a.threshold)
		if err != nil {
			return err
		}
		a.runways = append(a.runways, runway)
	}

	base, err := forecast.MultipliersFor(model.ScenarioBase)
	if err != nil {
		return err
	}
	a.sensitivity = forecast.AnalyzeSensitivity(a.start, a.opening, pattern, base, forecast.DefaultPerturbation)

	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" || key == "q" {
			return a, tea.Quit
		}
		if !a.loaded {
			return a, nil
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "1", "f":
			a.activeTab = 0
		case "2", "s":
			a.activeTab = 1
		case "3", "x":
			a.activeTab = 2
		case "left", "h":
			a.activeTab = (a.activeTab - 1 + len(tabs)) % len(tabs)
		case "right", "l", "tab":
			a.activeTab = (a.activeTab + 1) % len(tabs)
		}
		return a, nil

	case DataLoadedMsg:
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.loadErr = msg.Err
		if a.loadErr == nil {
			a.loadErr = a.recompute(msg.Transactions)
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminal too narrow (%d cols, need %d).\n", a.width, minTerminalWidth)
	}
	if !a.loaded {
		return fmt.Sprintf("\n\n  %s Loading %s...\n", a.spinner.View(), a.file)
	}
	if a.loadErr != nil {
		return fmt.Sprintf("\n  %s\n\n  Press q to quit.\n", cli.Negative(a.loadErr.Error()))
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewHelp() string {
	var b strings.Builder
	b.WriteString("\n  Keyboard Shortcuts\n\n")
	bindings := []struct{ key, desc string }{
		{"1 2 3", "Jump to tab"},
		{"← → tab", "Previous / Next tab"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %-10s %s\n", bind.key, cli.Muted(bind.desc))
	}
	b.WriteString("\n  ")
	b.WriteString(cli.Muted("Press any key to close"))
	b.WriteString("\n")
	return b.String()
}

func (a App) renderTabBar() string {
	activeStyle := lipgloss.NewStyle().Foreground(cli.ColorAccent).Bold(true)
	inactiveStyle := lipgloss.NewStyle().Foreground(cli.ColorTextMuted)

	parts := make([]string, len(tabs))
	for i, name := range tabs {
		label := fmt.Sprintf(" %d:%s ", i+1, name)
		if i == a.activeTab {
			parts[i] = activeStyle.Render(label)
		} else {
			parts[i] = inactiveStyle.Render(label)
		}
	}
	return "  " + strings.Join(parts, cli.Muted("│"))
}

func (a App) viewMain() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(a.renderTabBar())
	b.WriteString("\n\n")

	switch a.activeTab {
	case 0:
		b.WriteString(a.renderForecastTab())
	case 1:
		b.WriteString(a.renderScenariosTab())
	case 2:
		b.WriteString(a.renderSensitivityTab())
	}

	b.WriteString("\n  ")
	b.WriteString(cli.Muted(fmt.Sprintf("%s · loaded in %.2fs · ? for help · q to quit",
		a.file, a.loadTime.Seconds())))
	b.WriteString("\n")
	return b.String()
}

// baseForecast returns the base scenario table from the comparison set.
func (a App) baseForecast() model.ForecastTable {
	for _, sf := range a.comparisons {
		if sf.Scenario == model.ScenarioBase {
			return sf.Table
		}
	}
	return model.ForecastTable{}
}

func (a App) renderForecastTab() string {
	table := a.baseForecast()

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

	var b strings.Builder
	b.WriteString(cli.RenderTable(cli.Table{
		Title:   "Base Scenario",
		Headers: []string{"Week", "Start", "Inflows", "Outflows", "Net", "Balance"},
		Rows:    rows,
	}))

	for i, sf := range a.comparisons {
		if sf.Scenario != model.ScenarioBase {
			continue
		}
		runway := a.runways[i]
		b.WriteString("\n  ")
		if runway.CrossingPeriod != nil {
			b.WriteString(cli.Warn(runway.Message))
		} else {
			b.WriteString(cli.Positive(runway.Message))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (a App) renderScenariosTab() string {
	rows := make([][]string, 0, len(a.comparisons))
	for i, sf := range a.comparisons {
		crossing := "-"
		if a.runways[i].CrossingPeriod != nil {
			crossing = fmt.Sprintf("W%d", *a.runways[i].CrossingPeriod+1)
		}
		rows = append(rows, []string{
			string(sf.Scenario),
			cli.FormatMoney(sf.Table.TotalInflows()),
			cli.FormatMoney(sf.Table.TotalOutflows()),
			cli.FormatMoney(sf.Table.FinalBalance()),
			crossing,
		})
	}

	var b strings.Builder
	b.WriteString(cli.RenderTable(cli.Table{
		Title:   "13-Week Outcomes",
		Headers: []string{"Scenario", "Inflows", "Outflows", "Final", "Below Min"},
		Rows:    rows,
	}))
	b.WriteString("\n")

	for _, sf := range a.comparisons {
		balances := make([]float64, len(sf.Table.Rows))
		for i, r := range sf.Table.Rows {
			balances[i] = r.EndingBalance
		}
		b.WriteString(fmt.Sprintf("  %-6s %s  %s\n", sf.Scenario,
			cli.RenderSparkline(balances),
			cli.FormatMoney(sf.Table.FinalBalance())))
	}
	return b.String()
}

func (a App) renderSensitivityTab() string {
	baseline := a.baseForecast()

	rows := make([][]string, 0, len(a.sensitivity)+2)
	for _, r := range a.sensitivity {
		rows = append(rows, []string{
			string(r.Driver),
			cli.FormatSignedPercent(r.Perturbation),
			cli.FormatMoney(r.EndingBalance),
			cli.FormatMoneyDelta(r.DollarDelta),
			fmt.Sprintf("%+.1f%%", r.PercentDelta),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"baseline", "", cli.FormatMoney(baseline.FinalBalance()), "", ""})

	return cli.RenderTable(cli.Table{
		Title:   "Driver Sensitivity (base scenario, ±20%)",
		Headers: []string{"Driver", "Swing", "Final Balance", "Delta", "Delta %"},
		Rows:    rows,
	})
}
