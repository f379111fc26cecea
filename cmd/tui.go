package cmd

import (
	"fmt"

	"flowcast/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive forecast dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	in, err := resolveInputs(cmd)
	if err != nil {
		return err
	}
	if in.file == "" {
		return fmt.Errorf("no transaction file: pass --file or run `flowcast setup`")
	}

	// Force TrueColor profile so background styling produces ANSI codes
	// even when the terminal reports a conservative default.
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(in.file, in.start, in.opening, in.threshold, !flagNoCache)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
