package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/bandcalc/internal/tui"
)

func main() {
	cmd := &cobra.Command{
		Use:   "bandcalc-tui",
		Short: "Interactive levy and child maintenance calculator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rates, _ := cmd.Flags().GetString("rates")
			input, _ := cmd.Flags().GetString("input")

			for _, path := range []string{rates, input} {
				if path == "" {
					continue
				}
				if _, err := os.Stat(path); os.IsNotExist(err) {
					return fmt.Errorf("file not found: %s", path)
				}
			}

			p := tea.NewProgram(
				tui.NewModel(rates, input),
				tea.WithAltScreen(), // Use alternate screen buffer
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().String("rates", "", "Path to a rate tables file; built-in tables when empty")
	cmd.Flags().String("input", "", "Batch file to run and browse")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
