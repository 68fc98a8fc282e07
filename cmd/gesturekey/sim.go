package main

import (
	"gesturekey/internal/actions"
	"gesturekey/internal/engine"
	"gesturekey/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// NewSimCmd creates the interactive simulator command
func NewSimCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sim",
		Short: "Drive a simulated device from the keyboard",
		Long: `Start an interactive simulator. Arrow keys swipe, n is NEAR, f is FAR,
c toggles the keyboard connection and q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := actions.FromConfig(cfg)
			if err != nil {
				return err
			}
			model, err := tui.New(cfg.Device.Name, table, engine.OptionsFromConfig(cfg))
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(model, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout())).Run()
			return err
		},
	}
}
