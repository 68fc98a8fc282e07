package main

import (
	"fmt"

	"gesturekey/internal/actions"
	"gesturekey/pkg/types"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/gobwas/glob"
	"github.com/spf13/cobra"
)

// NewTableCmd creates the table command
func NewTableCmd() *cobra.Command {
	var modePattern string

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the action table",
		Long:  `Print the key action bound to every direction of every mode.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := glob.Compile(modePattern)
			if err != nil {
				return fmt.Errorf("invalid mode pattern %q: %w", modePattern, err)
			}

			t, err := actions.FromConfig(cfg)
			if err != nil {
				return err
			}

			headers := []string{"#", "MODE"}
			for _, d := range types.Cardinals {
				headers = append(headers, d.String())
			}

			var rows [][]string
			for m := 0; m < t.Modes(); m++ {
				if !g.Match(t.ModeName(m)) {
					continue
				}
				row := []string{fmt.Sprint(m), t.ModeName(m)}
				for _, d := range types.Cardinals {
					row = append(row, t.Lookup(m, d).String())
				}
				rows = append(rows, row)
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), warningText("no mode matches "+modePattern))
				return nil
			}

			out := table.New().
				Border(lipgloss.NormalBorder()).
				Headers(headers...).
				Rows(rows...)
			fmt.Fprintln(cmd.OutOrStdout(), out.Render())
			return nil
		},
	}

	cmd.Flags().StringVarP(&modePattern, "mode", "m", "*", "only show modes whose name matches this glob")
	return cmd
}
