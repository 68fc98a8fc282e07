package main

import (
	"fmt"

	"gesturekey/pkg/types"

	"github.com/spf13/cobra"
)

// NewKeysCmd creates the keys command
func NewKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys [GLOB]",
		Short: "List key and media key names usable in the config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := ""
			if len(args) > 0 {
				pattern = args[0]
			}
			names, err := types.MatchKeyNames(pattern)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, n := range names {
				kind := "key"
				if n.Media {
					kind = "media"
				}
				fmt.Fprintf(out, "%-14s %-5s 0x%04X\n", n.Name, kind, n.Code)
			}
			return nil
		},
	}
}
