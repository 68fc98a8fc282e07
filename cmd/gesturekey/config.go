package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gesturekey/internal/actions"
	"gesturekey/internal/config"

	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create and check configuration files",
	}
	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigValidateCmd())
	return cmd
}

func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gesturekey", "config.yaml"), nil
}

func newConfigInitCmd() *cobra.Command {
	var (
		force    bool
		resolved bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration",
		Long: `Write the commented default configuration to path (default
$HOME/.config/gesturekey/config.yaml). With --resolved the currently loaded
configuration is written instead.`,
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{configOptional: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if resolved && cfg == nil {
				return fmt.Errorf("no usable configuration loaded, --resolved needs one")
			}

			path := ""
			if len(args) > 0 {
				path = args[0]
			} else {
				var err error
				if path, err = defaultConfigPath(); err != nil {
					return err
				}
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}

			if resolved {
				if err := config.SaveConfig(cfg, path); err != nil {
					return err
				}
			} else {
				if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
					return fmt.Errorf("failed to create config directory: %w", err)
				}
				if err := os.WriteFile(path, config.DefaultYAML(), 0644); err != nil {
					return fmt.Errorf("failed to write config file: %w", err)
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), successText("wrote "+path))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	cmd.Flags().BoolVar(&resolved, "resolved", false, "write the loaded configuration instead of the template")
	return cmd
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the loaded configuration",
		Long:  `Load the configuration (--config or the default location) and report problems.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Loading already validated the file; the table build checks the bindings.
			t, err := actions.FromConfig(cfg)
			if err != nil {
				return err
			}

			enabled := 0
			for m := 0; m < t.Modes(); m++ {
				for c := 0; c < len(config.DirectionKeys); c++ {
					if t.Slot(m, c).Enabled {
						enabled++
					}
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), successText(fmt.Sprintf(
				"configuration valid: %d modes, %d bound actions, source %s, transport %s",
				t.Modes(), enabled, cfg.Sensor.Source, cfg.Transport.Kind)))
			return nil
		},
	}
}
