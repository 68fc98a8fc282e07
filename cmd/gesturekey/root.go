package main

import (
	"gesturekey/internal/config"
	"gesturekey/internal/log"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
	jsonLog bool
	logFile string
	cfg     *config.Config
)

// configOptional marks commands that must run even when the configuration
// cannot be loaded.
const configOptional = "gesturekey/config-optional"

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfgFile, debug, jsonLog, logFile, cfg = "", false, false, "", nil

	rootCmd := &cobra.Command{
		Use:   "gesturekey",
		Short: "Turn hand gestures into keyboard and media keys",
		Long: `gesturekey reads swipes from a proximity gesture sensor and types the
keys bound to them on a HID keyboard.

Swipe LEFT, RIGHT, UP or DOWN to run the action of the current mode.
Pull away (FAR) to enter mode selection, browse with LEFT/RIGHT,
confirm with NEAR and leave with FAR again.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts := []log.Option{log.WithOutput(cmd.ErrOrStderr())}
			if jsonLog {
				opts = append(opts, log.WithJSON())
			}
			if logFile != "" {
				opts = append(opts, log.WithFile(logFile))
			}
			log.Configure(opts...)
			log.SetDebug(debug)

			var err error
			if cfgFile != "" {
				cfg, err = config.LoadConfigFile(cfgFile)
			} else {
				cfg, err = config.LoadConfig()
			}
			if err != nil && cmd.Annotations[configOptional] == "true" {
				log.LogWithError(err).Warn("ignoring unusable configuration")
				cfg = nil
				return nil
			}
			return err
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/gesturekey/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "log as JSON")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also append logs to this file")

	// Add subcommands
	rootCmd.AddCommand(NewRunCmd())
	rootCmd.AddCommand(NewSimCmd())
	rootCmd.AddCommand(NewReplayCmd())
	rootCmd.AddCommand(NewTableCmd())
	rootCmd.AddCommand(NewKeysCmd())
	rootCmd.AddCommand(NewConfigCmd())

	return rootCmd
}
