package main

import (
	"fmt"
	"strings"
	"time"

	"gesturekey/internal/actions"
	"gesturekey/internal/engine"
	"gesturekey/internal/errors"
	"gesturekey/internal/hid"
	"gesturekey/internal/irq"
	"gesturekey/internal/sensor"
	"gesturekey/internal/status"

	"github.com/spf13/cobra"
)

// NewReplayCmd creates the replay command
func NewReplayCmd() *cobra.Command {
	var disconnected bool

	cmd := &cobra.Command{
		Use:   "replay GESTURE...",
		Short: "Run a gesture sequence and print the resulting key events",
		Long: `Run gestures through the full pipeline against an in-memory keyboard and
print the HID calls and mode state after each one. Gestures are direction
names (left, right, up, down, near, far, none) or raw sensor codes.`,
		Example: "  gesturekey replay far right right near far up",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codes := make([]int, len(args))
			for i, arg := range args {
				code, ok := sensor.ParseGesture(arg)
				if !ok {
					return errors.Newf("unknown gesture %q", arg)
				}
				codes[i] = code
			}

			table, err := actions.FromConfig(cfg)
			if err != nil {
				return err
			}

			line := irq.NewLine()
			latch := sensor.NewLatch(func() { line.Trigger() })
			keyboard := hid.NewRecorder()
			keyboard.SetConnected(!disconnected)
			eng, err := engine.New(engine.Deps{
				Sensor:    latch,
				Transport: keyboard,
				Indicator: &status.Recorder{},
				Interrupt: line,
				Table:     table,
			}, engine.OptionsFromConfig(cfg))
			if err != nil {
				return err
			}
			eng.SetSleep(func(time.Duration) {})
			if err := eng.Boot(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, code := range codes {
				latch.Push(code)
				eng.Step()

				st := eng.Stats().Mode
				state := fmt.Sprintf("mode %d (%s)", st.Current, table.ModeName(st.Current))
				if st.Selecting {
					state += fmt.Sprintf(" selecting %d (%s)", st.Selected, table.ModeName(st.Selected))
				}
				calls := keyboard.Strings()
				keyboard.Reset()
				if len(calls) == 0 {
					calls = []string{"-"}
				}
				fmt.Fprintf(out, "%-6s %-40s %s\n", strings.ToUpper(args[i]), strings.Join(calls, ", "), infoText(state))
			}

			stats := eng.Stats()
			fmt.Fprintf(out, "%s\n", headerText(fmt.Sprintf(
				"processed %d  dispatched %d  ignored %d  dropped %d",
				stats.Processed, stats.Dispatched, stats.Ignored, stats.Dropped)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&disconnected, "disconnected", false, "replay with the keyboard disconnected")
	return cmd
}
