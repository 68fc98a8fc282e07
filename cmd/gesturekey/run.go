package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"gesturekey/internal/actions"
	"gesturekey/internal/config"
	"gesturekey/internal/engine"
	"gesturekey/internal/errors"
	"gesturekey/internal/hid"
	"gesturekey/internal/irq"
	"gesturekey/internal/log"
	"gesturekey/internal/sensor"
	"gesturekey/internal/status"

	"github.com/spf13/cobra"
)

// NewRunCmd creates the run command
func NewRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Boot the device and translate gestures until interrupted",
		Long: `Boot the device and run the poll loop with the configured sensor source
and HID transport. With the latch source gestures are read from standard
input, one per line (LEFT, far, 3, ...).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runDevice(ctx, cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// closer is implemented by sensors and transports holding OS resources.
type closer interface {
	Close() error
}

func runDevice(ctx context.Context, cfg *config.Config, stdin io.Reader, out io.Writer) error {
	table, err := actions.FromConfig(cfg)
	if err != nil {
		return err
	}

	line := irq.NewLine()
	edge := func() { line.Trigger() }

	src, err := newSensor(ctx, cfg, edge, stdin)
	if err != nil {
		return err
	}
	if c, ok := src.(closer); ok {
		defer c.Close()
	}

	transport, err := newTransport(cfg)
	if err != nil {
		return err
	}
	if c, ok := transport.(closer); ok {
		defer c.Close()
	}

	names := cfg.ModeNames()
	eng, err := engine.New(engine.Deps{
		Sensor:    src,
		Transport: transport,
		Indicator: status.NewTerminal(out, names[:table.Modes()]),
		Interrupt: line,
		Table:     table,
	}, engine.OptionsFromConfig(cfg))
	if err != nil {
		return err
	}

	log.LogWithFields(
		log.F("device", cfg.Device.Name),
		log.F("source", cfg.Sensor.Source),
		log.F("transport", cfg.Transport.Kind),
	).Info("booting")

	if err := eng.Boot(); err != nil {
		if errors.IsFatalSensor(err) {
			fmt.Fprintln(out, errorText("sensor initialization failed, halted"))
			eng.Panic(ctx)
		}
		return err
	}

	if err := eng.Run(ctx); err != nil {
		return err
	}

	stats := eng.Stats()
	fmt.Fprintln(out, infoText(fmt.Sprintf("processed %d gestures, dispatched %d, dropped %d",
		stats.Processed, stats.Dispatched, stats.Dropped)))
	return nil
}

func newSensor(ctx context.Context, cfg *config.Config, edge func(), stdin io.Reader) (sensor.Sensor, error) {
	switch cfg.Sensor.Source {
	case config.SourceFeed:
		return sensor.NewFeedFile(cfg.Sensor.FeedPath, edge), nil
	case config.SourceSerial:
		return sensor.NewSerialSource(cfg.Sensor.SerialPort, cfg.Sensor.Baud, edge), nil
	case config.SourceLatch:
		latch := sensor.NewLatch(edge)
		lines := make(chan string)
		go func() {
			defer close(lines)
			scanner := bufio.NewScanner(stdin)
			for scanner.Scan() {
				select {
				case lines <- scanner.Text():
				case <-ctx.Done():
					return
				}
			}
		}()
		go sensor.Pump(ctx, lines, latch)
		return latch, nil
	default:
		return nil, errors.NewConfigError("unknown sensor source", "sensor.source", errors.InvalidConfig, nil)
	}
}

func newTransport(cfg *config.Config) (hid.Transport, error) {
	switch cfg.Transport.Kind {
	case config.TransportRecorder:
		return hid.NewRecorder(), nil
	case config.TransportLog:
		return hid.NewLogged(hid.NewRecorder(), cfg.Device.Name), nil
	case config.TransportHIDG:
		rw, err := hid.OpenGadget(cfg.Transport.HIDGPath)
		if err != nil {
			return nil, err
		}
		return &loggedGadget{Logged: hid.NewLogged(rw, cfg.Transport.HIDGPath), rw: rw}, nil
	default:
		return nil, errors.NewConfigError("unknown transport kind", "transport.kind", errors.InvalidConfig, nil)
	}
}

// loggedGadget keeps the gadget closable behind the logging decorator.
type loggedGadget struct {
	*hid.Logged
	rw *hid.ReportWriter
}

func (g *loggedGadget) Close() error {
	return g.rw.Close()
}
