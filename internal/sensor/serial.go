package sensor

import (
	"bufio"
	"context"
	"io"

	"github.com/tarm/serial"

	"gesturekey/internal/errors"
	"gesturekey/internal/log"
)

// SerialSource is a sensor fed by a microcontroller that prints one gesture
// per line on a serial port.
type SerialSource struct {
	*Latch
	config *serial.Config
	port   io.ReadCloser
	cancel context.CancelFunc
	open   func(*serial.Config) (io.ReadCloser, error)
}

// NewSerialSource creates a sensor reading name at baud. Init opens the port.
func NewSerialSource(name string, baud int, edge func()) *SerialSource {
	return &SerialSource{
		Latch: NewLatch(edge),
		config: &serial.Config{
			Name:        name,
			Baud:        baud,
			ReadTimeout: 0,
		},
		open: func(c *serial.Config) (io.ReadCloser, error) {
			return serial.OpenPort(c)
		},
	}
}

// Init opens the port and starts reading lines from it.
func (s *SerialSource) Init() error {
	if err := s.Latch.Init(); err != nil {
		return err
	}
	port, err := s.open(s.config)
	if err != nil {
		return errors.NewSensorError("cannot open serial port "+s.config.Name, "init", errors.SensorInitFailed, err)
	}
	s.port = port

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	lines := make(chan string, 16)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(port)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil && ctx.Err() == nil {
			readErr := errors.NewSensorError("serial read failed", "read", errors.SensorReadFailed, err)
			log.LogWithError(readErr).With(log.F("port", s.config.Name)).Error("gesture reader stopped")
		}
	}()
	go Pump(ctx, lines, s.Latch)

	log.LogWithFields(log.F("port", s.config.Name), log.F("baud", s.config.Baud)).Info("Reading gestures from serial port")
	return nil
}

// Close stops reading and closes the port.
func (s *SerialSource) Close() error {
	if s.cancel != nil {
		s.cancel()
	}
	if s.port != nil {
		return s.port.Close()
	}
	return nil
}
