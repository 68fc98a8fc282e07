// Package errors provides standardized error handling for gesturekey.
// It defines the error kinds of the boot, configuration and I/O paths and
// helpers for consistent creation, wrapping and classification.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Sensor error kinds
	SensorInitFailed
	SensorConfigFailed
	SensorReadFailed
	// Config error kinds
	InvalidConfig
	ConfigNotFound
	// Transport error kinds
	TransportUnavailable
	TransportWriteFailed
	// Interrupt error kinds
	InterruptAttachFailed
)

// ErrNotConnected is reported when a gesture arrives with no host attached.
var ErrNotConnected = NewTransportError("transport not connected", "", TransportUnavailable, nil)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// SensorError represents errors raised while talking to the gesture sensor
type SensorError struct {
	ApplicationError
	op string
}

// NewSensorError creates a new sensor error
func NewSensorError(msg string, op string, kind ErrorKind, err error) *SensorError {
	return &SensorError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		op: op,
	}
}

// Error returns the sensor error message
func (e *SensorError) Error() string {
	if e.op != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: op=%s: %v", e.msg, e.op, e.err)
		}
		return fmt.Sprintf("%s: op=%s", e.msg, e.op)
	}
	return e.ApplicationError.Error()
}

// Op returns the sensor operation that failed
func (e *SensorError) Op() string {
	return e.op
}

// Fatal reports whether the device cannot operate after this error.
func (e *SensorError) Fatal() bool {
	return e.kind == SensorInitFailed
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// TransportError represents errors opening or writing the HID transport
type TransportError struct {
	ApplicationError
	target string
}

// NewTransportError creates a new transport error
func NewTransportError(msg string, target string, kind ErrorKind, err error) *TransportError {
	return &TransportError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		target: target,
	}
}

// Error returns the transport error message
func (e *TransportError) Error() string {
	if e.target != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.target, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.target)
	}
	return e.ApplicationError.Error()
}

// Target returns the device or path of the transport
func (e *TransportError) Target() string {
	return e.target
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// KindOf returns the kind of the first kinded error in err's chain, or
// Unknown.
func KindOf(err error) ErrorKind {
	var kinded interface{ Kind() ErrorKind }
	if errors.As(err, &kinded) {
		return kinded.Kind()
	}
	return Unknown
}

// IsFatalSensor checks if the error is a sensor initialization failure
func IsFatalSensor(err error) bool {
	var sensorErr *SensorError
	if errors.As(err, &sensorErr) {
		return sensorErr.Fatal()
	}
	return false
}

// IsDegradedSensor checks if the error is a non-fatal sensor configuration failure
func IsDegradedSensor(err error) bool {
	var sensorErr *SensorError
	if errors.As(err, &sensorErr) {
		return sensorErr.Kind() == SensorConfigFailed
	}
	return false
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}

// IsConfigNotFound checks if the error is a missing configuration file error
func IsConfigNotFound(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == ConfigNotFound
	}
	return false
}

// IsTransportError checks if the error is a transport error
func IsTransportError(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
