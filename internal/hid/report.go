package hid

import (
	"encoding/binary"
	"io"
	"os"
	"sync"

	"gesturekey/internal/errors"
	"gesturekey/internal/log"
	"gesturekey/pkg/types"
)

// Report IDs of ReportDescriptor.
const (
	KeyboardReportID = 0x01
	ConsumerReportID = 0x02
)

// ReportDescriptor describes a boot-style keyboard (report 1: modifier
// bitmask, reserved byte, six key slots) and a consumer control (report 2:
// one 16-bit usage). It is what a USB gadget must be configured with for
// ReportWriter output to be understood.
var ReportDescriptor = []byte{
	0x05, 0x01, // Usage Page (Generic Desktop Ctrls)
	0x09, 0x06, // Usage (Keyboard)
	0xa1, 0x01, // Collection (Application)
	0x85, 0x01, //   Report ID (1)
	0x05, 0x07, //   Usage Page (Kbrd/Keypad)
	0x19, 0xe0, //   Usage Minimum (0xE0)
	0x29, 0xe7, //   Usage Maximum (0xE7)
	0x15, 0x00, //   Logical Minimum (0)
	0x25, 0x01, //   Logical Maximum (1)
	0x75, 0x01, //   Report Size (1)
	0x95, 0x08, //   Report Count (8)
	0x81, 0x02, //   Input (Data,Var,Abs)
	0x95, 0x01, //   Report Count (1)
	0x75, 0x08, //   Report Size (8)
	0x81, 0x01, //   Input (Const)
	0x95, 0x06, //   Report Count (6)
	0x75, 0x08, //   Report Size (8)
	0x15, 0x00, //   Logical Minimum (0)
	0x25, 0xff, //   Logical Maximum (255)
	0x05, 0x07, //   Usage Page (Kbrd/Keypad)
	0x19, 0x00, //   Usage Minimum (0x00)
	0x29, 0xff, //   Usage Maximum (0xFF)
	0x81, 0x00, //   Input (Data,Array,Abs)
	0xc0, // End Collection
	0x05, 0x0c, // Usage Page (Consumer)
	0x09, 0x01, // Usage (Consumer Control)
	0xa1, 0x01, // Collection (Application)
	0x85, 0x02, //   Report ID (2)
	0x75, 0x10, //   Report Size (16)
	0x95, 0x01, //   Report Count (1)
	0x15, 0x01, //   Logical Minimum (1)
	0x26, 0x9c, 0x02, //   Logical Maximum (668)
	0x19, 0x01, //   Usage Minimum (Consumer Control)
	0x2a, 0x9c, 0x02, //   Usage Maximum (AC Distribute Vertically)
	0x81, 0x00, //   Input (Data,Array,Abs)
	0xc0, // End Collection
}

const maxKeys = 6

// ReportWriter is a Transport that emits raw HID input reports, for example
// to a Linux USB gadget device (/dev/hidg0).
type ReportWriter struct {
	mu        sync.Mutex
	w         io.Writer
	closer    io.Closer
	modifiers uint8
	keys      []types.KeyCode
	connected bool
}

// NewReportWriter writes reports to w.
func NewReportWriter(w io.Writer) *ReportWriter {
	return &ReportWriter{w: w, connected: true}
}

// OpenGadget opens a HID gadget character device for writing.
func OpenGadget(path string) (*ReportWriter, error) {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, errors.NewTransportError("cannot open HID gadget", path, errors.TransportUnavailable, err)
	}
	rw := NewReportWriter(f)
	rw.closer = f
	return rw, nil
}

// Close releases the underlying device, if any.
func (r *ReportWriter) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connected = false
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// IsConnected reports false once a write failed or the writer was closed.
func (r *ReportWriter) IsConnected() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.connected
}

func (r *ReportWriter) Press(key types.KeyCode) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case key == types.KeyNone:
		return
	case key.IsModifier():
		r.modifiers |= 1 << (key - types.KeyLeftCtrl)
	default:
		for _, k := range r.keys {
			if k == key {
				return
			}
		}
		if len(r.keys) >= maxKeys {
			return
		}
		r.keys = append(r.keys, key)
	}
	r.writeKeyboard()
}

func (r *ReportWriter) PressMedia(key types.MediaKey) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writeConsumer(uint16(key))
}

// ReleaseAll clears both reports.
func (r *ReportWriter) ReleaseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modifiers = 0
	r.keys = r.keys[:0]
	r.writeKeyboard()
	r.writeConsumer(0)
}

func (r *ReportWriter) writeKeyboard() {
	report := make([]byte, 3+maxKeys)
	report[0] = KeyboardReportID
	report[1] = r.modifiers
	for i, k := range r.keys {
		report[3+i] = uint8(k)
	}
	r.write(report)
}

func (r *ReportWriter) writeConsumer(usage uint16) {
	report := make([]byte, 3)
	report[0] = ConsumerReportID
	binary.LittleEndian.PutUint16(report[1:], usage)
	r.write(report)
}

func (r *ReportWriter) write(report []byte) {
	if !r.connected {
		return
	}
	if _, err := r.w.Write(report); err != nil {
		r.connected = false
		log.LogWithError(errors.NewTransportError("HID report write failed", "", errors.TransportWriteFailed, err)).Warn("transport disconnected")
	}
}
