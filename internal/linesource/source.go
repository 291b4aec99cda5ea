package linesource

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/habibiefaried/fountain-relay/internal/config"
	"go.bug.st/serial"
)

// MaxLineLength bounds a single message; longer lines fail the read.
const MaxLineLength = 64 * 1024

// Source yields successive lines from a device.
type Source interface {
	Next() (string, error)
	Close() error
}

// DeviceError reports a failure to open or read the device.
type DeviceError struct {
	Device string
	Op     string
	Err    error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("device %s: %s: %v", e.Device, e.Op, e.Err)
}

func (e *DeviceError) Unwrap() error { return e.Err }

// SerialSource is a line-oriented reader over a byte stream.
// Next must not be called concurrently; Close may be.
type SerialSource struct {
	name      string
	rc        io.ReadCloser
	sc        *bufio.Scanner
	closeOnce sync.Once
	closeErr  error
}

// Open opens the serial device in 8N1 mode at the configured baud rate.
func Open(cfg config.SerialConfig) (*SerialSource, error) {
	mode := &serial.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(cfg.Device, mode)
	if err != nil {
		return nil, &DeviceError{Device: cfg.Device, Op: "open", Err: err}
	}
	return NewScanner(port, cfg.Device), nil
}

// NewScanner wraps an already open stream. name is used in errors.
func NewScanner(rc io.ReadCloser, name string) *SerialSource {
	sc := bufio.NewScanner(rc)
	sc.Buffer(make([]byte, 0, 4096), MaxLineLength)
	return &SerialSource{name: name, rc: rc, sc: sc}
}

// Next blocks until a complete line is read and returns it with leading and
// trailing whitespace removed.
func (s *SerialSource) Next() (string, error) {
	if s.sc.Scan() {
		return strings.TrimSpace(s.sc.Text()), nil
	}
	err := s.sc.Err()
	if err == nil {
		err = io.EOF
	}
	return "", &DeviceError{Device: s.name, Op: "read", Err: err}
}

// Close releases the device. Safe to call multiple times.
func (s *SerialSource) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.rc.Close()
	})
	return s.closeErr
}
