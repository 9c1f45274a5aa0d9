// Package serial abstracts the host-side serial link to a board running
// the firmware examples.
package serial

import (
	"io"
)

// Port is a byte-stream serial connection. Implementations exist for
// native ports (tarm/serial) and for in-memory test doubles.
type Port interface {
	io.ReadWriteCloser
}

// Config holds serial port configuration.
type Config struct {
	// Device path, e.g. "/dev/ttyACM0" or "COM3".
	Device string

	// Baud rate. The firmware examples run their USART at 9600.
	Baud int

	// Read timeout in milliseconds (0 = blocking).
	ReadTimeout int
}

// DefaultConfig returns the configuration matching the firmware examples.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        9600,
		ReadTimeout: 100,
	}
}
