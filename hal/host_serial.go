//go:build !tinygo

package hal

import (
	"fmt"
	"io"

	"github.com/tarm/serial"
)

// DefaultBaud is the link speed of the firmware.
const DefaultBaud = 115200

// OpenSerialPort opens a tty (a USB adapter, or one end of a pty pair) for
// the simulator. Reads block until data arrives.
func OpenSerialPort(name string, baud int) (io.ReadWriteCloser, error) {
	if name == "" {
		return nil, fmt.Errorf("serial: empty port name")
	}
	if baud <= 0 {
		baud = DefaultBaud
	}
	port, err := serial.OpenPort(&serial.Config{Name: name, Baud: baud})
	if err != nil {
		return nil, fmt.Errorf("serial: open %s: %w", name, err)
	}
	return port, nil
}
