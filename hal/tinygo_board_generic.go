//go:build tinygo && baremetal && !rp2040 && !rp2350

package hal

import "machine"

// Unknown boards use the default I2C pins and have no button; the status byte
// is then always 0x00. Logging is off because the only UART may carry the
// protocol.
var (
	boardSDA    machine.Pin
	boardSCL    machine.Pin
	boardButton = machine.NoPin
)

func newBoardLogger() Logger { return nullLogger{} }
