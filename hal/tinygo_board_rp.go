//go:build tinygo && baremetal && (rp2040 || rp2350)

package hal

import "machine"

// Raspberry Pi Pico wiring: OLED on GP4 (SDA) / GP5 (SCL), button between
// GP15 and GND. Logs go to UART0 on GP0 (TX) / GP1 (RX), so the protocol must
// stay on USB CDC (the default machine.Serial).
var (
	boardSDA    = machine.GP4
	boardSCL    = machine.GP5
	boardButton = machine.GP15
)

func newBoardLogger() Logger {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	return &uartLogger{uart: uart}
}
