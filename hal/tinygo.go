//go:build tinygo && baremetal

package hal

import (
	"machine"

	"tinygo.org/x/drivers/ssd1306"
)

type tinyGoHAL struct {
	logger Logger
	led    *pinLED
	serial *machineSerial
	canvas *Canvas
	button GPIOPin
}

// New returns the firmware HAL.
//
// Protocol: machine.Serial (USB CDC on most boards), 115200 8N1.
// Display: SSD1306 128x32 at 0x3C on I2C0, drawn in 8-row pages.
// Button: active low with the internal pull-up, on boards that wire one.
func New() HAL {
	machine.Serial.Configure(machine.UARTConfig{BaudRate: 115200})
	logger := newBoardLogger()

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	i2c := machine.I2C0
	if err := i2c.Configure(machine.I2CConfig{
		Frequency: 400_000,
		SDA:       boardSDA,
		SCL:       boardSCL,
	}); err != nil {
		Logf(logger, "i2c: %v", err)
	}
	oled := ssd1306.NewI2C(i2c)
	oled.Configure(ssd1306.Config{
		Address: 0x3C,
		Width:   128,
		Height:  32,
	})
	oled.ClearDisplay()

	h := &tinyGoHAL{
		logger: logger,
		led:    &pinLED{pin: ledPin},
		serial: &machineSerial{s: machine.Serial},
		canvas: NewCanvas(oled, DefaultPageRows),
	}
	if boardButton != machine.NoPin {
		h.button = &machinePin{name: "BUTTON", pin: boardButton}
	}
	return h
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) LED() LED         { return h.led }
func (h *tinyGoHAL) Serial() Serial   { return h.serial }
func (h *tinyGoHAL) Surface() Surface { return h.canvas }
func (h *tinyGoHAL) Button() GPIOPin  { return h.button }
