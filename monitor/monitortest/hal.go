package monitortest

import (
	"github.com/jonboulle/clockwork"

	"oledcpu/hal"
)

// Logger keeps log lines.
type Logger struct {
	Lines []string
}

func (l *Logger) WriteLineString(s string) { l.Lines = append(l.Lines, s) }
func (l *Logger) WriteLineBytes(b []byte)  { l.Lines = append(l.Lines, string(b)) }

// LED records the link LED.
type LED struct {
	On      bool
	Changes int
}

func (l *LED) High() { l.set(true) }
func (l *LED) Low()  { l.set(false) }

func (l *LED) set(on bool) {
	if l.On != on {
		l.Changes++
	}
	l.On = on
}

// HAL bundles the fakes.
type HAL struct {
	Log  *Logger
	Lamp *LED
	Wire *Wire
	Surf *Surface
	// Pin is nil for the board without a button.
	Pin *hal.VirtualPin
}

// NewHAL returns a HAL with a button on a fresh fake clock.
func NewHAL() (*HAL, clockwork.FakeClock) {
	clock := clockwork.NewFakeClock()
	return &HAL{
		Log:  &Logger{},
		Lamp: &LED{},
		Wire: NewWire(clock),
		Surf: NewSurface(4),
		Pin:  hal.NewButtonPin("BUTTON"),
	}, clock
}

func (h *HAL) Logger() hal.Logger   { return h.Log }
func (h *HAL) LED() hal.LED         { return h.Lamp }
func (h *HAL) Serial() hal.Serial   { return h.Wire }
func (h *HAL) Surface() hal.Surface { return h.Surf }

func (h *HAL) Button() hal.GPIOPin {
	if h.Pin == nil {
		return nil
	}
	return h.Pin
}

// Press drives the button low (pressed) or high (released).
func (h *HAL) Press(pressed bool) {
	if h.Pin == nil {
		panic("monitortest: no button")
	}
	h.Pin.Drive(!pressed)
}
