// Package button turns the toggle button into monitor on/off edges.
package button

import (
	"fmt"

	"oledcpu/hal"
	"oledcpu/monitor"
)

// Toggle is the bit of the monitor on/off button.
const Toggle uint8 = 1 << 0

// Detector samples an active-low button (pressed pulls the pin to ground).
type Detector struct {
	// Pin is nil on boards without a button.
	Pin hal.GPIOPin
}

// New configures pin as a pulled-up input. A nil pin gives a detector that
// never reports a press.
func New(pin hal.GPIOPin) (*Detector, error) {
	if pin != nil {
		if err := pin.Configure(hal.GPIOModeInput, hal.GPIOPullUp); err != nil {
			return nil, fmt.Errorf("button: %w", err)
		}
	}
	return &Detector{Pin: pin}, nil
}

// HasButton reports whether a pin is attached.
func (d *Detector) HasButton() bool { return d != nil && d.Pin != nil }

// Sample returns the button bitfield, 1 = pressed. A failed read counts as
// released.
func (d *Detector) Sample() uint8 {
	if !d.HasButton() {
		return 0
	}
	level, err := d.Pin.Read()
	if err != nil || level {
		return 0
	}
	return Toggle
}

// Update samples the button, toggles st.Enabled on a press edge and returns
// the bits that went from released to pressed.
func (d *Detector) Update(st *monitor.State) uint8 {
	buttons := d.Sample()
	pressed := ^st.PrevButtons & buttons
	if pressed&Toggle != 0 {
		st.Enabled = !st.Enabled
	}
	st.PrevButtons = buttons
	return pressed
}
