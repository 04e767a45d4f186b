// Package monitortest provides scripted collaborators for monitor tests: a
// serial peer on a fake clock, a recording display surface and a HAL that
// bundles them.
package monitortest

import (
	"sort"
	"time"

	"github.com/jonboulle/clockwork"

	"oledcpu/hal"
)

type timedByte struct {
	at time.Time
	b  byte
}

// Wire is a scripted serial peer. Queued bytes become readable once the fake
// clock reaches their arrival time.
type Wire struct {
	Clock clockwork.FakeClock

	// Written records every byte the device wrote.
	Written []byte
	// OnWrite runs after each written byte, e.g. to answer a status byte.
	OnWrite func(b byte)
	// WriteErr and ReadErr make the port fail.
	WriteErr error
	ReadErr  error

	queue []timedByte
}

// NewWire returns a wire on clock.
func NewWire(clock clockwork.FakeClock) *Wire {
	return &Wire{Clock: clock}
}

// Send queues bs to arrive after d from now.
func (w *Wire) Send(d time.Duration, bs ...byte) {
	w.SendAt(w.Clock.Now().Add(d), bs...)
}

// SendAt queues bs to arrive at t.
func (w *Wire) SendAt(t time.Time, bs ...byte) {
	for _, b := range bs {
		w.queue = append(w.queue, timedByte{at: t, b: b})
	}
	sort.SliceStable(w.queue, func(i, j int) bool { return w.queue[i].at.Before(w.queue[j].at) })
}

// Pending reports queued bytes, arrived or not.
func (w *Wire) Pending() int { return len(w.queue) }

func (w *Wire) Available() int {
	now := w.Clock.Now()
	n := 0
	for _, tb := range w.queue {
		if tb.at.After(now) {
			break
		}
		n++
	}
	return n
}

func (w *Wire) ReadByte() (byte, error) {
	if w.ReadErr != nil {
		return 0, w.ReadErr
	}
	if w.Available() == 0 {
		return 0, hal.ErrNoData
	}
	b := w.queue[0].b
	w.queue = w.queue[1:]
	return b, nil
}

func (w *Wire) WriteByte(b byte) error {
	if w.WriteErr != nil {
		return w.WriteErr
	}
	w.Written = append(w.Written, b)
	if w.OnWrite != nil {
		w.OnWrite(b)
	}
	return nil
}
