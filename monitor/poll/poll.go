// Package poll implements deadline-based busy waiting.
package poll

import (
	"runtime"
	"time"

	"github.com/jonboulle/clockwork"
)

// Until evaluates cond until it returns true or the clock passes deadline.
// cond is checked before the deadline, so a condition that holds exactly at
// the deadline still succeeds. idle runs between polls; nil yields the
// processor.
func Until(clock clockwork.Clock, deadline time.Time, cond func() bool, idle func()) bool {
	if idle == nil {
		idle = runtime.Gosched
	}
	for {
		if cond() {
			return true
		}
		if clock.Now().After(deadline) {
			return false
		}
		idle()
	}
}

// Wait spins until the clock passes d from now.
func Wait(clock clockwork.Clock, d time.Duration, idle func()) {
	Until(clock, clock.Now().Add(d), func() bool { return false }, idle)
}

// Stepper returns an idle func that advances a fake clock by step per call.
func Stepper(clock clockwork.FakeClock, step time.Duration) func() {
	return func() { clock.Advance(step) }
}
