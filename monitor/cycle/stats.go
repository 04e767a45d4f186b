package cycle

import (
	"errors"
	"fmt"

	"oledcpu/monitor/frame"
)

// Stats counts what the loop has done since it started.
type Stats struct {
	Cycles    uint64
	Successes uint64

	TimeoutsOnLength uint64
	TimeoutsOnValues uint64
	Misframes        uint64
	TransportErrors  uint64
	Panics           uint64

	// Flushed counts input bytes dropped while recovering.
	Flushed uint64
}

// Failures returns the number of failed cycles.
func (s Stats) Failures() uint64 {
	return s.TimeoutsOnLength + s.TimeoutsOnValues + s.Misframes + s.TransportErrors + s.Panics
}

func (s *Stats) count(err error) {
	switch {
	case errors.Is(err, ErrPanic):
		s.Panics++
	case errors.Is(err, frame.ErrTimeoutOnLength):
		s.TimeoutsOnLength++
	case errors.Is(err, frame.ErrTimeoutOnValues):
		s.TimeoutsOnValues++
	case errors.Is(err, frame.ErrUnexpectedFramingByte):
		s.Misframes++
	default:
		s.TransportErrors++
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("cycles=%d ok=%d length=%d values=%d misframe=%d transport=%d panic=%d flushed=%d",
		s.Cycles, s.Successes, s.TimeoutsOnLength, s.TimeoutsOnValues, s.Misframes,
		s.TransportErrors, s.Panics, s.Flushed)
}
