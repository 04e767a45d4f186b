package frame

import (
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"oledcpu/hal"
	"oledcpu/monitor"
	"oledcpu/monitor/poll"
)

const (
	// LengthFlag marks a length byte.
	LengthFlag = 0x80
	// CountMask extracts the count from a length byte.
	CountMask = 0x7F

	DefaultTimeout = 1000 * time.Millisecond
)

// Link runs round trips over a serial port.
type Link struct {
	Serial hal.Serial
	// Clock defaults to the real clock.
	Clock clockwork.Clock
	// Timeout applies to the length byte and to all value bytes together.
	// Zero selects DefaultTimeout.
	Timeout time.Duration
	// Idle runs between polls of the port.
	Idle func()
}

func (l *Link) clock() clockwork.Clock {
	if l.Clock == nil {
		return clockwork.NewRealClock()
	}
	return l.Clock
}

func (l *Link) timeout() time.Duration {
	if l.Timeout <= 0 {
		return DefaultTimeout
	}
	return l.Timeout
}

// RoundTrip sends status and reads one frame into dst. dst is written only
// when the whole frame was received.
func (l *Link) RoundTrip(status monitor.StatusBits, dst *monitor.Samples) error {
	clock := l.clock()
	timeout := l.timeout()
	start := clock.Now()

	if err := l.Serial.WriteByte(byte(status)); err != nil {
		return &Error{Phase: PhaseStatus, Err: fmt.Errorf("%w: %w", ErrTransport, err)}
	}

	var (
		length  byte
		readErr error
	)
	found := poll.Until(clock, start.Add(timeout), func() bool {
		for l.Serial.Available() > 0 {
			b, err := l.Serial.ReadByte()
			if err != nil {
				readErr = err
				return true
			}
			if b&LengthFlag != 0 {
				length = b
				return true
			}
		}
		return false
	}, l.Idle)
	if readErr != nil {
		return &Error{Phase: PhaseLength, Elapsed: clock.Since(start), Err: transportErr(readErr)}
	}
	if !found {
		return &Error{Phase: PhaseLength, Elapsed: clock.Since(start), Err: ErrTimeoutOnLength}
	}

	n := int(length & CountMask)
	if n > monitor.MaxCores {
		n = monitor.MaxCores
	}

	var buf [monitor.MaxCores]uint8
	start = clock.Now()
	deadline := start.Add(timeout)
	for i := 0; i < n; i++ {
		if !poll.Until(clock, deadline, func() bool { return l.Serial.Available() > 0 }, l.Idle) {
			return &Error{Phase: PhaseValues, Elapsed: clock.Since(start), Read: i, Want: n, Err: ErrTimeoutOnValues}
		}
		b, err := l.Serial.ReadByte()
		if err != nil {
			return &Error{Phase: PhaseValues, Elapsed: clock.Since(start), Read: i, Want: n, Err: transportErr(err)}
		}
		if b&LengthFlag != 0 {
			return &Error{Phase: PhaseValues, Elapsed: clock.Since(start), Read: i, Want: n, Err: ErrUnexpectedFramingByte}
		}
		buf[i] = b
	}

	dst.Set(buf[:n])
	return nil
}

func transportErr(err error) error {
	if errors.Is(err, ErrTransport) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrTransport, err)
}

// Drain discards everything buffered on s and reports how many bytes it
// dropped.
func Drain(s hal.Serial) int {
	n := 0
	for s.Available() > 0 {
		if _, err := s.ReadByte(); err != nil {
			break
		}
		n++
	}
	return n
}
