package frame

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrTimeoutOnLength indicates no length byte arrived in time.
	ErrTimeoutOnLength = errors.New("timeout on length")
	// ErrTimeoutOnValues indicates the value bytes did not all arrive in time.
	ErrTimeoutOnValues = errors.New("timeout on values")
	// ErrUnexpectedFramingByte indicates a byte with the high bit set among
	// the value bytes.
	ErrUnexpectedFramingByte = errors.New("unexpected framing byte")
	// ErrTransport indicates the serial port failed to read or write.
	ErrTransport = errors.New("transport error")
)

// Phase is the step of a round trip an error happened in.
type Phase uint8

const (
	PhaseStatus Phase = iota
	PhaseLength
	PhaseValues
)

func (p Phase) String() string {
	switch p {
	case PhaseStatus:
		return "status"
	case PhaseLength:
		return "length"
	case PhaseValues:
		return "values"
	}
	return fmt.Sprintf("phase(%d)", uint8(p))
}

// Error describes a failed round trip.
type Error struct {
	Phase Phase
	// Elapsed is the time since the phase started.
	Elapsed time.Duration
	// Read is the number of value bytes accepted before the failure.
	Read int
	// Want is the declared value count, once known.
	Want int
	Err  error
}

// Error implements error.
func (e *Error) Error() string {
	if e.Phase == PhaseValues {
		return fmt.Sprintf("frame: %v after %v (%d/%d values)", e.Err, e.Elapsed, e.Read, e.Want)
	}
	return fmt.Sprintf("frame: %v after %v", e.Err, e.Elapsed)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }
