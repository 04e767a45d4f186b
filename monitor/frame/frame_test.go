package frame

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"oledcpu/monitor"
	"oledcpu/monitor/monitortest"
	"oledcpu/monitor/poll"
)

const ms = time.Millisecond

func newLink() (*Link, *monitortest.Wire, clockwork.FakeClock) {
	clock := clockwork.NewFakeClock()
	wire := monitortest.NewWire(clock)
	return &Link{
		Serial: wire,
		Clock:  clock,
		Idle:   poll.Stepper(clock, ms),
	}, wire, clock
}

func prefilled(values ...uint8) *monitor.Samples {
	var s monitor.Samples
	s.Set(values)
	return &s
}

func TestRoundTripDecodes(t *testing.T) {
	cases := []struct {
		name   string
		input  []byte
		expect []uint8
	}{
		{"four cores", []byte{0x84, 0x10, 0x20, 0x30, 0x7F}, []uint8{16, 32, 48, 127}},
		{"three cores", []byte{0x83, 0x10, 0x20, 0x30}, []uint8{16, 32, 48}},
		{"single", []byte{0x81, 0x00}, []uint8{0}},
		{"empty", []byte{0x80}, []uint8{}},
		{"leading noise", []byte{0x01, 0x7F, 0x00, 0x82, 0x05, 0x06}, []uint8{5, 6}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			link, wire, _ := newLink()
			wire.Send(10*ms, c.input...)
			dst := prefilled(1, 2, 3, 4, 5, 6, 7, 8)
			require.NoError(t, link.RoundTrip(monitor.StatusMonitorOn, dst))
			require.Equal(t, len(c.expect), dst.N)
			require.Equal(t, c.expect, dst.Slice())
			require.Equal(t, []byte{0x01}, wire.Written)
		})
	}
}

func TestRoundTripClampsCount(t *testing.T) {
	link, wire, _ := newLink()
	values := make([]uint8, 40)
	for i := range values {
		values[i] = uint8(i + 1)
	}
	wire.Send(0, Encode(values)...)

	var dst monitor.Samples
	require.NoError(t, link.RoundTrip(0, &dst))
	require.Equal(t, monitor.MaxCores, dst.N)
	require.Equal(t, values[:monitor.MaxCores], dst.Slice())
	require.Equal(t, 40-monitor.MaxCores, wire.Pending())
}

func TestRoundTripStatusByte(t *testing.T) {
	for _, status := range []monitor.StatusBits{0x00, monitor.StatusMonitorOn} {
		link, wire, _ := newLink()
		wire.Send(0, 0x80)
		require.NoError(t, link.RoundTrip(status, &monitor.Samples{}))
		require.Equal(t, []byte{byte(status)}, wire.Written)
	}
}

func TestRoundTripLengthTimeout(t *testing.T) {
	link, wire, clock := newLink()
	start := clock.Now()
	wire.Send(1002*ms, 0x81, 0x01)

	dst := prefilled(9, 9)
	err := link.RoundTrip(0, dst)
	require.ErrorIs(t, err, ErrTimeoutOnLength)

	var ferr *Error
	require.True(t, errors.As(err, &ferr))
	require.Equal(t, PhaseLength, ferr.Phase)
	require.True(t, ferr.Elapsed > DefaultTimeout)
	require.True(t, clock.Since(start) < 1002*ms)
	require.Equal(t, []uint8{9, 9}, dst.Slice())
}

func TestRoundTripLengthAt999(t *testing.T) {
	link, wire, _ := newLink()
	wire.Send(999*ms, 0x81, 0x2A)

	var dst monitor.Samples
	require.NoError(t, link.RoundTrip(0, &dst))
	require.Equal(t, []uint8{42}, dst.Slice())
}

func TestRoundTripNoiseOnlyTimesOut(t *testing.T) {
	link, wire, _ := newLink()
	wire.Send(100*ms, 0x10, 0x20)
	wire.Send(900*ms, 0x30)

	err := link.RoundTrip(0, &monitor.Samples{})
	require.ErrorIs(t, err, ErrTimeoutOnLength)
	require.Zero(t, wire.Pending())
}

func TestRoundTripValuesShareDeadline(t *testing.T) {
	link, wire, clock := newLink()
	wire.Send(500*ms, 0x83)
	// Each value is inside 1000ms of the previous one, but the last lands
	// after the shared deadline measured from the length byte.
	wire.Send(1000*ms, 0x01)
	wire.Send(1400*ms, 0x02)
	wire.Send(1600*ms, 0x03)

	dst := prefilled(7)
	start := clock.Now()
	err := link.RoundTrip(0, dst)
	require.ErrorIs(t, err, ErrTimeoutOnValues)

	var ferr *Error
	require.True(t, errors.As(err, &ferr))
	require.Equal(t, PhaseValues, ferr.Phase)
	require.Equal(t, 2, ferr.Read)
	require.Equal(t, 3, ferr.Want)
	require.True(t, clock.Since(start) > 1500*ms)
	require.Equal(t, []uint8{7}, dst.Slice())
}

func TestRoundTripValuesAt999(t *testing.T) {
	link, wire, _ := newLink()
	wire.Send(0, 0x82, 0x11)
	wire.Send(999*ms, 0x22)

	var dst monitor.Samples
	require.NoError(t, link.RoundTrip(0, &dst))
	require.Equal(t, []uint8{0x11, 0x22}, dst.Slice())
}

func TestRoundTripStallAfterLength(t *testing.T) {
	link, wire, _ := newLink()
	wire.Send(0, 0x84)

	dst := prefilled(1, 2, 3, 4)
	err := link.RoundTrip(0, dst)
	require.ErrorIs(t, err, ErrTimeoutOnValues)
	require.Equal(t, []uint8{1, 2, 3, 4}, dst.Slice())
}

func TestRoundTripMisframe(t *testing.T) {
	for pos := 0; pos < 4; pos++ {
		link, wire, clock := newLink()
		values := []byte{0x84, 0x10, 0x20, 0x30, 0x40}
		values[1+pos] = 0x82
		wire.Send(0, values...)

		dst := prefilled(5, 6, 7)
		start := clock.Now()
		err := link.RoundTrip(0, dst)
		require.ErrorIs(t, err, ErrUnexpectedFramingByte)
		require.Equal(t, []uint8{5, 6, 7}, dst.Slice(), "position %d", pos)
		require.Equal(t, time.Duration(0), clock.Since(start), "position %d", pos)
		require.Equal(t, 3-pos, wire.Pending(), "position %d", pos)
	}
}

func TestRoundTripTransportErrors(t *testing.T) {
	link, wire, _ := newLink()
	wire.WriteErr = errors.New("unplugged")
	err := link.RoundTrip(0, &monitor.Samples{})
	require.ErrorIs(t, err, ErrTransport)
	require.ErrorContains(t, err, "unplugged")

	link, wire, _ = newLink()
	wire.Send(0, 0x81)
	wire.ReadErr = errors.New("framing")
	err = link.RoundTrip(0, &monitor.Samples{})
	require.ErrorIs(t, err, ErrTransport)

	var ferr *Error
	require.True(t, errors.As(err, &ferr))
	require.Equal(t, PhaseLength, ferr.Phase)
}

func TestRoundTripCustomTimeout(t *testing.T) {
	link, wire, clock := newLink()
	link.Timeout = 50 * ms
	wire.Send(60*ms, 0x80)
	start := clock.Now()
	require.ErrorIs(t, link.RoundTrip(0, &monitor.Samples{}), ErrTimeoutOnLength)
	require.True(t, clock.Since(start) < 60*ms)
}

func TestDrain(t *testing.T) {
	_, wire, clock := newLink()
	wire.Send(0, 0x01, 0x02, 0x83)
	wire.Send(time.Second, 0x04)
	require.Equal(t, 3, Drain(wire))
	require.Equal(t, 1, wire.Pending())
	clock.Advance(time.Second)
	require.Equal(t, 1, Drain(wire))
	require.Zero(t, Drain(wire))
}

func TestErrorString(t *testing.T) {
	err := &Error{Phase: PhaseValues, Elapsed: time.Second, Read: 1, Want: 3, Err: ErrTimeoutOnValues}
	require.Equal(t, "frame: timeout on values after 1s (1/3 values)", err.Error())
	err = &Error{Phase: PhaseLength, Elapsed: 1001 * ms, Err: ErrTimeoutOnLength}
	require.Equal(t, "frame: timeout on length after 1.001s", err.Error())
	require.Equal(t, "status", PhaseStatus.String())
}
