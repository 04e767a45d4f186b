package monitor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSamplesSetClamps(t *testing.T) {
	var s Samples
	values := make([]uint8, 40)
	for i := range values {
		values[i] = uint8(i)
	}
	s.Set(values)
	require.Equal(t, MaxCores, s.N)
	require.Equal(t, values[:MaxCores], s.Slice())
}

func TestSamplesSetShorterZeroesTail(t *testing.T) {
	var s Samples
	s.Set([]uint8{1, 2, 3, 4})
	s.Set([]uint8{9})
	require.Equal(t, 1, s.N)
	require.Equal(t, []uint8{9}, s.Slice())
	require.Zero(t, s.Values[1])
}

func TestSamplesReset(t *testing.T) {
	var s Samples
	s.Set([]uint8{10, 20, 30})
	s.Reset()
	require.Zero(t, s.N)
	require.Empty(t, s.Slice())
	require.Equal(t, [MaxCores]uint8{}, s.Values)
}

func TestNewState(t *testing.T) {
	st := NewState()
	require.True(t, st.Enabled)
	require.Zero(t, st.Samples.N)
	require.Zero(t, st.PrevButtons)
}

func TestStatus(t *testing.T) {
	require.Equal(t, StatusMonitorOn, Status(true, true))
	require.Equal(t, StatusBits(0), Status(false, true))
	require.Equal(t, StatusBits(0), Status(true, false))
	require.True(t, StatusBits(0x01).MonitorOn())
	require.False(t, StatusBits(0x00).MonitorOn())
	require.True(t, StatusBits(0xFF).MonitorOn())
}
