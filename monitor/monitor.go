// Package monitor holds the state shared by the CPU-load bar firmware: the
// decoded load samples, the monitor-on flag and the button history.
package monitor

const (
	// MaxCores is the largest number of bars a frame can carry.
	MaxCores = 32

	// ScreenWidth is the panel width in pixels.
	ScreenWidth = 128
	// ScreenHeight is the default panel height in pixels.
	ScreenHeight = 32

	// MaxLoad is the largest load value; loads are bar widths in pixels.
	MaxLoad = 0x7F
)

// Samples is a fixed-capacity list of per-core loads.
type Samples struct {
	N      int
	Values [MaxCores]uint8
}

// Set replaces the samples with values. Entries past MaxCores are dropped.
func (s *Samples) Set(values []uint8) {
	n := len(values)
	if n > MaxCores {
		n = MaxCores
	}
	s.N = copy(s.Values[:n], values)
	for i := n; i < MaxCores; i++ {
		s.Values[i] = 0
	}
}

// Reset zeroes every entry and the count.
func (s *Samples) Reset() {
	s.N = 0
	s.Values = [MaxCores]uint8{}
}

// Slice returns the valid prefix.
func (s *Samples) Slice() []uint8 {
	return s.Values[:s.N]
}

// State is the context owned by the cycle loop.
type State struct {
	Samples Samples
	// Enabled is the monitor-on flag. Bars are drawn only while it is set.
	Enabled bool
	// PrevButtons is the button bitfield sampled in the previous cycle.
	PrevButtons uint8
}

// NewState returns the power-on state: no samples, monitor on.
func NewState() *State {
	return &State{Enabled: true}
}

// StatusBits is the device to host status byte.
type StatusBits uint8

const (
	// StatusMonitorOn reports the monitor-on flag.
	StatusMonitorOn StatusBits = 1 << 0
)

// Status builds the status byte for a cycle. Boards without a button always
// send 0x00.
func Status(enabled, hasButton bool) StatusBits {
	if hasButton && enabled {
		return StatusMonitorOn
	}
	return 0
}

// MonitorOn reports whether bit0 is set.
func (b StatusBits) MonitorOn() bool { return b&StatusMonitorOn != 0 }
