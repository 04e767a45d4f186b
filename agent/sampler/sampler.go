// Package sampler measures per-core CPU usage and memory usage from procfs.
package sampler

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/prometheus/procfs"

	"oledcpu/monitor"
)

// Sample is one measurement. Usages are fractions in [0, 1].
type Sample struct {
	// Cores holds one usage per core, ordered by core id. The first sample
	// after start has no previous counters and reports zero.
	Cores  []float64
	Memory float64
}

// Sampler keeps the previous CPU counters to compute usage deltas.
type Sampler struct {
	fs   procfs.FS
	prev map[int64]procfs.CPUStat
}

// New opens procfs at root ("" = /proc).
func New(root string) (*Sampler, error) {
	if root == "" {
		root = procfs.DefaultMountPoint
	}
	fs, err := procfs.NewFS(root)
	if err != nil {
		return nil, fmt.Errorf("sampler: %w", err)
	}
	return &Sampler{fs: fs}, nil
}

// Sample reads the current usage.
func (s *Sampler) Sample() (Sample, error) {
	stat, err := s.fs.Stat()
	if err != nil {
		return Sample{}, fmt.Errorf("sampler: stat: %w", err)
	}
	mem, err := s.fs.Meminfo()
	if err != nil {
		return Sample{}, fmt.Errorf("sampler: meminfo: %w", err)
	}

	ids := make([]int64, 0, len(stat.CPU))
	for id := range stat.CPU {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := Sample{Cores: make([]float64, len(ids))}
	for i, id := range ids {
		cur := stat.CPU[id]
		if prev, ok := s.prev[id]; ok {
			out.Cores[i] = usage(prev, cur)
		}
	}
	s.prev = stat.CPU

	out.Memory, err = memoryUsage(mem)
	if err != nil {
		return Sample{}, err
	}
	return out, nil
}

func idle(c procfs.CPUStat) float64 { return c.Idle + c.Iowait }

func total(c procfs.CPUStat) float64 {
	return c.User + c.Nice + c.System + c.Idle + c.Iowait + c.IRQ + c.SoftIRQ + c.Steal
}

// usage is 1 - idle/total over the interval between two counter readings.
func usage(prev, cur procfs.CPUStat) float64 {
	dTotal := total(cur) - total(prev)
	if dTotal <= 0 {
		return 0
	}
	return clamp(1 - (idle(cur)-idle(prev))/dTotal)
}

func memoryUsage(m procfs.Meminfo) (float64, error) {
	if m.MemTotal == nil || *m.MemTotal == 0 {
		return 0, errors.New("sampler: meminfo has no MemTotal")
	}
	avail := m.MemAvailable
	if avail == nil {
		avail = m.MemFree
	}
	if avail == nil {
		return 0, errors.New("sampler: meminfo has no MemAvailable")
	}
	return clamp(1 - float64(*avail)/float64(*m.MemTotal)), nil
}

func clamp(u float64) float64 {
	switch {
	case math.IsNaN(u), u < 0:
		return 0
	case u > 1:
		return 1
	}
	return u
}

// Quantize maps a usage fraction onto a bar width.
func Quantize(u float64) uint8 {
	return uint8(math.Floor(clamp(u) * monitor.MaxLoad))
}

// Values turns a sample into frame values: one per core, then the memory bar
// when memory is set. The total never exceeds monitor.MaxCores.
func Values(s Sample, memory bool) []uint8 {
	return AppendValues(nil, s, memory)
}

// AppendValues is Values appending to dst.
func AppendValues(dst []uint8, s Sample, memory bool) []uint8 {
	n := len(s.Cores)
	limit := monitor.MaxCores
	if memory {
		limit--
	}
	if n > limit {
		n = limit
	}
	for _, u := range s.Cores[:n] {
		dst = append(dst, Quantize(u))
	}
	if memory {
		dst = append(dst, Quantize(s.Memory))
	}
	return dst
}
