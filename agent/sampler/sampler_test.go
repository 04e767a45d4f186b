package sampler

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"oledcpu/monitor"
)

type procDir struct {
	t    *testing.T
	root string
}

func newProcDir(t *testing.T) *procDir {
	return &procDir{t: t, root: t.TempDir()}
}

// stat writes /proc/stat with one "user idle" pair per core, in USER_HZ ticks.
func (p *procDir) stat(cores ...[2]int) {
	p.t.Helper()
	var b strings.Builder
	b.WriteString("cpu  0 0 0 0 0 0 0 0 0 0\n")
	for i, c := range cores {
		b.WriteString("cpu")
		b.WriteString(strconv.Itoa(i))
		b.WriteString(" " + strconv.Itoa(c[0]) + " 0 0 " + strconv.Itoa(c[1]) + " 0 0 0 0 0 0\n")
	}
	b.WriteString("btime 1700000000\n")
	require.NoError(p.t, os.WriteFile(filepath.Join(p.root, "stat"), []byte(b.String()), 0o644))
}

func (p *procDir) meminfo(totalKB, availKB int) {
	p.t.Helper()
	body := "MemTotal:       " + strconv.Itoa(totalKB) + " kB\n" +
		"MemFree:        " + strconv.Itoa(availKB/2) + " kB\n" +
		"MemAvailable:   " + strconv.Itoa(availKB) + " kB\n"
	require.NoError(p.t, os.WriteFile(filepath.Join(p.root, "meminfo"), []byte(body), 0o644))
}

func TestSampleDeltas(t *testing.T) {
	p := newProcDir(t)
	p.stat([2]int{100, 100}, [2]int{0, 200})
	p.meminfo(1000, 250)

	s, err := New(p.root)
	require.NoError(t, err)

	first, err := s.Sample()
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0}, first.Cores)
	require.InDelta(t, 0.75, first.Memory, 1e-9)

	// core0: 75 busy / 100 ticks, core1: idle only
	p.stat([2]int{175, 125}, [2]int{0, 300})
	second, err := s.Sample()
	require.NoError(t, err)
	require.InDelta(t, 0.75, second.Cores[0], 1e-9)
	require.InDelta(t, 0, second.Cores[1], 1e-9)

	// counters unchanged
	third, err := s.Sample()
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0}, third.Cores)
}

func TestSampleMissingFiles(t *testing.T) {
	p := newProcDir(t)
	s, err := New(p.root)
	require.NoError(t, err)
	_, err = s.Sample()
	require.ErrorContains(t, err, "sampler: stat")
}

func TestQuantize(t *testing.T) {
	require.Equal(t, uint8(0), Quantize(0))
	require.Equal(t, uint8(127), Quantize(1))
	require.Equal(t, uint8(63), Quantize(0.5))
	require.Equal(t, uint8(127), Quantize(3))
	require.Equal(t, uint8(0), Quantize(-1))
}

func TestValues(t *testing.T) {
	s := Sample{Cores: []float64{0, 0.5, 1}, Memory: 0.25}
	require.Equal(t, []uint8{0, 63, 127, 31}, Values(s, true))
	require.Equal(t, []uint8{0, 63, 127}, Values(s, false))
}

func TestValuesCapsCores(t *testing.T) {
	s := Sample{Cores: make([]float64, 64), Memory: 1}
	with := Values(s, true)
	require.Len(t, with, monitor.MaxCores)
	require.Equal(t, uint8(127), with[monitor.MaxCores-1])
	require.Len(t, Values(s, false), monitor.MaxCores)
}
