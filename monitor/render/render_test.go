package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"oledcpu/hal"
	"oledcpu/monitor"
	mt "oledcpu/monitor/monitortest"
)

func stateWith(values ...uint8) *monitor.State {
	st := monitor.NewState()
	st.Samples.Set(values)
	return st
}

func TestDrawFourBars(t *testing.T) {
	s := mt.NewSurface(4)
	require.NoError(t, New(s, true).Draw(stateWith(16, 32, 48, 127)))

	require.Len(t, s.Commits, 1)
	expect := []mt.Op{
		mt.Box(0, 2, 16, 4),
		mt.Box(0, 10, 32, 4),
		mt.Box(0, 18, 48, 4),
		mt.Box(0, 26, 127, 4),
	}
	commit := s.Last()
	require.False(t, commit.Clear)
	require.Len(t, commit.Pages, 4)
	for _, page := range commit.Pages {
		require.Equal(t, expect, page)
	}
}

func TestDrawOddCountRuler(t *testing.T) {
	s := mt.NewSurface(1)
	require.NoError(t, New(s, true).Draw(stateWith(0x10, 0x20, 0x30)))

	expect := []mt.Op{
		mt.Box(0, 2, 16, 4),
		mt.Box(0, 10, 32, 4),
	}
	for x := int16(7); x <= 127; x += 8 {
		expect = append(expect, mt.Frame(x, 20, 1, 8))
	}
	expect = append(expect, mt.Box(0, 20, 48, 8))
	require.Equal(t, expect, s.Last().Ops())
}

func TestDrawTicksOnlyForOddCounts(t *testing.T) {
	for n := 0; n <= monitor.MaxCores; n++ {
		s := mt.NewSurface(1)
		require.NoError(t, New(s, true).Draw(stateWith(make([]uint8, n)...)))

		frames, boxes := 0, 0
		for _, op := range s.Last().Ops() {
			switch op.Kind {
			case mt.OpFrame:
				frames++
				require.Equal(t, int16(1), op.W)
			case mt.OpBox:
				boxes++
			}
		}
		require.Equalf(t, n, boxes, "n=%d", n)
		if n%2 == 1 {
			require.Equalf(t, 16, frames, "n=%d", n)
		} else {
			require.Zerof(t, frames, "n=%d", n)
		}
	}
}

func TestDrawEmptyCommitsBlankFrame(t *testing.T) {
	s := mt.NewSurface(4)
	require.NoError(t, New(s, true).Draw(monitor.NewState()))
	require.Len(t, s.Commits, 1)
	require.False(t, s.Last().Clear)
	require.Empty(t, s.Last().Ops())
}

func TestDrawDisabledClears(t *testing.T) {
	s := mt.NewSurface(4)
	st := stateWith(10, 20, 30)
	st.Enabled = false
	require.NoError(t, New(s, true).Draw(st))

	require.Len(t, s.Commits, 1)
	require.True(t, s.Last().Clear)
	require.Zero(t, s.FirstPages)
	require.Zero(t, s.Stray)
}

func TestDrawDisabledWithoutButtonStillDraws(t *testing.T) {
	s := mt.NewSurface(1)
	st := stateWith(10)
	st.Enabled = false
	require.NoError(t, New(s, false).Draw(st))
	require.False(t, s.Last().Clear)
}

func TestPaintCommitsOnPanic(t *testing.T) {
	s := mt.NewSurface(4)
	calls := 0
	require.Panics(t, func() {
		Paint(s, func() {
			calls++
			s.DrawBox(0, 0, 1, 1)
			if calls == 2 {
				panic("boom")
			}
		})
	})
	require.Len(t, s.Commits, 1)
	require.False(t, s.Drawing())
	require.Len(t, s.Last().Pages, 4)
	require.Len(t, s.Last().Pages[0], 1)
	require.Len(t, s.Last().Pages[1], 1)
	require.Empty(t, s.Last().Pages[2])
}

func TestSessionCloseIsIdempotent(t *testing.T) {
	s := mt.NewSurface(2)
	ss := Begin(s)
	require.True(t, ss.Next())
	require.False(t, ss.Next())
	ss.Close()
	ss.Close()
	require.Len(t, s.Commits, 1)
}

func TestDrawOnCanvas(t *testing.T) {
	fb := hal.NewMonoFramebuffer(monitor.ScreenWidth, monitor.ScreenHeight)
	canvas := hal.NewCanvas(fb, hal.DefaultPageRows)
	require.NoError(t, New(canvas, true).Draw(stateWith(16, 32, 48, 127)))

	rows := strings.Split(strings.TrimSuffix(fb.ASCII(), "\n"), "\n")
	require.Len(t, rows, 32)
	barRows := map[int]int{2: 16, 3: 16, 4: 16, 5: 16, 10: 32, 13: 32, 18: 48, 21: 48, 26: 127, 29: 127}
	for y, w := range barRows {
		require.Equalf(t, strings.Repeat("#", w)+strings.Repeat(".", 128-w), rows[y], "row %d", y)
	}
	for _, y := range []int{0, 1, 6, 9, 14, 17, 22, 25, 30, 31} {
		require.Equalf(t, strings.Repeat(".", 128), rows[y], "row %d", y)
	}
}

func TestDrawTallScreen(t *testing.T) {
	s := mt.NewSurface(1)
	s.H = 64
	require.NoError(t, New(s, true).Draw(stateWith(1, 2)))
	require.Equal(t, []mt.Op{mt.Box(0, 8, 1, 16), mt.Box(0, 40, 2, 16)}, s.Last().Ops())
}
