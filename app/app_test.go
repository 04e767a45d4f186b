package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"oledcpu/hal"
	mt "oledcpu/monitor/monitortest"
	"oledcpu/monitor/poll"
)

const ms = time.Millisecond

func TestRunStopsAfterCycles(t *testing.T) {
	h, clock := mt.NewHAL()
	h.Wire.OnWrite = func(byte) { h.Wire.Send(5*ms, 0x82, 0x10, 0x20) }

	cfg := DefaultConfig()
	cfg.Clock = clock
	cfg.Idle = poll.Stepper(clock, ms)
	cfg.Cycles = 3
	start := clock.Now()
	require.NoError(t, Run(context.Background(), h, cfg))

	require.Equal(t, []byte{0x01, 0x01, 0x01}, h.Wire.Written)
	// splash, power-on frame, one frame per cycle
	require.Len(t, h.Surf.Commits, 5)
	require.NotEmpty(t, h.Surf.Commits[0].Ops())
	require.Empty(t, h.Surf.Commits[1].Ops())
	require.Len(t, h.Surf.Last().Ops(), 2)
	require.Greater(t, clock.Since(start), time.Second+3*250*ms)
	require.True(t, strings.HasPrefix(h.Log.Lines[0], "oledcpu "))
	require.Contains(t, h.Log.Lines[len(h.Log.Lines)-1], "cycles=3 ok=3")
}

func TestRunCancelled(t *testing.T) {
	h, clock := mt.NewHAL()
	h.Pin = nil

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := DefaultConfig()
	cfg.Clock = clock
	cfg.Idle = poll.Stepper(clock, ms)
	cfg.Splash = 0
	require.ErrorIs(t, Run(ctx, h, cfg), context.Canceled)
	require.Len(t, h.Surf.Commits, 1)
	require.Contains(t, strings.Join(h.Log.Lines, "\n"), "no button")
}

func TestBootScreenDrawsText(t *testing.T) {
	fb := hal.NewMonoFramebuffer(128, 32)
	canvas := hal.NewCanvas(fb, hal.DefaultPageRows)
	bootScreen(canvas, "v1.2.3")
	require.Equal(t, uint64(1), fb.Frames())
	require.Contains(t, fb.ASCII(), "#")
}
