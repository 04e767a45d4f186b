package app

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"oledcpu/hal"
	"oledcpu/internal/buildinfo"
	"oledcpu/monitor/cycle"
	"oledcpu/monitor/poll"
)

// Config tunes the cycle timing, the splash and the run length.
type Config struct {
	Interval time.Duration
	Cooldown time.Duration
	Timeout  time.Duration

	// Clock defaults to the real clock.
	Clock clockwork.Clock
	// Idle runs between polls. Nil spins, which is what the MCU wants; host
	// builds pass a short sleep.
	Idle func()

	// Splash shows the build id for this long before the first frame.
	Splash time.Duration
	// Cycles stops the loop after that many cycles (0 = run forever).
	Cycles uint64
}

// DefaultConfig returns the firmware settings.
func DefaultConfig() Config {
	def := cycle.DefaultConfig()
	return Config{
		Interval: def.Interval,
		Cooldown: def.Cooldown,
		Timeout:  def.Timeout,
		Splash:   time.Second,
	}
}

// Run starts the monitor on h and blocks until ctx is done or the configured
// number of cycles ran.
func Run(ctx context.Context, h hal.HAL, cfg Config) error {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	log := h.Logger()
	hal.Logf(log, "oledcpu %s", buildinfo.Short())

	if cfg.Splash > 0 {
		bootScreen(h.Surface(), buildinfo.Short())
		poll.Wait(clock, cfg.Splash, cfg.Idle)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var done uint64
	o, err := cycle.New(h, cycle.Config{
		Interval: cfg.Interval,
		Cooldown: cfg.Cooldown,
		Timeout:  cfg.Timeout,
		Clock:    clock,
		Idle:     cfg.Idle,
		OnCycle: func(error) {
			done++
			if cfg.Cycles > 0 && done >= cfg.Cycles {
				cancel()
			}
		},
	})
	if err != nil {
		return err
	}
	if h.Button() == nil {
		hal.Logf(log, "oledcpu: no button, status byte fixed at 0x00")
	}

	err = o.Run(ctx)
	hal.Logf(log, "oledcpu: stopped: %s", o.Stats())
	if cfg.Cycles > 0 && done >= cfg.Cycles {
		return nil
	}
	return err
}
