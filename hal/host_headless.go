//go:build !tinygo

package hal

import (
	"context"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Host    HostConfig
	// ASCII logs every committed frame as text art.
	ASCII bool
	// ButtonPeriod, when set, presses the button once per period.
	ButtonPeriod time.Duration
}

// RunHeadless runs the firmware loop without opening a window.
func RunHeadless(ctx context.Context, run func(context.Context, HAL) error, cfg HeadlessConfig) error {
	if cfg.ButtonPeriod > 0 && cfg.Host.Button == nil && !cfg.Host.NoButton {
		// Released (high) except for the last 300ms of each period.
		high := cfg.ButtonPeriod - 300*time.Millisecond
		if high < cfg.ButtonPeriod/2 {
			high = cfg.ButtonPeriod / 2
		}
		cfg.Host.Button = newSignalPin("BUTTON", cfg.ButtonPeriod, high)
	}

	h := newHostHAL(cfg.Host)
	if cfg.ASCII && h.fb != nil {
		fb := h.fb
		h.fb.OnDisplay(func() {
			h.logger.WriteLineString(fb.ASCII())
		})
	}
	return run(ctx, h)
}
