// Package cycle runs the firmware loop: pace, exchange a frame with the
// host, draw, and recover from protocol failures.
package cycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"oledcpu/hal"
	"oledcpu/monitor"
	"oledcpu/monitor/button"
	"oledcpu/monitor/frame"
	"oledcpu/monitor/poll"
	"oledcpu/monitor/render"
)

// Mode is the state of the loop.
type Mode uint8

const (
	// Idle runs one exchange per interval.
	Idle Mode = iota
	// Recovering is the cooldown after a failed exchange.
	Recovering
)

func (m Mode) String() string {
	if m == Recovering {
		return "recovering"
	}
	return "idle"
}

// Config paces the loop.
type Config struct {
	// Interval is the wait before every exchange.
	Interval time.Duration
	// Cooldown is the wait after a failure before the input is flushed.
	Cooldown time.Duration
	// Timeout bounds the wait for the length byte and for the values.
	Timeout time.Duration

	// Clock defaults to the real clock.
	Clock clockwork.Clock
	// Idle runs between polls while waiting.
	Idle func()
	// OnCycle runs after every cycle with its result.
	OnCycle func(err error)
}

// DefaultConfig returns the firmware timing.
func DefaultConfig() Config {
	return Config{
		Interval: 250 * time.Millisecond,
		Cooldown: 500 * time.Millisecond,
		Timeout:  frame.DefaultTimeout,
	}
}

// Orchestrator owns the monitor state and drives every component with it.
type Orchestrator struct {
	cfg   Config
	clock clockwork.Clock

	log    hal.Logger
	led    hal.LED
	serial hal.Serial

	state    *monitor.State
	link     *frame.Link
	button   *button.Detector
	renderer *render.Renderer

	mode  Mode
	stats Stats
}

// New wires the loop to h.
func New(h hal.HAL, cfg Config) (*Orchestrator, error) {
	if h == nil || h.Serial() == nil || h.Surface() == nil {
		return nil, errors.New("cycle: serial and surface are required")
	}
	def := DefaultConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = def.Cooldown
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	btn, err := button.New(h.Button())
	if err != nil {
		return nil, fmt.Errorf("cycle: %w", err)
	}

	return &Orchestrator{
		cfg:    cfg,
		clock:  clock,
		log:    h.Logger(),
		led:    h.LED(),
		serial: h.Serial(),
		state:  monitor.NewState(),
		link: &frame.Link{
			Serial:  h.Serial(),
			Clock:   clock,
			Timeout: cfg.Timeout,
			Idle:    cfg.Idle,
		},
		button:   btn,
		renderer: render.New(h.Surface(), btn.HasButton()),
	}, nil
}

// Mode reports whether the loop is pacing or recovering.
func (o *Orchestrator) Mode() Mode { return o.mode }

// State returns a copy of the monitor state.
func (o *Orchestrator) State() monitor.State { return *o.state }

// Stats returns the counters.
func (o *Orchestrator) Stats() Stats { return o.stats }

// Start draws the power-on state.
func (o *Orchestrator) Start() {
	o.setLED(false)
	o.draw()
}

// Tick runs one cycle and returns why it failed, if it did. Failures are
// already handled when Tick returns.
func (o *Orchestrator) Tick() error {
	o.stats.Cycles++
	o.wait(o.cfg.Interval)

	err := o.guard("exchange", o.exchange)
	if err == nil {
		err = o.guard("render", o.render)
	}
	if err != nil {
		o.fail(err)
	} else {
		o.stats.Successes++
		o.setLED(true)
	}
	if o.cfg.OnCycle != nil {
		o.cfg.OnCycle(err)
	}
	return err
}

// Run draws the power-on state, then ticks until ctx is done.
func (o *Orchestrator) Run(ctx context.Context) error {
	o.Start()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		o.Tick()
	}
}

func (o *Orchestrator) exchange() error {
	o.button.Update(o.state)
	status := monitor.Status(o.state.Enabled, o.button.HasButton())
	return o.link.RoundTrip(status, &o.state.Samples)
}

// render draws the state. Display errors are logged; only panics fail the
// cycle.
func (o *Orchestrator) render() error {
	if err := o.renderer.Draw(o.state); err != nil {
		hal.Logf(o.log, "cycle: display: %v", err)
	}
	return nil
}

func (o *Orchestrator) draw() {
	if err := o.guard("render", o.render); err != nil {
		hal.Logf(o.log, "cycle: %v", err)
	}
}

func (o *Orchestrator) fail(err error) {
	o.stats.count(err)
	o.setLED(false)
	hal.Logf(o.log, "cycle: %v", err)

	o.mode = Recovering
	o.state.Samples.Reset()
	o.draw()
	o.wait(o.cfg.Cooldown)
	if n := frame.Drain(o.serial); n > 0 {
		o.stats.Flushed += uint64(n)
		hal.Logf(o.log, "cycle: flushed %d bytes", n)
	}
	o.mode = Idle
	o.draw()
}

func (o *Orchestrator) wait(d time.Duration) {
	poll.Wait(o.clock, d, o.cfg.Idle)
}

func (o *Orchestrator) setLED(on bool) {
	if o.led == nil {
		return
	}
	if on {
		o.led.High()
	} else {
		o.led.Low()
	}
}
