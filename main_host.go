//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"oledcpu/app"
	"oledcpu/hal"
)

type options struct {
	headless  hal.HeadlessConfig
	periph    hal.PeriphConfig
	term      bool
	usePeriph bool

	serial   string
	baud     int
	logPath  string
	noButton bool
	height   int

	app app.Config
}

func main() {
	opts := options{app: app.DefaultConfig()}
	flag.BoolVar(&opts.headless.Enabled, "headless", false, "Run without a window.")
	flag.BoolVar(&opts.headless.ASCII, "ascii", false, "Log every frame as text in headless mode.")
	flag.DurationVar(&opts.headless.ButtonPeriod, "button-period", 0, "Press the button once per period in headless mode (0 = never).")
	flag.BoolVar(&opts.term, "term", false, "Draw the display in the terminal.")
	flag.BoolVar(&opts.usePeriph, "periph", false, "Drive a real SSD1306 and button through periph.io.")
	flag.StringVar(&opts.periph.I2CBus, "i2c", "", "I2C bus for -periph (empty = first available).")
	flag.StringVar(&opts.periph.ButtonPin, "button-pin", "", "GPIO name of the button for -periph, e.g. GPIO17.")
	flag.StringVar(&opts.serial, "serial", "", "Serial device carrying the protocol (empty = stdin/stdout).")
	flag.IntVar(&opts.baud, "baud", hal.DefaultBaud, "Baud rate for -serial.")
	flag.StringVar(&opts.logPath, "log", "", "Write log lines to this file instead of stderr.")
	flag.BoolVar(&opts.noButton, "no-button", false, "Run without a button (status byte fixed at 0x00).")
	flag.IntVar(&opts.height, "height", 32, "Display height in pixels (32 or 64).")
	flag.Uint64Var(&opts.app.Cycles, "cycles", 0, "Stop after N cycles (0 = run forever).")
	flag.DurationVar(&opts.app.Splash, "splash", opts.app.Splash, "How long to show the boot screen.")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	if opts.height != 32 && opts.height != 64 {
		return fmt.Errorf("unsupported display height %d", opts.height)
	}
	host := hal.HostConfig{Height: int16(opts.height), NoButton: opts.noButton}

	if opts.serial != "" {
		port, err := hal.OpenSerialPort(opts.serial, opts.baud)
		if err != nil {
			return err
		}
		defer port.Close()
		host.Serial = port
	}
	switch {
	case opts.logPath != "":
		f, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		host.Log = f
	case opts.term:
		// termbox owns the terminal.
		host.Log = io.Discard
	}

	appCfg := opts.app
	appCfg.Idle = func() { time.Sleep(time.Millisecond) }
	runApp := func(ctx context.Context, h hal.HAL) error {
		return app.Run(ctx, h, appCfg)
	}

	switch {
	case opts.usePeriph:
		opts.periph.Host = host
		return hal.RunPeriph(ctx, runApp, opts.periph)
	case opts.headless.Enabled:
		opts.headless.Host = host
		return hal.RunHeadless(ctx, runApp, opts.headless)
	case opts.term:
		return hal.RunTerminal(ctx, runApp, host)
	default:
		return hal.RunWindow(ctx, runApp, host)
	}
}
