//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"

	"tinygo.org/x/drivers"
)

// HostConfig selects the backends of a host HAL.
type HostConfig struct {
	// Serial carries the protocol. Nil means stdin/stdout.
	Serial io.ReadWriter
	// Log receives log lines. Nil means stderr.
	Log io.Writer
	// Button is the toggle input. Nil lets the runner pick one.
	Button GPIOPin
	// NoButton runs the board variant without a button.
	NoButton bool
	// Display is the panel to draw on. Nil means an in-memory framebuffer.
	Display drivers.Displayer
	// Width and Height size the in-memory framebuffer (default 128x32).
	Width, Height int16
	// PageRows is the page height of the canvas (default 8).
	PageRows int16
}

type hostHAL struct {
	logger *hostLogger
	led    *hostLED
	serial *StreamSerial
	fb     *MonoFramebuffer
	canvas *Canvas
	button GPIOPin
}

func newHostHAL(cfg HostConfig) *hostHAL {
	logOut := cfg.Log
	if logOut == nil {
		logOut = os.Stderr
	}
	rw := cfg.Serial
	if rw == nil {
		rw = stdio{}
	}
	if cfg.Width <= 0 {
		cfg.Width = 128
	}
	if cfg.Height <= 0 {
		cfg.Height = 32
	}

	h := &hostHAL{
		logger: &hostLogger{w: logOut},
		led:    &hostLED{},
		serial: NewStreamSerial(rw),
	}
	if !cfg.NoButton {
		h.button = cfg.Button
	}
	dev := cfg.Display
	if dev == nil {
		h.fb = NewMonoFramebuffer(cfg.Width, cfg.Height)
		dev = h.fb
	}
	h.canvas = NewCanvas(dev, cfg.PageRows)
	return h
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) LED() LED         { return h.led }
func (h *hostHAL) Serial() Serial   { return h.serial }
func (h *hostHAL) Surface() Surface { return h.canvas }

func (h *hostHAL) Button() GPIOPin { return h.button }

type stdio struct{}

func (stdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

// hostLED keeps the link LED state; the simulator shows it in the title bar.
type hostLED struct {
	mu sync.Mutex
	on bool
}

func (l *hostLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = true
}

func (l *hostLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = false
}

func (l *hostLED) isOn() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on
}
