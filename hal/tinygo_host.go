//go:build tinygo && !baremetal

package hal

import "os"

type tinyGoHostHAL struct {
	logger *tinyGoHostLogger
	serial *StreamSerial
	fb     *MonoFramebuffer
	canvas *Canvas
}

// New returns a TinyGo-on-host HAL implementation.
//
// This is used by `tinygo run` targets like linux/wasm where there is no MCU
// pin mapping: the protocol runs on stdin/stdout, frames go to memory and
// there is no button.
func New() HAL {
	fb := NewMonoFramebuffer(128, 32)
	return &tinyGoHostHAL{
		logger: &tinyGoHostLogger{},
		serial: NewStreamSerial(tinyGoStdio{}),
		fb:     fb,
		canvas: NewCanvas(fb, DefaultPageRows),
	}
}

func (h *tinyGoHostHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHostHAL) LED() LED         { return nullLED{} }
func (h *tinyGoHostHAL) Serial() Serial   { return h.serial }
func (h *tinyGoHostHAL) Surface() Surface { return h.canvas }
func (h *tinyGoHostHAL) Button() GPIOPin  { return nil }

type tinyGoStdio struct{}

func (tinyGoStdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (tinyGoStdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

type tinyGoHostLogger struct{}

func (l *tinyGoHostLogger) WriteLineString(s string) {
	println(s)
}

func (l *tinyGoHostLogger) WriteLineBytes(b []byte) {
	println(string(b))
}
