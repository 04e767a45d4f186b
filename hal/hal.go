package hal

import (
	"errors"
	"fmt"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// Logf formats a line and writes it to l. A nil logger drops the line.
func Logf(l Logger, format string, args ...any) {
	if l == nil {
		return
	}
	l.WriteLineString(fmt.Sprintf(format, args...))
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

// ErrNoData is returned by Serial.ReadByte when nothing is buffered.
var ErrNoData = errors.New("no data buffered")

// Serial is the byte stream carrying the monitor protocol.
//
// Available never blocks: it reports how many received bytes can be read
// right now. ReadByte returns ErrNoData when Available would report zero.
type Serial interface {
	Available() int
	ReadByte() (byte, error)
	WriteByte(b byte) error
}

// Surface is a paged monochrome drawing target.
//
// One logical frame is drawn by calling FirstPage, issuing the draw calls,
// then calling NextPage and repeating the same draw calls for as long as
// NextPage returns true. The frame is on screen once NextPage returns false.
type Surface interface {
	Size() (w, h int16)
	FirstPage()
	NextPage() bool
	// DrawBox fills a w*h rectangle whose top-left corner is (x, y).
	DrawBox(x, y, w, h int16)
	// DrawFrame outlines a w*h rectangle whose top-left corner is (x, y).
	DrawFrame(x, y, w, h int16)
	// Clear blanks the whole display and commits it.
	Clear() error
}

// HAL provides the only contact point between the monitor and the outside world.
type HAL interface {
	Logger() Logger
	LED() LED
	Serial() Serial
	Surface() Surface
	// Button returns the toggle button input, or nil on boards without one.
	Button() GPIOPin
}

type nullLogger struct{}

func (nullLogger) WriteLineString(s string) {}
func (nullLogger) WriteLineBytes(b []byte)  {}

type nullLED struct{}

func (nullLED) High() {}
func (nullLED) Low()  {}
