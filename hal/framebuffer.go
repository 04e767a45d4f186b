package hal

import (
	"image/color"
	"strings"
	"sync"
)

// MonoFramebuffer is an in-memory monochrome display.
//
// SetPixel writes a back buffer; Display publishes it so that readers
// (simulator window, terminal, tests) never observe a half-drawn frame.
type MonoFramebuffer struct {
	width  int16
	height int16
	back   []bool

	mu        sync.Mutex
	front     []bool
	frames    uint64
	onDisplay func()
}

// NewMonoFramebuffer returns a blank width*height framebuffer.
func NewMonoFramebuffer(width, height int16) *MonoFramebuffer {
	n := int(width) * int(height)
	return &MonoFramebuffer{
		width:  width,
		height: height,
		back:   make([]bool, n),
		front:  make([]bool, n),
	}
}

func (f *MonoFramebuffer) Size() (x, y int16) { return f.width, f.height }

func (f *MonoFramebuffer) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	f.back[int(y)*int(f.width)+int(x)] = isLit(c)
}

func (f *MonoFramebuffer) Display() error {
	f.mu.Lock()
	copy(f.front, f.back)
	f.frames++
	hook := f.onDisplay
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	return nil
}

// Frames reports how many frames have been published.
func (f *MonoFramebuffer) Frames() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frames
}

// Lit reports whether the published pixel at (x, y) is on.
func (f *MonoFramebuffer) Lit(x, y int16) bool {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.front[int(y)*int(f.width)+int(x)]
}

// Snapshot copies the published frame into dst, row-major.
func (f *MonoFramebuffer) Snapshot(dst []bool) []bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cap(dst) < len(f.front) {
		dst = make([]bool, len(f.front))
	}
	dst = dst[:len(f.front)]
	copy(dst, f.front)
	return dst
}

// ASCII renders the published frame with '#' for lit pixels.
func (f *MonoFramebuffer) ASCII() string {
	px := f.Snapshot(nil)
	var b strings.Builder
	b.Grow(len(px) + int(f.height))
	for y := 0; y < int(f.height); y++ {
		for x := 0; x < int(f.width); x++ {
			if px[y*int(f.width)+x] {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// OnDisplay installs a hook run after every published frame.
func (f *MonoFramebuffer) OnDisplay(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onDisplay = fn
}
