// Package render draws the load bars.
package render

import (
	"oledcpu/hal"
	"oledcpu/monitor"
	"oledcpu/monitor/layout"
)

// Renderer draws a State on a surface.
type Renderer struct {
	Surface hal.Surface
	// HasButton makes a disabled monitor blank the screen.
	HasButton bool
	// ScreenY overrides the surface height for the layout.
	ScreenY int
}

// New returns a renderer for s.
func New(s hal.Surface, hasButton bool) *Renderer {
	return &Renderer{Surface: s, HasButton: hasButton}
}

func (r *Renderer) screenY() int {
	if r.ScreenY > 0 {
		return r.ScreenY
	}
	_, h := r.Surface.Size()
	if h <= 0 {
		return monitor.ScreenHeight
	}
	return int(h)
}

// Draw renders st: one bar per sample, or a cleared screen when the monitor
// is off.
func (r *Renderer) Draw(st *monitor.State) error {
	if r.HasButton && !st.Enabled {
		return r.Surface.Clear()
	}
	values := st.Samples.Slice()
	g := layout.Compute(len(values), r.screenY())
	Paint(r.Surface, func() { r.drawBars(g, values) })
	return nil
}

func (r *Renderer) drawBars(g layout.Geometry, values []uint8) {
	n := len(values)
	for i, v := range values {
		row := g.Row(i, n)
		y, h := int16(row.Y), int16(row.Height)
		if row.Odd {
			for _, x := range layout.Ticks() {
				r.Surface.DrawFrame(int16(x), y, 1, h)
			}
		}
		r.Surface.DrawBox(0, y, int16(v), h)
	}
}
