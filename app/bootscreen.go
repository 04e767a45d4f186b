package app

import (
	"image/color"

	"oledcpu/hal"
	"oledcpu/monitor/render"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

func bootScreen(s hal.Surface, msg string) {
	if s == nil {
		return
	}
	d := surfaceDisplay{s: s}
	font := &proggy.TinySZ8pt7b
	fg := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

	render.Paint(s, func() {
		tinyfont.WriteLine(d, font, 0, 12, "oledcpu", fg)
		tinyfont.WriteLine(d, font, 0, 26, msg, fg)
	})
}

// surfaceDisplay lets tinyfont draw on a Surface one pixel at a time.
type surfaceDisplay struct {
	s hal.Surface
}

func (d surfaceDisplay) Size() (x, y int16) { return d.s.Size() }

func (d surfaceDisplay) SetPixel(x, y int16, c color.RGBA) {
	if c.R|c.G|c.B == 0 {
		return
	}
	d.s.DrawBox(x, y, 1, 1)
}

func (d surfaceDisplay) Display() error { return nil }
