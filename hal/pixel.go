package hal

import "image/color"

var (
	pixelOn  = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	pixelOff = color.RGBA{A: 0xFF}

	// oledRGB approximates the emission of a white SSD1306 panel.
	oledRGB = color.RGBA{R: 0xD8, G: 0xEC, B: 0xFF, A: 0xFF}
)

// isLit maps a driver color onto a monochrome pixel.
func isLit(c color.RGBA) bool {
	return c.R|c.G|c.B != 0
}
