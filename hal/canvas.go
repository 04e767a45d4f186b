package hal

import "tinygo.org/x/drivers"

// DefaultPageRows matches the single 8-row page buffer of small OLED
// controllers: a 32-row panel takes four passes per frame.
const DefaultPageRows = 8

// Canvas is a page-buffered Surface on top of a drivers.Displayer.
//
// Only the rows of the current page are held in memory. NextPage pushes
// them to the device, and after the last page calls Display on it.
type Canvas struct {
	dev      drivers.Displayer
	w, h     int16
	pageRows int16
	stride   int

	page int16
	buf  []byte
	err  error
}

// NewCanvas wraps dev. pageRows <= 0 selects DefaultPageRows.
func NewCanvas(dev drivers.Displayer, pageRows int16) *Canvas {
	w, h := dev.Size()
	if pageRows <= 0 {
		pageRows = DefaultPageRows
	}
	if pageRows > h {
		pageRows = h
	}
	stride := (int(w) + 7) / 8
	return &Canvas{
		dev:      dev,
		w:        w,
		h:        h,
		pageRows: pageRows,
		stride:   stride,
		buf:      make([]byte, stride*int(pageRows)),
	}
}

func (c *Canvas) Size() (w, h int16) { return c.w, c.h }

// Pages reports how many NextPage passes one frame takes.
func (c *Canvas) Pages() int {
	if c.pageRows <= 0 {
		return 0
	}
	return int((c.h + c.pageRows - 1) / c.pageRows)
}

// Err returns the error of the last Display call, if any.
func (c *Canvas) Err() error { return c.err }

func (c *Canvas) FirstPage() {
	c.page = 0
	c.clearPage()
}

func (c *Canvas) NextPage() bool {
	c.flushPage()
	c.page++
	if c.page*c.pageRows >= c.h {
		c.err = c.dev.Display()
		c.page = 0
		return false
	}
	c.clearPage()
	return true
}

func (c *Canvas) Clear() error {
	c.FirstPage()
	for c.NextPage() {
	}
	return c.err
}

func (c *Canvas) DrawBox(x, y, w, h int16) {
	if w <= 0 || h <= 0 {
		return
	}
	x0, y0, x1, y1, ok := c.clip(x, y, x+w, y+h)
	if !ok {
		return
	}
	for yy := y0; yy < y1; yy++ {
		for xx := x0; xx < x1; xx++ {
			c.set(xx, yy)
		}
	}
}

func (c *Canvas) DrawFrame(x, y, w, h int16) {
	if w <= 0 || h <= 0 {
		return
	}
	c.DrawBox(x, y, w, 1)
	c.DrawBox(x, y+h-1, w, 1)
	if h > 2 {
		c.DrawBox(x, y+1, 1, h-2)
		c.DrawBox(x+w-1, y+1, 1, h-2)
	}
}

// clip intersects [x0,x1)x[y0,y1) with the screen and the current page.
func (c *Canvas) clip(x0, y0, x1, y1 int16) (int16, int16, int16, int16, bool) {
	top := c.page * c.pageRows
	bottom := top + c.pageRows
	if bottom > c.h {
		bottom = c.h
	}
	if x0 < 0 {
		x0 = 0
	}
	if x1 > c.w {
		x1 = c.w
	}
	if y0 < top {
		y0 = top
	}
	if y1 > bottom {
		y1 = bottom
	}
	return x0, y0, x1, y1, x0 < x1 && y0 < y1
}

func (c *Canvas) set(x, y int16) {
	row := int(y - c.page*c.pageRows)
	c.buf[row*c.stride+int(x)/8] |= 0x80 >> (uint(x) % 8)
}

func (c *Canvas) clearPage() {
	for i := range c.buf {
		c.buf[i] = 0
	}
}

func (c *Canvas) flushPage() {
	top := c.page * c.pageRows
	for row := int16(0); row < c.pageRows && top+row < c.h; row++ {
		line := c.buf[int(row)*c.stride : int(row+1)*c.stride]
		for x := int16(0); x < c.w; x++ {
			if line[x/8]&(0x80>>(uint(x)%8)) != 0 {
				c.dev.SetPixel(x, top+row, pixelOn)
			} else {
				c.dev.SetPixel(x, top+row, pixelOff)
			}
		}
	}
}
