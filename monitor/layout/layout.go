// Package layout maps a bar count to bar rows on the screen.
//
// Counts are rounded up to a power of two T and bucketed against the screen
// height Y:
//
//	T <= Y/4        offset = (Y/4)/T, height = (Y/2)/T, separation = 2*offset+height
//	Y/4 < T <= Y/2  offset = 1, height = 1, separation = 2
//	Y/2 < T <= Y    offset = 0, height = 1, separation = 1
//	T > Y           all zero
//
// Bar i occupies rows [i*separation+offset, i*separation+offset+height). When
// the count is odd, the last bar has its offset and height multiplied by
// count-1 and is drawn over a ruler of ticks.
package layout

import "oledcpu/monitor"

const (
	// TickSpacing is the distance between ruler ticks.
	TickSpacing = 8
	// TickCount is the number of ticks across the screen.
	TickCount = monitor.ScreenWidth / TickSpacing
)

// Geometry is the row pattern shared by all bars of a frame.
type Geometry struct {
	Offset     int
	Height     int
	Separation int
}

// RowSpan is where one bar goes.
type RowSpan struct {
	Y      int
	Height int
	// Odd marks the widened last row of an odd count.
	Odd bool
}

// End returns the first row below the span.
func (r RowSpan) End() int { return r.Y + r.Height }

// Bucket returns the power of two a count is rounded up to; 1 for n <= 1.
func Bucket(n int) int {
	t := 1
	for t < n {
		t <<= 1
	}
	return t
}

// Compute returns the geometry for n bars on a screen screenY rows high.
func Compute(n, screenY int) Geometry {
	t := Bucket(n)
	quarter, half := screenY/4, screenY/2
	switch {
	case t <= quarter:
		offset := quarter / t
		height := half / t
		return Geometry{Offset: offset, Height: height, Separation: 2*offset + height}
	case t <= half:
		return Geometry{Offset: 1, Height: 1, Separation: 2}
	case t <= screenY:
		return Geometry{Offset: 0, Height: 1, Separation: 1}
	}
	return Geometry{}
}

// Row returns the span of bar i out of n.
func (g Geometry) Row(i, n int) RowSpan {
	offset, height := g.Offset, g.Height
	odd := n%2 == 1 && i == n-1
	if odd {
		offset *= n - 1
		height *= n - 1
	}
	return RowSpan{Y: i*g.Separation + offset, Height: height, Odd: odd}
}

// Ticks returns the x positions of the ruler ticks: 7, 15, ..., 127.
func Ticks() [TickCount]int {
	var xs [TickCount]int
	for j := range xs {
		xs[j] = (j+1)*TickSpacing - 1
	}
	return xs
}
