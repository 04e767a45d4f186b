package render

import "oledcpu/hal"

// Session is one logical frame on a paged surface. Begin starts it; Close
// commits it, also when the draw loop was left early.
type Session struct {
	surface hal.Surface
	done    bool
}

// Begin opens a frame on s.
func Begin(s hal.Surface) *Session {
	s.FirstPage()
	return &Session{surface: s}
}

// Next finishes the current page. It reports whether the draw calls must be
// issued again for another page.
func (ss *Session) Next() bool {
	if ss.done {
		return false
	}
	if ss.surface.NextPage() {
		return true
	}
	ss.done = true
	return false
}

// Close pushes the remaining pages so the frame is committed exactly once.
func (ss *Session) Close() {
	for ss.Next() {
	}
}

// Paint draws one frame by running draw once per page.
func Paint(s hal.Surface, draw func()) {
	ss := Begin(s)
	defer ss.Close()
	for {
		draw()
		if !ss.Next() {
			return
		}
	}
}
