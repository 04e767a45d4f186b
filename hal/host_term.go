//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"time"

	"github.com/nsf/termbox-go"
)

// termPressHold keeps a terminal key press low for longer than one monitor
// cycle; terminals report key presses but no releases.
const termPressHold = 400 * time.Millisecond

// RunTerminal shows the OLED in the terminal, two pixel rows per text row.
// SPACE presses the button, q or ESC quits.
func RunTerminal(ctx context.Context, run func(context.Context, HAL) error, cfg HostConfig) error {
	var pin *VirtualPin
	if cfg.Button == nil && !cfg.NoButton {
		pin = NewButtonPin("BUTTON")
		cfg.Button = pin
	}
	h := newHostHAL(cfg)
	if h.fb == nil {
		return errors.New("terminal mode needs the in-memory framebuffer")
	}

	if err := termbox.Init(); err != nil {
		return err
	}
	defer termbox.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- run(ctx, h) }()

	go func() {
		for {
			ev := termbox.PollEvent()
			switch ev.Type {
			case termbox.EventInterrupt:
				return
			case termbox.EventKey:
				switch {
				case ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC || ev.Ch == 'q':
					cancel()
					return
				case ev.Key == termbox.KeySpace && pin != nil:
					pin.Drive(false)
					time.AfterFunc(termPressHold, func() { pin.Drive(true) })
				}
			}
		}
	}()
	defer termbox.Interrupt()

	t := time.NewTicker(50 * time.Millisecond)
	defer t.Stop()

	var px []bool
	var seen uint64
	for {
		select {
		case err := <-done:
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		case <-t.C:
			if n := h.fb.Frames(); n != seen {
				seen = n
				px = h.fb.Snapshot(px)
				if err := drawTerminal(px, int(h.fb.width), int(h.fb.height), h.led.isOn()); err != nil {
					return err
				}
			}
		}
	}
}

func drawTerminal(px []bool, w, h int, link bool) error {
	lit := func(x, y int) bool { return y < h && px[y*w+x] }
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x++ {
			fg, bg := termbox.ColorBlack, termbox.ColorBlack
			if lit(x, y) {
				fg = termbox.ColorWhite
			}
			if lit(x, y+1) {
				bg = termbox.ColorWhite
			}
			termbox.SetCell(x, y/2, '▀', fg, bg)
		}
	}
	status := "link: up   SPACE=button  q=quit"
	if !link {
		status = "link: down SPACE=button  q=quit"
	}
	for i, r := range status {
		termbox.SetCell(i, (h+1)/2+1, r, termbox.ColorDefault, termbox.ColorDefault)
	}
	return termbox.Flush()
}
