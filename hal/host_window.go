//go:build !tinygo && cgo

package hal

import (
	"context"
	"errors"
	"image"

	"oledcpu/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

const windowScale = 6

// RunWindow starts a desktop window that displays the OLED and maps SPACE to
// the toggle button. The firmware loop runs in its own goroutine; the window
// only reads published frames. It blocks until the window closes or run returns.
func RunWindow(ctx context.Context, run func(context.Context, HAL) error, cfg HostConfig) error {
	var pin *VirtualPin
	if cfg.Button == nil && !cfg.NoButton {
		pin = NewButtonPin("BUTTON")
		cfg.Button = pin
	}
	h := newHostHAL(cfg)
	if h.fb == nil {
		return errors.New("window mode needs the in-memory framebuffer")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- run(ctx, h) }()

	g := &hostGame{h: h, pin: pin, done: done}
	ebiten.SetWindowTitle("oledcpu (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(int(h.fb.width)*windowScale, int(h.fb.height)*windowScale)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	cancel()
	if g.runErr != nil {
		return g.runErr
	}
	return nil
}

type hostGame struct {
	h    *hostHAL
	pin  *VirtualPin
	done <-chan error

	runErr error
	img    *image.RGBA
	fbImg  *ebiten.Image
	pixels []bool
	ledOn  bool
}

func (g *hostGame) Update() error {
	select {
	case err := <-g.done:
		g.runErr = err
		return ebiten.Termination
	default:
	}

	pollButton(g.pin)

	if on := g.h.led.isOn(); on != g.ledOn {
		g.ledOn = on
		title := "oledcpu (" + buildinfo.Short() + ")"
		if !on {
			title += " - no link"
		}
		ebiten.SetWindowTitle(title)
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	w, h := int(fb.width), int(fb.height)
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, w, h))
		g.fbImg = ebiten.NewImage(w, h)
	}

	g.pixels = fb.Snapshot(g.pixels)
	dst := g.img.Pix
	for i, lit := range g.pixels {
		j := i * 4
		if lit {
			dst[j+0] = oledRGB.R
			dst[j+1] = oledRGB.G
			dst[j+2] = oledRGB.B
		} else {
			dst[j+0] = 0
			dst[j+1] = 0
			dst[j+2] = 0
		}
		dst[j+3] = 0xFF
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.h.fb.width), int(g.h.fb.height)
}
