//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	periphhost "periph.io/x/host/v3"
)

// PeriphConfig runs the firmware loop on a Linux board (e.g. a Raspberry Pi)
// with a real SSD1306 on I2C and an optional button on a GPIO line.
type PeriphConfig struct {
	Host HostConfig
	// I2CBus is the bus name ("" = first available, "1" = /dev/i2c-1).
	I2CBus string
	// ButtonPin is a periph pin name such as "GPIO17"; empty means no button.
	ButtonPin string
}

// RunPeriph opens the hardware and runs the firmware loop on it.
func RunPeriph(ctx context.Context, run func(context.Context, HAL) error, cfg PeriphConfig) error {
	if _, err := periphhost.Init(); err != nil {
		return fmt.Errorf("periph: init: %w", err)
	}

	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return fmt.Errorf("periph: open i2c %q: %w", cfg.I2CBus, err)
	}
	defer bus.Close()

	height := int(cfg.Host.Height)
	if height <= 0 {
		height = 32
	}
	opts := ssd1306.DefaultOpts
	opts.W = 128
	opts.H = height
	opts.Sequential = height == 32
	dev, err := ssd1306.NewI2C(bus, &opts)
	if err != nil {
		return fmt.Errorf("periph: ssd1306: %w", err)
	}
	defer dev.Halt()

	if cfg.ButtonPin != "" {
		p := gpioreg.ByName(cfg.ButtonPin)
		if p == nil {
			return fmt.Errorf("periph: unknown pin %q", cfg.ButtonPin)
		}
		cfg.Host.Button = &periphPin{p: p}
	}
	cfg.Host.Display = newPeriphDisplay(dev)

	return run(ctx, newHostHAL(cfg.Host))
}

// periphDisplay adapts a periph SSD1306 to drivers.Displayer.
type periphDisplay struct {
	dev *ssd1306.Dev
	img *image1bit.VerticalLSB
}

func newPeriphDisplay(dev *ssd1306.Dev) *periphDisplay {
	return &periphDisplay{dev: dev, img: image1bit.NewVerticalLSB(dev.Bounds())}
}

func (d *periphDisplay) Size() (x, y int16) {
	r := d.img.Bounds()
	return int16(r.Dx()), int16(r.Dy())
}

func (d *periphDisplay) SetPixel(x, y int16, c color.RGBA) {
	if isLit(c) {
		d.img.SetBit(int(x), int(y), image1bit.On)
	} else {
		d.img.SetBit(int(x), int(y), image1bit.Off)
	}
}

func (d *periphDisplay) Display() error {
	return d.dev.Draw(d.dev.Bounds(), d.img, image.Point{})
}

// periphPin adapts a periph GPIO line to GPIOPin.
type periphPin struct {
	p gpio.PinIO
}

func (p *periphPin) Name() string { return p.p.Name() }

func (p *periphPin) Caps() GPIOCaps {
	return GPIOCapInput | GPIOCapOutput | GPIOCapPullUp | GPIOCapPullDown
}

func (p *periphPin) Configure(mode GPIOMode, pull GPIOPull) error {
	if mode == GPIOModeOutput {
		return p.p.Out(gpio.Low)
	}
	pp := gpio.Float
	switch pull {
	case GPIOPullUp:
		pp = gpio.PullUp
	case GPIOPullDown:
		pp = gpio.PullDown
	}
	if err := p.p.In(pp, gpio.NoEdge); err != nil {
		return fmt.Errorf("gpio: pin %s: %w", p.p.Name(), err)
	}
	return nil
}

func (p *periphPin) Read() (bool, error) {
	return p.p.Read() == gpio.High, nil
}

func (p *periphPin) Write(level bool) error {
	return p.p.Out(gpio.Level(level))
}
