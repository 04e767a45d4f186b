//go:build tinygo

package main

import (
	"context"

	"oledcpu/app"
	"oledcpu/hal"
)

func main() {
	h := hal.New()
	if err := app.Run(context.Background(), h, app.DefaultConfig()); err != nil {
		hal.Logf(h.Logger(), "oledcpu: %v", err)
	}
	select {}
}
