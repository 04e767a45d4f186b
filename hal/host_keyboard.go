//go:build !tinygo && cgo

package hal

import "github.com/hajimehoshi/ebiten/v2"

// pollButton maps SPACE (or ENTER) onto the active-low button pin.
func pollButton(pin *VirtualPin) {
	if pin == nil {
		return
	}
	pressed := ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyEnter)
	pin.Drive(!pressed)
}
