//go:build !tinygo && cgo

package hal

import "github.com/hajimehoshi/ebiten/v2"

// hostKeyboard maps desktop keys onto the button pins. It reports raw levels,
// not key events: debouncing is the runtime's job.
type hostKeyboard struct {
	gpio *virtualGPIO
}

func newHostKeyboard(gpio *virtualGPIO) *hostKeyboard {
	return &hostKeyboard{gpio: gpio}
}

func (k *hostKeyboard) poll() {
	k.set(hostPinUp, ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW))
	k.set(hostPinDown, ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS))
	k.set(hostPinSelect, ebiten.IsKeyPressed(ebiten.KeyEnter) || ebiten.IsKeyPressed(ebiten.KeySpace))
}

// set pulls an active-low button pin to ground while its key is held.
func (k *hostKeyboard) set(id int, held bool) {
	p := k.gpio.pin(id)
	if p == nil {
		return
	}
	if held {
		p.drive(false)
		return
	}
	p.release()
}
