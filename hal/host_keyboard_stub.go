//go:build !tinygo && !cgo

package hal

type hostKeyboard struct {
	gpio *virtualGPIO
}

func newHostKeyboard(gpio *virtualGPIO) *hostKeyboard {
	return &hostKeyboard{gpio: gpio}
}

func (k *hostKeyboard) poll() {
	// No keyboard support without the window backend.
}
