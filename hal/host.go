//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
)

// Panel geometry of the hand-held (ST7789, portrait).
const (
	PanelWidth  = 240
	PanelHeight = 320
)

// Host button wiring. Arrow keys and Enter drive these pins low while held.
const (
	hostPinUp     = 1
	hostPinDown   = 3
	hostPinSelect = 7
	hostPinCount  = 8
)

type hostHAL struct {
	logger *hostLogger
	gpio   *virtualGPIO
	fb     *hostFramebuffer
	kbd    *hostKeyboard
	timer  *tickerTimer
	dac    DAC
}

// New returns a host HAL implementation.
func New() HAL {
	return newHost()
}

func newHost() *hostHAL {
	pins := make([]*virtualPin, 0, hostPinCount)
	for i := 0; i < hostPinCount; i++ {
		pins = append(pins, newVirtualPin(fmt.Sprintf("GPIO%d", i), GPIOCapInput|GPIOCapOutput|GPIOCapPullUp|GPIOCapPullDown))
	}
	gpio := &virtualGPIO{pins: pins}
	return &hostHAL{
		logger: &hostLogger{w: os.Stdout},
		gpio:   gpio,
		fb:     newHostFramebuffer(PanelWidth, PanelHeight),
		kbd:    newHostKeyboard(gpio),
		timer:  newTickerTimer(),
		dac:    nullDAC{},
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) GPIO() GPIO       { return h.gpio }
func (h *hostHAL) Timer() Timer     { return h.timer }
func (h *hostHAL) DAC() DAC         { return h.dac }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Canvas() Canvas { return d.fb }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
