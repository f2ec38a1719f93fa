//go:build tinygo && baremetal

package hal

import (
	"machine"
)

// Panel geometry of the hand-held (ST7789, portrait).
const (
	PanelWidth  = 240
	PanelHeight = 320
)

type tinyGoHAL struct {
	logger *uartLogger
	gpio   GPIO
	canvas Canvas
	timer  *tickerTimer
	dac    DAC
}

// New returns a Pico (RP2040/RP2350) HAL implementation.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// Panel: ST7789 on SPI0. Speaker: PWM on GP2.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}

	var canvas Canvas
	if lcd, err := initST7789(); err != nil {
		logger.WriteLineString("display: " + err.Error())
	} else {
		canvas = lcd
	}

	var dac DAC = nullDAC{}
	if out := newPWMDAC(machine.GP2); out != nil {
		if err := out.start(); err != nil {
			logger.WriteLineString("audio: " + err.Error())
		} else {
			dac = out
		}
	}

	return &tinyGoHAL{
		logger: logger,
		gpio:   machineGPIO{},
		canvas: canvas,
		timer:  newTickerTimer(),
		dac:    dac,
	}
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) Display() Display { return tinyGoDisplay{canvas: h.canvas} }
func (h *tinyGoHAL) GPIO() GPIO       { return h.gpio }
func (h *tinyGoHAL) Timer() Timer     { return h.timer }
func (h *tinyGoHAL) DAC() DAC         { return h.dac }
