//go:build tinygo && baremetal

package hal

import (
	"fmt"
	"machine"
)

type tinyGoDisplay struct {
	canvas Canvas
}

func (d tinyGoDisplay) Canvas() Canvas { return d.canvas }

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

// machineGPIO exposes the MCU pins GP0..GP28 by number.
type machineGPIO struct{}

const machinePinCount = 29

func (machineGPIO) PinCount() int { return machinePinCount }

func (machineGPIO) Pin(id int) GPIOPin {
	if id < 0 || id >= machinePinCount {
		return nil
	}
	return machinePin{pin: machine.Pin(id), name: fmt.Sprintf("GP%d", id)}
}

type machinePin struct {
	pin  machine.Pin
	name string
}

func (p machinePin) Name() string { return p.name }

func (p machinePin) Caps() GPIOCaps {
	return GPIOCapInput | GPIOCapOutput | GPIOCapPullUp | GPIOCapPullDown
}

func (p machinePin) Configure(mode GPIOMode, pull GPIOPull) error {
	var m machine.PinMode
	switch mode {
	case GPIOModeOutput:
		if pull != GPIOPullNone {
			return fmt.Errorf("gpio: pin %s: pull on output", p.name)
		}
		m = machine.PinOutput
	case GPIOModeInput:
		switch pull {
		case GPIOPullNone:
			m = machine.PinInput
		case GPIOPullUp:
			m = machine.PinInputPullup
		case GPIOPullDown:
			m = machine.PinInputPulldown
		default:
			return fmt.Errorf("gpio: pin %s: invalid pull", p.name)
		}
	default:
		return fmt.Errorf("gpio: pin %s: invalid mode", p.name)
	}
	p.pin.Configure(machine.PinConfig{Mode: m})
	return nil
}

func (p machinePin) Read() (bool, error) { return p.pin.Get(), nil }

func (p machinePin) Write(level bool) error {
	p.pin.Set(level)
	return nil
}
