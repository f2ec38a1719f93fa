//go:build tinygo && baremetal

package hal

import (
	"machine"
)

type pwmDevice interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	SetTop(top uint32)
	Top() uint32
	Set(channel uint8, value uint32)
	Enable(enable bool)
}

// pwmDAC emulates an 8-bit DAC with a fast PWM carrier and an RC filter on
// the speaker pin.
type pwmDAC struct {
	pin machine.Pin
	pwm pwmDevice
	ch  uint8
	top uint32
}

func newPWMDAC(pin machine.Pin) *pwmDAC {
	pwm := pwmForPin(pin)
	if pwm == nil {
		return nil
	}
	return &pwmDAC{pin: pin, pwm: pwm}
}

func pwmForPin(pin machine.Pin) pwmDevice {
	slice, err := machine.PWMPeripheral(pin)
	if err != nil {
		return nil
	}
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	case 7:
		return machine.PWM7
	default:
		return nil
	}
}

func (a *pwmDAC) start() error {
	// Fixed ~62.5kHz carrier, well above the 8kHz sample rate.
	const pwmCarrierHz = 62500
	if err := a.pwm.Configure(machine.PWMConfig{Period: 1e9 / pwmCarrierHz}); err != nil {
		return err
	}
	ch, err := a.pwm.Channel(a.pin)
	if err != nil {
		return err
	}
	a.ch = ch
	a.top = a.pwm.Top()
	a.pwm.Set(a.ch, 0)
	a.pwm.Enable(true)
	return nil
}

func (a *pwmDAC) WriteSample(v uint8) {
	a.pwm.Set(a.ch, (uint32(v)*a.top)/255)
}
