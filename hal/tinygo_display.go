//go:build tinygo && baremetal

package hal

import (
	"errors"
	"machine"

	"tinygo.org/x/drivers/st7789"
)

// initST7789 brings up the 240x320 panel on SPI0.
func initST7789() (*st7789.Device, error) {
	if machine.SPI0 == nil {
		return nil, errors.New("SPI0 unavailable")
	}
	if err := machine.SPI0.Configure(machine.SPIConfig{
		SCK:       machine.GP18,
		SDO:       machine.GP19,
		Frequency: 40_000_000,
	}); err != nil {
		return nil, err
	}

	lcd := st7789.New(machine.SPI0,
		machine.GP20, // RST
		machine.GP16, // DC
		machine.GP17, // CS
		machine.GP21, // backlight
	)
	lcd.Configure(st7789.Config{
		Width:    PanelWidth,
		Height:   PanelHeight,
		Rotation: st7789.NO_ROTATION,
	})
	return &lcd, nil
}
