package app

import (
	"errors"
	"fmt"
	"time"

	"tower/device"
	"tower/device/content"
	"tower/device/input"
	"tower/device/render"
	"tower/hal"
	"tower/internal/buildinfo"
)

// Config selects the button wiring and runtime timing.
type Config struct {
	UpPin     int `env:"TOWER_PIN_UP"     envDefault:"1"`
	DownPin   int `env:"TOWER_PIN_DOWN"   envDefault:"3"`
	SelectPin int `env:"TOWER_PIN_SELECT" envDefault:"7"`

	DebounceCount int           `env:"TOWER_DEBOUNCE"      envDefault:"5"`
	SamplePeriod  time.Duration `env:"TOWER_SAMPLE_PERIOD" envDefault:"125us"`
	TimerPeriod   time.Duration `env:"TOWER_TIMER_PERIOD"  envDefault:"126us"`
}

// DefaultConfig returns the wiring of the shipped board.
func DefaultConfig() Config {
	d := device.DefaultConfig()
	return Config{
		UpPin:         1,
		DownPin:       3,
		SelectPin:     7,
		DebounceCount: d.DebounceCount,
		SamplePeriod:  d.SamplePeriod,
		TimerPeriod:   d.TimerPeriod,
	}
}

// New initializes the runtime with the default config and returns the
// per-frame step function.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, DefaultConfig())
}

// Run starts the runtime and loops forever (TinyGo/native entrypoint).
func Run(h hal.HAL) {
	RunWithConfig(h, DefaultConfig())
}

// NewWithConfig builds the device from h and returns the step function the
// host runner or TinyGo loop calls once per frame. A setup failure is
// reported by the first call of the step.
func NewWithConfig(h hal.HAL, cfg Config) func() error {
	d, err := newDevice(h, cfg)
	if err != nil {
		logLine(h, "boot: "+err.Error())
		return func() error { return err }
	}
	d.Logf("boot: %s", buildinfo.Line())
	return guard(h, d.Tick)
}

// RunWithConfig runs the step function until it fails, then halts with the
// failure on screen.
func RunWithConfig(h hal.HAL, cfg Config) {
	step := NewWithConfig(h, cfg)
	frame := time.Second / 60
	for {
		start := time.Now()
		if err := step(); err != nil {
			if !errors.Is(err, errPanic) {
				showFault(h, fault{what: "error", value: err})
			}
			select {}
		}
		if d := frame - time.Since(start); d > 0 {
			time.Sleep(d)
		}
	}
}

func newDevice(h hal.HAL, cfg Config) (*device.Device, error) {
	if h == nil {
		return nil, errors.New("app: nil hal")
	}
	disp := h.Display()
	if disp == nil || disp.Canvas() == nil {
		return nil, fmt.Errorf("app: display: %w", hal.ErrNotImplemented)
	}
	gpio := h.GPIO()
	if gpio == nil {
		return nil, fmt.Errorf("app: gpio: %w", hal.ErrNotImplemented)
	}

	var parts device.Parts
	pins := [input.ButtonCount]int{
		input.Up:     cfg.UpPin,
		input.Down:   cfg.DownPin,
		input.Select: cfg.SelectPin,
	}
	for b, id := range pins {
		p := gpio.Pin(id)
		if p == nil {
			return nil, fmt.Errorf("app: %s button: no pin %d", input.Button(b), id)
		}
		parts.Buttons[b] = p
	}
	parts.Driver = render.NewFontDriver(disp.Canvas())
	parts.Timer = h.Timer()
	parts.Output = h.DAC()
	parts.Log = h.Logger()

	dc := device.DefaultConfig()
	dc.DebounceCount = cfg.DebounceCount
	dc.SamplePeriod = cfg.SamplePeriod
	dc.TimerPeriod = cfg.TimerPeriod

	d, err := device.New(parts, dc)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	if err := content.Register(d); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	if err := d.Screens.Reset(content.Start); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	return d, nil
}

func logLine(h hal.HAL, s string) {
	if h == nil {
		return
	}
	if l := h.Logger(); l != nil {
		l.WriteLineString(s)
	}
}
