// Package device ties the runtime components into one explicit context that
// screen content receives in place of global state.
package device

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tower/device/input"
	"tower/device/render"
	"tower/device/screens"
	"tower/device/sound"
	"tower/hal"
)

// Config tunes the runtime.
type Config struct {
	// DebounceCount is the number of matching samples a button needs, minus
	// one, before a new level is accepted.
	DebounceCount int
	// SamplePeriod paces foreground playback.
	SamplePeriod time.Duration
	// TimerPeriod is the audio timer period for background playback.
	TimerPeriod time.Duration
	// WaitPoll is how often a foreground wait polls the scheduler.
	WaitPoll time.Duration
}

// DefaultConfig matches the shipped hardware: an 8 kHz sample rate and a
// five-sample debounce.
func DefaultConfig() Config {
	return Config{
		DebounceCount: 5,
		SamplePeriod:  125 * time.Microsecond,
		TimerPeriod:   126 * time.Microsecond,
		WaitPoll:      500 * time.Millisecond,
	}
}

// Parts are the hardware collaborators a Device is built from.
type Parts struct {
	Buttons [input.ButtonCount]hal.GPIOPin
	Driver  render.Driver
	Timer   sound.Timer
	Output  sound.Output
	Log     hal.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Device is the runtime context.
type Device struct {
	Input   *input.Debouncer
	Display *render.Renderer
	Sound   *sound.Scheduler
	Screens *screens.Navigator
	Log     hal.Logger
	Config  Config

	out   sound.Output
	now   func() time.Time
	flush flusher
}

// flusher is a driver that buffers writes until Display.
type flusher interface {
	Display() error
}

var errMissingPart = errors.New("missing part")

// New builds a Device from p.
func New(p Parts, cfg Config) (*Device, error) {
	switch {
	case p.Driver == nil:
		return nil, fmt.Errorf("device: driver: %w", errMissingPart)
	case p.Timer == nil:
		return nil, fmt.Errorf("device: timer: %w", errMissingPart)
	case p.Output == nil:
		return nil, fmt.Errorf("device: output: %w", errMissingPart)
	}
	def := DefaultConfig()
	if cfg.SamplePeriod <= 0 {
		cfg.SamplePeriod = def.SamplePeriod
	}
	if cfg.TimerPeriod <= 0 {
		cfg.TimerPeriod = def.TimerPeriod
	}
	if cfg.WaitPoll <= 0 {
		cfg.WaitPoll = def.WaitPoll
	}

	in, err := input.New(p.Buttons, cfg.DebounceCount)
	if err != nil {
		return nil, fmt.Errorf("device: %w", err)
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	fl, _ := p.Driver.(flusher)
	r := render.New(p.Driver)
	snd := sound.New(p.Timer, p.Output, cfg.TimerPeriod, p.Log)
	nav := screens.New(r, snd, p.Now)
	nav.SetLogger(p.Log)

	return &Device{
		Input:   in,
		Display: r,
		Sound:   snd,
		Screens: nav,
		Log:     p.Log,
		Config:  cfg,
		out:     p.Output,
		now:     p.Now,
		flush:   fl,
	}, nil
}

// Tick runs one pass of the main loop: repaint, audio bookkeeping, input
// sampling, then edge dispatch.
func (d *Device) Tick() {
	d.Display.Repaint()
	if d.flush != nil {
		_ = d.flush.Display()
	}
	d.Sound.Tick()
	d.Input.Update()
	d.Screens.Tick(d.Input.ReadEdges())
}

// PlayForeground stops background audio and plays s to completion on the
// calling goroutine.
func (d *Device) PlayForeground(ctx context.Context, s *sound.Sound) error {
	d.Sound.Stop()
	if err := d.Sound.WaitIdle(ctx, d.Config.WaitPoll); err != nil {
		return err
	}
	return sound.PlayForeground(ctx, d.out, s, d.Config.SamplePeriod)
}

// WaitSound blocks until background audio finishes.
func (d *Device) WaitSound(ctx context.Context) error {
	return d.Sound.WaitIdle(ctx, d.Config.WaitPoll)
}

// Now reads the device clock.
func (d *Device) Now() time.Time { return d.now() }

// Logf writes a formatted log line.
func (d *Device) Logf(format string, args ...any) {
	if d.Log == nil {
		return
	}
	d.Log.WriteLineString(fmt.Sprintf(format, args...))
}
