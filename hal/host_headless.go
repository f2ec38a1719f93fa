//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64

	// Script is a comma-separated list of button presses (up, down, select)
	// replayed on the button pins, one every 2*HoldTicks ticks.
	Script    string
	HoldTicks int
}

// RunHeadless runs the device loop without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.HoldTicks <= 0 {
		cfg.HoldTicks = 10
	}

	presses, err := parseScript(cfg.Script)
	if err != nil {
		return err
	}

	h := newHost()
	step := newApp(h)
	sc := &script{gpio: h.gpio, presses: presses, hold: cfg.HoldTicks}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()
	defer h.timer.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			sc.step()
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

func parseScript(s string) ([]int, error) {
	var pins []int
	for _, f := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "":
		case "up", "u":
			pins = append(pins, hostPinUp)
		case "down", "d":
			pins = append(pins, hostPinDown)
		case "select", "s", "enter":
			pins = append(pins, hostPinSelect)
		default:
			return nil, fmt.Errorf("headless script: unknown button %q", f)
		}
	}
	return pins, nil
}

// script replays button presses: each pin is held low for hold ticks, then
// released for hold ticks.
type script struct {
	gpio    *virtualGPIO
	presses []int
	hold    int
	tick    int
}

func (s *script) step() {
	if len(s.presses) == 0 {
		return
	}
	idx := s.tick / (2 * s.hold)
	s.tick++
	if idx >= len(s.presses) {
		return
	}
	p := s.gpio.pin(s.presses[idx])
	if p == nil {
		return
	}
	if (s.tick-1)%(2*s.hold) < s.hold {
		p.drive(false)
		return
	}
	p.release()
}
