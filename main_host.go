//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"tower/app"
	"tower/hal"

	"github.com/caarlos0/env/v11"
)

type hostConfig struct {
	Headless  bool   `env:"TOWER_HEADLESS"`
	Hz        int    `env:"TOWER_HZ"         envDefault:"60"`
	Ticks     uint64 `env:"TOWER_TICKS"`
	Script    string `env:"TOWER_SCRIPT"`
	HoldTicks int    `env:"TOWER_HOLD_TICKS" envDefault:"10"`

	App app.Config
}

func parseConfig(fs *flag.FlagSet, args []string) (hostConfig, error) {
	var cfg hostConfig
	if err := env.Parse(&cfg); err != nil {
		return hostConfig{}, fmt.Errorf("parse env: %w", err)
	}

	fs.BoolVar(&cfg.Headless, "headless", cfg.Headless, "Run without a window.")
	fs.IntVar(&cfg.Hz, "hz", cfg.Hz, "Tick rate in headless mode.")
	fs.Uint64Var(&cfg.Ticks, "ticks", cfg.Ticks, "Stop after N ticks in headless mode (0 = run forever).")
	fs.StringVar(&cfg.Script, "script", cfg.Script, "Comma-separated button presses replayed in headless mode (up,down,select).")
	fs.IntVar(&cfg.HoldTicks, "hold", cfg.HoldTicks, "Ticks each scripted press is held, and released, for.")
	fs.IntVar(&cfg.App.DebounceCount, "debounce", cfg.App.DebounceCount, "Matching samples needed (minus one) to accept a button change.")
	fs.DurationVar(&cfg.App.SamplePeriod, "sample-period", cfg.App.SamplePeriod, "Foreground audio sample period.")
	fs.DurationVar(&cfg.App.TimerPeriod, "timer-period", cfg.App.TimerPeriod, "Background audio timer period.")
	if err := fs.Parse(args); err != nil {
		return hostConfig{}, err
	}
	if cfg.App.SamplePeriod <= 0 || cfg.App.TimerPeriod <= 0 {
		return hostConfig{}, fmt.Errorf("audio periods must be positive (sample %s, timer %s)",
			cfg.App.SamplePeriod, cfg.App.TimerPeriod)
	}
	return cfg, nil
}

func main() {
	cfg, err := parseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	newApp := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, cfg.App)
	}

	if cfg.Headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, hal.HeadlessConfig{
			Enabled:   true,
			Hz:        cfg.Hz,
			Ticks:     cfg.Ticks,
			Script:    cfg.Script,
			HoldTicks: cfg.HoldTicks,
		}); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(newApp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
