package hal

import (
	"errors"
	"image/color"
	"time"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// Canvas is a pixel sink for the LCD panel.
//
// It matches tinygo.org/x/drivers.Displayer plus the FillRectangle fast path
// most panel drivers provide.
type Canvas interface {
	Size() (x, y int16)
	SetPixel(x, y int16, c color.RGBA)
	FillRectangle(x, y, width, height int16, c color.RGBA) error
	Display() error
}

// Display provides access to the panel (if available).
type Display interface {
	Canvas() Canvas
}

// Timer is a periodic timer. The callback runs on its own execution context
// and must not block.
type Timer interface {
	StartPeriodic(period time.Duration, fn func()) error
	Stop() error
	Active() bool
}

// DAC is a single-channel 8-bit sample output.
//
// WriteSample is called from timer context and must not block.
type DAC interface {
	WriteSample(v uint8)
}

// HAL provides the only contact point between the runtime and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	GPIO() GPIO
	Timer() Timer
	DAC() DAC
}
