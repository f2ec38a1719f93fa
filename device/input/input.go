// Package input debounces the three active-low device buttons into press
// edges.
package input

import (
	"errors"
	"fmt"
	"strings"

	"tower/hal"
)

// Button identifies one of the device buttons.
type Button uint8

const (
	Up Button = iota
	Down
	Select
	ButtonCount
)

func (b Button) String() string {
	switch b {
	case Up:
		return "up"
	case Down:
		return "down"
	case Select:
		return "select"
	default:
		return "unknown"
	}
}

// EdgeSet is the set of buttons that became pressed since the last read and
// are still held.
type EdgeSet uint8

// Has reports whether b is in the set.
func (e EdgeSet) Has(b Button) bool { return e&(1<<b) != 0 }

// Empty reports whether no edge is in the set.
func (e EdgeSet) Empty() bool { return e == 0 }

func (e EdgeSet) String() string {
	var parts []string
	for b := Button(0); b < ButtonCount; b++ {
		if e.Has(b) {
			parts = append(parts, b.String())
		}
	}
	return "{" + strings.Join(parts, ",") + "}"
}

const (
	minCountRequired = 1
	maxCountRequired = 254
)

type buttonState struct {
	pin        hal.GPIOPin
	lastStable bool
	mismatches uint8
	edge       bool
}

// Debouncer turns raw pin levels into clean press edges.
//
// Pins are pull-up and active-low: a stable low level means pressed.
type Debouncer struct {
	buttons       [ButtonCount]buttonState
	countRequired uint8
}

// New configures pins as pulled-up inputs and seeds the stable readings so
// that power-up does not produce an edge. countRequired is clamped to
// [1,254]; a new level is accepted after countRequired+1 differing samples.
func New(pins [ButtonCount]hal.GPIOPin, countRequired int) (*Debouncer, error) {
	if countRequired < minCountRequired {
		countRequired = minCountRequired
	}
	if countRequired > maxCountRequired {
		countRequired = maxCountRequired
	}

	d := &Debouncer{countRequired: uint8(countRequired)}
	for i, pin := range pins {
		if pin == nil {
			return nil, fmt.Errorf("input: %s: %w", Button(i), errNoPin)
		}
		if err := pin.Configure(hal.GPIOModeInput, hal.GPIOPullUp); err != nil {
			return nil, fmt.Errorf("input: configure %s: %w", pin.Name(), err)
		}
		d.buttons[i].pin = pin
	}
	for i := range d.buttons {
		b := &d.buttons[i]
		level, err := b.pin.Read()
		if err != nil {
			return nil, fmt.Errorf("input: read %s: %w", b.pin.Name(), err)
		}
		b.lastStable = level
	}
	return d, nil
}

var errNoPin = errors.New("no pin")

// Update samples every button once.
func (d *Debouncer) Update() {
	for i := range d.buttons {
		b := &d.buttons[i]
		level, err := b.pin.Read()
		if err != nil {
			// A failed read counts as a matching sample.
			level = b.lastStable
		}
		if level == b.lastStable {
			b.mismatches = 0
			continue
		}
		if b.mismatches < 255 {
			b.mismatches++
		}
		if b.mismatches > d.countRequired {
			b.lastStable = level
			b.mismatches = 0
			// A stable release withdraws a press nobody has read yet.
			b.edge = !level
		}
	}
}

// ReadEdges returns and consumes the pending press edges.
func (d *Debouncer) ReadEdges() EdgeSet {
	var e EdgeSet
	for i := range d.buttons {
		if d.buttons[i].edge {
			e |= 1 << i
			d.buttons[i].edge = false
		}
	}
	return e
}

// Clear drops pending edges and partial debounce progress without reading
// the pins.
func (d *Debouncer) Clear() {
	for i := range d.buttons {
		d.buttons[i].mismatches = 0
		d.buttons[i].edge = false
	}
}

// Pressed reports the debounced state of b.
func (d *Debouncer) Pressed(b Button) bool {
	if b >= ButtonCount {
		return false
	}
	return !d.buttons[b].lastStable
}
