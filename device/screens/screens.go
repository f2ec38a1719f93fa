// Package screens sequences the user through a stack of modal screens with
// an optional confirm/deny overlay.
package screens

import (
	"errors"
	"fmt"
	"time"

	"tower/device/input"
	"tower/device/render"
	"tower/device/sound"
	"tower/hal"
)

// Screen is a unit of navigable UI. The navigator calls its hooks from the
// main loop; a screen draws by mutating the renderer's desired layout.
type Screen interface {
	// Begin runs every time the screen becomes active, including when it is
	// uncovered by a pop.
	Begin()
	Update(elapsed time.Duration)
	OnOptionChanged()
	OnSelection()
	// Confirm and Deny answer a RequestConfirmation made by this screen.
	Confirm()
	Deny()
}

// Base provides no-op hooks for embedding.
type Base struct{}

func (Base) Begin()               {}
func (Base) Update(time.Duration) {}
func (Base) OnOptionChanged()     {}
func (Base) OnSelection()         {}
func (Base) Confirm()             {}
func (Base) Deny()                {}

// ID names a registered screen.
type ID uint8

// Audio is the part of the sound scheduler the navigator needs.
type Audio interface {
	Request(s *sound.Sound, waitForCompletion bool)
	IsPlaying() bool
	IsWaitingForCompletion() bool
}

var (
	ErrUnknownScreen = errors.New("unknown screen")
	ErrDuplicate     = errors.New("screen already registered")
)

// Confirm overlay options.
const (
	OptionYes    = 0
	OptionGoBack = 1
)

// Navigator owns the screen stack. Screens live in a fixed registry and the
// stack holds their IDs.
type Navigator struct {
	r     *render.Renderer
	audio Audio
	now   func() time.Time
	log   hal.Logger

	registry []Screen
	stack    []ID

	confirm confirmScreen
	overlay bool
	started time.Time

	click *sound.Sound
}

// New returns a navigator with an empty stack. now defaults to time.Now.
func New(r *render.Renderer, audio Audio, now func() time.Time) *Navigator {
	if now == nil {
		now = time.Now
	}
	n := &Navigator{r: r, audio: audio, now: now}
	n.confirm.r = r
	n.started = now()
	return n
}

// SetLogger enables transition logging.
func (n *Navigator) SetLogger(l hal.Logger) { n.log = l }

// SetClickSound sets the sound requested on every accepted button edge when
// nothing else is playing. nil disables it.
func (n *Navigator) SetClickSound(s *sound.Sound) { n.click = s }

// Register installs s under id.
func (n *Navigator) Register(id ID, s Screen) error {
	if s == nil {
		return fmt.Errorf("screens: register %d: nil screen", id)
	}
	if int(id) < len(n.registry) && n.registry[id] != nil {
		return fmt.Errorf("screens: register %d: %w", id, ErrDuplicate)
	}
	for int(id) >= len(n.registry) {
		n.registry = append(n.registry, nil)
	}
	n.registry[id] = s
	return nil
}

func (n *Navigator) lookup(id ID) (Screen, error) {
	if int(id) >= len(n.registry) || n.registry[id] == nil {
		return nil, fmt.Errorf("screens: %d: %w", id, ErrUnknownScreen)
	}
	return n.registry[id], nil
}

// Push starts id on top of the stack.
func (n *Navigator) Push(id ID) error {
	s, err := n.lookup(id)
	if err != nil {
		return err
	}
	n.stack = append(n.stack, id)
	n.logf("screens: push %d (depth %d)", id, len(n.stack))
	n.start(s)
	return nil
}

// Pop removes the top screen and restarts the one below it, if any.
func (n *Navigator) Pop() {
	if len(n.stack) == 0 {
		return
	}
	n.stack = n.stack[:len(n.stack)-1]
	n.logf("screens: pop (depth %d)", len(n.stack))
	if s, ok := n.top(); ok {
		n.start(s)
	}
}

// Swap replaces the top screen with id. On an empty stack it pushes.
func (n *Navigator) Swap(id ID) error {
	s, err := n.lookup(id)
	if err != nil {
		return err
	}
	if len(n.stack) > 0 {
		n.stack[len(n.stack)-1] = id
	} else {
		n.stack = append(n.stack, id)
	}
	n.logf("screens: swap %d (depth %d)", id, len(n.stack))
	n.start(s)
	return nil
}

// Reset clears the stack and starts id as its only screen.
func (n *Navigator) Reset(id ID) error {
	s, err := n.lookup(id)
	if err != nil {
		return err
	}
	n.stack = append(n.stack[:0], id)
	n.logf("screens: reset %d", id)
	n.start(s)
	return nil
}

// RequestConfirmation covers the current screen with a Yes / Go back prompt.
// The answer arrives as Confirm or Deny on the screen below.
func (n *Navigator) RequestConfirmation(title, message string) {
	n.confirm.title, n.confirm.message = title, message
	n.overlay = true
	n.started = n.now()
	n.confirm.Begin()
}

// Top returns the ID of the top screen.
func (n *Navigator) Top() (ID, bool) {
	if len(n.stack) == 0 {
		return 0, false
	}
	return n.stack[len(n.stack)-1], true
}

func (n *Navigator) Depth() int          { return len(n.stack) }
func (n *Navigator) OverlayActive() bool { return n.overlay }

// Elapsed is the time since the active screen or overlay began.
func (n *Navigator) Elapsed() time.Duration { return n.now().Sub(n.started) }

func (n *Navigator) start(s Screen) {
	n.overlay = false
	n.started = n.now()
	s.Begin()
}

func (n *Navigator) top() (Screen, bool) {
	id, ok := n.Top()
	if !ok {
		return nil, false
	}
	return n.registry[id], true
}

// target is the screen receiving input: the overlay, else the stack top.
func (n *Navigator) target() (Screen, bool) {
	if n.overlay {
		return &n.confirm, true
	}
	return n.top()
}

// Tick updates the active screen and dispatches at most one button edge.
// Up wins over Down, and Down over Select.
func (n *Navigator) Tick(edges input.EdgeSet) {
	if s, ok := n.target(); ok {
		s.Update(n.Elapsed())
	}

	switch {
	case edges.Has(input.Up):
		n.moveSelection(-1)
	case edges.Has(input.Down):
		n.moveSelection(+1)
	case edges.Has(input.Select):
		n.selectOption()
	}
}

func (n *Navigator) moveSelection(delta int) {
	n.playClick()
	n.r.SetSelection(n.r.Selection() + delta)
	if s, ok := n.target(); ok {
		s.OnOptionChanged()
	}
}

func (n *Navigator) selectOption() {
	if n.audio != nil && n.audio.IsWaitingForCompletion() {
		return
	}
	if n.r.OptionCount() == 0 {
		return
	}
	n.playClick()

	if n.overlay {
		answer := n.r.Selection()
		n.overlay = false
		s, ok := n.top()
		if !ok {
			return
		}
		if answer == OptionYes {
			s.Confirm()
		} else {
			s.Deny()
		}
		return
	}
	if s, ok := n.top(); ok {
		s.OnSelection()
	}
}

func (n *Navigator) playClick() {
	if n.click == nil || n.audio == nil || n.audio.IsPlaying() {
		return
	}
	n.audio.Request(n.click, false)
}

func (n *Navigator) logf(format string, args ...any) {
	if n.log == nil {
		return
	}
	n.log.WriteLineString(fmt.Sprintf(format, args...))
}

// confirmScreen is the built-in overlay.
type confirmScreen struct {
	Base
	r              *render.Renderer
	title, message string
}

func (c *confirmScreen) Begin() {
	c.r.SetDesired(render.Layout{
		Title: c.title,
		Info: []render.TextLine{
			{Text: c.message, Value: render.White},
			{Text: "Are you sure?", Value: render.White},
		},
		Options: []render.TextLine{
			{Text: "Yes", Value: OptionYes},
			{Text: "Go back", Value: OptionGoBack},
		},
	})
}
