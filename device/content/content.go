// Package content is the set of demo screens shipped with the runtime.
package content

import (
	"context"
	"fmt"
	"time"

	"tower/device"
	"tower/device/input"
	"tower/device/render"
	"tower/device/screens"
	"tower/device/sound"
	"tower/internal/buildinfo"
)

// Screen IDs.
const (
	IDStartup screens.ID = iota
	IDMenu
	IDSounds
	IDButtons
	IDScroll
	IDAbout
	IDTour
)

// Start is the first screen shown after boot.
const Start = IDStartup

// foregroundTimeout bounds blocking playback.
const foregroundTimeout = 10 * time.Second

// Register installs every demo screen on d and sets the click sound.
func Register(d *device.Device) error {
	all := []struct {
		id screens.ID
		s  screens.Screen
	}{
		{IDStartup, &startup{d: d}},
		{IDMenu, &menu{d: d}},
		{IDSounds, &soundTest{d: d}},
		{IDButtons, &buttons{d: d}},
		{IDScroll, &scroll{d: d}},
		{IDAbout, &about{d: d}},
		{IDTour, &tour{d: d}},
	}
	for _, e := range all {
		if err := d.Screens.Register(e.id, e.s); err != nil {
			return fmt.Errorf("content: %w", err)
		}
	}
	d.Screens.SetClickSound(Beep)
	return nil
}

// goTo runs a navigator transition and logs a failure.
func goTo(d *device.Device, op func(screens.ID) error, id screens.ID) {
	if err := op(id); err != nil {
		d.Logf("content: %v", err)
	}
}

type startup struct {
	screens.Base
	d *device.Device
}

func (s *startup) Begin() {
	s.d.Input.Clear()
	s.d.Display.SetDesired(render.Layout{
		Title:  "Welcome",
		Bitmap: Logo,
		Info: []render.TextLine{
			{Text: "Tower " + buildinfo.Short(), Value: render.White},
			{Text: "Are you ready?", Value: render.White},
		},
		Options: []render.TextLine{{Text: "Begin"}},
	})
	s.d.Sound.Request(Intro, true)
}

func (s *startup) OnSelection() {
	goTo(s.d, s.d.Screens.Swap, IDMenu)
}

type menu struct {
	screens.Base
	d   *device.Device
	sel int
}

func (m *menu) Begin() {
	m.d.Input.Clear()
	m.d.Display.SetDesired(render.Layout{
		Title: "Main Menu",
		Options: []render.TextLine{
			{Text: "Sound test", Value: uint16(IDSounds)},
			{Text: "Buttons", Value: uint16(IDButtons)},
			{Text: "Long list", Value: uint16(IDScroll)},
			{Text: "Tour", Value: uint16(IDTour)},
			{Text: "About", Value: uint16(IDAbout)},
			{Text: "Restart", Value: uint16(IDStartup)},
		},
		Selection: m.sel,
	})
}

func (m *menu) OnOptionChanged() { m.sel = m.d.Display.Selection() }

func (m *menu) OnSelection() {
	opt, ok := m.d.Display.SelectedOption()
	if !ok {
		return
	}
	m.sel = m.d.Display.Selection()
	id := screens.ID(opt.Value)
	if id == IDStartup {
		m.d.Screens.RequestConfirmation("Restart", "Back to the start")
		return
	}
	goTo(m.d, m.d.Screens.Push, id)
}

func (m *menu) Confirm() {
	m.sel = 0
	goTo(m.d, m.d.Screens.Reset, IDStartup)
}

func (m *menu) Deny() { m.Begin() }

// Sound test options.
const (
	optBeep uint16 = iota
	optChime
	optEndTurn
	optFlourish
	optError
	optStop
	optBack
)

type soundTest struct {
	screens.Base
	d    *device.Device
	last string
}

func (t *soundTest) Begin() {
	t.last = "-"
	t.d.Display.SetDesired(render.Layout{
		Title: "Sound Test",
		Info:  t.info(),
		Options: []render.TextLine{
			{Text: "Beep", Value: optBeep},
			{Text: "Chime (wait)", Value: optChime},
			{Text: "End turn", Value: optEndTurn},
			{Text: "Flourish", Value: optFlourish},
			{Text: "Error", Value: optError},
			{Text: "Stop", Value: optStop},
			{Text: "Back", Value: optBack},
		},
	})
}

func (t *soundTest) info() []render.TextLine {
	state := t.d.Sound.State()
	color := render.Gray
	if state == sound.Playing {
		color = render.Green
	}
	return []render.TextLine{
		{Text: "Audio: " + state.String(), Value: color},
		{Text: "Last: " + t.last, Value: render.Cyan},
	}
}

func (t *soundTest) Update(time.Duration) {
	l := t.d.Display.Desired()
	l.Info = t.info()
	t.d.Display.SetDesired(l)
}

func (t *soundTest) OnSelection() {
	opt, ok := t.d.Display.SelectedOption()
	if !ok {
		return
	}
	switch opt.Value {
	case optBeep:
		t.d.Sound.Request(Beep, false)
	case optChime:
		t.d.Sound.Request(Chime, true)
	case optEndTurn:
		// The turn only ends once the chime has finished.
		t.d.Sound.Request(Chime, true)
		ctx, cancel := context.WithTimeout(context.Background(), foregroundTimeout)
		err := t.d.WaitSound(ctx)
		cancel()
		if err != nil {
			t.d.Logf("content: end turn: %v", err)
		}
	case optFlourish:
		ctx, cancel := context.WithTimeout(context.Background(), foregroundTimeout)
		err := t.d.PlayForeground(ctx, Flourish)
		cancel()
		if err != nil {
			t.d.Logf("content: flourish: %v", err)
		}
	case optError:
		t.d.Sound.Request(Error, false)
	case optStop:
		t.d.Sound.Stop()
	case optBack:
		t.d.Screens.Pop()
		return
	}
	t.last = opt.Text
}

type buttons struct {
	screens.Base
	d *device.Device
}

func (b *buttons) Begin() {
	b.d.Display.SetDesired(render.Layout{
		Title:   "Buttons",
		Info:    b.info(0),
		Options: []render.TextLine{{Text: "Back"}},
	})
}

func (b *buttons) info(elapsed time.Duration) []render.TextLine {
	lines := make([]render.TextLine, 0, input.ButtonCount+1)
	for btn := input.Button(0); btn < input.ButtonCount; btn++ {
		state, color := "up", render.White
		if b.d.Input.Pressed(btn) {
			state, color = "down", render.Yellow
		}
		lines = append(lines, render.TextLine{Text: fmt.Sprintf("%s: %s", btn, state), Value: color})
	}
	lines = append(lines, render.TextLine{
		Text:  fmt.Sprintf("%ds on screen", int(elapsed/time.Second)),
		Value: render.Gray,
	})
	return lines
}

func (b *buttons) Update(elapsed time.Duration) {
	l := b.d.Display.Desired()
	l.Info = b.info(elapsed)
	b.d.Display.SetDesired(l)
}

func (b *buttons) OnSelection() { b.d.Screens.Pop() }

const scrollItems = 24

type scroll struct {
	screens.Base
	d      *device.Device
	sel    int
	picked string
}

func (s *scroll) Begin() {
	l := render.Layout{Title: "Long List", Selection: s.sel}
	if s.picked != "" {
		l.Info = []render.TextLine{{Text: "Picked " + s.picked, Value: render.Green}}
	}
	for i := 1; i <= scrollItems; i++ {
		l.Options = append(l.Options, render.TextLine{Text: fmt.Sprintf("Item %d", i), Value: uint16(i)})
	}
	l.Options = append(l.Options, render.TextLine{Text: "Back", Value: 0})
	s.d.Display.SetDesired(l)
}

func (s *scroll) OnOptionChanged() { s.sel = s.d.Display.Selection() }

func (s *scroll) OnSelection() {
	opt, ok := s.d.Display.SelectedOption()
	if !ok {
		return
	}
	if opt.Value == 0 {
		s.sel, s.picked = 0, ""
		s.d.Screens.Pop()
		return
	}
	s.sel = s.d.Display.Selection()
	s.d.Screens.RequestConfirmation(s.d.Display.Title(), opt.Text)
}

func (s *scroll) Confirm() {
	s.picked = fmt.Sprintf("Item %d", s.sel+1)
	s.Begin()
}

func (s *scroll) Deny() { s.Begin() }

type about struct {
	screens.Base
	d *device.Device
}

func (a *about) Begin() {
	cfg := a.d.Config
	a.d.Display.SetDesired(render.Layout{
		Title: "About",
		Info: []render.TextLine{
			{Text: buildinfo.Line(), Value: render.White},
			{Text: fmt.Sprintf("Debounce %d", cfg.DebounceCount), Value: render.Gray},
			{Text: fmt.Sprintf("Audio %d Hz", int64(time.Second/cfg.SamplePeriod)), Value: render.Gray},
		},
		Options: []render.TextLine{{Text: "Back"}},
	})
}

func (a *about) OnSelection() { a.d.Screens.Pop() }

// tourPage is how long a tour page stays up before advancing by itself.
const tourPage = 4 * time.Second

type tour struct {
	screens.Base
	d     *device.Device
	pages render.Sequence
}

func (t *tour) Begin() {
	t.pages = render.Sequence{Now: t.d.Now}
	t.pages.Add(render.Layout{
		Title:  "Tour 1/3",
		Bitmap: Logo,
		Info: []render.TextLine{
			{Text: "Up and Down", Value: render.White},
			{Text: "move the cursor", Value: render.White},
		},
		Options: []render.TextLine{{Text: "Next"}},
	})
	t.pages.Add(render.Layout{
		Title: "Tour 2/3",
		Info: []render.TextLine{
			{Text: "Select picks", Value: render.White},
			{Text: "the marked line", Value: render.White},
			{Text: "Some sounds hold", Value: render.Orange},
			{Text: "input until done", Value: render.Orange},
		},
		Options: []render.TextLine{{Text: "Next"}},
	})
	t.pages.Add(render.Layout{
		Title: "Tour 3/3",
		Info: []render.TextLine{
			{Text: "Pages turn alone", Value: render.White},
			{Text: fmt.Sprintf("after %ds", int(tourPage/time.Second)), Value: render.White},
		},
		Options: []render.TextLine{{Text: "Done"}},
	})
	t.pages.Next(t.d.Display)
}

func (t *tour) Update(time.Duration) {
	if t.pages.Len() > 0 && t.pages.Elapsed() >= tourPage {
		t.pages.Next(t.d.Display)
	}
}

func (t *tour) OnSelection() {
	if t.pages.Next(t.d.Display) {
		return
	}
	t.d.Screens.Pop()
}
