package input

import (
	"errors"
	"testing"

	"tower/hal"
)

type fakePin struct {
	name    string
	level   bool
	readErr error
	cfgErr  error
	reads   int
	mode    hal.GPIOMode
	pull    hal.GPIOPull
}

func (p *fakePin) Name() string        { return p.name }
func (p *fakePin) Caps() hal.GPIOCaps  { return hal.GPIOCapInput | hal.GPIOCapPullUp }
func (p *fakePin) Write(bool) error    { return hal.ErrNotImplemented }
func (p *fakePin) Read() (bool, error) { p.reads++; return p.level, p.readErr }

func (p *fakePin) Configure(mode hal.GPIOMode, pull hal.GPIOPull) error {
	p.mode, p.pull = mode, pull
	return p.cfgErr
}

func newPins() (pins [ButtonCount]hal.GPIOPin, raw [ButtonCount]*fakePin) {
	for i := range raw {
		raw[i] = &fakePin{name: Button(i).String(), level: true}
		pins[i] = raw[i]
	}
	return pins, raw
}

func mustNew(t *testing.T, pins [ButtonCount]hal.GPIOPin, count int) *Debouncer {
	t.Helper()
	d, err := New(pins, count)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

func TestNewConfiguresPullUpAndSeeds(t *testing.T) {
	pins, raw := newPins()
	raw[Select].level = false // held at power-up

	d := mustNew(t, pins, 3)
	for _, p := range raw {
		if p.mode != hal.GPIOModeInput || p.pull != hal.GPIOPullUp {
			t.Fatalf("pin %s not configured as pull-up input", p.name)
		}
		if p.reads != 1 {
			t.Fatalf("pin %s: expected 1 seeding read, got %d", p.name, p.reads)
		}
	}

	for i := 0; i < 10; i++ {
		d.Update()
	}
	if e := d.ReadEdges(); !e.Empty() {
		t.Fatalf("expected no power-up edge, got %s", e)
	}
	if !d.Pressed(Select) {
		t.Fatal("expected select to be seeded as pressed")
	}
}

func TestNewErrors(t *testing.T) {
	pins, raw := newPins()
	raw[Down].cfgErr = errors.New("boom")
	if _, err := New(pins, 3); err == nil {
		t.Fatal("expected configure error")
	}

	pins, _ = newPins()
	pins[Up] = nil
	if _, err := New(pins, 3); !errors.Is(err, errNoPin) {
		t.Fatalf("expected errNoPin, got %v", err)
	}
}

func TestAllUnpressedReturnsEmpty(t *testing.T) {
	pins, _ := newPins()
	d := mustNew(t, pins, 5)
	for i := 0; i < 20; i++ {
		d.Update()
	}
	if e := d.ReadEdges(); !e.Empty() {
		t.Fatalf("expected empty edge set, got %s", e)
	}
}

func TestPressAcceptedAfterCountRequiredPlusOne(t *testing.T) {
	for _, count := range []int{1, 2, 5, 10} {
		pins, raw := newPins()
		d := mustNew(t, pins, count)

		raw[Down].level = false
		for i := 0; i < count; i++ {
			d.Update()
			if e := d.ReadEdges(); !e.Empty() {
				t.Fatalf("count=%d: edge after %d samples", count, i+1)
			}
		}
		d.Update()
		e := d.ReadEdges()
		if !e.Has(Down) || e.Has(Up) || e.Has(Select) {
			t.Fatalf("count=%d: expected {down}, got %s", count, e)
		}
	}
}

func TestGlitchNeverFlipsStableState(t *testing.T) {
	pins, raw := newPins()
	d := mustNew(t, pins, 3)

	// Up to countRequired differing samples, then a matching one, repeated.
	for round := 0; round < 20; round++ {
		n := round%3 + 1
		raw[Up].level = false
		for i := 0; i < n; i++ {
			d.Update()
		}
		raw[Up].level = true
		d.Update()
	}
	if e := d.ReadEdges(); !e.Empty() {
		t.Fatalf("expected glitches to be filtered, got %s", e)
	}
	if d.Pressed(Up) {
		t.Fatal("expected up to remain released")
	}
}

func TestReadEdgesConsumes(t *testing.T) {
	pins, raw := newPins()
	d := mustNew(t, pins, 1)

	raw[Select].level = false
	d.Update()
	d.Update()

	if e := d.ReadEdges(); !e.Has(Select) {
		t.Fatalf("expected select edge, got %s", e)
	}
	if e := d.ReadEdges(); !e.Empty() {
		t.Fatalf("expected second read to be empty, got %s", e)
	}
}

func TestReleaseProducesNoEdge(t *testing.T) {
	pins, raw := newPins()
	d := mustNew(t, pins, 1)

	raw[Up].level = false
	d.Update()
	d.Update()
	d.ReadEdges()

	raw[Up].level = true
	d.Update()
	d.Update()
	if e := d.ReadEdges(); !e.Empty() {
		t.Fatalf("expected no edge on release, got %s", e)
	}
	if d.Pressed(Up) {
		t.Fatal("expected up released")
	}
}

func TestReleaseClearsUnreadPress(t *testing.T) {
	pins, raw := newPins()
	d := mustNew(t, pins, 1)

	raw[Select].level = false
	d.Update()
	d.Update()
	raw[Select].level = true
	d.Update()
	d.Update()

	if e := d.ReadEdges(); !e.Empty() {
		t.Fatalf("expected the released press withdrawn, got %s", e)
	}
}

func TestHeldPressStaysPendingUntilRead(t *testing.T) {
	pins, raw := newPins()
	d := mustNew(t, pins, 1)

	// Press, release, press again: only the held press is reported, once.
	raw[Down].level = false
	d.Update()
	d.Update()
	raw[Down].level = true
	d.Update()
	d.Update()
	raw[Down].level = false
	d.Update()
	d.Update()
	d.Update()

	if e := d.ReadEdges(); e != EdgeSet(1<<Down) {
		t.Fatalf("expected a single down edge, got %s", e)
	}
	if e := d.ReadEdges(); !e.Empty() {
		t.Fatalf("expected edges consumed, got %s", e)
	}
}

func TestClearDropsPendingWork(t *testing.T) {
	pins, raw := newPins()
	d := mustNew(t, pins, 2)

	raw[Up].level = false
	d.Update()
	d.Update()
	d.Update()
	d.Clear()
	if e := d.ReadEdges(); !e.Empty() {
		t.Fatalf("expected Clear to drop edge, got %s", e)
	}

	reads := raw[Up].reads
	d.Clear()
	if raw[Up].reads != reads {
		t.Fatal("Clear must not read pins")
	}

	// Partial progress is reset as well.
	raw[Down].level = false
	d.Update()
	d.Update()
	d.Clear()
	d.Update()
	if e := d.ReadEdges(); e.Has(Down) {
		t.Fatalf("expected debounce progress reset, got %s", e)
	}
}

func TestCountRequiredClamped(t *testing.T) {
	pins, _ := newPins()
	if d := mustNew(t, pins, 0); d.countRequired != 1 {
		t.Fatalf("expected clamp to 1, got %d", d.countRequired)
	}
	pins, _ = newPins()
	if d := mustNew(t, pins, 1000); d.countRequired != 254 {
		t.Fatalf("expected clamp to 254, got %d", d.countRequired)
	}
}

func TestMismatchCounterSaturates(t *testing.T) {
	pins, raw := newPins()
	d := mustNew(t, pins, 254)
	raw[Up].level = false
	for i := 0; i < 254; i++ {
		d.Update()
	}
	if d.buttons[Up].mismatches != 254 {
		t.Fatalf("expected 254 mismatches, got %d", d.buttons[Up].mismatches)
	}
	d.Update()
	if e := d.ReadEdges(); !e.Has(Up) {
		t.Fatalf("expected up edge at 255th sample, got %s", e)
	}
	if d.buttons[Up].mismatches != 0 {
		t.Fatalf("expected counter reset, got %d", d.buttons[Up].mismatches)
	}
}

func TestReadErrorCountsAsNoChange(t *testing.T) {
	pins, raw := newPins()
	d := mustNew(t, pins, 1)

	raw[Up].level = false
	d.Update()
	raw[Up].readErr = errors.New("bus")
	d.Update()
	if d.buttons[Up].mismatches != 0 {
		t.Fatalf("expected read error to reset counter, got %d", d.buttons[Up].mismatches)
	}
	if e := d.ReadEdges(); !e.Empty() {
		t.Fatalf("expected no edge, got %s", e)
	}
}

func TestEdgeSetString(t *testing.T) {
	e := EdgeSet(1<<Up | 1<<Select)
	if got := e.String(); got != "{up,select}" {
		t.Fatalf("unexpected String: %q", got)
	}
}
