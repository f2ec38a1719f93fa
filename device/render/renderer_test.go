package render

import (
	"fmt"
	"testing"
)

const charWidth = 10

type op struct {
	kind  string
	x, y  int16
	w, h  int16
	text  string
	color uint16
	bm    *Bitmap
}

// recorder is a Driver that records every call.
type recorder struct {
	w, h int16
	font Font
	ops  []op
}

func newRecorder(w, h int16) *recorder { return &recorder{w: w, h: h} }

func (d *recorder) Size() (int16, int16) { return d.w, d.h }
func (d *recorder) SetFont(f Font)       { d.font = f }

func (d *recorder) TextWidth(text string) int16 { return int16(len(text) * charWidth) }

func (d *recorder) ClearRegion(x, y, w, h int16) {
	d.ops = append(d.ops, op{kind: "clear", x: x, y: y, w: w, h: h})
}

func (d *recorder) Blit2X(x, y int16, bm *Bitmap) {
	d.ops = append(d.ops, op{kind: "blit", x: x, y: y, bm: bm})
}

func (d *recorder) DrawText(x, y int16, text string, color uint16) int16 {
	d.ops = append(d.ops, op{kind: "text", x: x, y: y, text: text, color: color})
	return x + d.TextWidth(text)
}

func (d *recorder) reset() { d.ops = nil }

func (d *recorder) texts() []op {
	var out []op
	for _, o := range d.ops {
		if o.kind == "text" {
			out = append(out, o)
		}
	}
	return out
}

func (d *recorder) drew(text string) bool {
	for _, o := range d.texts() {
		if o.text == text {
			return true
		}
	}
	return false
}

func (d *recorder) highlighted() (op, bool) {
	for _, o := range d.texts() {
		if o.color == Yellow && o.text != markerGlyph {
			return o, true
		}
	}
	return op{}, false
}

func sampleLayout() Layout {
	return Layout{
		Title: "Menu",
		Info:  []TextLine{{Text: "hello", Value: Green}},
		Options: []TextLine{
			{Text: "A", Value: 0},
			{Text: "B", Value: 1},
			{Text: "C", Value: 2},
		},
	}
}

func TestRepaintTwiceDrawsNothingSecondTime(t *testing.T) {
	d := newRecorder(240, 320)
	r := New(d)
	r.SetDesired(sampleLayout())

	r.Repaint()
	if len(d.ops) == 0 {
		t.Fatal("expected first repaint to draw")
	}
	d.reset()
	r.Repaint()
	if len(d.ops) != 0 {
		t.Fatalf("expected no draw calls, got %d: %+v", len(d.ops), d.ops)
	}

	// Setting an equal layout is not a change either.
	r.SetDesired(sampleLayout())
	r.Repaint()
	if len(d.ops) != 0 {
		t.Fatalf("expected no draw calls for equal layout, got %+v", d.ops)
	}
}

func TestFirstRepaintDrawsEveryRegion(t *testing.T) {
	d := newRecorder(240, 320)
	r := New(d)
	r.SetDesired(sampleLayout())
	r.Repaint()

	for _, s := range []string{"Menu", "hello", "A", "B", "C", markerGlyph} {
		if !d.drew(s) {
			t.Fatalf("expected %q to be drawn", s)
		}
	}
	sel, ok := d.highlighted()
	if !ok || sel.text != "A" {
		t.Fatalf("expected A highlighted, got %+v", sel)
	}
	title := d.texts()[0]
	if title.text != "Menu" || title.y != titleBaseline || title.x != 120-20 {
		t.Fatalf("unexpected title placement %+v", title)
	}
}

func TestSelectionChangeRedrawsOnlyOptions(t *testing.T) {
	d := newRecorder(240, 320)
	r := New(d)
	r.SetDesired(sampleLayout())
	r.Repaint()
	d.reset()

	r.SetSelection(1)
	r.Repaint()
	if d.drew("Menu") || d.drew("hello") {
		t.Fatalf("title and info must not be redrawn: %+v", d.ops)
	}
	sel, ok := d.highlighted()
	if !ok || sel.text != "B" {
		t.Fatalf("expected B highlighted, got %+v", sel)
	}
	first := d.ops[0]
	wantY := int16(titleHeight + bitmapGap + lineHeight + infoPad)
	if first.kind != "clear" || first.y != wantY || first.h != 320-wantY {
		t.Fatalf("expected options clear at %d, got %+v", wantY, first)
	}
}

func TestInfoChangeRedrawsOptions(t *testing.T) {
	d := newRecorder(240, 320)
	r := New(d)
	r.SetDesired(sampleLayout())
	r.Repaint()
	d.reset()

	l := sampleLayout()
	l.Info[0].Text = "bye"
	r.SetDesired(l)
	r.Repaint()
	if d.drew("Menu") {
		t.Fatal("title must not be redrawn")
	}
	if !d.drew("bye") || !d.drew("C") {
		t.Fatalf("expected info and options redrawn, got %+v", d.texts())
	}
}

func TestPresenceToggleForcesRedraw(t *testing.T) {
	d := newRecorder(240, 320)
	r := New(d)
	l := sampleLayout()
	l.Title = ""
	r.SetDesired(l)
	r.Repaint()
	d.reset()

	r.SetTitle("Now")
	r.Repaint()
	for _, s := range []string{"Now", "hello", "A"} {
		if !d.drew(s) {
			t.Fatalf("expected %q redrawn after title appeared", s)
		}
	}
	var moved bool
	for _, o := range d.ops {
		if o.kind == "clear" && o.y == titleHeight+bitmapGap {
			moved = true
		}
	}
	if !moved {
		t.Fatal("expected regions below the title to be cleared at their new position")
	}
}

func TestBitmapComparedByIdentity(t *testing.T) {
	d := newRecorder(240, 320)
	r := New(d)
	bm := &Bitmap{Width: 2, Height: 2, Pix: []uint16{1, 2, 3, 4}}
	same := &Bitmap{Width: 2, Height: 2, Pix: []uint16{1, 2, 3, 4}}

	r.SetBitmap(bm)
	r.Repaint()
	d.reset()

	r.SetBitmap(bm)
	r.Repaint()
	if len(d.ops) != 0 {
		t.Fatalf("expected no redraw for the same bitmap, got %+v", d.ops)
	}

	r.SetBitmap(same)
	r.Repaint()
	var blitted bool
	for _, o := range d.ops {
		if o.kind == "blit" && o.bm == same && o.y == 0 {
			blitted = true
		}
	}
	if !blitted {
		t.Fatalf("expected new bitmap pointer to be blitted, got %+v", d.ops)
	}
}

func TestBitmapHeightChangeMovesLaterRegions(t *testing.T) {
	d := newRecorder(240, 320)
	r := New(d)
	r.SetDesired(sampleLayout())
	r.SetBitmap(&Bitmap{Width: 4, Height: 10, Pix: make([]uint16, 40)})
	r.Repaint()
	d.reset()

	r.SetBitmap(&Bitmap{Width: 4, Height: 20, Pix: make([]uint16, 80)})
	r.Repaint()
	for _, o := range d.texts() {
		if o.text == "hello" && o.y == titleHeight+40+lineBaseline {
			return
		}
	}
	t.Fatalf("expected info redrawn below the taller bitmap, got %+v", d.texts())
}

func TestSelectionAlwaysPinned(t *testing.T) {
	r := New(newRecorder(240, 320))
	check := func(step string) {
		t.Helper()
		max := r.OptionCount()
		if max < 1 {
			max = 1
		}
		if s := r.Selection(); s < 0 || s >= max {
			t.Fatalf("%s: selection %d outside [0,%d)", step, s, max)
		}
	}

	r.SetSelection(5)
	check("no options")
	r.AddOption("a", 0)
	r.AddOption("b", 0)
	r.SetSelection(-3)
	check("negative")
	r.SetSelection(7)
	check("past end")
	if r.Selection() != 1 {
		t.Fatalf("expected pin to last option, got %d", r.Selection())
	}
	r.ClearOptions()
	check("cleared")

	l := sampleLayout()
	l.Selection = 99
	r.SetDesired(l)
	check("SetDesired")
	if r.Selection() != 2 {
		t.Fatalf("expected 2, got %d", r.Selection())
	}
}

func TestSelectedOption(t *testing.T) {
	r := New(newRecorder(240, 320))
	if _, ok := r.SelectedOption(); ok {
		t.Fatal("expected no selected option")
	}
	r.SetDesired(sampleLayout())
	r.SetSelection(2)
	got, ok := r.SelectedOption()
	if !ok || got != (TextLine{Text: "C", Value: 2}) {
		t.Fatalf("unexpected selected option %+v", got)
	}
}

func TestScrollWindowKeepsSelectionVisible(t *testing.T) {
	for _, h := range []int16{80, 100, 120, 200, 320} {
		for _, n := range []int{1, 2, 3, 5, 12, 30} {
			t.Run(fmt.Sprintf("h%d_n%d", h, n), func(t *testing.T) {
				d := newRecorder(240, h)
				r := New(d)
				r.SetTitle("T")
				for i := 0; i < n; i++ {
					r.AddOption(fmt.Sprintf("opt%d", i), uint16(i))
				}

				path := make([]int, 0, 3*n)
				for i := 0; i < n; i++ {
					path = append(path, i)
				}
				for i := n - 1; i >= 0; i-- {
					path = append(path, i)
				}
				for i := 0; i < n; i += 3 {
					path = append(path, i, n-1-i)
				}

				for _, sel := range path {
					d.reset()
					r.SetSelection(sel)
					r.Repaint()

					start, lines := r.WindowStart(), r.LinesAvailable()
					if sel < start || sel > start+lines-1 {
						t.Fatalf("sel %d outside window [%d,%d]", sel, start, start+lines-1)
					}
					if o, ok := d.highlighted(); ok {
						if o.text != fmt.Sprintf("opt%d", sel) {
							t.Fatalf("highlighted %q, want opt%d", o.text, sel)
						}
						if int(o.y)-lineBaseline+lineHeight > int(h) {
							t.Fatalf("row drawn past the bottom: %+v", o)
						}
					} else if d.ops != nil {
						t.Fatalf("selected row opt%d not drawn", sel)
					}
				}
			})
		}
	}
}

func TestWindowStartResetsOnlyOnCountChange(t *testing.T) {
	d := newRecorder(240, 320)
	r := New(d)
	r.SetTitle("T")
	for i := 0; i < 20; i++ {
		r.AddOption(fmt.Sprintf("o%d", i), 0)
	}
	r.SetSelection(15)
	r.Repaint()
	if r.LinesAvailable() != 11 {
		t.Fatalf("expected 11 lines, got %d", r.LinesAvailable())
	}
	if r.WindowStart() != 6 {
		t.Fatalf("expected window start 6, got %d", r.WindowStart())
	}

	// Same count, different text: the window stays put.
	l := r.Desired()
	l.Options[0].Text = "first"
	r.SetDesired(l)
	r.SetSelection(10)
	r.Repaint()
	if r.WindowStart() != 6 {
		t.Fatalf("expected window start to stay 6, got %d", r.WindowStart())
	}

	r.AddOption("extra", 0)
	r.Repaint()
	if r.WindowStart() != 1 {
		t.Fatalf("expected window reset then scrolled to 1, got %d", r.WindowStart())
	}
}

func TestFewOptionsAreCentered(t *testing.T) {
	d := newRecorder(240, 320)
	r := New(d)
	r.SetTitle("T")
	r.AddOption("only", 0)
	r.Repaint()

	top := titleHeight + bitmapGap + infoPad
	lines := (320 - top) / lineHeight
	want := top + ((lines-1)*lineHeight)/2 + lineBaseline
	o, ok := d.highlighted()
	if !ok || int(o.y) != want {
		t.Fatalf("expected centered row at %d, got %+v", want, o)
	}
}

func TestMarkerSkippedWithoutRoom(t *testing.T) {
	d := newRecorder(240, 320)
	r := New(d)
	r.AddOption("this option label is far too wide", 0)
	r.Repaint()
	if d.drew(markerGlyph) {
		t.Fatal("expected no marker for a full-width option")
	}
}

func TestSetDesiredCopiesSlices(t *testing.T) {
	d := newRecorder(240, 320)
	r := New(d)
	l := sampleLayout()
	r.SetDesired(l)
	l.Info[0].Text = "mutated"
	l.Options[1].Text = "mutated"

	r.Repaint()
	if d.drew("mutated") {
		t.Fatal("renderer must not alias the caller's slices")
	}

	got := r.Desired()
	got.Options[0].Text = "changed"
	if opt, _ := r.SelectedOption(); opt.Text != "A" {
		t.Fatalf("Desired must return a copy, got %q", opt.Text)
	}
}

func TestForceFullRepaint(t *testing.T) {
	d := newRecorder(240, 320)
	r := New(d)
	r.SetDesired(sampleLayout())
	r.Repaint()
	d.reset()

	r.ForceFullRepaint()
	r.Repaint()
	for _, s := range []string{"Menu", "hello", "A", "B", "C"} {
		if !d.drew(s) {
			t.Fatalf("expected %q after forced repaint", s)
		}
	}
	d.reset()
	r.Repaint()
	if len(d.ops) != 0 {
		t.Fatal("force flag must clear after one repaint")
	}
}
