// Package render keeps the LCD in sync with a declarative screen layout,
// repainting only the regions that changed.
package render

import "slices"

// RGB565 colors used by the renderer and screen content.
const (
	Black  uint16 = 0x0000
	White  uint16 = 0xFFFF
	Red    uint16 = 0xF800
	Green  uint16 = 0x07E0
	Blue   uint16 = 0x001F
	Yellow uint16 = 0xFFE0
	Cyan   uint16 = 0x07FF
	Orange uint16 = 0xFC00
	Gray   uint16 = 0x8410
)

// TextLine is an info line (Value is its RGB565 color) or an option (Value
// is opaque to the renderer).
type TextLine struct {
	Text  string
	Value uint16
}

// Bitmap is an immutable RGB565 image. Layouts reference bitmaps by pointer
// and the renderer compares them by identity.
type Bitmap struct {
	Width  int16
	Height int16
	Pix    []uint16
}

func (b *Bitmap) valid() bool {
	return b != nil && b.Width > 0 && b.Height > 0 && len(b.Pix) >= int(b.Width)*int(b.Height)
}

// Layout is the desired visual state of the screen.
type Layout struct {
	Title     string
	Bitmap    *Bitmap
	Info      []TextLine
	Options   []TextLine
	Selection int
}

// Clone returns a copy that shares no slices with l.
func (l Layout) Clone() Layout {
	l.Info = slices.Clone(l.Info)
	l.Options = slices.Clone(l.Options)
	return l
}

// Equal reports whether two layouts would render identically.
func (l Layout) Equal(o Layout) bool {
	return l.Title == o.Title &&
		l.Bitmap == o.Bitmap &&
		slices.Equal(l.Info, o.Info) &&
		slices.Equal(l.Options, o.Options) &&
		l.Selection == o.Selection
}

func (l *Layout) pinSelection() {
	last := len(l.Options) - 1
	if l.Selection > last {
		l.Selection = last
	}
	if l.Selection < 0 {
		l.Selection = 0
	}
}
