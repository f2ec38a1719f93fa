package render

import (
	"image/color"

	"tower/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"
)

// Font selects one of the two text scales.
type Font uint8

const (
	FontBody Font = iota
	FontTitle
)

// Driver is the drawing surface the renderer paints through. Coordinates are
// pixels; text y is the baseline.
type Driver interface {
	Size() (w, h int16)
	ClearRegion(x, y, w, h int16)
	Blit2X(x, y int16, bm *Bitmap)
	DrawText(x, y int16, text string, color uint16) (endX int16)
	TextWidth(text string) int16
	SetFont(f Font)
}

// Target is a panel that FontDriver can draw on: a drivers.Displayer with a
// rectangle fill fast path (st7789.Device, hal.Canvas).
type Target interface {
	drivers.Displayer
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

// FontDriver implements Driver on a Target using tinyfont.
type FontDriver struct {
	t      Target
	font   tinyfont.Fonter
	fonts  [2]tinyfont.Fonter
	bg     color.RGBA
	width  int16
	height int16
}

// NewFontDriver returns a driver drawing FreeSans Bold text on t.
func NewFontDriver(t Target) *FontDriver {
	w, h := t.Size()
	d := &FontDriver{
		t:      t,
		bg:     hal.RGBA(Black),
		width:  w,
		height: h,
	}
	d.fonts[FontBody] = &freesans.Bold12pt7b
	d.fonts[FontTitle] = &freesans.Bold18pt7b
	d.font = d.fonts[FontBody]
	return d
}

func (d *FontDriver) Size() (w, h int16) { return d.width, d.height }

func (d *FontDriver) SetFont(f Font) {
	if int(f) < len(d.fonts) {
		d.font = d.fonts[f]
	}
}

func (d *FontDriver) ClearRegion(x, y, w, h int16) {
	x0, x1 := clip(int(x), int(x)+int(w), int(d.width))
	y0, y1 := clip(int(y), int(y)+int(h), int(d.height))
	if x0 >= x1 || y0 >= y1 {
		return
	}
	_ = d.t.FillRectangle(int16(x0), int16(y0), int16(x1-x0), int16(y1-y0), d.bg)
}

func (d *FontDriver) TextWidth(text string) int16 {
	_, outbox := tinyfont.LineWidth(d.font, text)
	return int16(outbox)
}

func (d *FontDriver) DrawText(x, y int16, text string, c uint16) int16 {
	tinyfont.WriteLine(d.t, d.font, x, y, text, hal.RGBA(c))
	return x + d.TextWidth(text)
}

// Blit2X draws bm at twice its size with its top-left corner at (x, y).
// Pixels falling outside the target are skipped, so any origin is safe.
func (d *FontDriver) Blit2X(x, y int16, bm *Bitmap) {
	if !bm.valid() {
		return
	}
	w, h := int(d.width), int(d.height)
	ox, oy := int(x), int(y)
	bw, bh := int(bm.Width), int(bm.Height)

	if ox >= w || oy >= h || ox+2*bw <= 0 || oy+2*bh <= 0 {
		return
	}

	sx0, sx1 := 0, bw
	if ox < 0 {
		sx0 = -ox / 2
	}
	if lim := (w - ox + 1) / 2; lim < sx1 {
		sx1 = lim
	}
	sy0, sy1 := 0, bh
	if oy < 0 {
		sy0 = -oy / 2
	}
	if lim := (h - oy + 1) / 2; lim < sy1 {
		sy1 = lim
	}

	for sy := sy0; sy < sy1; sy++ {
		y0, y1 := clip(oy+2*sy, oy+2*sy+2, h)
		if y0 >= y1 {
			continue
		}
		row := bm.Pix[sy*bw : sy*bw+bw]
		for sx := sx0; sx < sx1; {
			// Merge runs of equal pixels into one fill.
			end := sx + 1
			for end < sx1 && row[end] == row[sx] {
				end++
			}
			x0, x1 := clip(ox+2*sx, ox+2*end, w)
			if x0 < x1 {
				_ = d.t.FillRectangle(int16(x0), int16(y0), int16(x1-x0), int16(y1-y0), hal.RGBA(row[sx]))
			}
			sx = end
		}
	}
}

// Display flushes the target, for panels that buffer writes.
func (d *FontDriver) Display() error {
	return d.t.Display()
}

func clip(lo, hi, limit int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi > limit {
		hi = limit
	}
	return lo, hi
}
