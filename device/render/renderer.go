package render

import "slices"

// Vertical metrics of the layout, in pixels.
const (
	titleHeight   = 32
	titleBaseline = 27
	bitmapGap     = 16
	lineHeight    = 23
	lineBaseline  = 21
	infoPad       = 4
	markerOffset  = 24
	markerGlyph   = ">"
)

// Renderer reconciles the painted screen toward a desired Layout.
//
// The screen is split into four stacked regions: title, bitmap, info lines
// and options. Each region is diffed on its own and only redrawn when its
// content changed, its presence toggled, or a region above it moved.
type Renderer struct {
	drv           Driver
	width, height int

	desired Layout
	current Layout
	force   bool

	postTitle  int
	postBitmap int
	postInfo   int

	windowStart    int
	linesAvailable int
}

// New returns a renderer painting through drv. The first Repaint draws
// everything.
func New(drv Driver) *Renderer {
	w, h := drv.Size()
	return &Renderer{
		drv:            drv,
		width:          int(w),
		height:         int(h),
		force:          true,
		linesAvailable: 1,
	}
}

// SetDesired replaces the desired layout. The renderer keeps its own copy.
func (r *Renderer) SetDesired(l Layout) {
	r.desired = l.Clone()
	r.desired.pinSelection()
}

// Desired returns a copy of the desired layout.
func (r *Renderer) Desired() Layout { return r.desired.Clone() }

// ForceFullRepaint makes the next Repaint redraw every region.
func (r *Renderer) ForceFullRepaint() { r.force = true }

func (r *Renderer) SetTitle(title string) { r.desired.Title = title }
func (r *Renderer) Title() string         { return r.desired.Title }

func (r *Renderer) SetBitmap(bm *Bitmap) { r.desired.Bitmap = bm }
func (r *Renderer) ClearBitmap()         { r.desired.Bitmap = nil }

func (r *Renderer) AddInfo(text string, color uint16) {
	r.desired.Info = append(r.desired.Info, TextLine{Text: text, Value: color})
}

func (r *Renderer) ClearInfo() { r.desired.Info = nil }

func (r *Renderer) AddOption(text string, value uint16) {
	r.desired.Options = append(r.desired.Options, TextLine{Text: text, Value: value})
}

func (r *Renderer) ClearOptions() {
	r.desired.Options = nil
	r.desired.pinSelection()
}

func (r *Renderer) OptionCount() int { return len(r.desired.Options) }

// SetSelection selects option i, pinned to the valid range.
func (r *Renderer) SetSelection(i int) {
	r.desired.Selection = i
	r.desired.pinSelection()
}

func (r *Renderer) Selection() int { return r.desired.Selection }

// SelectedOption returns the selected option, or false when there are no
// options.
func (r *Renderer) SelectedOption() (TextLine, bool) {
	if len(r.desired.Options) == 0 {
		return TextLine{}, false
	}
	return r.desired.Options[r.desired.Selection], true
}

// WindowStart is the index of the first option in the scroll window.
func (r *Renderer) WindowStart() int { return r.windowStart }

// LinesAvailable is the number of option rows that fit below the info
// region at the last options repaint.
func (r *Renderer) LinesAvailable() int { return r.linesAvailable }

// Repaint draws whatever changed since the previous call.
func (r *Renderer) Repaint() {
	y := r.repaintTitle()
	y = r.repaintBitmap(y)
	y = r.repaintInfo(y)
	r.repaintOptions(y)
	r.force = false
}

func (r *Renderer) repaintTitle() int {
	had, has := r.current.Title != "", r.desired.Title != ""
	if had != has {
		r.force = true
	}
	if !r.force && r.current.Title == r.desired.Title {
		return r.postTitle
	}

	y := 0
	r.drv.ClearRegion(0, 0, int16(r.width), titleHeight)
	if has {
		r.drv.SetFont(FontTitle)
		r.drawCentered(r.desired.Title, y+titleBaseline, White)
		y += titleHeight
	}
	r.current.Title = r.desired.Title
	r.commitPost(&r.postTitle, y)
	return y
}

func (r *Renderer) repaintBitmap(y int) int {
	prev := r.current.Bitmap
	had, has := prev != nil, r.desired.Bitmap != nil
	if had != has {
		r.force = true
	}
	if !r.force && prev == r.desired.Bitmap {
		return r.postBitmap
	}

	if had {
		r.drv.ClearRegion(0, int16(y), int16(r.width), 2*prev.Height)
	}
	if has {
		r.drv.Blit2X(0, int16(y), r.desired.Bitmap)
		y += 2 * int(r.desired.Bitmap.Height)
	} else {
		y += bitmapGap
	}
	r.current.Bitmap = r.desired.Bitmap
	r.commitPost(&r.postBitmap, y)
	return y
}

func (r *Renderer) repaintInfo(y int) int {
	if len(r.current.Info) != len(r.desired.Info) {
		r.force = true
	}
	if !r.force && slices.Equal(r.current.Info, r.desired.Info) {
		return r.postInfo
	}

	r.clearBelow(y)
	r.force = true

	r.drv.SetFont(FontBody)
	for _, line := range r.desired.Info {
		if !r.rowFits(y) {
			break
		}
		r.drawCentered(line.Text, y+lineBaseline, line.Value)
		y += lineHeight
	}
	y += infoPad

	r.current.Info = slices.Clone(r.desired.Info)
	r.postInfo = y
	return y
}

func (r *Renderer) repaintOptions(y int) {
	n := len(r.desired.Options)
	if len(r.current.Options) != n {
		r.force = true
		r.windowStart = 0
	}
	r.desired.pinSelection()
	sel := r.desired.Selection
	if !r.force && sel == r.current.Selection && slices.Equal(r.current.Options, r.desired.Options) {
		return
	}

	r.clearBelow(y)
	r.force = true

	if n > 0 {
		lines := (r.height - y) / lineHeight
		if lines < 1 {
			lines = 1
		}
		r.linesAvailable = lines
		r.scrollTo(sel, n, lines)

		if lines > n {
			y += ((lines - n) * lineHeight) / 2
		}

		r.drv.SetFont(FontBody)
		for i := r.windowStart; i < n; i++ {
			if !r.rowFits(y) {
				break
			}
			text := r.desired.Options[i].Text
			if i == sel && text != "" {
				inset := r.drawCentered(text, y+lineBaseline, Yellow)
				if mx := inset - markerOffset; mx > 0 {
					r.drv.DrawText(int16(mx), int16(y+lineBaseline), markerGlyph, Yellow)
				}
			} else {
				r.drawCentered(text, y+lineBaseline, White)
			}
			y += lineHeight
		}
	}

	r.current.Options = slices.Clone(r.desired.Options)
	r.current.Selection = sel
}

// scrollTo moves the window start the least amount that keeps sel, plus a
// one-line look-ahead when there is room, inside the window.
func (r *Renderer) scrollTo(sel, n, lines int) {
	buffer := 0
	if lines > 2 {
		buffer = 1
	}

	minVisible := sel - buffer
	if minVisible < 0 {
		minVisible = 0
	}
	if minVisible < r.windowStart {
		r.windowStart = minVisible
	}

	maxVisible := sel + buffer
	if maxVisible > n-1 {
		maxVisible = n - 1
	}
	if start := maxVisible - (lines - 1); start > r.windowStart {
		r.windowStart = start
	}
	if r.windowStart < 0 {
		r.windowStart = 0
	}
}

// drawCentered draws text horizontally centered at baseline y and returns
// its left edge.
func (r *Renderer) drawCentered(text string, y int, color uint16) int {
	inset := r.width/2 - int(r.drv.TextWidth(text))/2
	if inset < 0 {
		inset = 0
	}
	r.drv.DrawText(int16(inset), int16(y), text, color)
	return inset
}

func (r *Renderer) clearBelow(y int) {
	if y < r.height {
		r.drv.ClearRegion(0, int16(y), int16(r.width), int16(r.height-y))
	}
}

func (r *Renderer) rowFits(y int) bool {
	return y+lineHeight <= r.height
}

// commitPost records a region's new bottom edge. When it moved, the regions
// below are stale and get redrawn.
func (r *Renderer) commitPost(post *int, y int) {
	if *post != y {
		r.force = true
	}
	*post = y
}
