package app

import (
	"errors"
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"tower/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var errPanic = errors.New("panic")

type fault struct {
	what  string
	value any
	stack []byte
}

// guard runs step with a recover. A panic is logged and drawn on the panel,
// then returned as an error so the runner stops.
func guard(h hal.HAL, step func()) func() error {
	var failed error
	return func() (err error) {
		if failed != nil {
			return failed
		}
		defer func() {
			if v := recover(); v != nil {
				f := fault{what: "panic", value: v, stack: debug.Stack()}
				showFault(h, f)
				failed = fmt.Errorf("app: %w: %v", errPanic, v)
				err = failed
			}
		}()
		step()
		return nil
	}
}

// showFault logs f and paints it in black on white, wrapped to the panel
// width, until the panel is full.
func showFault(h hal.HAL, f fault) {
	lines := faultLines(f)
	if h == nil {
		return
	}
	if l := h.Logger(); l != nil {
		for _, line := range lines {
			l.WriteLineString(line)
		}
	}

	disp := h.Display()
	if disp == nil {
		return
	}
	c := disp.Canvas()
	if c == nil {
		return
	}

	maxW, maxH := c.Size()
	_ = c.FillRectangle(0, 0, maxW, maxH, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})

	font := &proggy.TinySZ8pt7b
	const fontHeight, fontOffset = int16(12), int16(9)
	_, outboxWidth := tinyfont.LineWidth(font, "0")
	fontWidth := int16(outboxWidth)
	if fontWidth <= 0 {
		_ = c.Display()
		return
	}
	cols := maxW / fontWidth
	if cols <= 0 {
		cols = 1
	}

	fg := color.RGBA{A: 0xFF}
	y := int16(0)
	for _, line := range lines {
		for len(line) > 0 {
			if y+fontHeight > maxH {
				_ = c.Display()
				return
			}
			chunk, rest := takeRunes(line, cols)
			tinyfont.WriteLine(c, font, 0, y+fontOffset, chunk, fg)
			y += fontHeight
			line = strings.TrimLeft(rest, " \t")
		}
	}
	_ = c.Display()
}

func faultLines(f fault) []string {
	lines := []string{
		"Tower " + f.what + ":",
		fmt.Sprintf("%v", f.value),
	}
	if len(f.stack) == 0 {
		return lines
	}
	lines = append(lines, "stack:")
	for _, line := range strings.Split(string(f.stack), "\n") {
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if int64(len(s)) <= int64(n) {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
