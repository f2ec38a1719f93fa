package content

import (
	"math"

	"tower/device/render"
	"tower/device/sound"
	"tower/hal"
)

// sampleRate is the DAC rate the sounds are synthesized for.
const sampleRate = 8000

var (
	// Beep is the navigation click.
	Beep = tone("beep", []note{{hz: 1200, ms: 30}}, 0.5)
	// Chime plays while the startup screen waits.
	Chime = tone("chime", []note{{hz: 660, ms: 120}, {hz: 880, ms: 220}}, 0.8)
	// Intro is the startup jingle.
	Intro = tone("intro", []note{{hz: 523, ms: 110}, {hz: 659, ms: 110}, {hz: 784, ms: 110}, {hz: 1047, ms: 260}}, 0.9)
	// Flourish is played in the foreground when a turn ends.
	Flourish = tone("flourish", []note{{hz: 784, ms: 90}, {hz: 659, ms: 90}, {hz: 523, ms: 90}, {hz: 392, ms: 300}}, 0.9)
	// Error is the rejected-action buzz.
	Error = tone("error", []note{{hz: 180, ms: 90}, {hz: 0, ms: 40}, {hz: 180, ms: 140}}, 0.3)

	// Logo is the startup screen bitmap, shown at twice its size.
	Logo = logo(120, 90)
)

type note struct {
	hz float64
	ms int
}

// tone renders notes as unsigned 8-bit samples around the 128 midpoint, with a
// short linear decay at the end of each note to avoid clicks. hz 0 is a rest.
func tone(name string, notes []note, decay float64) *sound.Sound {
	var samples []uint8
	for _, n := range notes {
		count := n.ms * sampleRate / 1000
		for i := 0; i < count; i++ {
			if n.hz == 0 {
				samples = append(samples, 128)
				continue
			}
			t := float64(i) / sampleRate
			env := 1 - decay*float64(i)/float64(count)
			v := 128 + 100*env*math.Sin(2*math.Pi*n.hz*t)
			samples = append(samples, uint8(math.Round(v)))
		}
	}
	return &sound.Sound{Name: name, Samples: samples}
}

// logo draws a tower against a dusk gradient.
func logo(w, h int) *render.Bitmap {
	pix := make([]uint16, w*h)
	stone := hal.RGB565(0x9a, 0x8f, 0x80)
	shade := hal.RGB565(0x5d, 0x54, 0x4a)
	window := hal.RGB565(0xff, 0xd8, 0x4a)
	ground := hal.RGB565(0x1f, 0x3a, 0x1f)

	for y := 0; y < h; y++ {
		// Sky fades from deep blue to orange near the horizon.
		f := float64(y) / float64(h)
		sky := hal.RGB565(uint8(20+200*f), uint8(30+90*f), uint8(110-60*f))
		for x := 0; x < w; x++ {
			pix[y*w+x] = sky
		}
	}

	fill := func(x0, y0, x1, y1 int, c uint16) {
		for y := max(y0, 0); y < min(y1, h); y++ {
			for x := max(x0, 0); x < min(x1, w); x++ {
				pix[y*w+x] = c
			}
		}
	}

	cx := w / 2
	fill(0, h-12, w, h, ground)
	fill(cx-14, 24, cx+14, h-12, stone)
	fill(cx+8, 24, cx+14, h-12, shade)
	// Battlements.
	fill(cx-18, 16, cx+18, 24, stone)
	for x := cx - 18; x < cx+18; x += 8 {
		fill(x, 10, x+4, 16, stone)
	}
	fill(cx-4, 34, cx+4, 46, window)
	fill(cx-4, 56, cx+4, 66, window)
	fill(cx-6, h-24, cx+6, h-12, shade)

	return &render.Bitmap{Width: int16(w), Height: int16(h), Pix: pix}
}
