//go:build !tinygo && cgo

package hal

import (
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const (
	hostAudioRate = 48000
	// dacRate is the nominal firmware sample rate (125µs per sample).
	dacRate = 8000
)

// hostDAC feeds 8-bit DAC samples into Ebiten's audio output.
//
// WriteSample never blocks: when the ring is full the sample is dropped.
type hostDAC struct {
	mu sync.Mutex

	ctx    *audio.Context
	player *audio.Player

	buf  []uint8
	r    int
	w    int
	n    int
	last uint8
}

func newEbitenDAC() (*hostDAC, error) {
	d := &hostDAC{buf: make([]uint8, dacRate/5)}
	d.ctx = audio.NewContext(hostAudioRate)
	p, err := d.ctx.NewPlayer(&hostDACReader{d: d})
	if err != nil {
		return nil, err
	}
	p.SetBufferSize(50 * time.Millisecond)
	p.Play()
	d.player = p
	return d, nil
}

func (d *hostDAC) WriteSample(v uint8) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.n == len(d.buf) {
		return
	}
	d.buf[d.w] = v
	d.w++
	if d.w >= len(d.buf) {
		d.w = 0
	}
	d.n++
}

func (d *hostDAC) next() uint8 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.n == 0 {
		return d.last
	}
	v := d.buf[d.r]
	d.r++
	if d.r >= len(d.buf) {
		d.r = 0
	}
	d.n--
	d.last = v
	return v
}

type hostDACReader struct {
	d   *hostDAC
	rep int
	cur int16
}

func (r *hostDACReader) Read(p []byte) (int, error) {
	const repeat = hostAudioRate / dacRate
	// Ebiten audio expects 16-bit little-endian stereo.
	n := 0
	for i := 0; i+3 < len(p); i += 4 {
		if r.rep == 0 {
			r.cur = (int16(r.d.next()) - 128) << 8
		}
		r.rep++
		if r.rep >= repeat {
			r.rep = 0
		}
		s := r.cur
		p[i+0] = byte(s)
		p[i+1] = byte(s >> 8)
		p[i+2] = byte(s)
		p[i+3] = byte(s >> 8)
		n += 4
	}
	return n, nil
}

func (h *hostHAL) enableAudio() error {
	d, err := newEbitenDAC()
	if err != nil {
		return err
	}
	h.dac = d
	return nil
}
