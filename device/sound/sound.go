// Package sound plays 8-bit samples on a single DAC channel.
//
// The Scheduler hands requests from the main loop to a periodic timer
// callback through a mutex-guarded mailbox. PlayForeground is a separate
// blocking path that emits samples on the calling goroutine.
package sound

import (
	"fmt"
	"sync"
	"time"

	"tower/hal"
)

// Silence is written when playback ends or is halted.
const Silence uint8 = 0

// Sound is an immutable buffer of unsigned 8-bit samples.
type Sound struct {
	Name    string
	Samples []uint8
}

// Len returns the number of samples.
func (s *Sound) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Samples)
}

// Duration returns the play time of s at the given sample period.
func (s *Sound) Duration(period time.Duration) time.Duration {
	return time.Duration(s.Len()) * period
}

// Timer is a periodic timer. fn runs on the timer's own context.
type Timer interface {
	StartPeriodic(period time.Duration, fn func()) error
	Stop() error
	Active() bool
}

// Output receives samples. WriteSample must not block.
type Output interface {
	WriteSample(v uint8)
}

// State is the scheduler state as seen from the main loop.
type State uint8

const (
	Idle State = iota
	Armed
	Playing
	Halting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case Playing:
		return "playing"
	case Halting:
		return "halting"
	default:
		return "unknown"
	}
}

// Scheduler plays one sound at a time, one sample per timer tick.
//
// Request, Stop, IsPlaying and Tick are called from the main loop. The timer
// callback only ever try-locks the mailbox; if the main loop holds it, the
// claim is retried on the next tick.
type Scheduler struct {
	timer  Timer
	out    Output
	period time.Duration
	log    hal.Logger

	mu      sync.Mutex
	pending *Sound
	halt    bool
	wait    bool
	playing bool

	// Owned by the timer callback.
	active *Sound
	pos    int
}

// New returns an idle scheduler that drives out from timer ticks every
// period.
func New(timer Timer, out Output, period time.Duration, log hal.Logger) *Scheduler {
	return &Scheduler{
		timer:  timer,
		out:    out,
		period: period,
		log:    log,
	}
}

// Request replaces any pending request with s. An in-flight sound is cut off
// on the next timer tick. When waitForCompletion is set the navigator holds
// back selections until s finishes.
func (s *Scheduler) Request(snd *Sound, waitForCompletion bool) {
	s.mu.Lock()
	s.pending = snd
	s.halt = false
	s.wait = waitForCompletion
	s.mu.Unlock()
}

// Stop halts playback on the next timer tick and drops any pending request.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.pending = nil
	s.halt = true
	s.mu.Unlock()
}

// IsPlaying reports whether a sound is active or queued and not halted.
func (s *Scheduler) IsPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isPlayingLocked()
}

func (s *Scheduler) isPlayingLocked() bool {
	return !s.halt && (s.playing || s.pending != nil)
}

// IsWaitingForCompletion reports whether the current sound was requested
// with waitForCompletion and is still playing.
func (s *Scheduler) IsWaitingForCompletion() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isPlayingLocked() && s.wait
}

// State reports the scheduler state. A halt requested while nothing is
// playing leaves the scheduler Idle.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.playing && s.halt:
		return Halting
	case s.playing:
		return Playing
	case s.pending != nil:
		return Armed
	default:
		return Idle
	}
}

// Tick starts the timer when a request is waiting and stops it once nothing
// is left to play. It never blocks on the timer callback.
func (s *Scheduler) Tick() {
	s.mu.Lock()
	playing := s.playing
	pending := s.pending
	s.mu.Unlock()

	if playing {
		return
	}
	active := s.timer.Active()
	switch {
	case pending != nil && !active:
		if err := s.timer.StartPeriodic(s.period, s.onTimer); err != nil {
			s.logf("sound: start timer: %v", err)
			return
		}
		s.logf("sound: play %q (%d samples)", pending.Name, pending.Len())
	case pending == nil && active:
		if err := s.timer.Stop(); err != nil {
			s.logf("sound: stop timer: %v", err)
			return
		}
		s.logf("sound: idle")
	}
}

// onTimer runs on the timer context.
func (s *Scheduler) onTimer() {
	if s.mu.TryLock() {
		req, halt := s.pending, s.halt
		s.pending, s.halt = nil, false
		s.playing = !halt && (req != nil || s.active != nil)
		s.mu.Unlock()

		switch {
		case req != nil:
			s.active, s.pos = req, 0
		case halt:
			if s.active != nil {
				s.active, s.pos = nil, 0
				s.out.WriteSample(Silence)
			}
		}
	}

	if s.active == nil {
		return
	}
	if s.pos < len(s.active.Samples) {
		s.out.WriteSample(s.active.Samples[s.pos])
		s.pos++
	}
	if s.pos >= len(s.active.Samples) {
		s.active, s.pos = nil, 0
		s.out.WriteSample(Silence)
	}
}

func (s *Scheduler) logf(format string, args ...any) {
	if s.log == nil {
		return
	}
	s.log.WriteLineString(fmt.Sprintf(format, args...))
}
