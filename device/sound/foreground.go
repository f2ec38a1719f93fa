package sound

import (
	"context"
	"time"
)

// ctxCheckEvery is how many samples PlayForeground emits between context
// checks.
const ctxCheckEvery = 256

// PlayForeground emits every sample of s to out on the calling goroutine,
// one per period, then writes Silence. It stalls the caller for the length of
// the sound and returns early with the context's error if ctx ends.
func PlayForeground(ctx context.Context, out Output, s *Sound, period time.Duration) error {
	if s.Len() == 0 {
		return nil
	}
	defer out.WriteSample(Silence)

	start := time.Now()
	for i, v := range s.Samples {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		out.WriteSample(v)
		if d := time.Until(start.Add(time.Duration(i+1) * period)); d > 0 {
			time.Sleep(d)
		}
	}
	return nil
}

// WaitIdle blocks until the scheduler is Idle, calling Tick every poll so a
// pending request gets started and the timer is stopped once playback ends.
func (s *Scheduler) WaitIdle(ctx context.Context, poll time.Duration) error {
	if poll <= 0 {
		poll = time.Millisecond
	}
	t := time.NewTicker(poll)
	defer t.Stop()

	for {
		if s.State() == Idle {
			s.Tick()
			return nil
		}
		s.Tick()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}
