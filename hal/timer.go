package hal

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

var errTimerActive = errors.New("timer: already active")

// tickerTimer runs a periodic callback on its own goroutine. It stands in for
// a hardware alarm on both host and TinyGo builds.
type tickerTimer struct {
	mu     sync.Mutex
	stop   chan struct{}
	done   chan struct{}
	active atomic.Bool
}

func newTickerTimer() *tickerTimer {
	return &tickerTimer{}
}

func (t *tickerTimer) StartPeriodic(period time.Duration, fn func()) error {
	if period <= 0 {
		return fmt.Errorf("timer: invalid period %s", period)
	}
	if fn == nil {
		return errors.New("timer: nil callback")
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		return errTimerActive
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	t.stop = stop
	t.done = done
	t.active.Store(true)

	go func() {
		defer close(done)
		tk := time.NewTicker(period)
		defer tk.Stop()
		for {
			select {
			case <-stop:
				return
			case <-tk.C:
				fn()
			}
		}
	}()
	return nil
}

// Stop halts the timer and waits for an in-flight callback to return.
func (t *tickerTimer) Stop() error {
	t.mu.Lock()
	stop := t.stop
	done := t.done
	t.stop = nil
	t.done = nil
	t.active.Store(false)
	t.mu.Unlock()

	if stop == nil {
		return nil
	}
	close(stop)
	<-done
	return nil
}

func (t *tickerTimer) Active() bool {
	return t.active.Load()
}
