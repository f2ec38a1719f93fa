package render

import "time"

// Sequence is a queue of layouts shown one after another on a Renderer, for
// screens that page through several views before handing control back.
//
// The zero value is ready to use and reads the wall clock.
type Sequence struct {
	// Now defaults to time.Now.
	Now func() time.Time

	pages   []Layout
	started time.Time
}

// Add queues a copy of l behind the pages already queued.
func (s *Sequence) Add(l Layout) { s.pages = append(s.pages, l.Clone()) }

// Len is the number of pages still queued.
func (s *Sequence) Len() int { return len(s.pages) }

// Clear drops every queued page.
func (s *Sequence) Clear() { s.pages = nil }

// Next shows the front page on r and removes it from the queue. The page
// clock restarts even when the queue is empty; Next reports whether a page
// was shown.
func (s *Sequence) Next(r *Renderer) bool {
	s.started = s.now()
	if len(s.pages) == 0 {
		return false
	}
	r.SetDesired(s.pages[0])
	s.pages[0] = Layout{}
	s.pages = s.pages[1:]
	return true
}

// Elapsed is the time since the last call to Next.
func (s *Sequence) Elapsed() time.Duration { return s.now().Sub(s.started) }

func (s *Sequence) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
