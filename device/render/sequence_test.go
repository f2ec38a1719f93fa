package render

import (
	"testing"
	"time"
)

func TestSequenceShowsPagesInOrder(t *testing.T) {
	r := New(newRecorder(240, 320))
	var s Sequence

	info := []TextLine{{Text: "first", Value: White}}
	s.Add(Layout{Title: "One", Info: info, Options: []TextLine{{Text: "OK"}}})
	s.Add(Layout{Title: "Two", Options: []TextLine{{Text: "OK"}}})
	info[0].Text = "changed"

	if s.Len() != 2 {
		t.Fatalf("expected 2 pages, got %d", s.Len())
	}
	if !s.Next(r) || r.Title() != "One" || s.Len() != 1 {
		t.Fatalf("expected page One shown, title %q len %d", r.Title(), s.Len())
	}
	if got := r.Desired().Info[0].Text; got != "first" {
		t.Fatalf("expected queued page copied, got %q", got)
	}
	if !s.Next(r) || r.Title() != "Two" || s.Len() != 0 {
		t.Fatalf("expected page Two shown, title %q len %d", r.Title(), s.Len())
	}
	if s.Next(r) {
		t.Fatal("expected empty sequence to report false")
	}
	if r.Title() != "Two" {
		t.Fatal("expected an empty Next to leave the layout alone")
	}
}

func TestSequenceClear(t *testing.T) {
	r := New(newRecorder(240, 320))
	var s Sequence
	s.Add(Layout{Title: "One"})
	s.Add(Layout{Title: "Two"})
	s.Clear()
	if s.Len() != 0 || s.Next(r) {
		t.Fatal("expected cleared sequence to be empty")
	}
}

func TestSequenceElapsedRestartsOnNext(t *testing.T) {
	now := time.Unix(100, 0)
	s := Sequence{Now: func() time.Time { return now }}
	r := New(newRecorder(240, 320))
	s.Add(Layout{Title: "One"})

	s.Next(r)
	now = now.Add(3 * time.Second)
	if got := s.Elapsed(); got != 3*time.Second {
		t.Fatalf("expected 3s on page, got %v", got)
	}

	// The clock restarts even when nothing is left to show.
	s.Next(r)
	now = now.Add(time.Second)
	if got := s.Elapsed(); got != time.Second {
		t.Fatalf("expected clock restarted, got %v", got)
	}
}
