// Package session holds the per-visitor state of the web preview shell.
//
// State is an immutable value; every user action or completed background
// operation is an Event, and Apply is the only way to move between states.
// Store keeps one State per browser session and owns the cancellation of
// in-flight generations.
package session

import (
	pitchdeck "github.com/alnah/go-pitchdeck"
)

// User-facing notices. At most one is pending at a time.
const (
	NoticeGenerationFailed = "Failed to generate your pitch deck. Please check your connection and try again."
	NoticeExportFailed     = "Failed to generate PDF. Please try again."
)

// State is a snapshot of one visitor's session.
//
// With no Deck the form is shown; Input keeps the last submission so a
// failed generation returns to a filled form. Seq identifies the current
// generation request; results carrying another Seq are stale.
type State struct {
	Deck      *pitchdeck.GeneratedDeck
	Input     pitchdeck.PitchInput
	Loading   bool
	Exporting bool
	Cursor    int
	Notice    string
	Seq       uint64
}

// HasDeck reports whether a deck is being previewed.
func (s State) HasDeck() bool {
	return s.Deck.Len() > 0
}

// Total returns the number of slides in the previewed deck.
func (s State) Total() int {
	return s.Deck.Len()
}

// Current returns the slide under the cursor.
func (s State) Current() (pitchdeck.SlideContent, bool) {
	if !s.HasDeck() {
		return pitchdeck.SlideContent{}, false
	}
	return s.Deck.Slides[s.Cursor], true
}

// Event is a transition input for Apply.
type Event interface {
	apply(State) State
}

// Apply returns the state that follows s after e. It never mutates s.
func Apply(s State, e Event) State {
	if e == nil {
		return s
	}
	return e.apply(s)
}

// ---------------------------------------------------------------------------
// Generation
// ---------------------------------------------------------------------------

// Submit starts a generation for Input.
type Submit struct {
	Input pitchdeck.PitchInput
}

func (e Submit) apply(s State) State {
	s.Seq++
	s.Input = e.Input
	s.Loading = true
	s.Notice = ""
	return s
}

// GenerationSucceeded delivers the deck produced for request Seq.
type GenerationSucceeded struct {
	Seq  uint64
	Deck *pitchdeck.GeneratedDeck
}

func (e GenerationSucceeded) apply(s State) State {
	if !s.Loading || e.Seq != s.Seq || e.Deck.Len() == 0 {
		return s
	}
	s.Deck = e.Deck
	s.Loading = false
	s.Cursor = 0
	return s
}

// GenerationFailed reports that request Seq failed.
type GenerationFailed struct {
	Seq uint64
	Err error
}

func (e GenerationFailed) apply(s State) State {
	if !s.Loading || e.Seq != s.Seq {
		return s
	}
	s.Loading = false
	s.Notice = NoticeGenerationFailed
	return s
}

// Reset discards the deck and any in-flight generation.
type Reset struct{}

func (Reset) apply(s State) State {
	return State{Seq: s.Seq + 1}
}

// ---------------------------------------------------------------------------
// Navigation
// ---------------------------------------------------------------------------

// NavigatePrev moves the cursor back one slide; a no-op on the first slide.
type NavigatePrev struct{}

func (NavigatePrev) apply(s State) State {
	if s.HasDeck() && s.Cursor > 0 {
		s.Cursor--
	}
	return s
}

// NavigateNext moves the cursor forward one slide; a no-op on the last slide.
type NavigateNext struct{}

func (NavigateNext) apply(s State) State {
	if s.HasDeck() && s.Cursor < s.Total()-1 {
		s.Cursor++
	}
	return s
}

// NavigateTo jumps to Index. Out-of-range indices are ignored.
type NavigateTo struct {
	Index int
}

func (e NavigateTo) apply(s State) State {
	if s.HasDeck() && e.Index >= 0 && e.Index < s.Total() {
		s.Cursor = e.Index
	}
	return s
}

// ---------------------------------------------------------------------------
// Export
// ---------------------------------------------------------------------------

// ExportStarted marks an export in progress. Ignored without a deck or
// while another export runs.
type ExportStarted struct{}

func (ExportStarted) apply(s State) State {
	if s.HasDeck() {
		s.Exporting = true
	}
	return s
}

// ExportSucceeded clears the exporting flag.
type ExportSucceeded struct{}

func (ExportSucceeded) apply(s State) State {
	s.Exporting = false
	return s
}

// ExportFailed clears the exporting flag and sets the export notice.
type ExportFailed struct {
	Err error
}

func (ExportFailed) apply(s State) State {
	if !s.Exporting {
		return s
	}
	s.Exporting = false
	s.Notice = NoticeExportFailed
	return s
}

// NoticeShown consumes the pending notice.
type NoticeShown struct{}

func (NoticeShown) apply(s State) State {
	s.Notice = ""
	return s
}
