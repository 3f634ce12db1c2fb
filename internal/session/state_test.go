package session

// Notes:
// - Apply is pure; tests compare returned states and check the input is
//   left untouched
// - Store tests swap the clock to drive the TTL sweep

import (
	"errors"
	"testing"

	pitchdeck "github.com/alnah/go-pitchdeck"
)

func testDeck(n int) *pitchdeck.GeneratedDeck {
	d := &pitchdeck.GeneratedDeck{StartupName: "EcoSphere Labs"}
	titles := pitchdeck.OutlineTitles()
	for i := range n {
		d.Slides = append(d.Slides, pitchdeck.SlideContent{Title: titles[i%len(titles)]})
	}
	return d
}

func previewing(n, cursor int) State {
	return State{Deck: testDeck(n), Cursor: cursor, Seq: 1}
}

// ---------------------------------------------------------------------------
// TestApply - Navigation
// ---------------------------------------------------------------------------

func TestApply_Navigation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		start  State
		event  Event
		cursor int
	}{
		{"next advances", previewing(10, 0), NavigateNext{}, 1},
		{"next at last is no-op", previewing(10, 9), NavigateNext{}, 9},
		{"prev goes back", previewing(10, 5), NavigatePrev{}, 4},
		{"prev at first is no-op", previewing(10, 0), NavigatePrev{}, 0},
		{"jump in range", previewing(10, 0), NavigateTo{Index: 7}, 7},
		{"jump to last", previewing(10, 0), NavigateTo{Index: 9}, 9},
		{"jump past end ignored", previewing(10, 3), NavigateTo{Index: 10}, 3},
		{"negative jump ignored", previewing(10, 3), NavigateTo{Index: -1}, 3},
		{"single slide next", previewing(1, 0), NavigateNext{}, 0},
		{"no deck", State{}, NavigateNext{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Apply(tt.start, tt.event)
			if got.Cursor != tt.cursor {
				t.Errorf("Cursor = %d, want %d", got.Cursor, tt.cursor)
			}
		})
	}
}

func TestApply_CursorStaysInRange(t *testing.T) {
	t.Parallel()

	events := []Event{
		NavigateNext{}, NavigateNext{}, NavigateTo{Index: 42}, NavigatePrev{},
		NavigateTo{Index: 9}, NavigateNext{}, NavigateNext{}, NavigateTo{Index: 0},
		NavigatePrev{}, NavigatePrev{}, NavigateTo{Index: -3},
	}

	s := previewing(10, 0)
	for i, ev := range events {
		s = Apply(s, ev)
		if s.Cursor < 0 || s.Cursor >= s.Total() {
			t.Fatalf("after event %d (%T) Cursor = %d, out of [0,%d)", i, ev, s.Cursor, s.Total())
		}
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	start := previewing(10, 4)
	_ = Apply(start, NavigateNext{})
	_ = Apply(start, Reset{})
	if start.Cursor != 4 || start.Deck == nil {
		t.Errorf("input state changed: %+v", start)
	}
}

// ---------------------------------------------------------------------------
// TestApply - Generation
// ---------------------------------------------------------------------------

func TestApply_Generation(t *testing.T) {
	t.Parallel()

	in := pitchdeck.PitchInput{StartupName: "EcoSphere Labs"}

	t.Run("submit sets loading", func(t *testing.T) {
		t.Parallel()

		s := Apply(State{Notice: "old"}, Submit{Input: in})
		if !s.Loading || s.Seq != 1 || s.Input != in || s.Notice != "" {
			t.Errorf("state = %+v", s)
		}
	})

	t.Run("success shows first slide", func(t *testing.T) {
		t.Parallel()

		s := Apply(State{}, Submit{Input: in})
		s = Apply(s, GenerationSucceeded{Seq: s.Seq, Deck: testDeck(10)})
		if s.Loading || !s.HasDeck() || s.Cursor != 0 {
			t.Errorf("state = %+v", s)
		}
		if cur, ok := s.Current(); !ok || cur.Title != "Cover" {
			t.Errorf("Current() = %v, %v", cur, ok)
		}
	})

	t.Run("failure keeps form and sets one notice", func(t *testing.T) {
		t.Parallel()

		s := Apply(State{}, Submit{Input: in})
		s = Apply(s, GenerationFailed{Seq: s.Seq, Err: errors.New("boom")})
		if s.Loading || s.HasDeck() {
			t.Errorf("state = %+v", s)
		}
		if s.Notice != NoticeGenerationFailed {
			t.Errorf("Notice = %q", s.Notice)
		}
		if s.Input != in {
			t.Error("input should be kept for resubmission")
		}

		s = Apply(s, NoticeShown{})
		if s.Notice != "" {
			t.Error("NoticeShown should consume the notice")
		}
	})

	t.Run("stale success after reset ignored", func(t *testing.T) {
		t.Parallel()

		s := Apply(State{}, Submit{Input: in})
		stale := s.Seq
		s = Apply(s, Reset{})
		s = Apply(s, GenerationSucceeded{Seq: stale, Deck: testDeck(10)})
		if s.HasDeck() || s.Loading {
			t.Errorf("stale result applied: %+v", s)
		}
	})

	t.Run("stale result after resubmit ignored", func(t *testing.T) {
		t.Parallel()

		s := Apply(State{}, Submit{Input: in})
		first := s.Seq
		s = Apply(s, Submit{Input: in})
		s = Apply(s, GenerationFailed{Seq: first})
		if !s.Loading || s.Notice != "" {
			t.Errorf("stale failure applied: %+v", s)
		}
	})

	t.Run("empty deck ignored", func(t *testing.T) {
		t.Parallel()

		s := Apply(State{}, Submit{Input: in})
		s = Apply(s, GenerationSucceeded{Seq: s.Seq, Deck: &pitchdeck.GeneratedDeck{}})
		if s.HasDeck() {
			t.Error("empty deck should not be previewed")
		}
	})

	t.Run("reset clears everything", func(t *testing.T) {
		t.Parallel()

		s := previewing(10, 6)
		s.Notice = "x"
		s.Exporting = true
		s = Apply(s, Reset{})
		if s.HasDeck() || s.Cursor != 0 || s.Notice != "" || s.Exporting || s.Loading {
			t.Errorf("state = %+v", s)
		}
		if s.Seq != 2 {
			t.Errorf("Seq = %d, want 2", s.Seq)
		}
	})
}

// ---------------------------------------------------------------------------
// TestApply - Export
// ---------------------------------------------------------------------------

func TestApply_Export(t *testing.T) {
	t.Parallel()

	t.Run("started requires deck", func(t *testing.T) {
		t.Parallel()

		if Apply(State{}, ExportStarted{}).Exporting {
			t.Error("export without deck should be ignored")
		}
		if !Apply(previewing(10, 0), ExportStarted{}).Exporting {
			t.Error("Exporting should be set")
		}
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		s := Apply(Apply(previewing(10, 3), ExportStarted{}), ExportSucceeded{})
		if s.Exporting || s.Notice != "" || s.Cursor != 3 {
			t.Errorf("state = %+v", s)
		}
	})

	t.Run("failure sets notice", func(t *testing.T) {
		t.Parallel()

		s := Apply(Apply(previewing(10, 3), ExportStarted{}), ExportFailed{Err: errors.New("boom")})
		if s.Exporting || s.Notice != NoticeExportFailed {
			t.Errorf("state = %+v", s)
		}
		if !s.HasDeck() {
			t.Error("deck should survive a failed export")
		}
	})
}

func TestApply_NilEvent(t *testing.T) {
	t.Parallel()

	s := previewing(10, 2)
	if got := Apply(s, nil); got != s {
		t.Errorf("Apply(nil) = %+v, want unchanged", got)
	}
}
