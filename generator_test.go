package pitchdeck

// Notes:
// - GenerateDeck: one backend call per request, error wrapping, cancellation
// - ParseDeck: malformed JSON and missing required keys
// - NormalizeDeck: pad, truncate, reject empty, canonical titles
// - Backends are replaced by mockBackend; see backend_test.go for real clients

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestGenerateDeck - Generation Client
// ---------------------------------------------------------------------------

func TestGenerateDeck(t *testing.T) {
	t.Parallel()

	backendErr := errors.New("quota exceeded")

	tests := []struct {
		name       string
		backend    *mockBackend
		input      func() PitchInput
		wantErr    []error
		wantSlides int
		wantCalls  int
	}{
		{
			name:       "ten slides pass through",
			backend:    &mockBackend{Result: deckJSON(10)},
			wantSlides: SlideCount,
			wantCalls:  1,
		},
		{
			name:       "short deck is padded",
			backend:    &mockBackend{Result: deckJSON(7)},
			wantSlides: SlideCount,
			wantCalls:  1,
		},
		{
			name:       "long deck is truncated",
			backend:    &mockBackend{Result: deckJSON(13)},
			wantSlides: SlideCount,
			wantCalls:  1,
		},
		{
			name:      "zero slides rejected",
			backend:   &mockBackend{Result: deckJSON(0)},
			wantErr:   []error{ErrGeneration, ErrNoSlides},
			wantCalls: 1,
		},
		{
			name:      "backend failure wraps ErrGeneration",
			backend:   &mockBackend{Err: backendErr},
			wantErr:   []error{ErrGeneration, backendErr},
			wantCalls: 1,
		},
		{
			name:      "malformed JSON",
			backend:   &mockBackend{Result: `{"startupName": "X", "slides": [`},
			wantErr:   []error{ErrGeneration},
			wantCalls: 1,
		},
		{
			name:      "empty response",
			backend:   &mockBackend{Result: "  "},
			wantErr:   []error{ErrGeneration, ErrEmptyResponse},
			wantCalls: 1,
		},
		{
			name:    "invalid input skips backend",
			backend: &mockBackend{Result: deckJSON(10)},
			input: func() PitchInput {
				in := samplePitch()
				in.Problem = ""
				return in
			},
			wantErr:   []error{ErrMissingField},
			wantCalls: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := samplePitch()
			if tt.input != nil {
				in = tt.input()
			}
			c := NewClient(tt.backend, WithClientLogger(discardLogger()))
			deck, err := c.GenerateDeck(context.Background(), in)

			if tt.backend.Calls != tt.wantCalls {
				t.Errorf("backend calls = %d, want %d", tt.backend.Calls, tt.wantCalls)
			}
			if len(tt.wantErr) > 0 {
				if err == nil {
					t.Fatal("GenerateDeck() expected error, got nil")
				}
				for _, want := range tt.wantErr {
					if !errors.Is(err, want) {
						t.Errorf("GenerateDeck() error = %v, want errors.Is %v", err, want)
					}
				}
				if deck != nil {
					t.Error("GenerateDeck() returned a deck alongside an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("GenerateDeck() unexpected error: %v", err)
			}
			if len(deck.Slides) != tt.wantSlides {
				t.Errorf("len(Slides) = %d, want %d", len(deck.Slides), tt.wantSlides)
			}
		})
	}
}

func TestGenerateDeck_PromptCarriesInput(t *testing.T) {
	t.Parallel()

	b := &mockBackend{Result: deckJSON(10)}
	c := NewClient(b, WithClientLogger(discardLogger()))
	if _, err := c.GenerateDeck(context.Background(), samplePitch()); err != nil {
		t.Fatalf("GenerateDeck() error = %v", err)
	}
	if len(b.Prompts) != 1 {
		t.Fatalf("prompts sent = %d, want 1", len(b.Prompts))
	}
	if b.Prompts[0] != BuildPrompt(samplePitch()) {
		t.Error("backend did not receive BuildPrompt output")
	}
}

func TestGenerateDeck_Cancellation(t *testing.T) {
	t.Parallel()

	t.Run("cancel aborts in-flight call", func(t *testing.T) {
		t.Parallel()

		b := &mockBackend{Block: true}
		c := NewClient(b, WithClientLogger(discardLogger()))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			_, err := c.GenerateDeck(ctx, samplePitch())
			done <- err
		}()

		// Cancel once the call is in flight.
		for {
			b.mu.Lock()
			calls := b.Calls
			b.mu.Unlock()
			if calls > 0 {
				break
			}
			time.Sleep(time.Millisecond)
		}
		cancel()

		select {
		case err := <-done:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("error = %v, want context.Canceled", err)
			}
			if !errors.Is(err, ErrGeneration) {
				t.Errorf("error = %v, want ErrGeneration", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("GenerateDeck() did not return after cancel")
		}
	})

	t.Run("timeout bounds the call", func(t *testing.T) {
		t.Parallel()

		b := &mockBackend{Block: true}
		c := NewClient(b, WithGenerationTimeout(20*time.Millisecond), WithClientLogger(discardLogger()))

		_, err := c.GenerateDeck(context.Background(), samplePitch())
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("error = %v, want context.DeadlineExceeded", err)
		}
	})
}

func TestNewClient_Panics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func()
	}{
		{"nil backend", func() { NewClient(nil) }},
		{"zero timeout", func() { WithGenerationTimeout(0) }},
		{"negative timeout", func() { WithGenerationTimeout(-time.Second) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

// ---------------------------------------------------------------------------
// TestParseDeck - Response Decoding
// ---------------------------------------------------------------------------

func TestParseDeck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		text       string
		wantErr    string
		wantSlides int
	}{
		{
			name:       "valid",
			text:       deckJSON(3),
			wantSlides: 3,
		},
		{
			name:       "fenced json",
			text:       "```json\n" + deckJSON(2) + "\n```",
			wantSlides: 2,
		},
		{
			name:       "optional subtitle and footer",
			text:       `{"startupName":"A","slides":[{"title":"Cover","subtitle":"Tag","bullets":[],"footer":"f"}]}`,
			wantSlides: 1,
		},
		{
			name:    "not json",
			text:    "Sure! Here is your deck.",
			wantErr: "malformed response",
		},
		{
			name:    "missing startupName",
			text:    `{"slides":[]}`,
			wantErr: `missing "startupName"`,
		},
		{
			name:    "missing slides",
			text:    `{"startupName":"A"}`,
			wantErr: `missing "slides"`,
		},
		{
			name:    "slide missing title",
			text:    `{"startupName":"A","slides":[{"bullets":[]}]}`,
			wantErr: `slide 1 missing "title"`,
		},
		{
			name:    "slide missing bullets",
			text:    `{"startupName":"A","slides":[{"title":"Cover"},{"title":"Two"}]}`,
			wantErr: `slide 1 missing "bullets"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			deck, err := ParseDeck(tt.text)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("ParseDeck() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDeck() unexpected error: %v", err)
			}
			if len(deck.Slides) != tt.wantSlides {
				t.Errorf("len(Slides) = %d, want %d", len(deck.Slides), tt.wantSlides)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestNormalizeDeck - Ten-Slide Contract
// ---------------------------------------------------------------------------

func TestNormalizeDeck(t *testing.T) {
	t.Parallel()

	t.Run("pads with outline titles", func(t *testing.T) {
		t.Parallel()

		in := &GeneratedDeck{StartupName: "A", Slides: []SlideContent{
			{Title: "Cover"}, {Title: "Problem", Bullets: []string{"x"}},
		}}
		got, err := NormalizeDeck(in, "")
		if err != nil {
			t.Fatalf("NormalizeDeck() error = %v", err)
		}
		if len(got.Slides) != SlideCount {
			t.Fatalf("len(Slides) = %d, want %d", len(got.Slides), SlideCount)
		}
		for i := 2; i < SlideCount; i++ {
			if got.Slides[i].Title != deckOutline[i].Title {
				t.Errorf("Slides[%d].Title = %q, want %q", i, got.Slides[i].Title, deckOutline[i].Title)
			}
			if got.Slides[i].Bullets == nil || len(got.Slides[i].Bullets) != 0 {
				t.Errorf("Slides[%d].Bullets = %v, want empty", i, got.Slides[i].Bullets)
			}
		}
		// Input untouched.
		if len(in.Slides) != 2 {
			t.Error("NormalizeDeck() modified its input")
		}
	})

	t.Run("truncates extra slides", func(t *testing.T) {
		t.Parallel()

		got, err := NormalizeDeck(sampleDeck(SlideCount+3), "")
		if err != nil {
			t.Fatalf("NormalizeDeck() error = %v", err)
		}
		if len(got.Slides) != SlideCount {
			t.Errorf("len(Slides) = %d, want %d", len(got.Slides), SlideCount)
		}
	})

	t.Run("rejects zero slides", func(t *testing.T) {
		t.Parallel()

		_, err := NormalizeDeck(&GeneratedDeck{StartupName: "A"}, "")
		if !errors.Is(err, ErrNoSlides) {
			t.Errorf("NormalizeDeck() error = %v, want ErrNoSlides", err)
		}
	})

	t.Run("blank title takes outline title", func(t *testing.T) {
		t.Parallel()

		in := sampleDeck(SlideCount)
		in.Slides[3].Title = "  "
		got, err := NormalizeDeck(in, "")
		if err != nil {
			t.Fatalf("NormalizeDeck() error = %v", err)
		}
		if got.Slides[3].Title != "Market Opportunity" {
			t.Errorf("Slides[3].Title = %q, want Market Opportunity", got.Slides[3].Title)
		}
	})

	t.Run("drops blank bullets and trims text", func(t *testing.T) {
		t.Parallel()

		in := &GeneratedDeck{StartupName: " A ", Slides: []SlideContent{
			{Title: " Cover ", Subtitle: " Tag "},
			{Title: "Two", Bullets: []string{" one ", "", "  ", "two"}},
		}}
		got, err := NormalizeDeck(in, "")
		if err != nil {
			t.Fatalf("NormalizeDeck() error = %v", err)
		}
		if got.StartupName != "A" || got.Slides[0].Title != "Cover" || got.Slides[0].Subtitle != "Tag" {
			t.Errorf("text not trimmed: %+v", got.Slides[0])
		}
		b := got.Slides[1].Bullets
		if len(b) != 2 || b[0] != "one" || b[1] != "two" {
			t.Errorf("Bullets = %q, want [one two]", b)
		}
	})

	t.Run("blank startup name falls back", func(t *testing.T) {
		t.Parallel()

		in := sampleDeck(1)
		in.StartupName = ""
		got, err := NormalizeDeck(in, "Fallback Co")
		if err != nil {
			t.Fatalf("NormalizeDeck() error = %v", err)
		}
		if got.StartupName != "Fallback Co" {
			t.Errorf("StartupName = %q, want Fallback Co", got.StartupName)
		}
	})
}

func TestStripCodeFence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  ```json\n{\"a\":1}```  ", `{"a":1}`},
		{"```", ""},
	}

	for _, tt := range tests {
		if got := stripCodeFence(tt.in); got != tt.want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
