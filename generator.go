package pitchdeck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Backend sends one prompt to a hosted model and returns the raw JSON text
// of its structured response. Implementations make exactly one call.
type Backend interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	Name() string
}

// Client generates decks through a Backend.
type Client struct {
	backend Backend
	timeout time.Duration
	logger  *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithGenerationTimeout bounds each generation call.
// Panics if d <= 0; omit the option for no bound.
func WithGenerationTimeout(d time.Duration) ClientOption {
	if d <= 0 {
		panic("pitchdeck: generation timeout must be positive")
	}
	return func(c *Client) {
		c.timeout = d
	}
}

// WithClientLogger sets the logger used for generation events.
func WithClientLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a Client for the given backend.
// Panics if backend is nil.
func NewClient(backend Backend, opts ...ClientOption) *Client {
	if backend == nil {
		panic("pitchdeck: nil backend")
	}
	c := &Client{
		backend: backend,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Backend returns the backend name, e.g. "gemini".
func (c *Client) Backend() string {
	return c.backend.Name()
}

// GenerateDeck builds the prompt, makes one backend call and returns a
// normalized deck of exactly SlideCount slides. Cancelling ctx aborts the
// in-flight call. Every failure after input validation wraps ErrGeneration.
func (c *Client) GenerateDeck(ctx context.Context, in PitchInput) (deck *GeneratedDeck, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: internal error: %v", ErrGeneration, r)
		}
	}()

	if err := in.Validate(); err != nil {
		return nil, err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := c.backend.GenerateJSON(ctx, BuildPrompt(in))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrGeneration, c.backend.Name(), err)
	}

	parsed, err := ParseDeck(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	received := len(parsed.Slides)
	deck, err = NormalizeDeck(parsed, in.StartupName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	c.logger.LogAttrs(ctx, slog.LevelDebug, "deck generated",
		slog.String("backend", c.backend.Name()),
		slog.Int("received", received),
		slog.Int("slides", len(deck.Slides)),
		slog.Duration("duration", time.Since(start)),
	)
	return deck, nil
}

// wireDeck mirrors the response schema. Pointers distinguish a missing
// required key from an empty value.
type wireDeck struct {
	StartupName *string      `json:"startupName"`
	Slides      *[]wireSlide `json:"slides"`
}

type wireSlide struct {
	Title    *string   `json:"title"`
	Subtitle string    `json:"subtitle"`
	Bullets  *[]string `json:"bullets"`
	Footer   string    `json:"footer"`
}

// ParseDeck decodes a structured response. It fails on malformed JSON and
// on missing required keys (startupName, slides, and per slide title and
// bullets). Slide count is not checked here; see NormalizeDeck.
func ParseDeck(text string) (*GeneratedDeck, error) {
	text = stripCodeFence(text)
	if text == "" {
		return nil, ErrEmptyResponse
	}

	var w wireDeck
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	if err := dec.Decode(&w); err != nil {
		return nil, fmt.Errorf("malformed response: %v", err)
	}

	if w.StartupName == nil {
		return nil, fmt.Errorf("malformed response: missing %q", "startupName")
	}
	if w.Slides == nil {
		return nil, fmt.Errorf("malformed response: missing %q", "slides")
	}

	deck := &GeneratedDeck{
		StartupName: *w.StartupName,
		Slides:      make([]SlideContent, 0, len(*w.Slides)),
	}
	for i, ws := range *w.Slides {
		if ws.Title == nil {
			return nil, fmt.Errorf("malformed response: slide %d missing %q", i+1, "title")
		}
		if ws.Bullets == nil {
			return nil, fmt.Errorf("malformed response: slide %d missing %q", i+1, "bullets")
		}
		deck.Slides = append(deck.Slides, SlideContent{
			Title:    *ws.Title,
			Subtitle: ws.Subtitle,
			Bullets:  append([]string(nil), (*ws.Bullets)...),
			Footer:   ws.Footer,
		})
	}
	return deck, nil
}

// NormalizeDeck returns a copy of deck with exactly SlideCount slides.
// Zero slides is rejected with ErrNoSlides. Extra slides are dropped and
// missing ones are padded with the outline title and no bullets. Blank
// titles take the outline title for their position, blank bullets are
// removed, and a blank startup name falls back to fallbackName.
func NormalizeDeck(deck *GeneratedDeck, fallbackName string) (*GeneratedDeck, error) {
	if deck.Len() == 0 {
		return nil, ErrNoSlides
	}

	out := &GeneratedDeck{
		StartupName: strings.TrimSpace(deck.StartupName),
		Slides:      make([]SlideContent, SlideCount),
	}
	if out.StartupName == "" {
		out.StartupName = strings.TrimSpace(fallbackName)
	}

	for i := range SlideCount {
		if i >= len(deck.Slides) {
			out.Slides[i] = SlideContent{Title: deckOutline[i].Title, Bullets: []string{}}
			continue
		}
		out.Slides[i] = normalizeSlide(deck.Slides[i], i)
	}
	return out, nil
}

func normalizeSlide(s SlideContent, index int) SlideContent {
	out := SlideContent{
		Title:    strings.TrimSpace(s.Title),
		Subtitle: strings.TrimSpace(s.Subtitle),
		Bullets:  make([]string, 0, len(s.Bullets)),
		Footer:   strings.TrimSpace(s.Footer),
	}
	if out.Title == "" {
		out.Title = deckOutline[index].Title
	}
	for _, b := range s.Bullets {
		if b = strings.TrimSpace(b); b != "" {
			out.Bullets = append(out.Bullets, b)
		}
	}
	return out
}

// stripCodeFence removes a surrounding ``` or ```json fence some models
// add even when asked for raw JSON.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = ""
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
