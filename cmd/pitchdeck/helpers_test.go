package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	pitchdeck "github.com/alnah/go-pitchdeck"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fakes injected through Environment
// ---------------------------------------------------------------------------

// fakeBackend returns a canned response.
type fakeBackend struct {
	text string
	err  error
}

func (b *fakeBackend) GenerateJSON(_ context.Context, _ string) (string, error) {
	return b.text, b.err
}

func (b *fakeBackend) Name() string { return "fake" }

// fakeExporter records the exported deck.
type fakeExporter struct {
	mu     sync.Mutex
	err    error
	decks  []*pitchdeck.GeneratedDeck
	closed bool
}

func (e *fakeExporter) ExportDeck(_ context.Context, deck *pitchdeck.GeneratedDeck) (*pitchdeck.Document, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.decks = append(e.decks, deck)
	if e.err != nil {
		return nil, fmt.Errorf("%w: %w", pitchdeck.ErrExport, e.err)
	}
	return &pitchdeck.Document{
		Filename: pitchdeck.DeckFilename(deck.StartupName),
		PDF:      []byte("%PDF-1.3 fake"),
		Pages:    deck.Len(),
	}, nil
}

func (e *fakeExporter) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return nil
}

func (e *fakeExporter) exported() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.decks)
}

// testEnv wires fakes and captures output.
type testEnv struct {
	*Environment
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	backend  *fakeBackend
	exporter *fakeExporter
	vars     map[string]string
	lastCfg  pitchdeck.BackendConfig
}

func newTestEnv(t *testing.T, vars map[string]string) *testEnv {
	t.Helper()
	if vars == nil {
		vars = map[string]string{}
	}
	te := &testEnv{
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
		backend:  &fakeBackend{text: deckJSON(t, "Acme", 10)},
		exporter: &fakeExporter{},
		vars:     vars,
	}
	te.Environment = &Environment{
		Stdout: te.stdout,
		Stderr: te.stderr,
		LookupEnv: func(k string) (string, bool) {
			v, ok := te.vars[k]
			return v, ok
		},
		Environ: func() []string {
			out := make([]string, 0, len(te.vars))
			for k, v := range te.vars {
				out = append(out, k+"="+v)
			}
			return out
		},
		NewBackend: func(_ context.Context, cfg pitchdeck.BackendConfig) (pitchdeck.Backend, error) {
			te.lastCfg = cfg
			if cfg.Provider != pitchdeck.ProviderGemini && cfg.Provider != pitchdeck.ProviderOpenAI {
				return nil, fmt.Errorf("%w: %q", pitchdeck.ErrUnknownBackend, cfg.Provider)
			}
			if cfg.APIKey == "" {
				return nil, fmt.Errorf("%w: %s", pitchdeck.ErrMissingAPIKey, cfg.Provider)
			}
			return te.backend, nil
		},
		NewExporter: func(_ ...pitchdeck.ExporterOption) (deckExporter, error) {
			return te.exporter, nil
		},
		LookChrome: func() (string, bool) { return "", false },
	}
	return te
}

// run executes the CLI with args (program name excluded).
func (te *testEnv) run(args ...string) int {
	return runMain(context.Background(), append([]string{"pitchdeck"}, args...), te.Environment)
}

// deckJSON returns a structured response with n slides.
func deckJSON(t *testing.T, name string, n int) string {
	t.Helper()
	type slide struct {
		Title    string   `json:"title"`
		Subtitle string   `json:"subtitle,omitempty"`
		Bullets  []string `json:"bullets"`
	}
	slides := make([]slide, n)
	for i := range slides {
		slides[i] = slide{Title: fmt.Sprintf("Slide %d", i+1), Bullets: []string{"point"}}
	}
	if n > 0 {
		slides[0] = slide{Title: name, Subtitle: "Tagline", Bullets: []string{}}
	}
	data, err := json.Marshal(map[string]any{"startupName": name, "slides": slides})
	if err != nil {
		t.Fatalf("marshal deck: %v", err)
	}
	return string(data)
}

const pitchYAML = `startupName: Acme
problem: Slow invoices
solution: Instant invoices
targetMarket: SMBs
businessModel: SaaS
uvp: Paid in a day
technology: Go
competitiveAdvantage: Speed
`

const deckYAML = `startupName: Acme
slides:
  - title: Acme
    subtitle: Paid in a day
    bullets: []
  - title: The Problem
    bullets:
      - Slow invoices
`

func assertContains(t *testing.T, label, got string, wants ...string) {
	t.Helper()
	for _, w := range wants {
		if !strings.Contains(got, w) {
			t.Errorf("%s should contain %q, got %q", label, w, got)
		}
	}
}

var errFake = errors.New("fake failure")
