package pitchdeck

// Notes:
// - Hand-written fakes shared by the unit tests: a scripted Backend, an
//   export buffer that records capture order, and an assembler that
//   records the pages it receives
// - samplePitch and sampleDeck build valid fixtures; tests copy and mutate

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"sync"
	"testing"
)

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func samplePitch() PitchInput {
	return PitchInput{
		StartupName:          "EcoSphere Labs",
		Problem:              "Urban farms waste 40% of their water",
		Solution:             "Closed-loop irrigation controlled by soil sensors",
		TargetMarket:         "Vertical farms in EU cities",
		BusinessModel:        "Hardware lease plus monthly SaaS",
		UVP:                  "Half the water, same yield",
		Technology:           "LoRa sensors and an edge ML controller",
		CompetitiveAdvantage: "Patented moisture model",
		Team:                 "Two agronomists and a firmware engineer",
		FundingAsk:           "1.5M EUR seed",
	}
}

// sampleDeck returns a deck of n slides titled after the outline.
func sampleDeck(n int) *GeneratedDeck {
	d := &GeneratedDeck{StartupName: "EcoSphere Labs"}
	for i := range n {
		title := fmt.Sprintf("Slide %d", i+1)
		if i < SlideCount {
			title = deckOutline[i].Title
		}
		s := SlideContent{Title: title, Bullets: []string{"First point", "Second point"}}
		if i == 0 {
			s.Subtitle = "Water-smart farming"
			s.Bullets = nil
		}
		d.Slides = append(d.Slides, s)
	}
	return d
}

// deckJSON renders a model response with n slides.
func deckJSON(n int) string {
	var b bytes.Buffer
	b.WriteString(`{"startupName":"EcoSphere Labs","slides":[`)
	for i := range n {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, `{"title":"T%d","bullets":["b%d"]}`, i+1, i+1)
	}
	b.WriteString(`]}`)
	return b.String()
}

// testPNG encodes a small solid image.
func testPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for y := range 4 {
		for x := range 8 {
			img.Set(x, y, color.RGBA{R: 10, G: 120, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

// ---------------------------------------------------------------------------
// Backend fake
// ---------------------------------------------------------------------------

type mockBackend struct {
	mu      sync.Mutex
	Result  string
	Err     error
	Block   bool // wait for ctx cancellation
	Calls   int
	Prompts []string
}

func (m *mockBackend) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.Calls++
	m.Prompts = append(m.Prompts, prompt)
	m.mu.Unlock()

	if m.Block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return m.Result, m.Err
}

func (m *mockBackend) Name() string { return "mock" }

// ---------------------------------------------------------------------------
// Export fakes
// ---------------------------------------------------------------------------

type mockMounter struct {
	Buffer   *mockBuffer
	Err      error
	Mounted  string
	Closed   bool
	MountCnt int
}

func (m *mockMounter) Mount(ctx context.Context, html string) (surfaceBuffer, error) {
	m.MountCnt++
	m.Mounted = html
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Buffer, nil
}

func (m *mockMounter) Close() error {
	m.Closed = true
	return nil
}

// mockBuffer hands out one handle per index except those in Missing.
// The handle for FailAt returns FailErr.
type mockBuffer struct {
	Image    []byte
	Missing  map[int]bool
	FailAt   int
	FailErr  error
	Captured []int
	Closed   bool
}

func newMockBuffer(img []byte) *mockBuffer {
	return &mockBuffer{Image: img, Missing: map[int]bool{}, FailAt: -1}
}

func (b *mockBuffer) Lookup(index int) (surfaceHandle, bool) {
	if b.Missing[index] {
		return nil, false
	}
	return &mockHandle{buf: b, index: index}, true
}

func (b *mockBuffer) Close() error {
	b.Closed = true
	return nil
}

type mockHandle struct {
	buf   *mockBuffer
	index int
}

func (h *mockHandle) Capture(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if h.index == h.buf.FailAt {
		return nil, h.buf.FailErr
	}
	h.buf.Captured = append(h.buf.Captured, h.index)
	// Tag each image with its index so order is observable.
	return append(append([]byte(nil), h.buf.Image...), byte(h.index)), nil
}

type mockAssembler struct {
	Title string
	Pages [][]byte
	Err   error
}

func (a *mockAssembler) Assemble(title string, pages [][]byte) ([]byte, error) {
	a.Title = title
	a.Pages = pages
	if a.Err != nil {
		return nil, a.Err
	}
	return []byte("%PDF-1.3 fake"), nil
}

// newTestExporter wires an Exporter to fakes.
func newTestExporter(t *testing.T, m *mockMounter, a *mockAssembler) *Exporter {
	t.Helper()

	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	e := &Exporter{
		timeout:   DefaultExportTimeout,
		logger:    discardLogger(),
		renderer:  r,
		mounter:   m,
		assembler: a,
	}
	return e
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
