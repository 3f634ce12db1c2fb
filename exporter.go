package pitchdeck

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// DefaultExportTimeout bounds one export when the context has no deadline.
const DefaultExportTimeout = 60 * time.Second

// Document is an exported deck.
type Document struct {
	Filename string
	PDF      []byte
	Pages    int
}

// Exporter renders a deck into a multi-page PDF, one landscape page per
// slide. Each Exporter owns one browser; it is not safe for concurrent use.
// Create with NewExporter, use ExportDeck, and Close when done.
type Exporter struct {
	timeout   time.Duration
	logger    *slog.Logger
	rendOpts  []RendererOption
	renderer  *Renderer
	mounter   bufferMounter
	assembler pageAssembler
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithTimeout sets the export timeout used when the context has no deadline.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) ExporterOption {
	if d <= 0 {
		panic("pitchdeck: WithTimeout duration must be positive")
	}
	return func(e *Exporter) {
		e.timeout = d
	}
}

// WithRenderer shares an existing renderer. Renderers are safe for
// concurrent use, so one renderer can serve a whole pool.
func WithRenderer(r *Renderer) ExporterOption {
	return func(e *Exporter) {
		e.renderer = r
	}
}

// WithRendererOptions configures the renderer the exporter creates when
// none is shared with WithRenderer.
func WithRendererOptions(opts ...RendererOption) ExporterOption {
	return func(e *Exporter) {
		e.rendOpts = append(e.rendOpts, opts...)
	}
}

// WithLogger sets the logger used for export events.
func WithLogger(l *slog.Logger) ExporterOption {
	return func(e *Exporter) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewExporter creates an Exporter. The browser is launched on first export.
// Returns error if the slide templates cannot be loaded.
func NewExporter(opts ...ExporterOption) (*Exporter, error) {
	e := &Exporter{
		timeout: DefaultExportTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.renderer == nil {
		r, err := NewRenderer(e.rendOpts...)
		if err != nil {
			return nil, err
		}
		e.renderer = r
	}
	// Injected by tests.
	if e.mounter == nil {
		e.mounter = newRodMounter(e.timeout)
	}
	if e.assembler == nil {
		e.assembler = newGofpdfAssembler()
	}
	return e, nil
}

// Renderer returns the renderer used for export surfaces.
func (e *Exporter) Renderer() *Renderer {
	return e.renderer
}

// ExportDeck renders every slide, mounts them together in one offscreen
// buffer and captures them in order, one at a time, into a PDF. A slide the
// buffer does not contain is skipped. Any capture or assembly failure aborts
// with an error wrapping ErrExport and no document.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (e *Exporter) ExportDeck(ctx context.Context, deck *GeneratedDeck) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: internal error: %v", ErrExport, r)
		}
	}()

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	title := deckTitle(deck.StartupName)

	surfaces, err := e.renderer.RenderDeck(deck)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExport, err)
	}
	html, err := e.renderer.RenderBuffer(title, surfaces)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExport, err)
	}

	buf, err := e.mounter.Mount(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExport, err)
	}
	defer func() { _ = buf.Close() }()

	pages := make([][]byte, 0, len(surfaces))
	for _, s := range surfaces {
		h, ok := buf.Lookup(s.Index)
		if !ok {
			e.logger.LogAttrs(ctx, slog.LevelDebug, "slide not mounted, skipping",
				slog.Int("index", s.Index))
			continue
		}
		img, err := h.Capture(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: slide %d: %w", ErrExport, s.Index+1, err)
		}
		pages = append(pages, img)
	}

	pdf, err := e.assembler.Assemble(title, pages)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExport, err)
	}

	e.logger.LogAttrs(ctx, slog.LevelDebug, "deck exported",
		slog.String("startup", deck.StartupName),
		slog.Int("pages", len(pages)),
		slog.Int("bytes", len(pdf)),
		slog.Duration("duration", time.Since(start)),
	)
	return &Document{
		Filename: DeckFilename(deck.StartupName),
		PDF:      pdf,
		Pages:    len(pages),
	}, nil
}

// Close releases the browser.
func (e *Exporter) Close() error {
	if e.mounter != nil {
		return e.mounter.Close()
	}
	return nil
}

func deckTitle(startupName string) string {
	if name := strings.TrimSpace(startupName); name != "" {
		return name + " Pitch Deck"
	}
	return "Pitch Deck"
}
