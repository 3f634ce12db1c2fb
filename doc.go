// Package pitchdeck turns a short startup description into a ten-slide
// investor pitch deck and exports it as a landscape PDF.
//
// # Quick Start
//
// Generate a deck through a hosted model, then export it:
//
//	backend, err := pitchdeck.NewBackend(ctx, pitchdeck.BackendConfig{
//	    Provider: "gemini",
//	    APIKey:   os.Getenv("GEMINI_API_KEY"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	deck, err := pitchdeck.NewClient(backend).GenerateDeck(ctx, pitchdeck.PitchInput{
//	    StartupName: "EcoSphere Labs",
//	    Problem:     "Urban farms waste 40% of their water",
//	    // ...
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	exp, err := pitchdeck.NewExporter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer exp.Close()
//
//	doc, err := exp.ExportDeck(ctx, deck)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(doc.Filename, doc.PDF, 0o644)
//
// # Deck Contract
//
// Every generated deck has exactly SlideCount slides. The model is asked for
// a fixed outline (Cover, The Problem, ..., The Ask & Call to Action); short
// responses are padded with the outline titles, long ones truncated, and an
// empty one rejected with ErrNoSlides. See NormalizeDeck.
//
// # Export Pipeline
//
// ExportDeck proceeds in three stages:
//
//  1. Render every slide to a fixed 1280x720 HTML surface (html/template,
//     inline Markdown in bullets via Goldmark)
//  2. Mount all surfaces in one headless Chrome page and capture each at
//     2x scale on a white background (go-rod), in order
//  3. Place each image on its own 1280x720 landscape PDF page (gofpdf)
//
// Any failure aborts the export with an error wrapping ErrExport; no partial
// document is returned.
//
// # Parallel Processing
//
// An Exporter owns one browser and is not safe for concurrent use. Servers
// use ExporterPool, sized with ResolvePoolSize:
//
//	pool := pitchdeck.NewExporterPool(pitchdeck.ResolvePoolSize(0))
//	defer pool.Close()
//
//	doc, err := pool.ExportDeck(ctx, deck)
//
// # Custom Assets
//
// Slide templates and the deck stylesheet are embedded. Override any of them
// from a directory; missing files fall back to the embedded copy:
//
//	exp, err := pitchdeck.NewExporter(
//	    pitchdeck.WithRendererOptions(pitchdeck.WithAssetPath("/path/to/assets")),
//	)
//
// Asset directory structure:
//
//	assets/
//	├── styles/
//	│   └── deck.css
//	└── templates/
//	    ├── cover.html
//	    ├── slide.html
//	    └── buffer.html
//
// # Errors
//
// Errors wrap package sentinels; match them with errors.Is:
//
//	if errors.Is(err, pitchdeck.ErrGeneration) { ... }
//	if errors.Is(err, pitchdeck.ErrBrowserConnect) { ... }
package pitchdeck
