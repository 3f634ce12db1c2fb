// Package assets provides the slide templates, web page templates and
// stylesheets used to render pitch decks.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from the go:embed filesystem
//	    ├── FilesystemLoader  - loads from a custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is what the renderer and the web server use. A custom
// directory only needs to contain the assets it overrides; everything else
// falls back to the embedded copy.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   ├── deck.css      # slide surfaces (preview and export)
//	│   └── app.css       # web shell
//	└── templates/
//	    ├── cover.html    # slide 0
//	    ├── slide.html    # slides 1..N-1
//	    ├── buffer.html   # export document holding every surface
//	    └── app.html      # form and preview pages
//
// # Security
//
// Asset names are validated to prevent path traversal.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
