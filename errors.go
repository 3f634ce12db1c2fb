package pitchdeck

import "errors"

// Sentinel errors for library operations.
var (
	// Input validation errors.
	ErrMissingField  = errors.New("required field is empty")
	ErrFieldTooLong  = errors.New("field exceeds maximum length")
	ErrInvalidDeck   = errors.New("invalid deck")
	ErrInvalidIndex  = errors.New("slide index out of range")
	ErrNoSlides      = errors.New("generated deck has no slides")
	ErrEmptyResponse = errors.New("empty response from generation service")

	// Generation errors.
	ErrGeneration     = errors.New("deck generation failed")
	ErrMissingAPIKey  = errors.New("API key not configured")
	ErrUnknownBackend = errors.New("unknown generation provider")

	// Rendering errors.
	ErrSlideRender = errors.New("slide rendering failed")

	// Export errors.
	ErrExport         = errors.New("deck export failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrRasterize      = errors.New("slide rasterization failed")
	ErrPDFAssembly    = errors.New("PDF assembly failed")

	// Asset loading errors.
	ErrTemplateNotFound      = errors.New("template not found")
	ErrIncompleteTemplateSet = errors.New("template set missing required template")
	ErrInvalidAssetPath      = errors.New("invalid asset path")
)
