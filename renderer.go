package pitchdeck

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"

	"github.com/alnah/go-pitchdeck/internal/assets"
)

// DefaultBrand is the footer text printed on every slide.
const DefaultBrand = "Cyril Pitch Deck – Turning Ideas into Pitch-Ready Decks"

// AssetLoader loads stylesheets and HTML templates by name.
// Custom loaders override the embedded slide templates.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

// Surface is one rendered slide: a fixed SlideWidth x SlideHeight HTML block.
type Surface struct {
	Index int
	HTML  template.HTML
}

// Renderer turns slide copy into HTML surfaces. It holds parsed templates
// only and is safe for concurrent use.
type Renderer struct {
	cover  *template.Template
	slide  *template.Template
	buffer *template.Template
	style  template.CSS
	brand  string
	markup *inlineMarkup
}

type rendererConfig struct {
	brand     string
	loader    AssetLoader
	assetPath string
}

// RendererOption configures a Renderer.
type RendererOption func(*rendererConfig)

// WithBrand sets the footer text. Empty keeps DefaultBrand.
func WithBrand(brand string) RendererOption {
	return func(c *rendererConfig) {
		if brand != "" {
			c.brand = brand
		}
	}
}

// WithAssetLoader sets a custom asset loader.
func WithAssetLoader(l AssetLoader) RendererOption {
	return func(c *rendererConfig) {
		c.loader = l
	}
}

// WithAssetPath loads templates from a directory, falling back to the
// embedded copy for any file it does not contain.
func WithAssetPath(path string) RendererOption {
	return func(c *rendererConfig) {
		c.assetPath = path
	}
}

// NewRenderer loads and parses the slide templates.
func NewRenderer(opts ...RendererOption) (*Renderer, error) {
	cfg := rendererConfig{brand: DefaultBrand}
	for _, opt := range opts {
		opt(&cfg)
	}

	var loader AssetLoader = assets.NewEmbeddedLoader()
	switch {
	case cfg.loader != nil:
		loader = cfg.loader
	case cfg.assetPath != "":
		resolver, err := assets.NewAssetResolver(cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		loader = resolver
	}

	ts, err := assets.LoadTemplateSet(loader)
	if err != nil {
		return nil, mapAssetError(err)
	}

	r := &Renderer{
		// #nosec G203 -- stylesheet comes from embedded or operator-provided assets
		style:  template.CSS(ts.Style),
		brand:  cfg.brand,
		markup: newInlineMarkup(),
	}
	parts := []struct {
		name string
		text string
		dst  **template.Template
	}{
		{assets.CoverTemplateName, ts.Cover, &r.cover},
		{assets.SlideTemplateName, ts.Slide, &r.slide},
		{assets.BufferTemplateName, ts.Buffer, &r.buffer},
	}
	for _, p := range parts {
		tmpl, err := template.New(p.name).Parse(p.text)
		if err != nil {
			return nil, fmt.Errorf("%w: parsing %s template: %v", ErrSlideRender, p.name, err)
		}
		*p.dst = tmpl
	}
	return r, nil
}

// Style returns the deck stylesheet the surfaces depend on.
func (r *Renderer) Style() template.CSS {
	return r.style
}

// slideView is the data passed to the cover and slide templates.
type slideView struct {
	Index    int
	Number   int
	Total    int
	Title    string
	Subtitle string
	Bullets  []template.HTML
	Brand    string
}

// RenderSlide renders one slide. Index 0 uses the cover layout (title,
// optional subtitle, no bullets); every other index uses the bulleted
// layout with one marker per bullet, blank bullets included. Output
// depends only on the arguments.
func (r *Renderer) RenderSlide(slide SlideContent, index, total int) (Surface, error) {
	if index < 0 || index >= total {
		return Surface{}, fmt.Errorf("%w: %d of %d", ErrInvalidIndex, index, total)
	}

	view := slideView{
		Index:  index,
		Number: index + 1,
		Total:  total,
		Title:  slide.Title,
		Brand:  r.brand,
	}

	tmpl := r.slide
	if index == 0 {
		tmpl = r.cover
		view.Subtitle = slide.Subtitle
	} else {
		view.Bullets = make([]template.HTML, 0, len(slide.Bullets))
		for _, b := range slide.Bullets {
			h, err := r.markup.Render(b)
			if err != nil {
				return Surface{}, fmt.Errorf("%w: slide %d: %v", ErrSlideRender, index+1, err)
			}
			view.Bullets = append(view.Bullets, h)
		}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return Surface{}, fmt.Errorf("%w: slide %d: %v", ErrSlideRender, index+1, err)
	}
	// #nosec G203 -- produced by html/template
	return Surface{Index: index, HTML: template.HTML(buf.String())}, nil
}

// RenderDeck renders every slide in order. The returned surfaces are the
// ordered handles consumed by the export pipeline.
func (r *Renderer) RenderDeck(deck *GeneratedDeck) ([]Surface, error) {
	if deck.Len() == 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDeck, ErrNoSlides)
	}
	total := len(deck.Slides)
	surfaces := make([]Surface, 0, total)
	for i, s := range deck.Slides {
		surface, err := r.RenderSlide(s, i, total)
		if err != nil {
			return nil, err
		}
		surfaces = append(surfaces, surface)
	}
	return surfaces, nil
}

// RenderBuffer builds the export document: every surface mounted at once,
// in the given order, on a white page.
func (r *Renderer) RenderBuffer(title string, surfaces []Surface) (string, error) {
	html := make([]template.HTML, len(surfaces))
	for i, s := range surfaces {
		html[i] = s.HTML
	}

	var buf bytes.Buffer
	err := r.buffer.Execute(&buf, struct {
		Title    string
		Style    template.CSS
		Surfaces []template.HTML
	}{title, r.style, html})
	if err != nil {
		return "", fmt.Errorf("%w: export buffer: %v", ErrSlideRender, err)
	}
	return buf.String(), nil
}

// mapAssetError converts internal asset errors to the package sentinels.
func mapAssetError(err error) error {
	switch {
	case errors.Is(err, assets.ErrIncompleteTemplateSet):
		return fmt.Errorf("%w: %v", ErrIncompleteTemplateSet, err)
	case errors.Is(err, assets.ErrTemplateNotFound), errors.Is(err, assets.ErrStyleNotFound):
		return fmt.Errorf("%w: %v", ErrTemplateNotFound, err)
	case errors.Is(err, assets.ErrInvalidAssetName), errors.Is(err, assets.ErrPathTraversal):
		return fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	default:
		return fmt.Errorf("loading slide templates: %w", err)
	}
}

// Compile-time interface check.
var _ AssetLoader = (*assets.AssetResolver)(nil)
