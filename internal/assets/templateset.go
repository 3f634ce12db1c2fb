package assets

import (
	"errors"
	"fmt"
)

// Built-in asset names.
const (
	DeckStyleName = "deck"
	AppStyleName  = "app"

	CoverTemplateName  = "cover"
	SlideTemplateName  = "slide"
	BufferTemplateName = "buffer"
	AppTemplateName    = "app"
)

// TemplateSet holds the templates needed to render a deck.
type TemplateSet struct {
	Cover  string // slide 0
	Slide  string // slides 1..N-1
	Buffer string // export document
	Style  string // deck stylesheet
}

// LoadTemplateSet loads the deck templates and stylesheet through loader.
// A missing piece is reported as ErrIncompleteTemplateSet.
func LoadTemplateSet(loader AssetLoader) (*TemplateSet, error) {
	ts := &TemplateSet{}
	parts := []struct {
		name string
		dst  *string
	}{
		{CoverTemplateName, &ts.Cover},
		{SlideTemplateName, &ts.Slide},
		{BufferTemplateName, &ts.Buffer},
	}
	for _, p := range parts {
		content, err := loader.LoadTemplate(p.name)
		if err != nil {
			if errors.Is(err, ErrTemplateNotFound) {
				return nil, fmt.Errorf("%w: %s.html", ErrIncompleteTemplateSet, p.name)
			}
			return nil, err
		}
		*p.dst = content
	}

	style, err := loader.LoadStyle(DeckStyleName)
	if err != nil {
		if errors.Is(err, ErrStyleNotFound) {
			return nil, fmt.Errorf("%w: %s.css", ErrIncompleteTemplateSet, DeckStyleName)
		}
		return nil, err
	}
	ts.Style = style
	return ts, nil
}
