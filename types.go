package pitchdeck

import (
	"fmt"
	"strings"
)

// Deck geometry. Slides are fixed 16:9 surfaces in logical pixels;
// rasterization upscales by RasterScale for print quality.
const (
	SlideCount  = 10
	SlideWidth  = 1280
	SlideHeight = 720
	RasterScale = 2
)

// Field length limits for pitch input.
const (
	MaxStartupNameLength = 100
	MaxFieldLength       = 2000
)

// PitchInput describes a startup. Every field except Team and FundingAsk is required.
type PitchInput struct {
	StartupName          string `json:"startupName" yaml:"startupName" form:"startupName"`
	Problem              string `json:"problem" yaml:"problem" form:"problem"`
	Solution             string `json:"solution" yaml:"solution" form:"solution"`
	TargetMarket         string `json:"targetMarket" yaml:"targetMarket" form:"targetMarket"`
	BusinessModel        string `json:"businessModel" yaml:"businessModel" form:"businessModel"`
	UVP                  string `json:"uvp" yaml:"uvp" form:"uvp"`
	Technology           string `json:"technology" yaml:"technology" form:"technology"`
	CompetitiveAdvantage string `json:"competitiveAdvantage" yaml:"competitiveAdvantage" form:"competitiveAdvantage"`
	Team                 string `json:"team,omitempty" yaml:"team,omitempty" form:"team"`
	FundingAsk           string `json:"fundingAsk,omitempty" yaml:"fundingAsk,omitempty" form:"fundingAsk"`
}

// inputField pairs a field name with its value for validation.
type inputField struct {
	name     string
	value    string
	required bool
	max      int
}

func (in PitchInput) fields() []inputField {
	return []inputField{
		{"startupName", in.StartupName, true, MaxStartupNameLength},
		{"problem", in.Problem, true, MaxFieldLength},
		{"solution", in.Solution, true, MaxFieldLength},
		{"targetMarket", in.TargetMarket, true, MaxFieldLength},
		{"businessModel", in.BusinessModel, true, MaxFieldLength},
		{"uvp", in.UVP, true, MaxFieldLength},
		{"technology", in.Technology, true, MaxFieldLength},
		{"competitiveAdvantage", in.CompetitiveAdvantage, true, MaxFieldLength},
		{"team", in.Team, false, MaxFieldLength},
		{"fundingAsk", in.FundingAsk, false, MaxFieldLength},
	}
}

// Validate reports the first required field that is blank, or the first
// field that exceeds its length limit.
func (in PitchInput) Validate() error {
	for _, f := range in.fields() {
		if f.required && strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
		if len(f.value) > f.max {
			return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, f.name, len(f.value), f.max)
		}
	}
	return nil
}

// SlideContent is the copy for one slide. Subtitle is only rendered on the
// cover; Footer is carried through but never rendered.
type SlideContent struct {
	Title    string   `json:"title" yaml:"title"`
	Subtitle string   `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Bullets  []string `json:"bullets" yaml:"bullets"`
	Footer   string   `json:"footer,omitempty" yaml:"footer,omitempty"`
}

// GeneratedDeck is the unit produced by one generation call.
// Slides[0] is always the cover. A deck is never modified after creation.
type GeneratedDeck struct {
	StartupName string         `json:"startupName" yaml:"startupName"`
	Slides      []SlideContent `json:"slides" yaml:"slides"`
}

// Len returns the number of slides.
func (d *GeneratedDeck) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Slides)
}

// Cover returns the first slide. ok is false for an empty deck.
func (d *GeneratedDeck) Cover() (slide SlideContent, ok bool) {
	if d.Len() == 0 {
		return SlideContent{}, false
	}
	return d.Slides[0], true
}

// Validate checks the structural requirements shared by every consumer:
// a deck must carry at least one slide and every slide needs a title.
// Decks loaded from files or received over the API go through it before export.
func (d *GeneratedDeck) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: nil deck", ErrInvalidDeck)
	}
	if len(d.Slides) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDeck, ErrNoSlides)
	}
	for i, s := range d.Slides {
		if strings.TrimSpace(s.Title) == "" {
			return fmt.Errorf("%w: slide %d has no title", ErrInvalidDeck, i+1)
		}
	}
	return nil
}
