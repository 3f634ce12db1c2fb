package pitchdeck

import (
	"strings"
	"text/template"
)

// notSpecified stands in for optional fields left blank.
const notSpecified = "Not specified"

// outlineSlide is one entry of the fixed ten-slide outline.
type outlineSlide struct {
	Title    string
	Guidance string
}

// deckOutline is the slide contract requested from the model, in order.
var deckOutline = [SlideCount]outlineSlide{
	{"Cover", "Include project name and a punchy tagline"},
	{"The Problem", "Deep dive into the pain points"},
	{"The Solution", "How we solve it clearly"},
	{"Market Opportunity", "Size, TAM/SAM/SOM, trends"},
	{"The Product", "Features and user experience"},
	{"Business Model", "Monetization and pricing"},
	{"Technology & Innovation", "Technical stack or unique IP"},
	{"Competitive Advantage", "Why we win"},
	{"Roadmap & Traction", "Milestones: past, present, future"},
	{"The Ask & Call to Action", "Support needed and contact"},
}

// OutlineTitles returns the canonical slide titles in deck order.
func OutlineTitles() []string {
	titles := make([]string, len(deckOutline))
	for i, s := range deckOutline {
		titles[i] = s.Title
	}
	return titles
}

const promptText = `Generate a professional {{.Count}}-slide pitch deck for a startup called "{{.In.StartupName}}".

Details:
- Problem: {{.In.Problem}}
- Solution: {{.In.Solution}}
- Market: {{.In.TargetMarket}}
- Business Model: {{.In.BusinessModel}}
- UVP: {{.In.UVP}}
- Technology: {{.In.Technology}}
- Competitive Advantage: {{.In.CompetitiveAdvantage}}
- Team: {{or .In.Team .Missing}}
- Funding Ask: {{or .In.FundingAsk .Missing}}

Generate exactly {{.Count}} slides with the following titles:
{{range $i, $s := .Outline}}{{inc $i}}. {{$s.Title}} ({{$s.Guidance}})
{{end}}
The content should be professional, investor-ready, and concise (3-5 bullet points per slide).`

var promptTemplate = template.Must(template.New("prompt").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(promptText))

// BuildPrompt interpolates the pitch input into the generation prompt.
// Blank optional fields read "Not specified".
func BuildPrompt(in PitchInput) string {
	var sb strings.Builder
	// Execute cannot fail: the template is static and the data is a plain struct.
	_ = promptTemplate.Execute(&sb, struct {
		In      PitchInput
		Count   int
		Outline [SlideCount]outlineSlide
		Missing string
	}{
		In:      trimInput(in),
		Count:   SlideCount,
		Outline: deckOutline,
		Missing: notSpecified,
	})
	return sb.String()
}

// trimInput strips surrounding whitespace so blank optional fields
// fall back to the placeholder.
func trimInput(in PitchInput) PitchInput {
	return PitchInput{
		StartupName:          strings.TrimSpace(in.StartupName),
		Problem:              strings.TrimSpace(in.Problem),
		Solution:             strings.TrimSpace(in.Solution),
		TargetMarket:         strings.TrimSpace(in.TargetMarket),
		BusinessModel:        strings.TrimSpace(in.BusinessModel),
		UVP:                  strings.TrimSpace(in.UVP),
		Technology:           strings.TrimSpace(in.Technology),
		CompetitiveAdvantage: strings.TrimSpace(in.CompetitiveAdvantage),
		Team:                 strings.TrimSpace(in.Team),
		FundingAsk:           strings.TrimSpace(in.FundingAsk),
	}
}
