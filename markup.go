package pitchdeck

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// inlineMarkup renders bullet copy with inline Markdown only: emphasis,
// strong, code spans, links and strikethrough. Block constructs are not
// parsed, so "1. Launch" stays text instead of becoming a list.
type inlineMarkup struct {
	md goldmark.Markdown
}

func newInlineMarkup() *inlineMarkup {
	p := parser.NewParser(
		parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 100)),
		parser.WithInlineParsers(parser.DefaultInlineParsers()...),
		parser.WithParagraphTransformers(parser.DefaultParagraphTransformers()...),
	)
	return &inlineMarkup{
		md: goldmark.New(
			goldmark.WithParser(p),
			goldmark.WithExtensions(extension.Strikethrough),
			goldmark.WithRendererOptions(
				html.WithXHTML(),
				// Raw HTML is omitted: WithUnsafe is not set.
			),
		),
	}
}

// bulletGlyphs are leading markers models sometimes prepend to bullets.
// The template draws its own marker.
var bulletGlyphs = []string{"• ", "- ", "– ", "· "}

// Render converts one bullet to safe HTML without the wrapping paragraph.
func (m *inlineMarkup) Render(text string) (template.HTML, error) {
	text = strings.TrimSpace(text)
	for _, g := range bulletGlyphs {
		if strings.HasPrefix(text, g) {
			text = strings.TrimSpace(strings.TrimPrefix(text, g))
			break
		}
	}
	if text == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := m.md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("rendering bullet markup: %w", err)
	}

	out := strings.TrimSpace(buf.String())
	out = strings.TrimPrefix(out, "<p>")
	out = strings.TrimSuffix(out, "</p>")
	out = strings.ReplaceAll(out, "</p>\n<p>", "<br />")
	// #nosec G203 -- goldmark output with raw HTML disabled
	return template.HTML(out), nil
}
