package pitchdeck

import (
	"strings"
	"testing"
)

func TestInlineMarkup_Render(t *testing.T) {
	t.Parallel()

	m := newInlineMarkup()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "Half the water", "Half the water"},
		{"bold", "**TAM** of 4B", "<strong>TAM</strong> of 4B"},
		{"emphasis", "*fast* setup", "<em>fast</em> setup"},
		{"code span", "runs on `edge`", "runs on <code>edge</code>"},
		{"strikethrough", "~~old~~ new", "<del>old</del> new"},
		{"escapes ampersand", "R&D first", "R&amp;D first"},
		{"numbered text is not a list", "1. Launch in Q3", "1. Launch in Q3"},
		{"heading marker is text", "# hashtag", "# hashtag"},
		{"strips bullet glyph", "• Sensors everywhere", "Sensors everywhere"},
		{"strips dash glyph", "- Sensors everywhere", "Sensors everywhere"},
		{"blank", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := m.Render(tt.in)
			if err != nil {
				t.Fatalf("Render(%q) error = %v", tt.in, err)
			}
			if string(got) != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestInlineMarkup_RawHTMLOmitted(t *testing.T) {
	t.Parallel()

	got, err := newInlineMarkup().Render(`<script>alert(1)</script> <img src=x onerror=y>`)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, bad := range []string{"<script", "<img"} {
		if strings.Contains(string(got), bad) {
			t.Errorf("Render() = %q, should not contain %q", got, bad)
		}
	}
}
