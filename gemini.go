package pitchdeck

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// DefaultGeminiModel is the model used when none is configured.
const DefaultGeminiModel = "gemini-3-flash-preview"

// GeminiConfig configures the Gemini backend.
type GeminiConfig struct {
	APIKey     string
	Model      string       // empty = DefaultGeminiModel
	BaseURL    string       // empty = public endpoint
	HTTPClient *http.Client // nil = library default
}

// GeminiBackend requests structured JSON from the Gemini API.
type GeminiBackend struct {
	client *genai.Client
	model  string
}

// NewGeminiBackend creates a Gemini backend.
// Returns ErrMissingAPIKey if no key is configured.
func NewGeminiBackend(ctx context.Context, cfg GeminiConfig) (*GeminiBackend, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: gemini", ErrMissingAPIKey)
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiBackend{client: client, model: model}, nil
}

// Name implements Backend.
func (g *GeminiBackend) Name() string { return "gemini" }

// Model returns the configured model id.
func (g *GeminiBackend) Model() string { return g.model }

// GenerateJSON implements Backend.
func (g *GeminiBackend) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   geminiDeckSchema(),
	})
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// geminiDeckSchema describes the deck shape: required startupName and
// slides, and per slide required title and bullets.
func geminiDeckSchema() *genai.Schema {
	str := &genai.Schema{Type: genai.TypeString}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"startupName": str,
			"slides": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title":    str,
						"subtitle": str,
						"bullets":  {Type: genai.TypeArray, Items: str},
						"footer":   str,
					},
					Required:         []string{"title", "bullets"},
					PropertyOrdering: []string{"title", "subtitle", "bullets", "footer"},
				},
			},
		},
		Required:         []string{"startupName", "slides"},
		PropertyOrdering: []string{"startupName", "slides"},
	}
}

// Compile-time interface check.
var _ Backend = (*GeminiBackend)(nil)
