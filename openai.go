package pitchdeck

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// DefaultOpenAIModel is the model used when none is configured.
const DefaultOpenAIModel = openai.GPT4oMini

// OpenAIConfig configures the OpenAI backend.
type OpenAIConfig struct {
	APIKey     string
	Model      string       // empty = DefaultOpenAIModel
	BaseURL    string       // empty = public endpoint; set for compatible gateways
	HTTPClient *http.Client // nil = library default
}

// OpenAIBackend requests a JSON-schema constrained chat completion.
type OpenAIBackend struct {
	client *openai.Client
	model  string
}

// NewOpenAIBackend creates an OpenAI backend.
// Returns ErrMissingAPIKey if no key is configured.
func NewOpenAIBackend(cfg OpenAIConfig) (*OpenAIBackend, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: openai", ErrMissingAPIKey)
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	if cfg.HTTPClient != nil {
		oc.HTTPClient = cfg.HTTPClient
	}

	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIBackend{client: openai.NewClientWithConfig(oc), model: model}, nil
}

// Name implements Backend.
func (o *OpenAIBackend) Name() string { return "openai" }

// Model returns the configured model id.
func (o *OpenAIBackend) Model() string { return o.model }

// GenerateJSON implements Backend.
func (o *OpenAIBackend) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "pitch_deck",
				Schema: openAIDeckSchema(),
			},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// openAIDeckSchema is the same contract as geminiDeckSchema, in JSON Schema.
// Strict mode is off because subtitle and footer are optional.
func openAIDeckSchema() *jsonschema.Definition {
	str := jsonschema.Definition{Type: jsonschema.String}
	return &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"startupName": str,
			"slides": {
				Type: jsonschema.Array,
				Items: &jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"title":    str,
						"subtitle": str,
						"bullets":  {Type: jsonschema.Array, Items: &str},
						"footer":   str,
					},
					Required: []string{"title", "bullets"},
				},
			},
		},
		Required: []string{"startupName", "slides"},
	}
}

// Compile-time interface check.
var _ Backend = (*OpenAIBackend)(nil)
