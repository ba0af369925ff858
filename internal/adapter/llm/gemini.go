package llm

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/xiaot623/healthdesk/internal/domain"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel   = "gemini-1.5-flash"
)

// GeminiProvider calls the Gemini generateContent REST endpoint.
type GeminiProvider struct {
	client *jsonClient
	opts   Options
}

// GeminiConfig holds the Gemini connection settings.
type GeminiConfig struct {
	APIKey  string
	BaseURL string
}

// GeminiRequest is the generateContent request body.
type GeminiRequest struct {
	SystemInstruction *GeminiContent         `json:"systemInstruction,omitempty"`
	Contents          []GeminiContent        `json:"contents"`
	GenerationConfig  GeminiGenerationConfig `json:"generationConfig"`
}

// GeminiContent is one turn of a Gemini conversation.
type GeminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []GeminiPart `json:"parts"`
}

// GeminiPart is a text part of a turn.
type GeminiPart struct {
	Text string `json:"text"`
}

// GeminiGenerationConfig holds sampling settings.
type GeminiGenerationConfig struct {
	Temperature     float32 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

// GeminiResponse is the subset of the generateContent envelope we read.
type GeminiResponse struct {
	Candidates []struct {
		Content GeminiContent `json:"content"`
	} `json:"candidates"`
}

// NewGemini creates the Gemini provider.
func NewGemini(cfg GeminiConfig, opts Options) *GeminiProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	if opts.Model == "" {
		opts.Model = defaultGeminiModel
	}
	h := http.Header{}
	h.Set("x-goog-api-key", cfg.APIKey)
	return &GeminiProvider{
		client: newJSONClient(baseURL, h, opts.Timeout),
		opts:   opts,
	}
}

// Name returns the provider name.
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Send calls generateContent and returns the text of the first candidate.
func (p *GeminiProvider) Send(ctx context.Context, conv domain.Conversation) (string, error) {
	if len(conv) == 0 {
		return "", ErrEmptyConversation
	}

	var resp GeminiResponse
	path := "/models/" + url.PathEscape(p.opts.Model) + ":generateContent"
	if err := p.client.post(ctx, path, p.buildRequest(conv), &resp); err != nil {
		return "", err
	}
	return resp.FirstText(), nil
}

// buildRequest moves system messages into the system instruction and maps
// assistant turns to the "model" role.
func (p *GeminiProvider) buildRequest(conv domain.Conversation) GeminiRequest {
	req := GeminiRequest{
		GenerationConfig: GeminiGenerationConfig{
			Temperature:     p.opts.Temperature,
			MaxOutputTokens: p.opts.MaxTokens,
		},
	}

	var system []GeminiPart
	for _, m := range conv {
		switch m.Role {
		case domain.RoleSystem:
			system = append(system, GeminiPart{Text: m.Content})
		case domain.RoleAssistant:
			req.Contents = append(req.Contents, GeminiContent{Role: "model", Parts: []GeminiPart{{Text: m.Content}}})
		default:
			req.Contents = append(req.Contents, GeminiContent{Role: "user", Parts: []GeminiPart{{Text: m.Content}}})
		}
	}
	if len(system) > 0 {
		req.SystemInstruction = &GeminiContent{Parts: system}
	}
	return req
}

// FirstText joins the text parts of the first candidate, or returns "".
func (r *GeminiResponse) FirstText() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, part := range r.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String()
}
