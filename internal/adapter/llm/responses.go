package llm

import (
	"context"
	"net/http"
	"strings"

	"github.com/xiaot623/healthdesk/internal/domain"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// ResponsesFallback sends the conversation to the OpenAI Responses API as a
// single text block. It is the fallback of the openai provider.
type ResponsesFallback struct {
	client *jsonClient
	opts   Options
}

// ResponsesRequest is the Responses API request body.
type ResponsesRequest struct {
	Model           string  `json:"model"`
	Input           string  `json:"input"`
	Temperature     float32 `json:"temperature"`
	MaxOutputTokens int     `json:"max_output_tokens,omitempty"`
}

// ResponsesResponse is the subset of the Responses API envelope we read.
type ResponsesResponse struct {
	Output     []ResponsesOutputItem `json:"output"`
	OutputText string                `json:"output_text,omitempty"`
}

// ResponsesOutputItem is one item of the output list. Message items carry
// their text in Content; output_text items carry it in Text.
type ResponsesOutputItem struct {
	Type    string                 `json:"type"`
	Text    string                 `json:"text,omitempty"`
	Content []ResponsesContentPart `json:"content,omitempty"`
}

// ResponsesContentPart is a content part of a message output item.
type ResponsesContentPart struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// NewResponsesFallback creates the Responses API fallback.
func NewResponsesFallback(baseURL, apiKey string, headers http.Header, opts Options) *ResponsesFallback {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	h := headers.Clone()
	if h == nil {
		h = http.Header{}
	}
	if apiKey != "" {
		h.Set("Authorization", "Bearer "+apiKey)
	}
	return &ResponsesFallback{
		client: newJSONClient(baseURL, h, opts.Timeout),
		opts:   opts,
	}
}

// Send posts the flattened conversation and returns the first output text.
func (f *ResponsesFallback) Send(ctx context.Context, conv domain.Conversation) (string, error) {
	if len(conv) == 0 {
		return "", ErrEmptyConversation
	}

	req := ResponsesRequest{
		Model:           f.opts.Model,
		Input:           FlattenConversation(conv),
		Temperature:     f.opts.Temperature,
		MaxOutputTokens: f.opts.MaxTokens,
	}

	var resp ResponsesResponse
	if err := f.client.post(ctx, "/responses", req, &resp); err != nil {
		return "", err
	}
	return resp.FirstText(), nil
}

// FirstText returns the first output text of the envelope, or "".
func (r *ResponsesResponse) FirstText() string {
	for _, item := range r.Output {
		if item.Type == "output_text" && item.Text != "" {
			return item.Text
		}
		for _, part := range item.Content {
			if part.Type == "output_text" && part.Text != "" {
				return part.Text
			}
		}
	}
	return r.OutputText
}

// FlattenConversation renders a conversation as "ROLE: content" blocks
// separated by blank lines.
func FlattenConversation(conv domain.Conversation) string {
	parts := make([]string, 0, len(conv))
	for _, m := range conv {
		parts = append(parts, strings.ToUpper(string(m.Role))+": "+m.Content)
	}
	return strings.Join(parts, "\n\n")
}
