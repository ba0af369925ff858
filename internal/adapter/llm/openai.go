package llm

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/xiaot623/healthdesk/internal/domain"
)

// Fallback is a secondary request strategy tried once after the primary
// call of a provider fails.
type Fallback interface {
	Send(ctx context.Context, conv domain.Conversation) (string, error)
}

// OpenAIProvider talks to an OpenAI-compatible Chat Completions endpoint.
// It backs the openai, azure and openrouter providers.
type OpenAIProvider struct {
	name     string
	client   *openai.Client
	opts     Options
	fallback Fallback
}

// OpenAIConfig holds the OpenAI connection settings.
type OpenAIConfig struct {
	APIKey    string
	BaseURL   string
	OrgID     string
	ProjectID string
}

// NewOpenAI creates the OpenAI provider. Failed Chat Completions calls are
// retried once through the Responses API.
func NewOpenAI(cfg OpenAIConfig, opts Options) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}
	config.OrgID = cfg.OrgID

	h := http.Header{}
	if cfg.ProjectID != "" {
		h.Set("OpenAI-Project", cfg.ProjectID)
	}
	config.HTTPClient = newHTTPClient(opts.Timeout, h)

	// go-openai sets the organization header itself; the fallback client
	// needs it explicitly.
	fallbackHeaders := h.Clone()
	if cfg.OrgID != "" {
		fallbackHeaders.Set("OpenAI-Organization", cfg.OrgID)
	}

	return &OpenAIProvider{
		name:     "openai",
		client:   openai.NewClientWithConfig(config),
		opts:     opts,
		fallback: NewResponsesFallback(config.BaseURL, cfg.APIKey, fallbackHeaders, opts),
	}
}

// AzureConfig holds the Azure OpenAI connection settings.
type AzureConfig struct {
	APIKey     string
	Endpoint   string
	APIVersion string
	Deployment string
}

// NewAzure creates the Azure OpenAI provider. The deployment name is sent as
// the model.
func NewAzure(cfg AzureConfig, opts Options) *OpenAIProvider {
	config := openai.DefaultAzureConfig(cfg.APIKey, cfg.Endpoint)
	if cfg.APIVersion != "" {
		config.APIVersion = cfg.APIVersion
	}
	config.AzureModelMapperFunc = func(string) string {
		return cfg.Deployment
	}
	config.HTTPClient = newHTTPClient(opts.Timeout, nil)

	opts.Model = cfg.Deployment
	return &OpenAIProvider{
		name:   "azure",
		client: openai.NewClientWithConfig(config),
		opts:   opts,
	}
}

// OpenRouterConfig holds the OpenRouter connection settings.
type OpenRouterConfig struct {
	APIKey  string
	BaseURL string
	SiteURL string
	AppName string
}

// NewOpenRouter creates the OpenRouter provider, which speaks the OpenAI
// Chat Completions protocol.
func NewOpenRouter(cfg OpenRouterConfig, opts Options) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	h := http.Header{}
	if cfg.SiteURL != "" {
		h.Set("HTTP-Referer", cfg.SiteURL)
	}
	if cfg.AppName != "" {
		h.Set("X-Title", cfg.AppName)
	}
	config.HTTPClient = newHTTPClient(opts.Timeout, h)

	return &OpenAIProvider{
		name:   "openrouter",
		client: openai.NewClientWithConfig(config),
		opts:   opts,
	}
}

// WithFallback replaces the fallback strategy. A nil fallback disables it.
func (p *OpenAIProvider) WithFallback(f Fallback) *OpenAIProvider {
	p.fallback = f
	return p
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return p.name
}

// Send calls Chat Completions, then the fallback strategy once if that fails.
func (p *OpenAIProvider) Send(ctx context.Context, conv domain.Conversation) (string, error) {
	if len(conv) == 0 {
		return "", ErrEmptyConversation
	}

	text, err := p.complete(ctx, conv)
	if err == nil {
		return text, nil
	}
	if p.fallback == nil {
		return "", err
	}

	log.Printf("WARN: %s chat completions failed, trying fallback: %v", p.name, err)
	text, fallbackErr := p.fallback.Send(ctx, conv)
	if fallbackErr != nil {
		return "", fmt.Errorf("%s fallback failed: %w (primary: %v)", p.name, fallbackErr, err)
	}
	return text, nil
}

func (p *OpenAIProvider) complete(ctx context.Context, conv domain.Conversation) (string, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(conv))
	for _, m := range conv {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: string(m.Role), Content: m.Content})
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.opts.Model,
		Messages:    msgs,
		Temperature: p.opts.Temperature,
		MaxTokens:   p.opts.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
