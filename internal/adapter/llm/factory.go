package llm

import (
	"fmt"
	"log"

	"github.com/xiaot623/healthdesk/internal/config"
)

// Default models used when AI_MODEL is empty.
const (
	DefaultOpenAIModel     = "gpt-4o-mini"
	DefaultOpenRouterModel = "openai/gpt-4o-mini"
)

// NewProvider creates the provider selected by cfg.AIProvider. It returns a
// nil Provider for ProviderNone. Credentials are validated by config; errors
// here come from client construction and are fatal at startup.
func NewProvider(cfg *config.Config) (Provider, error) {
	opts := Options{
		Model:       cfg.AIModel,
		Temperature: cfg.AITemperature,
		MaxTokens:   cfg.AIMaxTokens,
		Timeout:     cfg.AITimeout,
	}

	switch cfg.AIProvider {
	case config.ProviderNone:
		return nil, nil
	case config.ProviderMock:
		log.Println("Mock mode enabled, using mock LLM provider")
		return NewMockClient(), nil
	case config.ProviderOpenAI:
		if opts.Model == "" {
			opts.Model = DefaultOpenAIModel
		}
		return NewOpenAI(OpenAIConfig{
			APIKey:    cfg.OpenAIAPIKey,
			BaseURL:   cfg.OpenAIBaseURL,
			OrgID:     cfg.OpenAIOrgID,
			ProjectID: cfg.OpenAIProjectID,
		}, opts), nil
	case config.ProviderAzure:
		return NewAzure(AzureConfig{
			APIKey:     cfg.OpenAIAPIKey,
			Endpoint:   cfg.AzureEndpoint,
			APIVersion: cfg.AzureAPIVersion,
			Deployment: cfg.AzureDeployment,
		}, opts), nil
	case config.ProviderOpenRouter:
		if opts.Model == "" {
			opts.Model = DefaultOpenRouterModel
		}
		return NewOpenRouter(OpenRouterConfig{
			APIKey:  cfg.OpenRouterAPIKey,
			BaseURL: cfg.OpenRouterBaseURL,
			SiteURL: cfg.OpenRouterSiteURL,
			AppName: cfg.OpenRouterAppName,
		}, opts), nil
	case config.ProviderGemini:
		return NewGemini(GeminiConfig{
			APIKey:  cfg.GeminiAPIKey,
			BaseURL: cfg.GeminiBaseURL,
		}, opts), nil
	case config.ProviderYandex:
		p, err := NewYandex(cfg.YandexOAuthToken, cfg.YandexFolderID, opts)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.AIProvider)
	}
}
