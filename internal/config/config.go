// Package config provides configuration for the health desk server.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Provider names an LLM backend.
type Provider string

const (
	ProviderNone       Provider = "none"
	ProviderOpenAI     Provider = "openai"
	ProviderAzure      Provider = "azure"
	ProviderOpenRouter Provider = "openrouter"
	ProviderGemini     Provider = "gemini"
	ProviderYandex     Provider = "yandex"
	ProviderMock       Provider = "mock"
)

// EnvGogoMode forces the mock provider when set to ModeMock.
const (
	EnvGogoMode = "GOGO_MODE"
	ModeMock    = "MOCK"
)

// Config holds the server configuration. It is built once at startup and
// never mutated afterwards.
type Config struct {
	// Server settings
	HTTPPort int `env:"HTTP_PORT" envDefault:"8000"`

	// Database
	DatabaseURL string `env:"DATABASE_URL" envDefault:"file:services.db?cache=shared&mode=rwc"`
	SeedFile    string `env:"SEED_FILE"`

	// AI settings
	AIProvider        Provider      `env:"AI_PROVIDER" envDefault:"none"`
	AIModel           string        `env:"AI_MODEL"`
	AIDefaultLanguage string        `env:"AI_DEFAULT_LANGUAGE" envDefault:"English"`
	AITimeout         time.Duration `env:"AI_TIMEOUT" envDefault:"60s"`
	AITemperature     float32       `env:"AI_TEMPERATURE" envDefault:"0.2"`
	AIMaxTokens       int           `env:"AI_MAX_TOKENS" envDefault:"600"`
	AIRateLimit       float64       `env:"AI_RATE_LIMIT" envDefault:"5"`

	// OpenAI (also used as the Azure key)
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	OpenAIOrgID     string `env:"OPENAI_ORG_ID"`
	OpenAIProjectID string `env:"OPENAI_PROJECT_ID"`
	OpenAIBaseURL   string `env:"OPENAI_BASE_URL"`

	// Azure OpenAI
	AzureEndpoint   string `env:"AZURE_OPENAI_ENDPOINT"`
	AzureAPIVersion string `env:"AZURE_OPENAI_API_VERSION" envDefault:"2024-05-01-preview"`
	AzureDeployment string `env:"AZURE_OPENAI_DEPLOYMENT"`

	// OpenRouter
	OpenRouterAPIKey  string `env:"OPENROUTER_API_KEY"`
	OpenRouterBaseURL string `env:"OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	OpenRouterSiteURL string `env:"OPENROUTER_SITE_URL" envDefault:"http://localhost"`
	OpenRouterAppName string `env:"OPENROUTER_APP_NAME" envDefault:"BMS Health Assistant"`

	// Gemini
	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`

	// Yandex
	YandexOAuthToken string `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string `env:"YANDEX_FOLDER_ID"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads a .env file when present, then parses and validates the
// environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}
	return Parse()
}

// Parse builds a Config from the process environment without reading .env.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.AIProvider = Provider(strings.ToLower(strings.TrimSpace(string(cfg.AIProvider))))
	if cfg.AIProvider == "" {
		cfg.AIProvider = ProviderNone
	}
	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = os.Getenv("gemini_API_KEY")
	}
	if os.Getenv(EnvGogoMode) == ModeMock {
		cfg.AIProvider = ProviderMock
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsPostgres reports whether DatabaseURL points at PostgreSQL.
func (c *Config) IsPostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://") || strings.HasPrefix(c.DatabaseURL, "postgresql://")
}

// ValidationError describes one invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks value ranges and the credentials of the selected provider.
func (c *Config) Validate() error {
	var errs []error
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		add("HTTP_PORT", "must be between 1 and 65535")
	}
	if c.DatabaseURL == "" {
		add("DATABASE_URL", "is required")
	}
	if c.AITimeout <= 0 {
		add("AI_TIMEOUT", "must be positive")
	}
	if c.AITemperature < 0 || c.AITemperature > 2 {
		add("AI_TEMPERATURE", "must be between 0 and 2")
	}
	if c.AIMaxTokens < 1 {
		add("AI_MAX_TOKENS", "must be positive")
	}
	if c.AIRateLimit <= 0 {
		add("AI_RATE_LIMIT", "must be positive")
	}

	switch c.AIProvider {
	case ProviderNone, ProviderMock:
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			add("OPENAI_API_KEY", "is required for the openai provider")
		}
	case ProviderAzure:
		if c.AzureEndpoint == "" {
			add("AZURE_OPENAI_ENDPOINT", "is required for the azure provider")
		}
		if c.OpenAIAPIKey == "" {
			add("OPENAI_API_KEY", "is required for the azure provider")
		}
		if c.AzureDeployment == "" {
			add("AZURE_OPENAI_DEPLOYMENT", "is required for the azure provider")
		}
	case ProviderOpenRouter:
		if c.OpenRouterAPIKey == "" {
			add("OPENROUTER_API_KEY", "is required for the openrouter provider")
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			add("GEMINI_API_KEY", "is required for the gemini provider")
		}
	case ProviderYandex:
		if c.YandexOAuthToken == "" {
			add("YANDEX_OAUTH_TOKEN", "is required for the yandex provider")
		}
		if c.YandexFolderID == "" {
			add("YANDEX_FOLDER_ID", "is required for the yandex provider")
		}
	default:
		add("AI_PROVIDER", fmt.Sprintf("unsupported provider %q", c.AIProvider))
	}

	return errors.Join(errs...)
}
