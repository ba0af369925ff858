package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("AI_PROVIDER", "")
	t.Setenv(EnvGogoMode, "")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.HTTPPort)
	assert.Equal(t, ProviderNone, cfg.AIProvider)
	assert.Equal(t, "English", cfg.AIDefaultLanguage)
	assert.Equal(t, 60*time.Second, cfg.AITimeout)
	assert.Equal(t, 600, cfg.AIMaxTokens)
	assert.Equal(t, "2024-05-01-preview", cfg.AzureAPIVersion)
	assert.False(t, cfg.IsPostgres())
}

func TestParseProviderCaseInsensitive(t *testing.T) {
	t.Setenv(EnvGogoMode, "")
	t.Setenv("AI_PROVIDER", " OpenRouter ")
	t.Setenv("OPENROUTER_API_KEY", "or-key")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenRouter, cfg.AIProvider)
}

func TestParseMissingCredentialsIsFatal(t *testing.T) {
	t.Setenv(EnvGogoMode, "")
	t.Setenv("AI_PROVIDER", "azure")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("AZURE_OPENAI_ENDPOINT", "")
	t.Setenv("AZURE_OPENAI_DEPLOYMENT", "")

	_, err := Parse()
	require.Error(t, err)

	var verr ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, err.Error(), "AZURE_OPENAI_ENDPOINT")
	assert.Contains(t, err.Error(), "AZURE_OPENAI_DEPLOYMENT")
}

func TestParseUnknownProvider(t *testing.T) {
	t.Setenv(EnvGogoMode, "")
	t.Setenv("AI_PROVIDER", "watson")

	_, err := Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported provider")
}

func TestParseGeminiLowercaseKey(t *testing.T) {
	t.Setenv(EnvGogoMode, "")
	t.Setenv("AI_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("gemini_API_KEY", "g-key")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "g-key", cfg.GeminiAPIKey)
}

func TestParseMockMode(t *testing.T) {
	t.Setenv("AI_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv(EnvGogoMode, ModeMock)

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, ProviderMock, cfg.AIProvider)
}

func TestValidateRanges(t *testing.T) {
	cfg := &Config{
		HTTPPort:      0,
		DatabaseURL:   "postgres://localhost/db",
		AIProvider:    ProviderNone,
		AITimeout:     0,
		AITemperature: 3,
		AIMaxTokens:   0,
		AIRateLimit:   0,
	}
	err := cfg.Validate()
	require.Error(t, err)
	for _, field := range []string{"HTTP_PORT", "AI_TIMEOUT", "AI_TEMPERATURE", "AI_MAX_TOKENS", "AI_RATE_LIMIT"} {
		assert.Contains(t, err.Error(), field)
	}
	assert.True(t, cfg.IsPostgres())
}
