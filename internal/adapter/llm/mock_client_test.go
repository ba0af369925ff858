package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaot623/healthdesk/internal/config"
	"github.com/xiaot623/healthdesk/internal/domain"
)

func TestMockClientEchoesLastUserMessage(t *testing.T) {
	m := NewMockClient()
	text, err := m.Send(context.Background(), domain.Conversation{
		{Role: domain.RoleSystem, Content: "s"},
		{Role: domain.RoleUser, Content: "first"},
		{Role: domain.RoleAssistant, Content: "reply"},
		{Role: domain.RoleUser, Content: "headache"},
	})
	require.NoError(t, err)
	assert.Equal(t, `[MOCK] Received your message: "headache". This is a mock response.`, text)
}

func TestMockClientWithoutUserMessage(t *testing.T) {
	text, err := NewMockClient().Send(context.Background(), domain.Conversation{{Role: domain.RoleSystem, Content: "s"}})
	require.NoError(t, err)
	assert.Equal(t, "[MOCK] This is a mock response from the LLM client.", text)

	_, err = NewMockClient().Send(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyConversation)
}

func TestMockClientCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMockClient().Send(ctx, testConversation)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abc", 2))
	assert.Equal(t, strings.Repeat("é", 3)+"...", truncate(strings.Repeat("é", 10), 3))
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Config
		wantName string
		wantNil  bool
		wantErr  bool
	}{
		{name: "none", cfg: config.Config{AIProvider: config.ProviderNone}, wantNil: true},
		{name: "mock", cfg: config.Config{AIProvider: config.ProviderMock}, wantName: "mock"},
		{name: "openai", cfg: config.Config{AIProvider: config.ProviderOpenAI, OpenAIAPIKey: "k"}, wantName: "openai"},
		{name: "azure", cfg: config.Config{AIProvider: config.ProviderAzure, OpenAIAPIKey: "k", AzureEndpoint: "https://x.openai.azure.com", AzureDeployment: "d"}, wantName: "azure"},
		{name: "openrouter", cfg: config.Config{AIProvider: config.ProviderOpenRouter, OpenRouterAPIKey: "k"}, wantName: "openrouter"},
		{name: "gemini", cfg: config.Config{AIProvider: config.ProviderGemini, GeminiAPIKey: "k"}, wantName: "gemini"},
		{name: "unknown", cfg: config.Config{AIProvider: "claude"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, p)
				return
			}
			require.NotNil(t, p)
			assert.Equal(t, tt.wantName, p.Name())
		})
	}
}

func TestNewProviderDefaultsModel(t *testing.T) {
	p, err := NewProvider(&config.Config{AIProvider: config.ProviderOpenAI, OpenAIAPIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, DefaultOpenAIModel, p.(*OpenAIProvider).opts.Model)

	p, err = NewProvider(&config.Config{AIProvider: config.ProviderGemini, GeminiAPIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "gemini-1.5-flash", p.(*GeminiProvider).opts.Model)
}
