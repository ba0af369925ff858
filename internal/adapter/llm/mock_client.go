package llm

import (
	"context"
	"fmt"

	"github.com/xiaot623/healthdesk/internal/domain"
)

// MockClient is a Provider that answers without any network call. It is
// selected with AI_PROVIDER=mock or GOGO_MODE=MOCK.
type MockClient struct{}

// NewMockClient creates a new mock provider.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Name returns the provider name.
func (m *MockClient) Name() string {
	return "mock"
}

// Send echoes the last user message.
func (m *MockClient) Send(ctx context.Context, conv domain.Conversation) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(conv) == 0 {
		return "", ErrEmptyConversation
	}

	lastUserMessage := conv.LastUserContent()
	if lastUserMessage == "" {
		return "[MOCK] This is a mock response from the LLM client.", nil
	}

	return fmt.Sprintf("[MOCK] Received your message: %q. This is a mock response.", truncate(lastUserMessage, 100)), nil
}

// truncate truncates a string to the given length.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
