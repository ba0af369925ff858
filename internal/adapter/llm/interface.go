// Package llm provides the LLM provider abstraction and its implementations.
package llm

import (
	"context"
	"errors"
	"time"

	"github.com/xiaot623/healthdesk/internal/domain"
)

var (
	// ErrNotConfigured is returned when no provider is available.
	ErrNotConfigured = errors.New("llm provider not configured")
	// ErrEmptyConversation is returned when Send is called without messages.
	ErrEmptyConversation = errors.New("empty conversation")
)

// Provider sends a conversation to one LLM backend and returns the first
// textual reply. An empty string means the backend returned no text.
type Provider interface {
	// Name returns the provider name used in logs.
	Name() string

	// Send performs one synchronous request.
	Send(ctx context.Context, conv domain.Conversation) (string, error)
}

// Options are the generation settings shared by every provider.
type Options struct {
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// Ensure implementations satisfy Provider.
var (
	_ Provider = (*OpenAIProvider)(nil)
	_ Provider = (*GeminiProvider)(nil)
	_ Provider = (*YandexProvider)(nil)
	_ Provider = (*MockClient)(nil)
)
