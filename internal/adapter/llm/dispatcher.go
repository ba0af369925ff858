package llm

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/xiaot623/healthdesk/internal/domain"
)

// NotConfiguredMessage is returned to callers when no provider is configured.
const NotConfiguredMessage = "AI is not configured on this server. Please set OPENAI_API_KEY and AI_PROVIDER in the environment. " +
	"In the meantime, use the rule-based /triage endpoint for basic guidance."

// UnavailableMessage is returned to callers when the provider call fails.
const UnavailableMessage = "Sorry, I couldn't process that request right now. Please try again later."

// Dispatcher sends conversations to the configured provider and always
// answers with text: provider failures are logged and replaced by a static
// message.
// Each provider bounds its own calls with Options.Timeout, so a fallback
// attempt gets a full timeout of its own.
type Dispatcher struct {
	provider Provider
}

// NewDispatcher creates a dispatcher. A nil provider means AI is not
// configured.
func NewDispatcher(provider Provider) *Dispatcher {
	return &Dispatcher{
		provider: provider,
	}
}

// Configured reports whether a provider is available.
func (d *Dispatcher) Configured() bool {
	return d.provider != nil
}

// Chat sends conv and returns the reply text. It never fails.
func (d *Dispatcher) Chat(ctx context.Context, conv domain.Conversation) (reply string) {
	if d.provider == nil {
		log.Printf("WARN: AI not configured, returning static reply")
		return NotConfiguredMessage
	}

	requestID := "ai_" + uuid.New().String()[:8]
	startTime := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: %s provider=%s panic: %v", requestID, d.provider.Name(), r)
			reply = UnavailableMessage
		}
	}()

	text, err := d.provider.Send(ctx, conv.Normalized())
	latencyMs := time.Since(startTime).Milliseconds()
	if errors.Is(err, ErrNotConfigured) {
		log.Printf("WARN: %s provider=%s not configured: %v", requestID, d.provider.Name(), err)
		return NotConfiguredMessage
	}
	if err != nil {
		log.Printf("ERROR: %s provider=%s latency_ms=%d call failed: %v", requestID, d.provider.Name(), latencyMs, err)
		return UnavailableMessage
	}

	log.Printf("%s provider=%s latency_ms=%d messages=%d", requestID, d.provider.Name(), latencyMs, len(conv))
	return text
}
