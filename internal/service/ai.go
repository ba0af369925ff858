package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xiaot623/healthdesk/internal/domain"
)

const (
	maxAdviceSymptomLength = 1000
	maxAge                 = 120
)

// TriageAdvice asks the configured LLM for triage guidance. Provider failures
// are turned into a static reply by the dispatcher, so only input errors are
// returned.
func (s *Service) TriageAdvice(ctx context.Context, req domain.TriageAdviceRequest) (*domain.TriageAdviceResponse, error) {
	if strings.TrimSpace(req.Symptom) == "" {
		return nil, fmt.Errorf("%w: symptom is required", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.Symptom) > maxAdviceSymptomLength {
		return nil, fmt.Errorf("%w: symptom must be at most %d characters", domain.ErrInvalidInput, maxAdviceSymptomLength)
	}
	if req.Age != nil && (*req.Age < 0 || *req.Age > maxAge) {
		return nil, fmt.Errorf("%w: age must be between 0 and %d", domain.ErrInvalidInput, maxAge)
	}

	advice := s.dispatcher.Chat(ctx, s.prompts.TriageAdvice(req))
	return &domain.TriageAdviceResponse{Advice: advice}, nil
}

// Chat continues a conversation with the configured LLM. An empty history is
// allowed but it must be present.
func (s *Service) Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
	if req.History == nil {
		return nil, fmt.Errorf("%w: history is required", domain.ErrInvalidInput)
	}
	for i, m := range req.History {
		if m.Content == "" {
			return nil, fmt.Errorf("%w: history[%d].content is required", domain.ErrInvalidInput, i)
		}
	}

	reply := s.dispatcher.Chat(ctx, s.prompts.Chat(req.History, req.Language))
	return &domain.ChatResponse{Reply: reply}, nil
}
