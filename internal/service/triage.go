package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xiaot623/healthdesk/internal/domain"
)

const maxTriageSymptomLength = 500

var recommendations = map[domain.TriageStatus]string{
	domain.TriageStatusEmergency: "Seek immediate emergency medical attention. Call 911.",
	domain.TriageStatusUrgent:    "Seek medical attention within 24 hours.",
	domain.TriageStatusSelfCare:  "Monitor symptoms. Consider over-the-counter remedies or consult a healthcare provider if symptoms persist.",
}

// Triage classifies a symptom description with the keyword policy.
func (s *Service) Triage(ctx context.Context, symptom string) (*domain.TriageResult, error) {
	if strings.TrimSpace(symptom) == "" {
		return nil, fmt.Errorf("%w: symptom is required", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(symptom) > maxTriageSymptomLength {
		return nil, fmt.Errorf("%w: symptom must be at most %d characters", domain.ErrInvalidInput, maxTriageSymptomLength)
	}

	status, err := s.triage.Classify(ctx, symptom)
	if err != nil {
		return nil, fmt.Errorf("failed to classify symptom: %w", err)
	}

	return &domain.TriageResult{
		Status:         status,
		Recommendation: recommendations[status],
	}, nil
}
