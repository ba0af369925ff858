package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaot623/healthdesk/internal/domain"
)

func TestClassify(t *testing.T) {
	ctx := context.Background()
	engine, err := NewEngine(ctx, DefaultPolicy)
	require.NoError(t, err)

	tests := []struct {
		symptom string
		want    domain.TriageStatus
	}{
		{"Difficulty BREATHING since morning", domain.TriageStatusEmergency},
		{"  chest pain  ", domain.TriageStatusEmergency},
		{"possible stroke", domain.TriageStatusEmergency},
		{"high fever", domain.TriageStatusUrgent},
		{"vomiting and diarrhea", domain.TriageStatusUrgent},
		{"fever with severe bleeding", domain.TriageStatusEmergency},
		{"mild cough", domain.TriageStatusSelfCare},
		{"", domain.TriageStatusSelfCare},
	}

	for _, tt := range tests {
		t.Run(tt.symptom, func(t *testing.T) {
			got, err := engine.Classify(ctx, tt.symptom)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewEngineInvalidPolicy(t *testing.T) {
	_, err := NewEngine(context.Background(), "package triage\nstatus = ")
	assert.Error(t, err)
}

func TestClassifyUnknownStatus(t *testing.T) {
	ctx := context.Background()
	engine, err := NewEngine(ctx, "package triage\n\ndefault status = \"MAYBE\"\n")
	require.NoError(t, err)

	_, err = engine.Classify(ctx, "cough")
	assert.Error(t, err)
}
