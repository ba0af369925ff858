package policy

import (
	"context"
	"fmt"
	"strings"

	"github.com/open-policy-agent/opa/rego"

	"github.com/xiaot623/healthdesk/internal/domain"
)

// Engine is the OPA triage rule engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new triage engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.triage.status"),
		rego.Module("triage.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Classify evaluates the triage rules for a symptom description. The symptom
// is lower-cased and trimmed before evaluation.
func (e *Engine) Classify(ctx context.Context, symptom string) (domain.TriageStatus, error) {
	input := map[string]interface{}{
		"symptom": strings.ToLower(strings.TrimSpace(symptom)),
	}

	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	// The policy declares a default, so an empty result set means the
	// module was replaced by one without it.
	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return domain.TriageStatusSelfCare, nil
	}

	s, ok := results[0].Expressions[0].Value.(string)
	if !ok {
		return "", fmt.Errorf("unexpected policy result type %T", results[0].Expressions[0].Value)
	}

	switch status := domain.TriageStatus(s); status {
	case domain.TriageStatusEmergency, domain.TriageStatusUrgent, domain.TriageStatusSelfCare:
		return status, nil
	default:
		return "", fmt.Errorf("unknown triage status %q", s)
	}
}

// DefaultPolicy is the keyword triage policy. Emergency keywords win over
// urgent ones.
const DefaultPolicy = `
package triage

default status = "SELF-CARE"

emergency_keywords = [
	"breathing",
	"chest pain",
	"heart attack",
	"stroke",
	"severe bleeding",
	"unconscious",
]

urgent_keywords = [
	"fever",
	"diarrhea",
	"vomiting",
	"severe pain",
	"infection",
]

emergency {
	some i
	contains(input.symptom, emergency_keywords[i])
}

urgent {
	some i
	contains(input.symptom, urgent_keywords[i])
}

status = "EMERGENCY" {
	emergency
}

status = "URGENT" {
	not emergency
	urgent
}
`
