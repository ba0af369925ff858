package domain

// TriageRequest is the input of the rule-based triage.
type TriageRequest struct {
	Symptom string `json:"symptom"`
}

// TriageResult is the outcome of the rule-based triage.
type TriageResult struct {
	Status         TriageStatus `json:"status"`
	Recommendation string       `json:"recommendation,omitempty"`
}

// TriageAdviceRequest carries a symptom description and optional demographics
// for AI generated triage advice.
type TriageAdviceRequest struct {
	Symptom           string   `json:"symptom"`
	Age               *int     `json:"age,omitempty"`
	Sex               string   `json:"sex,omitempty"`
	Pregnant          *bool    `json:"pregnant,omitempty"`
	ChronicConditions []string `json:"chronic_conditions,omitempty"`
	Location          string   `json:"location,omitempty"`
	Language          string   `json:"language,omitempty"`
}

// TriageAdviceResponse is the AI triage advice returned to the caller.
type TriageAdviceResponse struct {
	Advice     string   `json:"advice"`
	Confidence *float64 `json:"confidence"`
}

// ChatRequest carries the caller's chat history and target language.
type ChatRequest struct {
	History  []Message `json:"history"`
	Language string    `json:"language,omitempty"`
}

// ChatResponse is the assistant reply returned to the caller.
type ChatResponse struct {
	Reply string `json:"reply"`
}
