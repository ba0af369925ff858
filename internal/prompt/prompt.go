// Package prompt builds the role-tagged conversations sent to LLM providers.
package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xiaot623/healthdesk/internal/domain"
)

// SafetySystemPrompt is injected as the first message of every conversation.
const SafetySystemPrompt = "You are a compassionate, multilingual health assistant helping refugees and displaced people. " +
	"Provide general information and self-care guidance only. Do not provide medical diagnosis. " +
	"Always include an appropriate safety disclaimer and encourage seeking professional care when needed. " +
	"If severe/emergency symptoms are present, clearly advise urgent care or local emergency services. " +
	"Be sensitive to trauma and cultural contexts. Keep language simple and supportive."

const triageTemplate = "User symptom description: %s\n" +
	"Demographics: age=%s, sex=%s, pregnant=%s, chronic_conditions=%s\n" +
	"Location (optional): %s\n" +
	"Task: 1) Classify severity as one of: EMERGENCY, URGENT, SELF-CARE.\n" +
	"2) Provide brief guidance and next steps tailored to the user.\n" +
	"3) If emergency, explicitly state to seek immediate care / call local emergency number.\n" +
	"4) Respond in the target language: %s."

const chatTemplate = "Context: You are a supportive health information assistant for refugees.\n" +
	"Respond in: %s.\n" +
	"Conversation:"

const unknown = "unknown"

// Builder assembles conversations for the triage advice and chat flows.
type Builder struct {
	defaultLanguage string
}

// NewBuilder creates a builder that falls back to defaultLanguage when a
// request does not name one.
func NewBuilder(defaultLanguage string) *Builder {
	return &Builder{defaultLanguage: defaultLanguage}
}

// DefaultLanguage returns the language used when a request names none.
func (b *Builder) DefaultLanguage() string {
	return b.defaultLanguage
}

// TriageAdvice builds the two-message conversation asking for triage advice.
func (b *Builder) TriageAdvice(req domain.TriageAdviceRequest) domain.Conversation {
	age := unknown
	if req.Age != nil {
		age = strconv.Itoa(*req.Age)
	}
	pregnant := unknown
	if req.Pregnant != nil {
		pregnant = strconv.FormatBool(*req.Pregnant)
	}
	chronic := strings.Join(req.ChronicConditions, ", ")
	if chronic == "" {
		chronic = "none"
	}

	content := fmt.Sprintf(triageTemplate,
		req.Symptom,
		age,
		orDefault(req.Sex, unknown),
		pregnant,
		chronic,
		orDefault(req.Location, unknown),
		b.language(req.Language),
	)

	return domain.Conversation{
		{Role: domain.RoleSystem, Content: SafetySystemPrompt},
		{Role: domain.RoleUser, Content: content},
	}
}

// Chat builds the safety preamble followed by the caller's history. History
// roles are restricted to user and assistant; anything else becomes user.
func (b *Builder) Chat(history []domain.Message, language string) domain.Conversation {
	conv := make(domain.Conversation, 0, len(history)+2)
	conv = append(conv,
		domain.Message{Role: domain.RoleSystem, Content: SafetySystemPrompt},
		domain.Message{Role: domain.RoleSystem, Content: fmt.Sprintf(chatTemplate, b.language(language))},
	)
	for _, m := range history {
		role := m.Role
		if role != domain.RoleAssistant {
			role = domain.RoleUser
		}
		conv = append(conv, domain.Message{Role: role, Content: m.Content})
	}
	return conv
}

func (b *Builder) language(requested string) string {
	return orDefault(requested, b.defaultLanguage)
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
