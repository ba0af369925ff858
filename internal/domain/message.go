package domain

// Message is a single role-tagged entry of a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Conversation is an ordered sequence of messages sent to a provider in one request.
type Conversation []Message

// NormalizeRole maps any unrecognized role to RoleUser.
func NormalizeRole(r Role) Role {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return r
	default:
		return RoleUser
	}
}

// Normalized returns a copy of the conversation with every role normalized.
// Normalizing an already normalized conversation yields an identical one.
func (c Conversation) Normalized() Conversation {
	out := make(Conversation, len(c))
	for i, m := range c {
		out[i] = Message{Role: NormalizeRole(m.Role), Content: m.Content}
	}
	return out
}

// LastUserContent returns the content of the last user message, or "".
func (c Conversation) LastUserContent() string {
	for i := len(c) - 1; i >= 0; i-- {
		if c[i].Role == RoleUser {
			return c[i].Content
		}
	}
	return ""
}
