// Package domain defines the core domain models for the health desk.
package domain

// TriageStatus represents the urgency category of a symptom description.
type TriageStatus string

const (
	TriageStatusEmergency TriageStatus = "EMERGENCY"
	TriageStatusUrgent    TriageStatus = "URGENT"
	TriageStatusSelfCare  TriageStatus = "SELF-CARE"
)

// Role represents the author of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)
