// Package agent provides the core domain model for the orchestration engine.
package agent

import "time"

// Role identifies the author of a message.
type Role string

const (
	RoleUser  Role = "user"  // Caller input
	RoleAgent Role = "agent" // Generated response
	RoleTool  Role = "tool"  // Tool observation
)

// IsValid returns true if the role is a recognized canonical role.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAgent, RoleTool:
		return true
	default:
		return false
	}
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// Message is one entry in a conversation. Histories are append-only:
// a step may add messages but never rewrites prior entries.
type Message struct {
	Role      Role           `json:"role"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewMessage creates a message with the current timestamp.
func NewMessage(role Role, content string) Message {
	return Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewToolMessage creates a tool-role message attributed to a tool.
func NewToolMessage(toolName, content string) Message {
	return Message{
		Role:      RoleTool,
		Content:   content,
		Metadata:  map[string]any{"tool": toolName},
		Timestamp: time.Now(),
	}
}
