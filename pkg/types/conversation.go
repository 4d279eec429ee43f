// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single message in a conversation. Turns are append-only:
// a session grows by appending turns and never rewrites history.
type Turn struct {
	// Role is who produced the message: system, user, or assistant.
	Role Role `json:"role" yaml:"role"`

	// Content is the message text.
	Content string `json:"content" yaml:"content"`
}
