// Package domain contains core domain types for the agency site server.
package domain

// Chat message roles, matching the upstream completion API vocabulary.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one entry in a conversation transcript. The browser owns the
// transcript and resends the full tail on every turn; the server never stores
// it and never echoes the system entry back.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
