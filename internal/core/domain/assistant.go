package domain

import "time"

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	ChatRoleUser ChatRole = "user"
	ChatRoleBot  ChatRole = "bot"
)

// ChatMessage is one entry in the assistant conversation.
type ChatMessage struct {
	Role   ChatRole  `json:"role"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
}

// Profile is the single simulated account holder.
type Profile struct {
	Name         string `json:"name"`
	IsPremium    bool   `json:"is_premium"`
	BusinessMode bool   `json:"business_mode"`
}
