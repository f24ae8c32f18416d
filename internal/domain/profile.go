package domain

import "time"

// Role identifies who authored a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserProfile is the signed-in farmer. It is persisted JSON-encoded on the
// client under a single well-known key.
type UserProfile struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Phone    string   `json:"phone"`
	Location string   `json:"location"`
	Crops    []string `json:"crops"`
	History  string   `json:"history,omitempty"`
}

// ArchivedMessage is the persisted form of a conversation message.
type ArchivedMessage struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// ConversationSnapshot is one archived conversation in a language archive.
type ConversationSnapshot struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"createdAt"`
	Messages  []ArchivedMessage `json:"messages"`
}
