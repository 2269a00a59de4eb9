package domain

import "time"

type Chat struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerID"`
	UserID    string    `json:"userID"`
	CreatedAt time.Time `json:"createdAt"`
}

// Involves reports whether the given user is a party to the chat.
func (c *Chat) Involves(userID string) bool {
	return c.OwnerID == userID || c.UserID == userID
}

type Message struct {
	ID        string     `json:"id"`
	ChatID    string     `json:"chatID"`
	OwnerID   string     `json:"ownerID"`
	Text      string     `json:"text"`
	Timestamp time.Time  `json:"timestamp"`
	Read      *time.Time `json:"read"`
}

// ChatPreview is a chat joined with its most recent message, for the
// conversation list.
type ChatPreview struct {
	Chat
	LastMessage *Message `json:"lastMessage"`
}
