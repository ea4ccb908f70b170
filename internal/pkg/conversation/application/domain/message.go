package conversation

import (
	"strings"
	"time"
)

// Message is an immutable log entry in a conversation. CreatedAt is
// monotonic within the conversation; ordering comes from the store.
type Message struct {
	ID             string    `db:"id"`
	ConversationID string    `db:"conversation_id"`
	AuthorID       string    `db:"author_id"`
	Body           string    `db:"body"`
	CreatedAt      time.Time `db:"created_at"`
}

// NewMessage validates and normalizes a message before persistence.
func NewMessage(conversationID, authorID, body string) (*Message, error) {
	if conversationID == "" || authorID == "" {
		return nil, ErrMissingIdentity
	}
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return nil, ErrEmptyMessage
	}
	return &Message{
		ConversationID: conversationID,
		AuthorID:       authorID,
		Body:           trimmed,
		CreatedAt:      time.Now().UTC(),
	}, nil
}
