package conversation

import (
	"errors"
	"time"
)

// Domain-level errors for the conversation context.
var (
	ErrInvalidParticipants = errors.New("conversation: exactly two distinct participants are required")
	ErrEmptyMessage        = errors.New("conversation: message body is empty")
	ErrMissingIdentity     = errors.New("conversation: conversation and author ids are required")
)

// Conversation is the single thread between an unordered pair of users.
// UserA/UserB are stored canonically (UserA < UserB) so that one pair can
// never map to two rows regardless of who created it.
type Conversation struct {
	ID           string    `db:"id"`
	UserA        string    `db:"user_a"`
	UserB        string    `db:"user_b"`
	LastActivity time.Time `db:"last_activity"`
}

// NewConversation builds a canonical conversation for the pair (a, b).
func NewConversation(a, b string) (Conversation, error) {
	if a == "" || b == "" || a == b {
		return Conversation{}, ErrInvalidParticipants
	}
	if b < a {
		a, b = b, a
	}
	return Conversation{UserA: a, UserB: b, LastActivity: time.Now().UTC()}, nil
}

// PairKey returns the deterministic lookup key for the unordered pair (a, b).
// PairKey(a, b) == PairKey(b, a).
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + ":" + b
}

// Participants lists both members of the conversation.
func (c Conversation) Participants() []string {
	return []string{c.UserA, c.UserB}
}

// Has reports whether userID participates in the conversation.
func (c Conversation) Has(userID string) bool {
	return userID != "" && (userID == c.UserA || userID == c.UserB)
}
