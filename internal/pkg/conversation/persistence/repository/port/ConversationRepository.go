package repository

import (
	"context"
	"time"

	conversation "go-linkup/internal/pkg/conversation/application/domain"
)

// ConversationRepository defines persistence operations for conversations
// and their message log. Pair lookups are unordered: Resolve(a, b) and
// Resolve(b, a) must return the same row.
type ConversationRepository interface {
	// Resolve returns the conversation for the pair, or (nil, nil) when
	// none exists. Absence is not an error.
	Resolve(ctx context.Context, userA, userB string) (*conversation.Conversation, error)

	// CreateOrResolve returns the existing conversation for the pair or
	// creates one. Concurrent calls for the same pair must converge on a
	// single row (unique pair key at the storage layer).
	CreateOrResolve(ctx context.Context, c conversation.Conversation) (conversation.Conversation, error)

	// ListForUser returns all conversations containing the user, ordered
	// by last activity descending.
	ListForUser(ctx context.Context, userID string) ([]conversation.Conversation, error)

	// ListParticipants returns the participant ids of one conversation.
	ListParticipants(ctx context.Context, conversationID string) ([]string, error)

	// TouchActivity advances the conversation's last-activity timestamp.
	TouchActivity(ctx context.Context, conversationID string, at time.Time) error

	// SaveMessage appends a message and returns it with the store-assigned
	// id and timestamp.
	SaveMessage(ctx context.Context, m conversation.Message) (conversation.Message, error)

	// ListMessages returns the full history of a conversation ordered by
	// creation time ascending.
	ListMessages(ctx context.Context, conversationID string) ([]conversation.Message, error)
}
