package registry

import (
	"context"

	presence "go-linkup/internal/pkg/presence/application/domain"
)

// SessionRegistry tracks which connection holds each user's conversation
// focus. It is deliberately narrow so the backend can be swapped (in-memory
// map, Postgres, an external cache) without touching the gateway.
//
// Join is keyed by user and replaces any prior session for that user in one
// atomic step. Leave is keyed by connection and is a no-op when the
// connection no longer owns a session — a stale device disconnecting after
// a newer one took over must not clear the newer session.
type SessionRegistry interface {
	Join(ctx context.Context, s presence.ActiveSession) error
	Leave(ctx context.Context, connectionID string) error
	ActiveForConversation(ctx context.Context, conversationID string) ([]presence.ActiveSession, error)
}
