package adapter

import (
	"context"
	"sync"

	presence "go-linkup/internal/pkg/presence/application/domain"
	registry "go-linkup/internal/pkg/presence/persistence/registry/port"
)

// MemSessionRegistry keeps active sessions in process memory: one row per
// user, plus a connection index so Leave can tell a stale connection from
// the current one.
type MemSessionRegistry struct {
	mu       sync.RWMutex
	byUser   map[string]presence.ActiveSession // userID -> session
	connUser map[string]string                 // connectionID -> userID
}

func NewMemSessionRegistry() *MemSessionRegistry {
	return &MemSessionRegistry{
		byUser:   make(map[string]presence.ActiveSession),
		connUser: make(map[string]string),
	}
}

var _ registry.SessionRegistry = (*MemSessionRegistry)(nil)

func (r *MemSessionRegistry) Join(ctx context.Context, s presence.ActiveSession) error {
	if err := s.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.byUser[s.UserID]; ok {
		delete(r.connUser, prev.ConnectionID)
	}
	r.byUser[s.UserID] = s
	r.connUser[s.ConnectionID] = s.UserID
	return nil
}

func (r *MemSessionRegistry) Leave(ctx context.Context, connectionID string) error {
	if connectionID == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	userID, ok := r.connUser[connectionID]
	if !ok {
		// Stale connection, or never joined. Nothing to do.
		return nil
	}
	delete(r.connUser, connectionID)
	if cur, ok := r.byUser[userID]; ok && cur.ConnectionID == connectionID {
		delete(r.byUser, userID)
	}
	return nil
}

func (r *MemSessionRegistry) ActiveForConversation(ctx context.Context, conversationID string) ([]presence.ActiveSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sessions []presence.ActiveSession
	for _, s := range r.byUser {
		if s.ConversationID == conversationID {
			sessions = append(sessions, s)
		}
	}
	return sessions, nil
}
