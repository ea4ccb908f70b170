package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	presence "go-linkup/internal/pkg/presence/application/domain"
	registry "go-linkup/internal/pkg/presence/persistence/registry/port"
)

// PgSessionRegistry stores active sessions in Postgres. The unique
// constraint on user_id plus the single upsert keeps replace-on-join atomic
// when the same user joins from two devices concurrently.
type PgSessionRegistry struct {
	pool *pgxpool.Pool
}

func NewPgSessionRegistry(pool *pgxpool.Pool) *PgSessionRegistry {
	return &PgSessionRegistry{pool: pool}
}

var _ registry.SessionRegistry = (*PgSessionRegistry)(nil)

func (r *PgSessionRegistry) Join(ctx context.Context, s presence.ActiveSession) error {
	if r == nil || r.pool == nil {
		return errors.New("PgSessionRegistry: nil pool")
	}
	if err := s.Validate(); err != nil {
		return err
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO active_session (user_id, connection_id, conversation_id)
		VALUES ($1::uuid, $2, $3::uuid)
		ON CONFLICT (user_id)
		DO UPDATE SET connection_id = EXCLUDED.connection_id,
		              conversation_id = EXCLUDED.conversation_id
	`, s.UserID, s.ConnectionID, s.ConversationID)
	return err
}

func (r *PgSessionRegistry) Leave(ctx context.Context, connectionID string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgSessionRegistry: nil pool")
	}
	if connectionID == "" {
		return nil
	}
	// Zero rows affected means a stale connection; that is fine.
	_, err := r.pool.Exec(ctx, `
		DELETE FROM active_session WHERE connection_id = $1
	`, connectionID)
	return err
}

func (r *PgSessionRegistry) ActiveForConversation(ctx context.Context, conversationID string) ([]presence.ActiveSession, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgSessionRegistry: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT connection_id, user_id::text, conversation_id::text
		FROM active_session
		WHERE conversation_id = $1::uuid
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []presence.ActiveSession
	for rows.Next() {
		var s presence.ActiveSession
		if err := rows.Scan(&s.ConnectionID, &s.UserID, &s.ConversationID); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
