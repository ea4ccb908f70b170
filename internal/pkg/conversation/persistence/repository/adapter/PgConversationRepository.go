package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	conversation "go-linkup/internal/pkg/conversation/application/domain"
)

type PgConversationRepository struct {
	pool *pgxpool.Pool
}

func NewPgConversationRepository(pool *pgxpool.Pool) *PgConversationRepository {
	return &PgConversationRepository{pool: pool}
}

func (r *PgConversationRepository) Resolve(ctx context.Context, userA, userB string) (*conversation.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgConversationRepository: nil pool")
	}
	var c conversation.Conversation
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, user_a::text, user_b::text, last_activity
		FROM conversation
		WHERE pair_key = $1
	`, conversation.PairKey(userA, userB)).Scan(&c.ID, &c.UserA, &c.UserB, &c.LastActivity)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgConversationRepository) CreateOrResolve(ctx context.Context, c conversation.Conversation) (conversation.Conversation, error) {
	if r == nil || r.pool == nil {
		return conversation.Conversation{}, errors.New("PgConversationRepository: nil pool")
	}
	// The no-op DO UPDATE makes RETURNING yield the existing row on
	// conflict, so concurrent creators converge on one conversation.
	var out conversation.Conversation
	err := r.pool.QueryRow(ctx, `
		INSERT INTO conversation (user_a, user_b, pair_key, last_activity)
		VALUES ($1::uuid, $2::uuid, $3, $4)
		ON CONFLICT (pair_key) DO UPDATE SET pair_key = EXCLUDED.pair_key
		RETURNING id::text, user_a::text, user_b::text, last_activity
	`, c.UserA, c.UserB, conversation.PairKey(c.UserA, c.UserB), c.LastActivity).
		Scan(&out.ID, &out.UserA, &out.UserB, &out.LastActivity)
	return out, err
}

func (r *PgConversationRepository) ListForUser(ctx context.Context, userID string) ([]conversation.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgConversationRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, user_a::text, user_b::text, last_activity
		FROM conversation
		WHERE user_a = $1::uuid OR user_b = $1::uuid
		ORDER BY last_activity DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []conversation.Conversation
	for rows.Next() {
		var c conversation.Conversation
		if err := rows.Scan(&c.ID, &c.UserA, &c.UserB, &c.LastActivity); err != nil {
			return nil, err
		}
		convs = append(convs, c)
	}
	return convs, rows.Err()
}

func (r *PgConversationRepository) ListParticipants(ctx context.Context, conversationID string) ([]string, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgConversationRepository: nil pool")
	}
	var a, b string
	err := r.pool.QueryRow(ctx, `
		SELECT user_a::text, user_b::text FROM conversation WHERE id = $1::uuid
	`, conversationID).Scan(&a, &b)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []string{a, b}, nil
}

func (r *PgConversationRepository) TouchActivity(ctx context.Context, conversationID string, at time.Time) error {
	if r == nil || r.pool == nil {
		return errors.New("PgConversationRepository: nil pool")
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE conversation SET last_activity = $2 WHERE id = $1::uuid
	`, conversationID, at)
	return err
}

func (r *PgConversationRepository) SaveMessage(ctx context.Context, m conversation.Message) (conversation.Message, error) {
	if r == nil || r.pool == nil {
		return conversation.Message{}, errors.New("PgConversationRepository: nil pool")
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO message (conversation_id, author_id, body, created_at)
		VALUES ($1::uuid, $2::uuid, $3, $4)
		RETURNING id::text, created_at
	`, m.ConversationID, m.AuthorID, m.Body, m.CreatedAt).Scan(&m.ID, &m.CreatedAt)
	return m, err
}

func (r *PgConversationRepository) ListMessages(ctx context.Context, conversationID string) ([]conversation.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgConversationRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, conversation_id::text, author_id::text, body, created_at
		FROM message
		WHERE conversation_id = $1::uuid
		ORDER BY created_at ASC
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []conversation.Message
	for rows.Next() {
		var m conversation.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.AuthorID, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
