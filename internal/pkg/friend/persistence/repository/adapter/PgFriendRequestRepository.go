package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	friend "go-linkup/internal/pkg/friend/application/domain"
)

const uniqueViolation = "23505"

type PgFriendRequestRepository struct {
	pool *pgxpool.Pool
}

func NewPgFriendRequestRepository(pool *pgxpool.Pool) *PgFriendRequestRepository {
	return &PgFriendRequestRepository{pool: pool}
}

func (r *PgFriendRequestRepository) Create(ctx context.Context, req friend.Request) (friend.Request, error) {
	if r == nil || r.pool == nil {
		return friend.Request{}, errors.New("PgFriendRequestRepository: nil pool")
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO friend_request (creator_id, receiver_id, pair_key, status, created_at)
		VALUES ($1::uuid, $2::uuid, $3, $4, $5)
		RETURNING id::text
	`, req.CreatorID, req.ReceiverID, friend.PairKey(req.CreatorID, req.ReceiverID), req.Status, req.CreatedAt).
		Scan(&req.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return friend.Request{}, friend.ErrDuplicateRequest
		}
		return friend.Request{}, err
	}
	return req, nil
}

func (r *PgFriendRequestRepository) FindByID(ctx context.Context, id string) (*friend.Request, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgFriendRequestRepository: nil pool")
	}
	var req friend.Request
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, creator_id::text, receiver_id::text, status, created_at
		FROM friend_request WHERE id = $1::uuid
	`, id).Scan(&req.ID, &req.CreatorID, &req.ReceiverID, &req.Status, &req.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *PgFriendRequestRepository) FindByPair(ctx context.Context, a, b string) (*friend.Request, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgFriendRequestRepository: nil pool")
	}
	var req friend.Request
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, creator_id::text, receiver_id::text, status, created_at
		FROM friend_request WHERE pair_key = $1
	`, friend.PairKey(a, b)).Scan(&req.ID, &req.CreatorID, &req.ReceiverID, &req.Status, &req.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *PgFriendRequestRepository) UpdateStatus(ctx context.Context, id string, s friend.Status) error {
	if r == nil || r.pool == nil {
		return errors.New("PgFriendRequestRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE friend_request SET status = $2 WHERE id = $1::uuid
	`, id, s)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return friend.ErrRequestNotFound
	}
	return nil
}

func (r *PgFriendRequestRepository) ListForReceiver(ctx context.Context, receiverID string) ([]friend.Request, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgFriendRequestRepository: nil pool")
	}
	return r.list(ctx, `
		SELECT id::text, creator_id::text, receiver_id::text, status, created_at
		FROM friend_request
		WHERE receiver_id = $1::uuid
		ORDER BY created_at DESC
	`, receiverID)
}

func (r *PgFriendRequestRepository) ListAcceptedFor(ctx context.Context, userID string) ([]friend.Request, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgFriendRequestRepository: nil pool")
	}
	return r.list(ctx, `
		SELECT id::text, creator_id::text, receiver_id::text, status, created_at
		FROM friend_request
		WHERE status = 'accepted' AND (creator_id = $1::uuid OR receiver_id = $1::uuid)
		ORDER BY created_at DESC
	`, userID)
}

func (r *PgFriendRequestRepository) list(ctx context.Context, query string, arg any) ([]friend.Request, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []friend.Request
	for rows.Next() {
		var req friend.Request
		if err := rows.Scan(&req.ID, &req.CreatorID, &req.ReceiverID, &req.Status, &req.CreatedAt); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}
