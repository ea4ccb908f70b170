package repository

import (
	"context"

	friend "go-linkup/internal/pkg/friend/application/domain"
)

// FriendRequestRepository defines persistence for friend-request records.
// Pair lookups are unordered; the storage layer enforces at most one record
// per pair.
type FriendRequestRepository interface {
	// Create persists a new request and returns it with the assigned id.
	// A concurrent or pre-existing record for the pair yields
	// friend.ErrDuplicateRequest.
	Create(ctx context.Context, r friend.Request) (friend.Request, error)

	// FindByID returns the request, or (nil, nil) when the id is unknown.
	FindByID(ctx context.Context, id string) (*friend.Request, error)

	// FindByPair returns the record for the unordered pair (a, b), or
	// (nil, nil) when none exists.
	FindByPair(ctx context.Context, a, b string) (*friend.Request, error)

	// UpdateStatus overwrites the status in place.
	// friend.ErrRequestNotFound when the id is unknown.
	UpdateStatus(ctx context.Context, id string, s friend.Status) error

	// ListForReceiver returns every request addressed to the user,
	// regardless of status.
	ListForReceiver(ctx context.Context, receiverID string) ([]friend.Request, error)

	// ListAcceptedFor returns every accepted request in which the user is
	// either party.
	ListAcceptedFor(ctx context.Context, userID string) ([]friend.Request, error)
}
