package usecase

import (
	"context"
	"errors"
	"fmt"

	cache "go-linkup/internal/infrastructure/cache/port"
	friend "go-linkup/internal/pkg/friend/application/domain"
	repository "go-linkup/internal/pkg/friend/persistence/repository/port"
)

// SendFriendRequestInput carries creator and receiver for a new request.
type SendFriendRequestInput struct {
	CreatorID  string
	ReceiverID string
}

// SendFriendRequestUseCase creates a pending request between two users.
// Self-requests and duplicate pairs (in either direction) are rejected with
// typed domain errors the REST layer turns into {error} payloads.
type SendFriendRequestUseCase struct {
	Repo  repository.FriendRequestRepository
	Cache cache.Cache // optional; nil disables status caching
}

func NewSendFriendRequestUseCase(repo repository.FriendRequestRepository, c cache.Cache) *SendFriendRequestUseCase {
	return &SendFriendRequestUseCase{Repo: repo, Cache: c}
}

func (uc *SendFriendRequestUseCase) Execute(ctx context.Context, in SendFriendRequestInput) (*friend.Request, error) {
	req, err := friend.NewRequest(in.CreatorID, in.ReceiverID)
	if err != nil {
		return nil, err
	}

	// Cheap pre-check; the unique pair key in the store closes the race.
	existing, err := uc.Repo.FindByPair(ctx, in.CreatorID, in.ReceiverID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if existing != nil {
		return nil, friend.ErrDuplicateRequest
	}

	created, err := uc.Repo.Create(ctx, *req)
	if err != nil {
		if errors.Is(err, friend.ErrDuplicateRequest) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	invalidateStatus(ctx, uc.Cache, in.CreatorID, in.ReceiverID)
	return &created, nil
}

// invalidateStatus drops both viewer-relative cache entries for the pair.
// Cache failures are ignored; stale entries expire on their own TTL.
func invalidateStatus(ctx context.Context, c cache.Cache, a, b string) {
	if c == nil {
		return
	}
	_, _ = c.Del(ctx, statusCacheKey(a, b), statusCacheKey(b, a))
}
