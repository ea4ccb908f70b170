package usecase

import (
	"context"
	"errors"
	"fmt"

	cache "go-linkup/internal/infrastructure/cache/port"
	friend "go-linkup/internal/pkg/friend/application/domain"
	repository "go-linkup/internal/pkg/friend/persistence/repository/port"
)

// RespondToFriendRequestInput carries the request id and the new status.
type RespondToFriendRequestInput struct {
	RequestID string
	Status    friend.Status
}

// RespondToFriendRequestUseCase overwrites a request's status in place.
// Only accepted and declined are valid responses.
type RespondToFriendRequestUseCase struct {
	Repo  repository.FriendRequestRepository
	Cache cache.Cache // optional
}

func NewRespondToFriendRequestUseCase(repo repository.FriendRequestRepository, c cache.Cache) *RespondToFriendRequestUseCase {
	return &RespondToFriendRequestUseCase{Repo: repo, Cache: c}
}

func (uc *RespondToFriendRequestUseCase) Execute(ctx context.Context, in RespondToFriendRequestInput) (*friend.Request, error) {
	if in.RequestID == "" {
		return nil, friend.ErrRequestNotFound
	}
	if !friend.ValidResponse(in.Status) {
		return nil, friend.ErrInvalidResponse
	}

	req, err := uc.Repo.FindByID(ctx, in.RequestID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if req == nil {
		return nil, friend.ErrRequestNotFound
	}

	if err := uc.Repo.UpdateStatus(ctx, in.RequestID, in.Status); err != nil {
		if errors.Is(err, friend.ErrRequestNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	req.Status = in.Status

	invalidateStatus(ctx, uc.Cache, req.CreatorID, req.ReceiverID)
	return req, nil
}
