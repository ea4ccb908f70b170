package usecase

import (
	"context"
	"fmt"

	friend "go-linkup/internal/pkg/friend/application/domain"
	repository "go-linkup/internal/pkg/friend/persistence/repository/port"
)

// ListIncomingRequestsInput identifies the receiving user.
type ListIncomingRequestsInput struct {
	ViewerID string
}

// ListIncomingRequestsUseCase returns every request addressed to the
// viewer, unfiltered by status; UI-level filtering is the caller's concern.
type ListIncomingRequestsUseCase struct {
	Repo repository.FriendRequestRepository
}

func NewListIncomingRequestsUseCase(repo repository.FriendRequestRepository) *ListIncomingRequestsUseCase {
	return &ListIncomingRequestsUseCase{Repo: repo}
}

func (uc *ListIncomingRequestsUseCase) Execute(ctx context.Context, in ListIncomingRequestsInput) ([]friend.Request, error) {
	if in.ViewerID == "" {
		return nil, friend.ErrMissingUser
	}
	reqs, err := uc.Repo.ListForReceiver(ctx, in.ViewerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return reqs, nil
}
