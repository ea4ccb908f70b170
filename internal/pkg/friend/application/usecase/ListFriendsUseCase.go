package usecase

import (
	"context"
	"fmt"

	friend "go-linkup/internal/pkg/friend/application/domain"
	repository "go-linkup/internal/pkg/friend/persistence/repository/port"
)

// ListFriendsInput identifies the viewer.
type ListFriendsInput struct {
	ViewerID string
}

// ListFriendsUseCase lists the ids of everyone the viewer has an accepted
// request with, resolved to the other party.
type ListFriendsUseCase struct {
	Repo repository.FriendRequestRepository
}

func NewListFriendsUseCase(repo repository.FriendRequestRepository) *ListFriendsUseCase {
	return &ListFriendsUseCase{Repo: repo}
}

func (uc *ListFriendsUseCase) Execute(ctx context.Context, in ListFriendsInput) ([]string, error) {
	if in.ViewerID == "" {
		return nil, friend.ErrMissingUser
	}

	accepted, err := uc.Repo.ListAcceptedFor(ctx, in.ViewerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	friendIDs := make([]string, 0, len(accepted))
	for _, req := range accepted {
		if other := req.OtherParty(in.ViewerID); other != "" {
			friendIDs = append(friendIDs, other)
		}
	}
	return friendIDs, nil
}
