package usecase

import (
	"context"
	"fmt"
	"time"

	cache "go-linkup/internal/infrastructure/cache/port"
	friend "go-linkup/internal/pkg/friend/application/domain"
	repository "go-linkup/internal/pkg/friend/persistence/repository/port"
)

const statusCacheTTL = 30 * time.Second

// GetFriendStatusInput identifies viewer and counterpart.
type GetFriendStatusInput struct {
	ViewerID string
	OtherID  string
}

// GetFriendStatusUseCase computes the viewer-relative relationship status.
// Results are cached briefly; send/respond invalidate the pair's entries.
type GetFriendStatusUseCase struct {
	Repo  repository.FriendRequestRepository
	Cache cache.Cache // optional
}

func NewGetFriendStatusUseCase(repo repository.FriendRequestRepository, c cache.Cache) *GetFriendStatusUseCase {
	return &GetFriendStatusUseCase{Repo: repo, Cache: c}
}

func (uc *GetFriendStatusUseCase) Execute(ctx context.Context, in GetFriendStatusInput) (friend.Status, error) {
	if in.ViewerID == "" || in.OtherID == "" {
		return "", friend.ErrMissingUser
	}
	if in.ViewerID == in.OtherID {
		return "", friend.ErrSelfRequest
	}

	key := statusCacheKey(in.ViewerID, in.OtherID)
	if uc.Cache != nil {
		if v, err := uc.Cache.Get(ctx, key); err == nil {
			return friend.Status(v), nil
		}
	}

	req, err := uc.Repo.FindByPair(ctx, in.ViewerID, in.OtherID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	status := friend.StatusNotSent
	if req != nil {
		status = req.ViewerStatus(in.ViewerID)
	}

	if uc.Cache != nil {
		_ = uc.Cache.Set(ctx, key, string(status), statusCacheTTL)
	}
	return status, nil
}
