package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	friend "go-linkup/internal/pkg/friend/application/domain"
)

func TestSendFriendRequestCreatesPending(t *testing.T) {
	repo := newFakeFriendRepo()
	uc := NewSendFriendRequestUseCase(repo, nil)

	req, err := uc.Execute(context.Background(), SendFriendRequestInput{CreatorID: "adam", ReceiverID: "zoe"})
	require.NoError(t, err)

	assert.NotEmpty(t, req.ID)
	assert.Equal(t, friend.StatusPending, req.Status)
	assert.Equal(t, "adam", req.CreatorID)
	assert.Equal(t, "zoe", req.ReceiverID)
}

func TestSendFriendRequestRejectsSelf(t *testing.T) {
	uc := NewSendFriendRequestUseCase(newFakeFriendRepo(), nil)

	_, err := uc.Execute(context.Background(), SendFriendRequestInput{CreatorID: "adam", ReceiverID: "adam"})
	assert.ErrorIs(t, err, friend.ErrSelfRequest)
}

func TestSendFriendRequestRejectsDuplicateEitherDirection(t *testing.T) {
	repo := newFakeFriendRepo()
	uc := NewSendFriendRequestUseCase(repo, nil)

	_, err := uc.Execute(context.Background(), SendFriendRequestInput{CreatorID: "adam", ReceiverID: "zoe"})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), SendFriendRequestInput{CreatorID: "adam", ReceiverID: "zoe"})
	assert.ErrorIs(t, err, friend.ErrDuplicateRequest)

	// The reverse direction hits the same pair record.
	_, err = uc.Execute(context.Background(), SendFriendRequestInput{CreatorID: "zoe", ReceiverID: "adam"})
	assert.ErrorIs(t, err, friend.ErrDuplicateRequest)
}

func TestSendFriendRequestInvalidatesStatusCache(t *testing.T) {
	repo := newFakeFriendRepo()
	c := newFakeCache()
	uc := NewSendFriendRequestUseCase(repo, c)

	_, err := uc.Execute(context.Background(), SendFriendRequestInput{CreatorID: "adam", ReceiverID: "zoe"})
	require.NoError(t, err)

	assert.Contains(t, c.deleted, statusCacheKey("adam", "zoe"))
	assert.Contains(t, c.deleted, statusCacheKey("zoe", "adam"))
}
