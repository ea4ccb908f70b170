package usecase

import (
	"context"
	"fmt"

	conversation "go-linkup/internal/pkg/conversation/application/domain"
	repository "go-linkup/internal/pkg/conversation/persistence/repository/port"
)

// ResolveConversationInput identifies the unordered pair to look up.
type ResolveConversationInput struct {
	UserID   string
	FriendID string
}

// ResolveConversationUseCase finds the existing conversation between two
// users without creating one. (nil, nil) means no conversation exists.
type ResolveConversationUseCase struct {
	Repo repository.ConversationRepository
}

func NewResolveConversationUseCase(repo repository.ConversationRepository) *ResolveConversationUseCase {
	return &ResolveConversationUseCase{Repo: repo}
}

func (uc *ResolveConversationUseCase) Execute(ctx context.Context, in ResolveConversationInput) (*conversation.Conversation, error) {
	if in.UserID == "" || in.FriendID == "" {
		return nil, fmt.Errorf("user_id and friend_id are required")
	}
	conv, err := uc.Repo.Resolve(ctx, in.UserID, in.FriendID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return conv, nil
}
