package usecase

import (
	"context"
	"fmt"

	conversation "go-linkup/internal/pkg/conversation/application/domain"
	repository "go-linkup/internal/pkg/conversation/persistence/repository/port"
)

// CreateOrResolveConversationInput carries the pair to resolve or create.
type CreateOrResolveConversationInput struct {
	UserID   string
	FriendID string
}

// CreateOrResolveConversationUseCase returns the single conversation for a
// pair of users, creating it lazily on first resolution.
type CreateOrResolveConversationUseCase struct {
	Repo repository.ConversationRepository
}

func NewCreateOrResolveConversationUseCase(repo repository.ConversationRepository) *CreateOrResolveConversationUseCase {
	return &CreateOrResolveConversationUseCase{Repo: repo}
}

func (uc *CreateOrResolveConversationUseCase) Execute(ctx context.Context, in CreateOrResolveConversationInput) (*conversation.Conversation, error) {
	conv, err := conversation.NewConversation(in.UserID, in.FriendID)
	if err != nil {
		return nil, err
	}

	out, err := uc.Repo.CreateOrResolve(ctx, conv)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &out, nil
}
