package usecase

import (
	"context"
	"fmt"

	conversation "go-linkup/internal/pkg/conversation/application/domain"
	repository "go-linkup/internal/pkg/conversation/persistence/repository/port"
)

// GetConversationHistoryInput identifies the conversation to read.
type GetConversationHistoryInput struct {
	ConversationID string
}

// GetConversationHistoryUseCase fetches the full message history of a
// conversation, ordered by creation time ascending.
type GetConversationHistoryUseCase struct {
	Repo repository.ConversationRepository
}

func NewGetConversationHistoryUseCase(repo repository.ConversationRepository) *GetConversationHistoryUseCase {
	return &GetConversationHistoryUseCase{Repo: repo}
}

func (uc *GetConversationHistoryUseCase) Execute(ctx context.Context, in GetConversationHistoryInput) ([]conversation.Message, error) {
	if in.ConversationID == "" {
		return nil, fmt.Errorf("conversation_id is required")
	}
	msgs, err := uc.Repo.ListMessages(ctx, in.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return msgs, nil
}
