package usecase

import (
	"context"
	"fmt"

	repository "go-linkup/internal/pkg/conversation/persistence/repository/port"
)

// ListParticipantsInput wraps the conversation identifier.
type ListParticipantsInput struct {
	ConversationID string
}

// ListParticipantsUseCase returns user ids for the conversation's members.
type ListParticipantsUseCase struct {
	Repo repository.ConversationRepository
}

func NewListParticipantsUseCase(repo repository.ConversationRepository) *ListParticipantsUseCase {
	return &ListParticipantsUseCase{Repo: repo}
}

func (uc *ListParticipantsUseCase) Execute(ctx context.Context, in ListParticipantsInput) ([]string, error) {
	if in.ConversationID == "" {
		return nil, fmt.Errorf("conversation_id is required")
	}

	ids, err := uc.Repo.ListParticipants(ctx, in.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return ids, nil
}
