package usecase

import (
	"context"
	"fmt"

	conversation "go-linkup/internal/pkg/conversation/application/domain"
	repository "go-linkup/internal/pkg/conversation/persistence/repository/port"
)

// ListConversationsInput identifies the user whose conversations to list.
type ListConversationsInput struct {
	UserID string
}

// ConversationWithParticipants is the hydrated view pushed to a client at
// connect time: the conversation plus its participant ids in one payload.
type ConversationWithParticipants struct {
	Conversation conversation.Conversation
	Participants []string
}

// ListConversationsUseCase lists a user's conversations with participants,
// ordered by last activity descending.
type ListConversationsUseCase struct {
	Repo repository.ConversationRepository
}

func NewListConversationsUseCase(repo repository.ConversationRepository) *ListConversationsUseCase {
	return &ListConversationsUseCase{Repo: repo}
}

func (uc *ListConversationsUseCase) Execute(ctx context.Context, in ListConversationsInput) ([]ConversationWithParticipants, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	convs, err := uc.Repo.ListForUser(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	out := make([]ConversationWithParticipants, 0, len(convs))
	for _, c := range convs {
		out = append(out, ConversationWithParticipants{
			Conversation: c,
			Participants: c.Participants(),
		})
	}
	return out, nil
}
