package usecase

import (
	"context"
	"fmt"

	conversation "go-linkup/internal/pkg/conversation/application/domain"
	repository "go-linkup/internal/pkg/conversation/persistence/repository/port"
)

// SendMessageInput carries the data needed to append a message.
type SendMessageInput struct {
	ConversationID string
	AuthorID       string
	Body           string
}

// SendMessageUseCase persists a message and bumps the conversation's
// last-activity watermark. Persistence completes before the caller fans the
// message out, which is what keeps delivery in creation order.
type SendMessageUseCase struct {
	Repo repository.ConversationRepository
}

func NewSendMessageUseCase(repo repository.ConversationRepository) *SendMessageUseCase {
	return &SendMessageUseCase{Repo: repo}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*conversation.Message, error) {
	msg, err := conversation.NewMessage(in.ConversationID, in.AuthorID, in.Body)
	if err != nil {
		return nil, err
	}

	saved, err := uc.Repo.SaveMessage(ctx, *msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := uc.Repo.TouchActivity(ctx, saved.ConversationID, saved.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &saved, nil
}
