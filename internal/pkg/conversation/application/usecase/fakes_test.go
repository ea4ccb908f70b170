package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	conversation "go-linkup/internal/pkg/conversation/application/domain"
)

// fakeConversationRepo is an in-memory ConversationRepository used by the
// use case tests. failNext makes the next call return a storage error.
type fakeConversationRepo struct {
	convs    map[string]conversation.Conversation // pair key -> conversation
	messages map[string][]conversation.Message    // conversation id -> log
	touched  map[string]time.Time
	nextID   int
	failNext bool
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{
		convs:    make(map[string]conversation.Conversation),
		messages: make(map[string][]conversation.Message),
		touched:  make(map[string]time.Time),
	}
}

var errStorage = errors.New("storage unavailable")

func (f *fakeConversationRepo) fail() error {
	if f.failNext {
		f.failNext = false
		return errStorage
	}
	return nil
}

func (f *fakeConversationRepo) Resolve(ctx context.Context, userA, userB string) (*conversation.Conversation, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	c, ok := f.convs[conversation.PairKey(userA, userB)]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (f *fakeConversationRepo) CreateOrResolve(ctx context.Context, c conversation.Conversation) (conversation.Conversation, error) {
	if err := f.fail(); err != nil {
		return conversation.Conversation{}, err
	}
	key := conversation.PairKey(c.UserA, c.UserB)
	if existing, ok := f.convs[key]; ok {
		return existing, nil
	}
	f.nextID++
	c.ID = fmt.Sprintf("conv-%d", f.nextID)
	f.convs[key] = c
	return c, nil
}

func (f *fakeConversationRepo) ListForUser(ctx context.Context, userID string) ([]conversation.Conversation, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	var out []conversation.Conversation
	for _, c := range f.convs {
		if c.Has(userID) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastActivity.After(out[j].LastActivity) })
	return out, nil
}

func (f *fakeConversationRepo) ListParticipants(ctx context.Context, conversationID string) ([]string, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	for _, c := range f.convs {
		if c.ID == conversationID {
			return c.Participants(), nil
		}
	}
	return nil, nil
}

func (f *fakeConversationRepo) TouchActivity(ctx context.Context, conversationID string, at time.Time) error {
	if err := f.fail(); err != nil {
		return err
	}
	f.touched[conversationID] = at
	for key, c := range f.convs {
		if c.ID == conversationID {
			c.LastActivity = at
			f.convs[key] = c
		}
	}
	return nil
}

func (f *fakeConversationRepo) SaveMessage(ctx context.Context, m conversation.Message) (conversation.Message, error) {
	if err := f.fail(); err != nil {
		return conversation.Message{}, err
	}
	f.nextID++
	m.ID = fmt.Sprintf("msg-%d", f.nextID)
	f.messages[m.ConversationID] = append(f.messages[m.ConversationID], m)
	return m, nil
}

func (f *fakeConversationRepo) ListMessages(ctx context.Context, conversationID string) ([]conversation.Message, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	return f.messages[conversationID], nil
}
