package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	conversation "go-linkup/internal/pkg/conversation/application/domain"
	convusecase "go-linkup/internal/pkg/conversation/application/usecase"
	registryadapter "go-linkup/internal/pkg/presence/persistence/registry/adapter"
)

// fakeEmitter records every frame per connection id instead of writing to
// websockets.
type fakeEmitter struct {
	frames map[string][][]byte
}

func newFakeEmitter() *fakeEmitter {
	return &fakeEmitter{frames: make(map[string][][]byte)}
}

func (f *fakeEmitter) SendTo(connectionID string, payload []byte) bool {
	f.frames[connectionID] = append(f.frames[connectionID], payload)
	return true
}

func (f *fakeEmitter) SendToUser(userID string, payload []byte) int { return 0 }

// framesOfType decodes the recorded frames for a connection and keeps those
// matching the given type.
func (f *fakeEmitter) framesOfType(t *testing.T, connID, frameType string) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, raw := range f.frames[connID] {
		var decoded map[string]any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("recorded frame is not JSON: %v", err)
		}
		if decoded["type"] == frameType {
			out = append(out, decoded)
		}
	}
	return out
}

// fakeConvRepo is a minimal in-memory ConversationRepository for gateway
// tests. failSave makes SaveMessage fail once.
type fakeConvRepo struct {
	convs    map[string]conversation.Conversation
	messages map[string][]conversation.Message
	nextID   int
	failSave bool
}

func newFakeConvRepo() *fakeConvRepo {
	return &fakeConvRepo{
		convs:    make(map[string]conversation.Conversation),
		messages: make(map[string][]conversation.Message),
	}
}

func (f *fakeConvRepo) seed(t *testing.T, a, b string) conversation.Conversation {
	t.Helper()
	c, err := conversation.NewConversation(a, b)
	if err != nil {
		t.Fatalf("seed conversation: %v", err)
	}
	out, err := f.CreateOrResolve(context.Background(), c)
	if err != nil {
		t.Fatalf("seed conversation: %v", err)
	}
	return out
}

func (f *fakeConvRepo) Resolve(ctx context.Context, userA, userB string) (*conversation.Conversation, error) {
	c, ok := f.convs[conversation.PairKey(userA, userB)]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (f *fakeConvRepo) CreateOrResolve(ctx context.Context, c conversation.Conversation) (conversation.Conversation, error) {
	key := conversation.PairKey(c.UserA, c.UserB)
	if existing, ok := f.convs[key]; ok {
		return existing, nil
	}
	f.nextID++
	c.ID = fmt.Sprintf("conv-%d", f.nextID)
	f.convs[key] = c
	return c, nil
}

func (f *fakeConvRepo) ListForUser(ctx context.Context, userID string) ([]conversation.Conversation, error) {
	var out []conversation.Conversation
	for _, c := range f.convs {
		if c.Has(userID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeConvRepo) ListParticipants(ctx context.Context, conversationID string) ([]string, error) {
	for _, c := range f.convs {
		if c.ID == conversationID {
			return c.Participants(), nil
		}
	}
	return nil, nil
}

func (f *fakeConvRepo) TouchActivity(ctx context.Context, conversationID string, at time.Time) error {
	return nil
}

func (f *fakeConvRepo) SaveMessage(ctx context.Context, m conversation.Message) (conversation.Message, error) {
	if f.failSave {
		f.failSave = false
		return conversation.Message{}, errors.New("storage unavailable")
	}
	f.nextID++
	m.ID = fmt.Sprintf("msg-%d", f.nextID)
	f.messages[m.ConversationID] = append(f.messages[m.ConversationID], m)
	return m, nil
}

func (f *fakeConvRepo) ListMessages(ctx context.Context, conversationID string) ([]conversation.Message, error) {
	return f.messages[conversationID], nil
}

// newTestController wires a gateway against in-memory collaborators.
func newTestController(repo *fakeConvRepo, em Emitter) *PresenceSocketController {
	return &PresenceSocketController{
		Registry:          registryadapter.NewMemSessionRegistry(),
		Emit:              em,
		Logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
		Resolve:           convusecase.NewResolveConversationUseCase(repo),
		CreateOrResolve:   convusecase.NewCreateOrResolveConversationUseCase(repo),
		ListConversations: convusecase.NewListConversationsUseCase(repo),
		History:           convusecase.NewGetConversationHistoryUseCase(repo),
		Send:              convusecase.NewSendMessageUseCase(repo),
	}
}

func frame(t *testing.T, v any) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal frame: %v", err)
	}
	return raw
}
