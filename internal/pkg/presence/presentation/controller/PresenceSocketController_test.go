package controller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageFanOutReachesOnlyJoinedConnections(t *testing.T) {
	repo := newFakeConvRepo()
	conv := repo.seed(t, "adam", "zoe")

	em := newFakeEmitter()
	ctl := newTestController(repo, em)
	ctx := context.Background()

	// adam and zoe join the conversation; carol is connected but never joins.
	ctl.dispatch(ctx, "conn-a", "adam", frame(t, map[string]string{"type": "joinConversation", "friendId": "zoe"}))
	ctl.dispatch(ctx, "conn-z", "zoe", frame(t, map[string]string{"type": "joinConversation", "friendId": "adam"}))

	ctl.dispatch(ctx, "conn-a", "adam", frame(t, map[string]string{
		"type": "sendMessage", "conversationId": conv.ID, "body": "hi",
	}))

	zoeNew := em.framesOfType(t, "conn-z", "newMessage")
	require.Len(t, zoeNew, 1)
	msg := zoeNew[0]["message"].(map[string]any)
	assert.Equal(t, "hi", msg["body"])
	assert.Equal(t, "adam", msg["authorId"])

	// The sender's own joined connection gets the echo too.
	assert.Len(t, em.framesOfType(t, "conn-a", "newMessage"), 1)

	// carol never joined, so she receives nothing.
	assert.Empty(t, em.frames["conn-c"])
}

func TestJoinPushesHistory(t *testing.T) {
	repo := newFakeConvRepo()
	conv := repo.seed(t, "adam", "zoe")

	em := newFakeEmitter()
	ctl := newTestController(repo, em)
	ctx := context.Background()

	ctl.dispatch(ctx, "conn-a", "adam", frame(t, map[string]string{"type": "joinConversation", "friendId": "zoe"}))
	ctl.dispatch(ctx, "conn-a", "adam", frame(t, map[string]string{
		"type": "sendMessage", "conversationId": conv.ID, "body": "hi",
	}))

	// zoe joins after the message was sent and gets it as history.
	ctl.dispatch(ctx, "conn-z", "zoe", frame(t, map[string]string{"type": "joinConversation", "friendId": "adam"}))

	history := em.framesOfType(t, "conn-z", "messages")
	require.Len(t, history, 1)
	msgs := history[0]["messages"].([]any)
	require.Len(t, msgs, 1)
	assert.Equal(t, "hi", msgs[0].(map[string]any)["body"])
}

func TestSendBeforeJoinIsSilentlyIgnored(t *testing.T) {
	repo := newFakeConvRepo()
	repo.seed(t, "adam", "zoe")

	em := newFakeEmitter()
	ctl := newTestController(repo, em)

	// No conversationId yet because the client never joined.
	ctl.dispatch(context.Background(), "conn-a", "adam", frame(t, map[string]string{
		"type": "sendMessage", "body": "hi",
	}))

	assert.Empty(t, em.frames["conn-a"])
	assert.Empty(t, repo.messages)
}

func TestJoinForUnknownPairIsIgnored(t *testing.T) {
	repo := newFakeConvRepo()
	em := newFakeEmitter()
	ctl := newTestController(repo, em)

	ctl.dispatch(context.Background(), "conn-a", "adam", frame(t, map[string]string{
		"type": "joinConversation", "friendId": "stranger",
	}))

	assert.Empty(t, em.frames["conn-a"])

	sessions, err := ctl.Registry.ActiveForConversation(context.Background(), "conv-1")
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestMalformedAndUnknownFramesAreDropped(t *testing.T) {
	repo := newFakeConvRepo()
	em := newFakeEmitter()
	ctl := newTestController(repo, em)
	ctx := context.Background()

	ctl.dispatch(ctx, "conn-a", "adam", []byte("{not json"))
	ctl.dispatch(ctx, "conn-a", "adam", frame(t, map[string]string{"type": "selfDestruct"}))

	assert.Empty(t, em.frames["conn-a"])
}

func TestStoreFailureYieldsErrorFrameAndKeepsConnection(t *testing.T) {
	repo := newFakeConvRepo()
	conv := repo.seed(t, "adam", "zoe")

	em := newFakeEmitter()
	ctl := newTestController(repo, em)
	ctx := context.Background()

	ctl.dispatch(ctx, "conn-a", "adam", frame(t, map[string]string{"type": "joinConversation", "friendId": "zoe"}))

	repo.failSave = true
	ctl.dispatch(ctx, "conn-a", "adam", frame(t, map[string]string{
		"type": "sendMessage", "conversationId": conv.ID, "body": "hi",
	}))

	errFrames := em.framesOfType(t, "conn-a", "error")
	require.Len(t, errFrames, 1)
	assert.Empty(t, em.framesOfType(t, "conn-a", "newMessage"))

	// The connection stays usable: the next send goes through.
	ctl.dispatch(ctx, "conn-a", "adam", frame(t, map[string]string{
		"type": "sendMessage", "conversationId": conv.ID, "body": "hi again",
	}))
	assert.Len(t, em.framesOfType(t, "conn-a", "newMessage"), 1)
}

func TestCreateConversationRefreshesList(t *testing.T) {
	repo := newFakeConvRepo()
	em := newFakeEmitter()
	ctl := newTestController(repo, em)

	ctl.dispatch(context.Background(), "conn-a", "adam", frame(t, map[string]string{
		"type": "createConversation", "friendId": "zoe",
	}))

	lists := em.framesOfType(t, "conn-a", "conversations")
	require.Len(t, lists, 1)
	convs := lists[0]["conversations"].([]any)
	require.Len(t, convs, 1)
	assert.ElementsMatch(t, []any{"adam", "zoe"}, convs[0].(map[string]any)["participants"])
}

func TestLeaveConversationClearsSession(t *testing.T) {
	repo := newFakeConvRepo()
	conv := repo.seed(t, "adam", "zoe")

	em := newFakeEmitter()
	ctl := newTestController(repo, em)
	ctx := context.Background()

	ctl.dispatch(ctx, "conn-a", "adam", frame(t, map[string]string{"type": "joinConversation", "friendId": "zoe"}))
	ctl.dispatch(ctx, "conn-a", "adam", frame(t, map[string]string{"type": "leaveConversation"}))

	sessions, err := ctl.Registry.ActiveForConversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}
