package controller

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"

	identityport "go-linkup/internal/infrastructure/identity/port"
	"go-linkup/internal/infrastructure/realtime"
	conversation "go-linkup/internal/pkg/conversation/application/domain"
	convusecase "go-linkup/internal/pkg/conversation/application/usecase"
	convadapter "go-linkup/internal/pkg/conversation/persistence/repository/adapter"
	presence "go-linkup/internal/pkg/presence/application/domain"
	registryport "go-linkup/internal/pkg/presence/persistence/registry/port"
)

const (
	readLimit        = 1 << 20 // 1MB
	pongWait         = 60 * time.Second
	inflightTimeout  = 5 * time.Second
	writeControlWait = 10 * time.Second
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Emitter is the delivery seam between the gateway and the hub. SendTo
// reports whether the payload reached a live connection; a false return is
// how deliveries to already-disconnected clients get dropped.
type Emitter interface {
	SendTo(connectionID string, payload []byte) bool
	SendToUser(userID string, payload []byte) int
}

// PresenceSocketController is the websocket gateway. It verifies the bearer
// credential once per connection, hydrates the client with its conversation
// list, then serves the frame protocol until the socket closes.
//
// Malformed and out-of-order client frames are dropped silently (debug log
// only); they never terminate the connection. Transient store failures are
// reported on the socket as error frames and the connection is kept.
type PresenceSocketController struct {
	Verifier identityport.Verifier
	Registry registryport.SessionRegistry
	Hub      *realtime.Hub
	Emit     Emitter
	Logger   *slog.Logger

	Resolve           *convusecase.ResolveConversationUseCase
	CreateOrResolve   *convusecase.CreateOrResolveConversationUseCase
	ListConversations *convusecase.ListConversationsUseCase
	History           *convusecase.GetConversationHistoryUseCase
	Send              *convusecase.SendMessageUseCase
}

func NewPresenceSocketController(pool *pgxpool.Pool, reg registryport.SessionRegistry, hub *realtime.Hub, verifier identityport.Verifier, logger *slog.Logger) *PresenceSocketController {
	if logger == nil {
		logger = slog.Default()
	}
	repo := convadapter.NewPgConversationRepository(pool)
	return &PresenceSocketController{
		Verifier:          verifier,
		Registry:          reg,
		Hub:               hub,
		Emit:              hub,
		Logger:            logger,
		Resolve:           convusecase.NewResolveConversationUseCase(repo),
		CreateOrResolve:   convusecase.NewCreateOrResolveConversationUseCase(repo),
		ListConversations: convusecase.NewListConversationsUseCase(repo),
		History:           convusecase.NewGetConversationHistoryUseCase(repo),
		Send:              convusecase.NewSendMessageUseCase(repo),
	}
}

// clientFrame is the single inbound envelope; which fields matter depends
// on Type.
type clientFrame struct {
	Type           string `json:"type"`
	FriendID       string `json:"friendId"`
	ConversationID string `json:"conversationId"`
	Body           string `json:"body"`
}

type conversationView struct {
	ID           string    `json:"id"`
	Participants []string  `json:"participants"`
	LastActivity time.Time `json:"lastActivity"`
}

type messageView struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	AuthorID       string    `json:"authorId"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (h *PresenceSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := c.Query("token")
		if credential == "" {
			credential = bearerToken(c.GetHeader("Authorization"))
		}

		identity, verifyErr := h.Verifier.Verify(c.Request.Context(), credential)

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.Logger.Warn("websocket upgrade failed", "error", err)
			return
		}

		// The socket is accepted before the credential verdict so the
		// client gets a close code rather than a failed dial.
		if verifyErr != nil {
			h.Logger.Warn("connection rejected", "error", verifyErr)
			msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "invalid credential")
			_ = ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeControlWait))
			_ = ws.Close()
			return
		}

		conn := realtime.NewConnection(identity.UserID, ws)
		h.Hub.Attach(conn)
		conn.Start()

		h.Logger.Info("connection opened", "connection_id", conn.ID, "user_id", identity.UserID)

		ctx, cancel := context.WithTimeout(context.Background(), inflightTimeout)
		h.hydrate(ctx, conn.ID, identity.UserID)
		cancel()

		h.readLoop(ws, conn)

		cleanup, cancel := context.WithTimeout(context.Background(), inflightTimeout)
		if err := h.Registry.Leave(cleanup, conn.ID); err != nil {
			h.Logger.Warn("registry leave on disconnect failed", "connection_id", conn.ID, "error", err)
		}
		cancel()
		h.Hub.Detach(conn)
		conn.Close(websocket.CloseNormalClosure, "client disconnected")

		h.Logger.Info("connection closed", "connection_id", conn.ID, "user_id", identity.UserID)
	}
}

func (h *PresenceSocketController) readLoop(ws *websocket.Conn, conn *realtime.Connection) {
	ws.SetReadLimit(readLimit)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.Logger.Debug("read loop ended", "connection_id", conn.ID, "error", err)
			}
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), inflightTimeout)
		h.dispatch(ctx, conn.ID, conn.UserID, raw)
		cancel()
	}
}

// dispatch routes one inbound frame. Unknown types and frames that fail to
// parse are ignored.
func (h *PresenceSocketController) dispatch(ctx context.Context, connID, userID string, raw []byte) {
	var f clientFrame
	if err := json.Unmarshal(raw, &f); err != nil {
		h.Logger.Debug("malformed frame ignored", "connection_id", connID, "error", err)
		return
	}

	switch f.Type {
	case "createConversation":
		h.handleCreateConversation(ctx, connID, userID, f)
	case "joinConversation":
		h.handleJoinConversation(ctx, connID, userID, f)
	case "sendMessage":
		h.handleSendMessage(ctx, connID, userID, f)
	case "leaveConversation":
		h.handleLeaveConversation(ctx, connID)
	default:
		h.Logger.Debug("unknown frame type ignored", "connection_id", connID, "type", f.Type)
	}
}

// hydrate pushes the user's conversation list, most recently active first.
func (h *PresenceSocketController) hydrate(ctx context.Context, connID, userID string) {
	convs, err := h.ListConversations.Execute(ctx, convusecase.ListConversationsInput{UserID: userID})
	if err != nil {
		h.storeError(connID, "could not load conversations", err)
		return
	}

	views := make([]conversationView, 0, len(convs))
	for _, c := range convs {
		views = append(views, conversationView{
			ID:           c.Conversation.ID,
			Participants: c.Participants,
			LastActivity: c.Conversation.LastActivity,
		})
	}
	h.emitTo(connID, gin.H{"type": "conversations", "conversations": views})
}

func (h *PresenceSocketController) handleCreateConversation(ctx context.Context, connID, userID string, f clientFrame) {
	if f.FriendID == "" {
		h.Logger.Debug("createConversation without friendId ignored", "connection_id", connID)
		return
	}

	_, err := h.CreateOrResolve.Execute(ctx, convusecase.CreateOrResolveConversationInput{
		UserID:   userID,
		FriendID: f.FriendID,
	})
	if err != nil {
		if errors.Is(err, convusecase.ErrPersistence) {
			h.storeError(connID, "could not create conversation", err)
			return
		}
		h.Logger.Debug("createConversation rejected", "connection_id", connID, "error", err)
		return
	}

	// Refresh the client's list so the new conversation shows up at once.
	h.hydrate(ctx, connID, userID)
}

func (h *PresenceSocketController) handleJoinConversation(ctx context.Context, connID, userID string, f clientFrame) {
	if f.FriendID == "" {
		h.Logger.Debug("joinConversation without friendId ignored", "connection_id", connID)
		return
	}

	conv, err := h.Resolve.Execute(ctx, convusecase.ResolveConversationInput{
		UserID:   userID,
		FriendID: f.FriendID,
	})
	if err != nil {
		if errors.Is(err, convusecase.ErrPersistence) {
			h.storeError(connID, "could not join conversation", err)
		}
		return
	}
	if conv == nil {
		// Join for a pair with no conversation yet: nothing to focus on.
		h.Logger.Warn("join for unknown conversation ignored", "connection_id", connID, "user_id", userID, "friend_id", f.FriendID)
		return
	}

	if err := h.Registry.Join(ctx, presence.ActiveSession{
		ConnectionID:   connID,
		UserID:         userID,
		ConversationID: conv.ID,
	}); err != nil {
		h.storeError(connID, "could not join conversation", err)
		return
	}

	msgs, err := h.History.Execute(ctx, convusecase.GetConversationHistoryInput{ConversationID: conv.ID})
	if err != nil {
		h.storeError(connID, "could not load message history", err)
		return
	}
	h.emitTo(connID, gin.H{
		"type":           "messages",
		"conversationId": conv.ID,
		"messages":       messageViews(msgs),
	})
}

func (h *PresenceSocketController) handleSendMessage(ctx context.Context, connID, userID string, f clientFrame) {
	if f.ConversationID == "" || f.Body == "" {
		// Send before join, or an empty body. Dropped by design of the
		// frame protocol rather than answered with an error.
		h.Logger.Debug("sendMessage with missing fields ignored", "connection_id", connID)
		return
	}

	msg, err := h.Send.Execute(ctx, convusecase.SendMessageInput{
		ConversationID: f.ConversationID,
		AuthorID:       userID,
		Body:           f.Body,
	})
	if err != nil {
		if errors.Is(err, convusecase.ErrPersistence) {
			h.storeError(connID, "could not send message", err)
			return
		}
		h.Logger.Debug("sendMessage rejected", "connection_id", connID, "error", err)
		return
	}

	sessions, err := h.Registry.ActiveForConversation(ctx, msg.ConversationID)
	if err != nil {
		// The message is already persisted; recipients will see it on
		// their next join. Only the fan-out failed.
		h.Logger.Error("active session lookup failed", "conversation_id", msg.ConversationID, "error", err)
		return
	}

	payload, err := json.Marshal(gin.H{
		"type":           "newMessage",
		"conversationId": msg.ConversationID,
		"message":        messageView{ID: msg.ID, ConversationID: msg.ConversationID, AuthorID: msg.AuthorID, Body: msg.Body, CreatedAt: msg.CreatedAt},
	})
	if err != nil {
		h.Logger.Error("frame marshal failed", "error", err)
		return
	}

	for _, s := range sessions {
		if !h.Emit.SendTo(s.ConnectionID, payload) {
			h.Logger.Debug("delivery to gone connection dropped", "connection_id", s.ConnectionID)
		}
	}
}

func (h *PresenceSocketController) handleLeaveConversation(ctx context.Context, connID string) {
	if err := h.Registry.Leave(ctx, connID); err != nil {
		h.Logger.Warn("registry leave failed", "connection_id", connID, "error", err)
	}
}

// storeError reports a transient failure on the socket without closing it.
func (h *PresenceSocketController) storeError(connID, msg string, err error) {
	h.Logger.Error(msg, "connection_id", connID, "error", err)
	h.emitTo(connID, gin.H{"type": "error", "error": msg})
}

func (h *PresenceSocketController) emitTo(connID string, frame any) {
	payload, err := json.Marshal(frame)
	if err != nil {
		h.Logger.Error("frame marshal failed", "error", err)
		return
	}
	if !h.Emit.SendTo(connID, payload) {
		h.Logger.Debug("delivery to gone connection dropped", "connection_id", connID)
	}
}

func messageViews(msgs []conversation.Message) []messageView {
	out := make([]messageView, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, messageView{
			ID:             m.ID,
			ConversationID: m.ConversationID,
			AuthorID:       m.AuthorID,
			Body:           m.Body,
			CreatedAt:      m.CreatedAt,
		})
	}
	return out
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}
