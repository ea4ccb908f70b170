package task

import (
	"context"
	"encoding/json"
	"log/slog"

	qport "go-linkup/internal/infrastructure/queue/port"
	"go-linkup/internal/infrastructure/realtime"
)

// FriendNotifyTaskType is the queue task name for pushing a friend-request
// event to a user's live connections.
const FriendNotifyTaskType = "friend:notify"

// FriendNotifyPayload is the JSON payload transported via the queue. Kept
// decoupled from domain types to avoid coupling to their tags.
type FriendNotifyPayload struct {
	UserID     string `json:"userId"` // notification recipient
	Event      string `json:"event"`  // "request" or "response"
	RequestID  string `json:"requestId"`
	FromUserID string `json:"fromUserId"`
	Status     string `json:"status"`
}

type friendRequestFrame struct {
	Type       string `json:"type"`
	Event      string `json:"event"`
	RequestID  string `json:"requestId"`
	FromUserID string `json:"fromUserId"`
	Status     string `json:"status"`
}

// RegisterFriendNotifyTask binds the task handler to the provided server.
// Delivery is best effort: a recipient with no live connections is not an
// error, and the task is not retried for that reason.
func RegisterFriendNotifyTask(srv qport.Server, hub *realtime.Hub, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	srv.Register(FriendNotifyTaskType, func(ctx context.Context, t qport.Task) error {
		var p FriendNotifyPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// Malformed payload: retrying cannot help.
			return err
		}

		frame := friendRequestFrame{
			Type:       "friendRequest",
			Event:      p.Event,
			RequestID:  p.RequestID,
			FromUserID: p.FromUserID,
			Status:     p.Status,
		}
		payload, err := json.Marshal(frame)
		if err != nil {
			return err
		}

		delivered := hub.SendToUser(p.UserID, payload)
		logger.Debug("friend notification delivered",
			"user_id", p.UserID, "event", p.Event, "connections", delivered)
		return nil
	})
}
