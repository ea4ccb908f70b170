package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "go-linkup/internal/infrastructure/cache/port"
	"go-linkup/internal/infrastructure/identity/middleware"
	queueport "go-linkup/internal/infrastructure/queue/port"
	friend "go-linkup/internal/pkg/friend/application/domain"
	"go-linkup/internal/pkg/friend/application/usecase"
	repoAdapter "go-linkup/internal/pkg/friend/persistence/repository/adapter"
	"go-linkup/internal/pkg/presence/application/task"
)

// SendFriendRequestController handles friend-request creation (one
// controller per endpoint).
type SendFriendRequestController struct {
	UC *usecase.SendFriendRequestUseCase
	Q  queueport.Client // optional; nil disables live notification
}

func NewSendFriendRequestController(pool *pgxpool.Pool, cache cacheport.Cache, q queueport.Client) *SendFriendRequestController {
	repo := repoAdapter.NewPgFriendRequestRepository(pool)
	return &SendFriendRequestController{UC: usecase.NewSendFriendRequestUseCase(repo, cache), Q: q}
}

type sendFriendRequestBody struct {
	ReceiverID string `json:"receiverId" binding:"required"`
}

func (h *SendFriendRequestController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body sendFriendRequestBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		creatorID := middleware.UserID(c)
		req, err := h.UC.Execute(ctx, usecase.SendFriendRequestInput{
			CreatorID:  creatorID,
			ReceiverID: body.ReceiverID,
		})
		if err != nil {
			// Business-rule violations are payloads, not transport errors.
			switch {
			case errors.Is(err, friend.ErrSelfRequest):
				c.JSON(http.StatusOK, gin.H{"error": "It is not possible to add yourself!"})
			case errors.Is(err, friend.ErrDuplicateRequest):
				c.JSON(http.StatusOK, gin.H{"error": "A friend request has already been sent or received on your account!"})
			case errors.Is(err, usecase.ErrPersistence):
				c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected persistence error"})
			default:
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			}
			return
		}

		h.notifyReceiver(ctx, *req)

		c.JSON(http.StatusCreated, gin.H{
			"id":         req.ID,
			"creatorId":  req.CreatorID,
			"receiverId": req.ReceiverID,
			"status":     req.Status,
			"createdAt":  req.CreatedAt,
		})
	}
}

// notifyReceiver enqueues a live push to the receiver. Best effort: the
// request is already persisted, so enqueue failures are swallowed.
func (h *SendFriendRequestController) notifyReceiver(ctx context.Context, req friend.Request) {
	if h.Q == nil {
		return
	}
	payload, err := json.Marshal(task.FriendNotifyPayload{
		UserID:     req.ReceiverID,
		Event:      "request",
		RequestID:  req.ID,
		FromUserID: req.CreatorID,
		Status:     string(req.Status),
	})
	if err != nil {
		return
	}
	_, _ = h.Q.Enqueue(ctx, queueport.Task{Type: task.FriendNotifyTaskType, Payload: payload},
		queueport.EnqueueOption{Queue: "notify", MaxRetry: 3})
}
