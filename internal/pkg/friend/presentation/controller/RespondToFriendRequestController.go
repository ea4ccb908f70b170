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
	queueport "go-linkup/internal/infrastructure/queue/port"
	friend "go-linkup/internal/pkg/friend/application/domain"
	"go-linkup/internal/pkg/friend/application/usecase"
	repoAdapter "go-linkup/internal/pkg/friend/persistence/repository/adapter"
	"go-linkup/internal/pkg/presence/application/task"
)

// RespondToFriendRequestController accepts or declines a pending request.
type RespondToFriendRequestController struct {
	UC *usecase.RespondToFriendRequestUseCase
	Q  queueport.Client // optional
}

func NewRespondToFriendRequestController(pool *pgxpool.Pool, cache cacheport.Cache, q queueport.Client) *RespondToFriendRequestController {
	repo := repoAdapter.NewPgFriendRequestRepository(pool)
	return &RespondToFriendRequestController{UC: usecase.NewRespondToFriendRequestUseCase(repo, cache), Q: q}
}

type respondBody struct {
	Status string `json:"status" binding:"required"`
}

func (h *RespondToFriendRequestController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.Param("id")
		if requestID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "request id is required"})
			return
		}

		var body respondBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		req, err := h.UC.Execute(ctx, usecase.RespondToFriendRequestInput{
			RequestID: requestID,
			Status:    friend.Status(body.Status),
		})
		if err != nil {
			switch {
			case errors.Is(err, friend.ErrRequestNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "friend request not found"})
			case errors.Is(err, friend.ErrInvalidResponse):
				c.JSON(http.StatusBadRequest, gin.H{"error": "status must be accepted or declined"})
			case errors.Is(err, usecase.ErrPersistence):
				c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected persistence error"})
			default:
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			}
			return
		}

		h.notifyCreator(ctx, *req)

		c.JSON(http.StatusOK, gin.H{"id": req.ID, "status": req.Status})
	}
}

// notifyCreator pushes the response outcome to the request's creator.
func (h *RespondToFriendRequestController) notifyCreator(ctx context.Context, req friend.Request) {
	if h.Q == nil {
		return
	}
	payload, err := json.Marshal(task.FriendNotifyPayload{
		UserID:     req.CreatorID,
		Event:      "response",
		RequestID:  req.ID,
		FromUserID: req.ReceiverID,
		Status:     string(req.Status),
	})
	if err != nil {
		return
	}
	_, _ = h.Q.Enqueue(ctx, queueport.Task{Type: task.FriendNotifyTaskType, Payload: payload},
		queueport.EnqueueOption{Queue: "notify", MaxRetry: 3})
}
