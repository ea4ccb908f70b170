package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-linkup/internal/infrastructure/identity/middleware"
	"go-linkup/internal/pkg/friend/application/usecase"
	repoAdapter "go-linkup/internal/pkg/friend/persistence/repository/adapter"
)

// ListIncomingRequestsController lists requests addressed to the caller,
// every status included; the client filters for display.
type ListIncomingRequestsController struct {
	UC *usecase.ListIncomingRequestsUseCase
}

func NewListIncomingRequestsController(pool *pgxpool.Pool) *ListIncomingRequestsController {
	repo := repoAdapter.NewPgFriendRequestRepository(pool)
	return &ListIncomingRequestsController{UC: usecase.NewListIncomingRequestsUseCase(repo)}
}

func (h *ListIncomingRequestsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		reqs, err := h.UC.Execute(ctx, usecase.ListIncomingRequestsInput{
			ViewerID: middleware.UserID(c),
		})
		if err != nil {
			if errors.Is(err, usecase.ErrPersistence) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected persistence error"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		out := make([]gin.H, 0, len(reqs))
		for _, r := range reqs {
			out = append(out, gin.H{
				"id":         r.ID,
				"creatorId":  r.CreatorID,
				"receiverId": r.ReceiverID,
				"status":     r.Status,
				"createdAt":  r.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, gin.H{"requests": out})
	}
}
