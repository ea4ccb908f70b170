package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "go-linkup/internal/infrastructure/cache/port"
	"go-linkup/internal/infrastructure/identity/middleware"
	"go-linkup/internal/pkg/friend/application/usecase"
	repoAdapter "go-linkup/internal/pkg/friend/persistence/repository/adapter"
)

// GetFriendStatusController reports the viewer-relative relationship status
// with another user.
type GetFriendStatusController struct {
	UC *usecase.GetFriendStatusUseCase
}

func NewGetFriendStatusController(pool *pgxpool.Pool, cache cacheport.Cache) *GetFriendStatusController {
	repo := repoAdapter.NewPgFriendRequestRepository(pool)
	return &GetFriendStatusController{UC: usecase.NewGetFriendStatusUseCase(repo, cache)}
}

func (h *GetFriendStatusController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		otherID := c.Param("userId")
		if otherID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		status, err := h.UC.Execute(ctx, usecase.GetFriendStatusInput{
			ViewerID: middleware.UserID(c),
			OtherID:  otherID,
		})
		if err != nil {
			if errors.Is(err, usecase.ErrPersistence) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected persistence error"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": status})
	}
}
