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

// ListFriendsController lists the caller's accepted friends as ids.
type ListFriendsController struct {
	UC *usecase.ListFriendsUseCase
}

func NewListFriendsController(pool *pgxpool.Pool) *ListFriendsController {
	repo := repoAdapter.NewPgFriendRequestRepository(pool)
	return &ListFriendsController{UC: usecase.NewListFriendsUseCase(repo)}
}

func (h *ListFriendsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		ids, err := h.UC.Execute(ctx, usecase.ListFriendsInput{ViewerID: middleware.UserID(c)})
		if err != nil {
			if errors.Is(err, usecase.ErrPersistence) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected persistence error"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"friends": ids})
	}
}
