package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "go-linkup/internal/infrastructure/cache/port"
	"go-linkup/internal/infrastructure/identity/middleware"
	identityport "go-linkup/internal/infrastructure/identity/port"
	queueport "go-linkup/internal/infrastructure/queue/port"
	"go-linkup/internal/pkg/friend/presentation/controller"
)

// RegisterRoutes registers the friend-relationship endpoints under the
// given router group. All routes require a verified bearer credential.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, cache cacheport.Cache, q queueport.Client, verifier identityport.Verifier) {
	sendCtl := controller.NewSendFriendRequestController(pool, cache, q)
	statusCtl := controller.NewGetFriendStatusController(pool, cache)
	incomingCtl := controller.NewListIncomingRequestsController(pool)
	respondCtl := controller.NewRespondToFriendRequestController(pool, cache, q)
	friendsCtl := controller.NewListFriendsController(pool)

	friends := g.Group("/friends", middleware.Bearer(verifier))

	friends.POST("/requests", sendCtl.Handle())
	friends.GET("/requests/status/:userId", statusCtl.Handle())
	friends.GET("/requests/incoming", incomingCtl.Handle())
	friends.PUT("/requests/:id/respond", respondCtl.Handle())
	friends.GET("", friendsCtl.Handle())
}
