package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	identityport "go-linkup/internal/infrastructure/identity/port"
	"go-linkup/internal/infrastructure/realtime"
	registryport "go-linkup/internal/pkg/presence/persistence/registry/port"
	"go-linkup/internal/pkg/presence/presentation/controller"
)

// RegisterRoutes exposes the websocket gateway. Credential verification
// happens inside the handler (query token or Authorization header) because
// browsers cannot set headers on websocket dials.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, reg registryport.SessionRegistry, hub *realtime.Hub, verifier identityport.Verifier, logger *slog.Logger) {
	socketCtl := controller.NewPresenceSocketController(pool, reg, hub, verifier, logger)
	g.GET("/presence/ws", socketCtl.Handle())
}
