package v1

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "go-linkup/internal/infrastructure/cache/port"
	identityport "go-linkup/internal/infrastructure/identity/port"
	queueport "go-linkup/internal/infrastructure/queue/port"
	"go-linkup/internal/infrastructure/realtime"
	friendhttp "go-linkup/internal/pkg/friend/presentation/http"
	registryport "go-linkup/internal/pkg/presence/persistence/registry/port"
	presencehttp "go-linkup/internal/pkg/presence/presentation/http"
)

// Deps bundles the shared infrastructure handed down to the route groups.
// Cache and Queue may be nil when Redis is not configured.
type Deps struct {
	Pool     *pgxpool.Pool
	Cache    cacheport.Cache
	Queue    queueport.Client
	Hub      *realtime.Hub
	Registry registryport.SessionRegistry
	Verifier identityport.Verifier
	Logger   *slog.Logger
}

// Register mounts all v1 routes on the engine.
func Register(engine *gin.Engine, deps Deps) {
	v1 := engine.Group("/api/v1")

	friendhttp.RegisterRoutes(v1, deps.Pool, deps.Cache, deps.Queue, deps.Verifier)
	presencehttp.RegisterRoutes(v1, deps.Pool, deps.Registry, deps.Hub, deps.Verifier, deps.Logger)
}
