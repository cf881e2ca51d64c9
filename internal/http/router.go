package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/mjayaraman27/eduhub/internal/auth"
	"github.com/mjayaraman27/eduhub/internal/cache"
	"github.com/mjayaraman27/eduhub/internal/config"
	"github.com/mjayaraman27/eduhub/internal/http/handlers"
	"github.com/mjayaraman27/eduhub/internal/http/middlewares"
	"github.com/mjayaraman27/eduhub/internal/observability"
	mongorepo "github.com/mjayaraman27/eduhub/internal/repo/mongo"
)

// UsersStore is the full user surface the router needs: signup writes,
// login and the auth middleware read.
type UsersStore interface {
	handlers.UserReader
	handlers.UserWriter
}

// Stores groups the data dependencies of the API. The mongo repos satisfy
// it in production, the memory repos in tests.
type Stores struct {
	Users     UsersStore
	Subjects  handlers.SubjectsReader
	Materials handlers.MaterialsStore
}

const catalogCacheTTL = 30 * time.Second

// NewRouter wires the API against mongo-backed stores.
func NewRouter(log *slog.Logger, db *mongo.Database, rdb *cache.Redis, prom *observability.Prom, cfg config.Config) *gin.Engine {
	stores := Stores{
		Users:     mongorepo.NewUsersRepo(db, prom),
		Subjects:  mongorepo.NewSubjectsRepo(db, prom),
		Materials: mongorepo.NewMaterialsRepo(db, prom),
	}

	ping := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		if err := db.Client().Ping(ctx, readpref.Primary()); err != nil {
			return err
		}
		if rdb != nil {
			return rdb.Ping(ctx)
		}
		return nil
	}

	return NewRouterWithStores(log, stores, rdb, prom, cfg, ping)
}

// NewRouterWithStores wires the API against caller-provided stores and a
// readiness probe. A nil ping means always ready.
func NewRouterWithStores(log *slog.Logger, stores Stores, rdb *cache.Redis, prom *observability.Prom, cfg config.Config, ping func() error) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	r.Use(middlewares.RequireJSON())
	r.Use(middlewares.MaxBodyBytes(1 << 20))
	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware("eduhub-api"))
	}
	if prom != nil {
		r.Use(prom.GinMiddleware())
	}

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.AccessTokenTTL())
	requireAuth := middlewares.NewAuthMiddleware(jwtManager, stores.Users, log).RequireAuth()

	authHandler := handlers.NewAuthHandler(stores.Users, stores.Users, jwtManager, prom)
	subjectsHandler := handlers.NewSubjectsHandlerWithCache(stores.Subjects, cache.New(catalogCacheTTL), rdb)
	materialsHandler := handlers.NewMaterialsHandler(stores.Materials, stores.Subjects)
	healthHandler := handlers.NewHealthHandler(ping)

	r.GET("/", handlers.Root)
	r.GET("/healthz", healthHandler.Healthz)
	r.GET("/readyz", healthHandler.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/docs", handlers.SwaggerUI)
	r.StaticFile("/docs/openapi.yaml", "./docs/openapi.yaml")

	r.GET("/api/health", healthHandler.APIHealth)

	r.POST("/api/auth/signup", authHandler.Signup)
	r.POST("/api/auth/login", authHandler.Login)
	r.GET("/api/auth/me", requireAuth, authHandler.Me)

	r.GET("/api/subjects", subjectsHandler.ListSubjects)
	r.GET("/api/subjects/:id", subjectsHandler.GetSubjectByID)
	r.GET("/api/subjects/:id/materials", materialsHandler.ListSubjectMaterials)

	r.POST("/api/materials", requireAuth, materialsHandler.CreateMaterial)

	return r
}
