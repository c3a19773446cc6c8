package main

import (
	"fmt"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/getplume/plume"
	"github.com/getplume/plume/api"
	"github.com/getplume/plume/blob"
	"github.com/getplume/plume/config"
	"github.com/getplume/plume/identity"
	"github.com/getplume/plume/logger"
	"github.com/getplume/plume/pgorm"
	"github.com/getplume/plume/policy"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger.InitLogger(cfg.LogLevel)
	defer logger.Log.Sync()

	logger.Log.Info("Starting Plume API",
		zap.Int("port", cfg.Port),
		zap.String("db_type", cfg.DBType),
	)

	repo, err := pgorm.NewStorage(cfg.DBType, cfg.DSN, nil)
	if err != nil {
		logger.Log.Fatal("failed to initialize storage", zap.Error(err))
	}

	blobs, err := blob.NewDiskStore(cfg.MediaDir)
	if err != nil {
		logger.Log.Fatal("failed to initialize blob store", zap.Error(err))
	}

	var cache policy.DecisionCache
	if cfg.RedisAddr != "" {
		cache = policy.NewRedisCache(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	}
	engine := plume.NewAuditedEngine(repo.DB(), cache, cfg.PolicyCacheTTL)

	services := plume.NewServices(repo.DB(), engine)
	provider := identity.NewJWTProvider(cfg.JWTSecret, repo)

	h := api.NewHandler(
		services.Posts,
		services.Comments,
		services.Groups,
		services.Follows,
		provider,
		blobs,
	)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	g := e.Group("/api/v1")
	h.RegisterRoutes(g)

	logger.Log.Info("Server is starting", zap.Int("port", cfg.Port))
	if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		logger.Log.Fatal("server failed to start", zap.Error(err))
	}
}
