package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/dreamstars/feedback-api/api/swagger"
	"github.com/dreamstars/feedback-api/internal/handler"
	"github.com/dreamstars/feedback-api/internal/middleware"
	"github.com/dreamstars/feedback-api/internal/repository"
	"github.com/dreamstars/feedback-api/internal/service"
	"github.com/dreamstars/feedback-api/internal/store"
	"github.com/dreamstars/feedback-api/pkg/cache"
	"github.com/dreamstars/feedback-api/pkg/config"
	"github.com/dreamstars/feedback-api/pkg/database"
	"github.com/dreamstars/feedback-api/pkg/logger"
	corsmiddleware "github.com/dreamstars/feedback-api/pkg/middleware/cors"
	reqidmiddleware "github.com/dreamstars/feedback-api/pkg/middleware/requestid"
	"github.com/dreamstars/feedback-api/pkg/storage"
)

// @title Dream Stars Feedback API
// @version 1.0.0
// @description Parent feedback dashboard backend
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx := context.Background()

	snapshots, cleanup, err := buildSnapshotRepository(ctx, cfg)
	if err != nil {
		logr.Sugar().Fatalw("failed to init snapshot backend", "backend", cfg.Snapshot.Backend, "error", err)
	}
	defer cleanup()

	st := store.New(snapshots, logr)
	if err := st.Init(ctx, cfg.Feedback.Seed); err != nil {
		logr.Sugar().Fatalw("failed to load collections", "error", err)
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Analytics.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, analytics cache disabled", "error", err)
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Analytics.CacheTTL, logr, cacheRepo != nil)

	adminHash, err := service.HashPassword(cfg.Auth.AdminPassword)
	if err != nil {
		logr.Sugar().Fatalw("failed to hash admin password", "error", err)
	}
	authSvc := service.NewAuthService(st, validate, logr, service.AuthConfig{
		Secret:            cfg.JWT.Secret,
		TokenExpiry:       cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
		AdminEmail:        cfg.Auth.AdminEmail,
		AdminPasswordHash: adminHash,
	})

	questionSvc := service.NewQuestionService(st, validate, logr, cfg.Feedback.PageSize)
	parentSvc := service.NewParentService(st, cacheSvc, validate, logr, service.ParentConfig{
		PageSize:        cfg.Feedback.PageSize,
		StudentIDPrefix: cfg.Feedback.StudentIDPrefix,
	})
	feedbackSvc := service.NewFeedbackService(st, cacheSvc, validate, logr, cfg.Feedback.PageSize)
	analyticsSvc := service.NewAnalyticsService(st, cacheSvc, logr)

	files, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init export storage", "dir", cfg.Exports.StorageDir, "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
	exportSvc := service.NewExportService(st, analyticsSvc, files, signer, validate, logr, service.ExportConfig{
		APIPrefix: cfg.APIPrefix,
	})

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	handler.RegisterRoutes(r, handler.RouterDeps{
		APIPrefix:   cfg.APIPrefix,
		Auth:        handler.NewAuthHandler(authSvc),
		Questions:   handler.NewQuestionHandler(questionSvc),
		Parents:     handler.NewParentHandler(parentSvc),
		Feedback:    handler.NewFeedbackHandler(feedbackSvc),
		Analytics:   handler.NewAnalyticsHandler(analyticsSvc),
		Exports:     handler.NewExportHandler(exportSvc),
		Metrics:     handler.NewMetricsHandler(metricsSvc, st),
		AuthService: authSvc,
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "snapshot_backend", cfg.Snapshot.Backend)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// buildSnapshotRepository selects the persistence backend for the record
// store. The returned cleanup closes any underlying connection.
func buildSnapshotRepository(ctx context.Context, cfg *config.Config) (repository.SnapshotRepository, func(), error) {
	noop := func() {}

	switch cfg.Snapshot.Backend {
	case config.SnapshotBackendMemory:
		return repository.NewMemorySnapshotRepository(), noop, nil
	case config.SnapshotBackendFile:
		repo, err := repository.NewFileSnapshotRepository(cfg.Snapshot.Dir)
		if err != nil {
			return nil, noop, err
		}
		return repo, noop, nil
	case config.SnapshotBackendPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, noop, err
		}
		repo := repository.NewPostgresSnapshotRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		return repo, func() { _ = db.Close() }, nil
	case config.SnapshotBackendRedis:
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		return repository.NewRedisSnapshotRepository(client), func() { _ = client.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unknown snapshot backend %q", cfg.Snapshot.Backend)
	}
}
