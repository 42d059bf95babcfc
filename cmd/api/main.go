package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/uta-tic/tutoring-api/api/swagger"
	"github.com/uta-tic/tutoring-api/internal/handler"
	"github.com/uta-tic/tutoring-api/internal/middleware"
	"github.com/uta-tic/tutoring-api/internal/repository"
	"github.com/uta-tic/tutoring-api/internal/service"
	"github.com/uta-tic/tutoring-api/internal/store"
	"github.com/uta-tic/tutoring-api/pkg/cache"
	"github.com/uta-tic/tutoring-api/pkg/config"
	"github.com/uta-tic/tutoring-api/pkg/database"
	"github.com/uta-tic/tutoring-api/pkg/logger"
	corsmiddleware "github.com/uta-tic/tutoring-api/pkg/middleware/cors"
	reqidmiddleware "github.com/uta-tic/tutoring-api/pkg/middleware/requestid"
	"github.com/uta-tic/tutoring-api/pkg/secure"
	"github.com/uta-tic/tutoring-api/pkg/storage"
)

// @title UTA TIC Tutoring API
// @version 1.0.0
// @description Role-based academic tutoring platform
// @BasePath /api/v1
// @schemes http

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metricsSvc := service.NewMetricsService()

	var redisClient *redis.Client
	if cfg.Store.Backend == config.StoreBackendRedis || cfg.Stats.CacheEnabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect redis", "error", err)
		}
		defer redisClient.Close() //nolint:errcheck
	}

	medium, err := buildMedium(ctx, cfg, redisClient)
	if err != nil {
		logr.Sugar().Fatalw("failed to init store medium", "backend", cfg.Store.Backend, "error", err)
	}

	st := store.New(medium, metricsSvc.StoreObserver())
	validate := validator.New()
	hasher := secure.NewHasher(cfg.Auth.PasswordSecret, cfg.Auth.BcryptCost)

	userRepo := repository.NewUserRepository(st)
	sessionRepo := repository.NewSessionRepository(st)
	careerRepo := repository.NewCareerRepository(st)
	semesterRepo := repository.NewSemesterRepository(st)
	subjectRepo := repository.NewSubjectRepository(st)
	assignmentRepo := repository.NewAssignmentRepository(st)
	tutoringRepo := repository.NewTutoringRepository(st)
	messageRepo := repository.NewMessageRepository(st)
	notificationRepo := repository.NewNotificationRepository(st)
	periodRepo := repository.NewPeriodRepository(st)
	documentRepo := repository.NewDocumentRepository(st)
	reportRepo := repository.NewReportRepository(st)

	var cacheRepo service.CacheRepository
	if redisClient != nil {
		cacheRepo = repository.NewCacheRepository(redisClient)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Stats.CacheTTL, logr, cfg.Stats.CacheEnabled)

	notificationSvc := service.NewNotificationService(notificationRepo, userRepo, logr)
	authSvc := service.NewAuthService(userRepo, sessionRepo, hasher, validate, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      "tutoring-api",
	})
	userSvc := service.NewUserService(userRepo, notificationSvc, hasher, validate, logr)
	careerSvc := service.NewCareerService(careerRepo, validate, logr)
	semesterSvc := service.NewSemesterService(semesterRepo, validate, logr)
	subjectSvc := service.NewSubjectService(subjectRepo, notificationSvc, validate, logr)
	assignmentSvc := service.NewAssignmentService(assignmentRepo, userRepo, validate, logr)
	tutoringSvc := service.NewTutoringService(tutoringRepo, messageRepo, notificationSvc, validate, logr)
	statsSvc := service.NewStatsService(userRepo, tutoringRepo, cacheSvc, cfg.Stats.CacheTTL, logr)
	periodSvc := service.NewPeriodService(periodRepo, validate, logr)
	importSvc := service.NewImportService(userRepo, subjectRepo, careerRepo, semesterSvc, notificationSvc, hasher, validate, logr)

	documentFiles, err := storage.NewLocalStorage(cfg.Docs.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init document storage", "error", err)
	}
	documentSvc := service.NewDocumentService(documentRepo, documentFiles, notificationSvc, cfg.Docs.MaxFileSizeBytes, logr)

	// Report routes stay unmounted when the export pipeline is disabled.
	var reportsHandler *handler.ReportHandler
	if cfg.Reports.Enabled {
		reportFiles, err := storage.NewLocalStorage(cfg.Reports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to init report storage", "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Reports.SignedURLSecret, cfg.Reports.SignedURLTTL)
		reportSvc := service.NewReportService(reportRepo, userRepo, tutoringRepo, reportFiles, signer, notificationSvc, validate, logr, service.ReportConfig{
			Workers:         cfg.Reports.WorkerConcurrency,
			Retries:         cfg.Reports.WorkerRetries,
			CleanupInterval: cfg.Reports.CleanupInterval,
			FileTTL:         cfg.Reports.SignedURLTTL,
		})
		reportSvc.Start(ctx)
		defer reportSvc.Stop()
		reportsHandler = handler.NewReportHandler(reportSvc)
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, handler.Handlers{
		Auth:          handler.NewAuthHandler(authSvc),
		Users:         handler.NewUserHandler(userSvc),
		Careers:       handler.NewCareerHandler(careerSvc),
		Semesters:     handler.NewSemesterHandler(semesterSvc),
		Subjects:      handler.NewSubjectHandler(subjectSvc),
		Assignments:   handler.NewAssignmentHandler(assignmentSvc),
		Tutoring:      handler.NewTutoringHandler(tutoringSvc),
		Notifications: handler.NewNotificationHandler(notificationSvc),
		Documents:     handler.NewDocumentHandler(documentSvc, userSvc),
		Periods:       handler.NewPeriodHandler(periodSvc),
		Reports:       reportsHandler,
		Stats:         handler.NewStatsHandler(statsSvc, metricsSvc),
		Imports:       handler.NewImportHandler(importSvc),
	}, authSvc)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "store_backend", cfg.Store.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")
	if err := srv.Shutdown(context.Background()); err != nil {
		logr.Sugar().Warnw("shutdown incomplete", "error", err)
	}
}

func buildMedium(ctx context.Context, cfg *config.Config, redisClient *redis.Client) (store.Medium, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, err
		}
		medium := store.NewPostgresMedium(db)
		if err := medium.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return medium, nil
	case config.StoreBackendRedis:
		return store.NewRedisMedium(redisClient, "collections"), nil
	default:
		return store.NewFileMedium(cfg.Store.DataDir)
	}
}
