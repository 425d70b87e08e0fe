package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/codevaulthq/codevault/adapters/event"
	httpAdapter "github.com/codevaulthq/codevault/adapters/http"
	"github.com/codevaulthq/codevault/adapters/llm"
	"github.com/codevaulthq/codevault/adapters/media_storage"
	"github.com/codevaulthq/codevault/adapters/persistence"
	"github.com/codevaulthq/codevault/internal/application/service"
	aiUC "github.com/codevaulthq/codevault/internal/application/usecase/ai"
	authUC "github.com/codevaulthq/codevault/internal/application/usecase/auth"
	commentUC "github.com/codevaulthq/codevault/internal/application/usecase/comment"
	profileUC "github.com/codevaulthq/codevault/internal/application/usecase/profile"
	projectUC "github.com/codevaulthq/codevault/internal/application/usecase/project"
	"github.com/codevaulthq/codevault/internal/config"
	"github.com/codevaulthq/codevault/pkg/auth"
	"github.com/codevaulthq/codevault/pkg/logger"
	"github.com/codevaulthq/codevault/pkg/tracing"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting CodeVault API Server...")

	if cfg.Jaeger.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "codevault-api")
		if err != nil {
			appLogger.Warn("tracing disabled", zap.Error(err))
		} else {
			defer tp.Shutdown(context.Background())
		}
	}

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	// Optional infrastructure. A missing provider disables its feature, it
	// never takes the server down.
	var catalogCache service.CatalogCache
	if cfg.RedisEnabled() {
		redisClient, err := persistence.NewRedisClient(cfg)
		if err != nil {
			appLogger.Warn("catalog cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			catalogCache = persistence.NewRedisCatalogCache(redisClient, appLogger)
		}
	}

	var events service.EventPublisher
	if cfg.KafkaEnabled() {
		kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
		if err != nil {
			appLogger.Warn("event publishing disabled", zap.Error(err))
		} else {
			defer kafkaClient.Close()
			events = kafkaClient
		}
	}

	var summarizer service.Summarizer
	if cfg.AIEnabled() {
		summarizer, err = llm.NewOpenAIAdapter(cfg, appLogger)
		if err != nil {
			appLogger.Warn("ai summarization disabled", zap.Error(err))
		}
	}

	var uploader service.Uploader
	if cfg.CloudinaryEnabled() {
		uploader, err = media_storage.NewCloudinaryAdapter(cfg, appLogger)
		if err != nil {
			appLogger.Warn("avatar upload disabled", zap.Error(err))
		}
	}

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool)
	projectRepo := persistence.NewPostgresProjectRepo(dbPool, appLogger)
	commentRepo := persistence.NewPostgresCommentRepo(dbPool)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	if !jwtSvc.Initialized() {
		appLogger.Warn("JWT_SECRET is empty: authenticated routes will refuse requests")
	}

	// Use Cases
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	signupUseCase := authUC.NewSignupUseCase(userRepo, jwtSvc, appLogger)
	googleLoginUseCase := authUC.NewGoogleLoginUseCase(cfg, userRepo, jwtSvc, appLogger)
	sessionUseCase := authUC.NewEstablishSessionUseCase(jwtSvc)
	profileUseCase := profileUC.NewProfileUseCase(profileRepo, userRepo, uploader, appLogger)
	createProjectUseCase := projectUC.NewCreateProjectUseCase(projectRepo, userRepo, summarizer, events, catalogCache, appLogger)
	listProjectsUseCase := projectUC.NewListProjectsUseCase(projectRepo, catalogCache, appLogger)
	getProjectUseCase := projectUC.NewGetProjectUseCase(projectRepo)
	updateProjectUseCase := projectUC.NewUpdateProjectUseCase(projectRepo, events, catalogCache, appLogger)
	deleteProjectUseCase := projectUC.NewDeleteProjectUseCase(projectRepo, events, catalogCache, appLogger)
	upvoteProjectUseCase := projectUC.NewUpvoteProjectUseCase(projectRepo, profileRepo, events, catalogCache, appLogger)
	listMyProjectsUseCase := projectUC.NewListMyProjectsUseCase(projectRepo)
	commentUseCase := commentUC.NewCommentUseCase(commentRepo, projectRepo, userRepo, events, appLogger)
	summarizeUseCase := aiUC.NewSummarizeUseCase(summarizer, appLogger)

	// HTTP Handlers
	router := httpAdapter.NewRouter(httpAdapter.RouterDeps{
		AuthHandler:    httpAdapter.NewAuthHandler(loginUseCase, signupUseCase, googleLoginUseCase, cfg.App.Env),
		SessionHandler: httpAdapter.NewSessionHandler(sessionUseCase, cfg.App.Env),
		ProfileHandler: httpAdapter.NewProfileHandler(profileUseCase, appLogger),
		ProjectHandler: httpAdapter.NewProjectHandler(
			createProjectUseCase,
			listProjectsUseCase,
			getProjectUseCase,
			updateProjectUseCase,
			deleteProjectUseCase,
			upvoteProjectUseCase,
			listMyProjectsUseCase,
			appLogger,
		),
		CommentHandler: httpAdapter.NewCommentHandler(commentUseCase),
		AIHandler:      httpAdapter.NewAIHandler(summarizeUseCase),
		JWTService:     jwtSvc,
		Logger:         appLogger,
	})

	appLogger.Info("Server running", zap.String("port", cfg.App.Port))
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("Cannot run server", err)
	}
}
