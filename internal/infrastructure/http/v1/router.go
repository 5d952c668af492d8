// Package v1 provides HTTP API version 1.
package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"quizbank/internal/core/id"
	"quizbank/internal/core/security"
	"quizbank/internal/domain/audit"
	"quizbank/internal/domain/auth"
	"quizbank/internal/domain/cascade"
	"quizbank/internal/domain/practice"
	"quizbank/internal/domain/question"
	"quizbank/internal/domain/revision"
	"quizbank/internal/domain/topic"
	"quizbank/internal/domain/translation"
	"quizbank/internal/domain/user"
	"quizbank/internal/domain/userquestion"
	"quizbank/internal/infrastructure/http/v1/handlers"
	"quizbank/internal/infrastructure/http/v1/middleware"
	"quizbank/internal/infrastructure/storage/postgres"
	"quizbank/internal/infrastructure/storage/postgres/entity_repo"
	"quizbank/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (health checks).
	Pool *postgres.Pool

	// TxManager carries transactions through request contexts.
	TxManager *postgres.TxManager

	// Logger for request logging.
	Logger *logger.Logger

	// JWTService validates tokens and backs the auth endpoints.
	JWTService *auth.JWTService

	// AdminPolicy gates restore and the admin surface. Falls back to
	// security.DefaultAdminPolicy when nil.
	AdminPolicy *security.Policy
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	policy := cfg.AdminPolicy
	if policy == nil {
		policy = security.MustNewPolicy(security.DefaultAdminPolicy)
	}

	// Repositories
	userRepo := entity_repo.NewUserRepo(cfg.TxManager)
	topicRepo := entity_repo.NewTopicRepo(cfg.TxManager)
	questionRepo := entity_repo.NewQuestionRepo(cfg.TxManager)
	revisionRepo := entity_repo.NewRevisionRepo(cfg.TxManager)
	translationRepo := entity_repo.NewTranslationRepo(cfg.TxManager)
	userQuestionRepo := entity_repo.NewUserQuestionRepo(cfg.TxManager)
	practiceRepo := entity_repo.NewPracticeRepo(cfg.TxManager)
	eventRepo := entity_repo.NewEventRepo(cfg.TxManager)

	// Services
	events := audit.NewService(eventRepo)
	userSvc := user.NewService(userRepo, cfg.TxManager, events)
	topicSvc := topic.NewService(topicRepo, cfg.TxManager, events)
	questionSvc := question.NewService(questionRepo, topicRepo, cfg.TxManager, events)
	revisionSvc := revision.NewService(revisionRepo, questionRepo, cfg.TxManager, events)
	translationSvc := translation.NewService(translationRepo, questionRepo, cfg.TxManager, events)
	userQuestionSvc := userquestion.NewService(userQuestionRepo, userRepo, questionRepo, cfg.TxManager, events)
	practiceSvc := practice.NewService(practiceRepo, userQuestionSvc, questionRepo, cfg.TxManager)
	cascadeSvc := cascade.NewService(topicSvc, questionSvc, questionRepo, cfg.TxManager)
	authSvc := auth.NewService(userSvc, cfg.JWTService, auth.DefaultServiceConfig())

	// Handlers
	base := handlers.NewBaseHandler()
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	authHandler := handlers.NewAuthHandler(base, authSvc)
	topicHandler := handlers.NewTopicHandler(base, topicSvc, cascadeSvc)
	questionHandler := handlers.NewQuestionHandler(base, questionSvc)
	revisionHandler := handlers.NewRevisionHandler(base, revisionSvc)
	translationHandler := handlers.NewTranslationHandler(base, translationSvc)
	studyHandler := handlers.NewStudyHandler(base, practiceSvc)

	adminHandler := handlers.NewAdminHandler(base, events)
	registerAdminEntities(adminHandler, userSvc, topicSvc, questionSvc, revisionSvc, translationSvc, userQuestionSvc)

	// Health endpoints (no auth)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	apiV1 := router.Group("/api/v1")
	{
		public := apiV1.Group("/auth")
		protectedAuth := apiV1.Group("/auth")
		protectedAuth.Use(middleware.Auth(cfg.JWTService))
		authHandler.RegisterRoutes(public, protectedAuth)

		protected := apiV1.Group("")
		protected.Use(middleware.Auth(cfg.JWTService))
		protected.Use(middleware.ActorContext())

		restoreGate := middleware.RequirePolicy(policy, "content:restore")
		reviewGate := middleware.RequireRole(string(user.RoleEditor), string(user.RoleAdmin))
		topicHandler.RegisterRoutes(protected, restoreGate)
		questionHandler.RegisterRoutes(protected, restoreGate)
		revisionHandler.RegisterRoutes(protected, restoreGate, reviewGate)
		translationHandler.RegisterRoutes(protected, restoreGate)
		studyHandler.RegisterRoutes(protected)

		admin := protected.Group("")
		admin.Use(middleware.RequirePolicy(policy, "admin:read"))
		adminHandler.RegisterRoutes(admin)
	}

	return router
}

// registerAdminEntities maps entity-type names to their include-deleted
// readers and restorers. Names match the entityType recorded in events.
func registerAdminEntities(
	admin *handlers.AdminHandler,
	userSvc *user.Service,
	topicSvc *topic.Service,
	questionSvc *question.Service,
	revisionSvc *revision.Service,
	translationSvc *translation.Service,
	userQuestionSvc *userquestion.Service,
) {
	admin.Register("user",
		func(ctx context.Context, entityID id.ID) (any, error) { return userSvc.GetWithDeleted(ctx, entityID) },
		func(ctx context.Context, entityID id.ID) (any, error) { return userSvc.Restore(ctx, entityID) },
	)
	admin.Register("topic",
		func(ctx context.Context, entityID id.ID) (any, error) { return topicSvc.GetWithDeleted(ctx, entityID) },
		func(ctx context.Context, entityID id.ID) (any, error) { return topicSvc.Restore(ctx, entityID) },
	)
	admin.Register("question",
		func(ctx context.Context, entityID id.ID) (any, error) {
			return questionSvc.GetWithDeleted(ctx, entityID)
		},
		func(ctx context.Context, entityID id.ID) (any, error) { return questionSvc.Restore(ctx, entityID) },
	)
	admin.Register("revision",
		func(ctx context.Context, entityID id.ID) (any, error) {
			return revisionSvc.GetWithDeleted(ctx, entityID)
		},
		func(ctx context.Context, entityID id.ID) (any, error) { return revisionSvc.Restore(ctx, entityID) },
	)
	admin.Register("translation",
		func(ctx context.Context, entityID id.ID) (any, error) {
			return translationSvc.GetWithDeleted(ctx, entityID)
		},
		func(ctx context.Context, entityID id.ID) (any, error) {
			return translationSvc.Restore(ctx, entityID)
		},
	)
	admin.Register("user_question",
		func(ctx context.Context, entityID id.ID) (any, error) {
			return userQuestionSvc.GetWithDeleted(ctx, entityID)
		},
		func(ctx context.Context, entityID id.ID) (any, error) {
			return userQuestionSvc.Restore(ctx, entityID)
		},
	)
}
