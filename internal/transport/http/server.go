package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	appsvc "studycompanion/internal/app"
	"studycompanion/internal/bootstrap"
	"studycompanion/internal/cache"
	"studycompanion/internal/platform/rabbitmq"
	"studycompanion/internal/repository"
	"studycompanion/internal/transport/http/handler"
	"studycompanion/internal/transport/http/middleware"
)

type Handlers struct {
	Health   *handler.HealthHandler
	Summary  *handler.SummaryHandler
	Quiz     *handler.QuizHandler
	Homework *handler.HomeworkHandler
	Admin    *handler.AdminHandler
}

type RouterOptions struct {
	AuthEnabled bool
	JWTSecret   string
	// AdminKey mounts /api/admin when set.
	AdminKey string
	// Ready gates every /api route except the health probe; nil skips the check.
	Ready func(ctx context.Context) error
}

func NewRouter(app *bootstrap.App) (*gin.Engine, error) {
	cfg := app.Config

	var artifactCache appsvc.ArtifactCache
	if app.CacheEnabled {
		artifactCache = cache.NewArtifactCache(app.Redis, time.Duration(cfg.Redis.CacheTTLSeconds)*time.Second)
	}
	var publisher appsvc.ActivityPublisher
	if app.MQConn != nil {
		publisher = rabbitmq.NewActivityPublisher(app.MQConn, cfg.RabbitMQ.ActivityQueue)
	}
	var assistant appsvc.StudyAssistant
	if app.Assistant != nil {
		assistant = app.Assistant
	}

	userRepo := repository.NewUserRepository(app.DB)
	summaryRepo := repository.NewSummaryRepository(app.DB)
	quizRepo := repository.NewQuizRepository(app.DB)
	homeworkRepo := repository.NewHomeworkRepository(app.DB)
	activity := appsvc.NewActivityRecorder(publisher, repository.NewActivityRepository(app.DB))

	summaryService, err := appsvc.NewSummaryService(summaryRepo, assistant, artifactCache, activity, appsvc.PipelineOptions{
		ChunkSize:    cfg.Pipeline.ChunkSize,
		ChunkOverlap: cfg.Pipeline.ChunkOverlap,
		Concurrency:  cfg.Pipeline.Concurrency,
		ChunkTimeout: time.Duration(cfg.Pipeline.ChunkTimeoutSeconds) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("build summary service failed: %w", err)
	}
	quizService := appsvc.NewQuizService(
		quizRepo,
		userRepo,
		summaryService,
		assistant,
		artifactCache,
		activity,
		cfg.Quiz.NumQuestions,
		cfg.Quiz.FreeAttemptLimit,
	)
	homeworkService := appsvc.NewHomeworkService(homeworkRepo, assistant, activity)

	gin.SetMode(cfg.App.GinMode)
	return Register(gin.New(), Handlers{
		Health:   handler.NewHealthHandler(app),
		Summary:  handler.NewSummaryHandler(summaryService, int64(cfg.Upload.MaxBytes), cfg.Upload.TempDir),
		Quiz:     handler.NewQuizHandler(quizService),
		Homework: handler.NewHomeworkHandler(homeworkService),
		Admin:    handler.NewAdminHandler(quizService, cfg.Auth.JWTSecret, time.Duration(cfg.Auth.JWTExpireMinute)*time.Minute),
	}, RouterOptions{
		AuthEnabled: cfg.Auth.Enabled,
		JWTSecret:   cfg.Auth.JWTSecret,
		AdminKey:    cfg.Auth.AdminKey,
		Ready:       app.EnsureSchema,
	}), nil
}

// Register mounts middleware and routes on router. With AuthEnabled every /api route except the
// health probe and the admin group requires a bearer token.
func Register(router *gin.Engine, h Handlers, opts RouterOptions) *gin.Engine {
	router.Use(middleware.RequestLogger(), middleware.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader, middleware.AdminKeyHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/", h.Health.Root)
	router.GET("/api/health", h.Health.Check)

	if opts.AdminKey != "" && h.Admin != nil {
		admin := router.Group("/api/admin", middleware.AdminKey(opts.AdminKey))
		if opts.Ready != nil {
			admin.Use(middleware.RequireReady(opts.Ready))
		}
		admin.POST("/tokens", h.Admin.IssueToken)
		admin.PUT("/users/:id/subscription", h.Admin.SetSubscription)
	}

	api := router.Group("/api")
	if opts.AuthEnabled {
		api.Use(middleware.AuthJWT(opts.JWTSecret))
	}
	if opts.Ready != nil {
		api.Use(middleware.RequireReady(opts.Ready))
	}

	api.POST("/summarize-pdf", h.Summary.SummarizePDF)
	api.GET("/summaries/:id", h.Summary.Get)
	api.GET("/summaries", h.Summary.List)

	api.POST("/generate-quiz", h.Quiz.Generate)
	api.GET("/quiz/:id", h.Quiz.GetPage)
	api.GET("/quizzes", h.Quiz.List)
	api.GET("/users/:id/usage", h.Quiz.Usage)

	api.POST("/homework-helper", h.Homework.Solve)
	api.GET("/homework/:id", h.Homework.Get)
	api.GET("/homework", h.Homework.List)

	return router
}
