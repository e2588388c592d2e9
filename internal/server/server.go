package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/treinofacil/trainsheet-api/internal/config"
	"github.com/treinofacil/trainsheet-api/internal/handler"
	"github.com/treinofacil/trainsheet-api/internal/middleware"
	"github.com/treinofacil/trainsheet-api/internal/ratelimit"
	"github.com/treinofacil/trainsheet-api/internal/repository"
	"github.com/treinofacil/trainsheet-api/internal/service"
	"github.com/treinofacil/trainsheet-api/internal/storage"
)

type Server struct {
	router     *gin.Engine
	config     *config.Config
	redis      *storage.RedisClient
	postgres   *storage.Postgres
	limiter    *ratelimit.Store
	httpServer *http.Server

	authHandler      *handler.AuthHandler
	catalogHandler   *handler.CatalogHandler
	groupHandler     *handler.GroupHandler
	sheetHandler     *handler.SheetHandler
	analyticsHandler *handler.AnalyticsHandler

	authService *service.AuthService
}

func New(cfg *config.Config, postgres *storage.Postgres, redis *storage.RedisClient) *Server {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	userRepo := repository.NewUserRepository(postgres)
	exerciseRepo := repository.NewExerciseRepository(postgres)
	categoryRepo := repository.NewCategoryRepository(postgres)
	techniqueRepo := repository.NewTechniqueRepository(postgres)
	groupRepo := repository.NewGroupRepository(postgres)
	sheetRepo := repository.NewSheetRepository(postgres)
	requestLogRepo := repository.NewRequestLogRepository(postgres)

	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	catalogService := service.NewCatalogService(exerciseRepo, categoryRepo, techniqueRepo)
	groupService := service.NewGroupService(groupRepo)
	sheetService := service.NewSheetService(postgres, sheetRepo, redis)
	analyticsService := service.NewAnalyticsService(requestLogRepo)

	middleware.InitRequestLogger(requestLogRepo, 1000)

	s := &Server{
		router:           router,
		config:           cfg,
		redis:            redis,
		postgres:         postgres,
		limiter:          ratelimit.NewStore(10 * time.Minute),
		authHandler:      handler.NewAuthHandler(authService),
		catalogHandler:   handler.NewCatalogHandler(catalogService),
		groupHandler:     handler.NewGroupHandler(groupService),
		sheetHandler:     handler.NewSheetHandler(sheetService),
		analyticsHandler: handler.NewAnalyticsHandler(analyticsService),
		authService:      authService,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recovery())
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.Logger())
	s.router.Use(middleware.CORS())
	s.router.Use(middleware.RequestLogger())
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)

	v1 := s.router.Group("/api/v1")

	// Auth endpoints carry the strict preset to slow brute forcing
	auth := v1.Group("/auth")
	auth.Use(middleware.RateLimit(s.limiter, ratelimit.Strict))
	{
		auth.POST("/register", s.authHandler.Register)
		auth.POST("/login", s.authHandler.Login)
	}
	// Auth runs before the limiter so authenticated traffic is keyed
	// per user, not per shared IP
	v1.GET("/auth/me",
		middleware.RequireAuth(s.authService),
		middleware.RateLimit(s.limiter, ratelimit.Moderate),
		s.authHandler.Me,
	)

	// Public read-only program view
	programs := v1.Group("/programs")
	programs.Use(middleware.RateLimit(s.limiter, ratelimit.Generous))
	{
		programs.GET("/:slug", s.sheetHandler.GetProgram)
	}

	admin := v1.Group("/admin")
	admin.Use(middleware.RequireAuth(s.authService))
	admin.Use(middleware.RateLimit(s.limiter, ratelimit.Moderate))
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/users", s.authHandler.ListUsers)

		admin.POST("/exercises", s.catalogHandler.CreateExercise)
		admin.GET("/exercises", s.catalogHandler.ListExercises)
		admin.GET("/exercises/:id", s.catalogHandler.GetExercise)
		admin.PATCH("/exercises/:id", s.catalogHandler.UpdateExercise)
		admin.DELETE("/exercises/:id", s.catalogHandler.DeleteExercise)

		admin.POST("/categories", s.catalogHandler.CreateCategory)
		admin.GET("/categories", s.catalogHandler.ListCategories)
		admin.PATCH("/categories/:id", s.catalogHandler.UpdateCategory)
		admin.DELETE("/categories/:id", s.catalogHandler.DeleteCategory)

		admin.POST("/techniques", s.catalogHandler.CreateTechnique)
		admin.GET("/techniques", s.catalogHandler.ListTechniques)
		admin.PATCH("/techniques/:id", s.catalogHandler.UpdateTechnique)
		admin.DELETE("/techniques/:id", s.catalogHandler.DeleteTechnique)

		admin.POST("/groups", s.groupHandler.Create)
		admin.GET("/groups", s.groupHandler.List)
		admin.GET("/groups/:id", s.groupHandler.Get)
		admin.PATCH("/groups/:id", s.groupHandler.Update)
		admin.DELETE("/groups/:id", s.groupHandler.Delete)

		admin.POST("/sheets", s.sheetHandler.Create)
		admin.POST("/sheets/complete", s.sheetHandler.CreateComplete)
		admin.GET("/sheets", s.sheetHandler.List)
		admin.GET("/sheets/:id", s.sheetHandler.Get)
		admin.PATCH("/sheets/:id", s.sheetHandler.Update)
		admin.DELETE("/sheets/:id", s.sheetHandler.Delete)

		admin.GET("/analytics/summary", s.analyticsHandler.GetSummary)
		admin.DELETE("/analytics/logs", s.analyticsHandler.CleanupLogs)
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	redisHealthy := true
	if err := s.redis.Ping(c.Request.Context()); err != nil {
		redisHealthy = false
		log.Printf("Redis health check failed: %v", err)
	}

	dbHealthy := true
	if err := s.postgres.Ping(c.Request.Context()); err != nil {
		dbHealthy = false
		log.Printf("Database health check failed: %v", err)
	}

	status := "healthy"
	statusCode := http.StatusOK

	if !redisHealthy || !dbHealthy {
		status = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, gin.H{
		"status":    status,
		"service":   "trainsheet-api",
		"timestamp": time.Now().Unix(),
		"checks": gin.H{
			"redis":    redisHealthy,
			"database": dbHealthy,
		},
	})
}

func (s *Server) Run(addr string) error {
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	log.Printf("Starting trainsheet API on %s", addr)
	log.Printf("Environment: %s", s.config.Server.Environment)

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.Stop()

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

func (s *Server) GetRouter() *gin.Engine {
	return s.router
}
