package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/resumeready/backend/analysis"
	"github.com/resumeready/backend/auth"
	"github.com/resumeready/backend/cache"
	"github.com/resumeready/backend/config"
	_ "github.com/resumeready/backend/docs"
	"github.com/resumeready/backend/handlers"
	"github.com/resumeready/backend/llm"
	"github.com/resumeready/backend/mailer"
	"github.com/resumeready/backend/mcp"
	"github.com/resumeready/backend/storage"
	"github.com/resumeready/backend/tools"
	"github.com/resumeready/backend/utils"
)

// @title ResumeReady API
// @version 1.0
// @description Resume readiness scoring and resume-job matching backend.

// @contact.name API Support

// @host localhost:4000
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	log := utils.Component("main")

	// Load .env file if present (for local development)
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using environment variables")
	}

	cfg := config.Load()
	utils.ConfigureLogger(cfg.Debug)

	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("Configuration error")
	}

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := handlers.RegisterValidators(); err != nil {
		log.WithError(err).Fatal("Failed to register validators")
	}

	ctx := context.Background()

	log.Info("Connecting to PostgreSQL...")
	db, err := storage.NewPostgresClient(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	redisCache, err := cache.NewRedisCache(ctx, cfg.RedisURL, cfg.AnalysisCacheTTL)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize Redis cache")
	}
	defer redisCache.Close()

	provider, err := llm.NewProvider(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize LLM provider")
	}
	if closer, ok := provider.(llm.Closer); ok {
		defer closer.Close()
	}
	log.WithField("provider", provider.Name()).WithField("model", provider.Model()).Info("LLM provider ready")

	var (
		analysisCache analysis.Cache
		healthCache   handlers.Pinger
	)
	if redisCache != nil {
		analysisCache = redisCache
		healthCache = redisCache
	}
	analyzer := analysis.NewAnalyzer(provider, analysisCache)

	blobs, err := storage.NewBlobStore(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize file storage")
	}
	if blobs != nil {
		defer blobs.Close()
	}

	jwtService := auth.NewJWTService(cfg)
	googleAuthService := auth.NewGoogleAuthService(cfg)

	if !cfg.MailEnabled() {
		log.Warn("EMAIL_USER/EMAIL_PASS not set, reset emails will only be logged")
	}

	jobPages := tools.NewFetchJobPageTool(cfg)
	toolRegistry := tools.NewDefaultRegistry(analyzer, jobPages)
	mcpServer := mcp.NewServer(toolRegistry)

	authHandler := handlers.NewAuthHandler(db, jwtService, googleAuthService, mailer.New(cfg), cfg.FrontendURL, cfg.ResetTokenTTL)
	resumeHandler := handlers.NewResumeHandler(db, analyzer, jobPages, blobs, cfg.MaxUploadMB)
	profileHandler := handlers.NewProfileHandler(db)
	systemHandler := handlers.NewSystemHandler(db, healthCache, toolRegistry)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(handlers.RequestID())
	router.Use(handlers.RequestLogger(utils.GetLogger()))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", handlers.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", handlers.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", systemHandler.HealthCheck)

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.Signup)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/google", authHandler.GoogleLogin)
			authGroup.POST("/forgot-password", authHandler.ForgotPassword)
			authGroup.POST("/reset-password/:token", authHandler.ResetPassword)
		}

		resumeGroup := api.Group("/resume", auth.AuthMiddleware(jwtService))
		{
			resumeGroup.GET("/history", resumeHandler.History)
			resumeGroup.POST("/upload", resumeHandler.Upload)
			resumeGroup.POST("/upload-file", resumeHandler.UploadFile)
			resumeGroup.POST("/match", resumeHandler.Match)
			resumeGroup.POST("/parse", resumeHandler.Parse)
			resumeGroup.GET("/:id", resumeHandler.Get)
			resumeGroup.DELETE("/:id", resumeHandler.Delete)
		}

		profileGroup := api.Group("/profile", auth.AuthMiddleware(jwtService))
		{
			profileGroup.GET("/me", profileHandler.GetProfile)
			profileGroup.PUT("/me", profileHandler.UpdateProfile)
			profileGroup.POST("/skills", profileHandler.AddSkill)
			profileGroup.DELETE("/skills/:id", profileHandler.DeleteSkill)
			profileGroup.POST("/certifications", profileHandler.AddCertification)
			profileGroup.DELETE("/certifications/:id", profileHandler.DeleteCertification)
		}

		// Tools introspection endpoint
		api.GET("/tools", systemHandler.GetTools)

		// MCP endpoints for external AI agents
		mcpServer.RegisterRoutes(api.Group("", auth.AuthMiddleware(jwtService)))
	}

	if cfg.StaticDir != "" {
		handlers.RegisterSPA(router, cfg.StaticDir)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server error")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	log.Info("Server exited gracefully")
}
