package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tracklet-app/tracklet/internal/config"
	"github.com/tracklet-app/tracklet/internal/database"
	"github.com/tracklet-app/tracklet/internal/handlers"
	"github.com/tracklet-app/tracklet/internal/logger"
	"github.com/tracklet-app/tracklet/internal/middleware"
	"github.com/tracklet-app/tracklet/internal/services"
	"github.com/tracklet-app/tracklet/internal/store"
	"github.com/tracklet-app/tracklet/internal/supabase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading configuration: ", err)
	}

	zlog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zlog.Sync()

	isProd := cfg.App.Environment == "production"
	if isProd {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.Database.URL, zlog)
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}

	authClient, err := supabase.New(supabase.Config{
		URL:     cfg.Supabase.URL,
		AnonKey: cfg.Supabase.AnonKey,
	})
	if err != nil {
		zlog.Fatal("supabase client init failed", zap.Error(err))
	}

	emailSender, err := services.NewSESSender(context.Background(), cfg.Email.Region)
	if err != nil {
		zlog.Fatal("email sender init failed", zap.Error(err))
	}

	appService := services.NewApplicationService(db)
	profileService := services.NewProfileService(db)
	feedbackService := services.NewFeedbackService(emailSender, cfg.Email.From, cfg.Email.To)
	stores := store.NewRegistry(appService, zlog)

	gate := middleware.NewSessionGate(authClient, zlog, isProd)
	appHandler := handlers.NewApplicationHandler(appService, profileService, stores, zlog)
	authHandler := handlers.NewAuthHandler(authClient, stores, zlog, isProd)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.App.SiteURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))
	r.Use(gate.Handler())

	// Page routes serve the view layer's data contracts. The session gate
	// redirects around them by path prefix and auth state.
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"app": "Tracklet", "tagline": "Track every job application in one place."})
	})
	r.GET("/auth/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"page": "login"})
	})
	r.GET("/auth/sign-up", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"page": "sign-up"})
	})
	r.GET("/dashboard", appHandler.Dashboard)
	r.GET("/applications", appHandler.List)
	r.GET("/applications/:id", appHandler.Detail)
	r.GET("/analytics", appHandler.Analytics)
	r.GET("/feedback", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"types": []string{"feature", "bug", "question", "other"}})
	})

	api := r.Group("/api")
	{
		api.POST("/feedback", feedbackHandler.Submit)

		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/sign-up", authHandler.SignUp)
			auth.POST("/logout", authHandler.Logout)
		}

		v1 := api.Group("/v1")
		{
			v1.GET("/health", handlers.HealthCheck)
			v1.POST("/applications", appHandler.Create)
			v1.PATCH("/applications/:id/notes", appHandler.UpdateNotes)
			v1.DELETE("/applications/:id", appHandler.Delete)
		}
	}

	zlog.Info("server starting", zap.String("addr", cfg.App.Addr()))
	if err := r.Run(cfg.App.Addr()); err != nil {
		zlog.Fatal("server failed to start", zap.Error(err))
	}
}
