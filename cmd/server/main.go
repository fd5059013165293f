package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"huddle/backend/internal/config"
	"huddle/backend/internal/database"
	"huddle/backend/internal/handler"
	"huddle/backend/internal/logger"
	"huddle/backend/internal/service"
	"huddle/backend/internal/session"
	"huddle/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Huddle API
// @version         1.0
// @description     Social backend: accounts, friends, posts, messages, moods, and calls.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	lg, err := logger.Init(cfg.LogLevel, cfg.LogFile, gin.Mode() == gin.DebugMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer lg.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		lg.Fatal("Failed to connect to database", zap.Error(err))
	}
	lg.Info("Database connection established")

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	sessions := session.NewStore(session.NewClient(cfg), sessionTTL)
	if err := sessions.Ping(context.Background()); err != nil {
		lg.Fatal("Failed to connect to redis", zap.Error(err))
	}

	tokens := jwt.NewManager(cfg.JWTSecret, sessionTTL)

	h := handler.New(
		service.NewUserService(db),
		service.NewFriendshipService(db),
		service.NewPostService(db),
		service.NewMessageService(db),
		service.NewMoodService(db),
		service.NewCallService(db),
		sessions,
		tokens,
		lg,
	)

	router := gin.New()
	router.Use(logger.GinLogger(lg), logger.GinRecovery(lg))

	// Swagger route; docs are generated with `swag init`.
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	h.RegisterRoutes(router)

	lg.Info("Server starting", zap.String("addr", cfg.ListenAddr))
	if err := router.Run(cfg.ListenAddr); err != nil {
		lg.Fatal("Server exited", zap.Error(err))
	}
}
