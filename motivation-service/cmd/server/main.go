package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dnlksnvv/Trainova-sub001/motivation-service/internal/config"
	"github.com/dnlksnvv/Trainova-sub001/motivation-service/internal/handler"
	"github.com/dnlksnvv/Trainova-sub001/motivation-service/internal/service"
	"github.com/dnlksnvv/Trainova-sub001/shared/authutils"
	"github.com/dnlksnvv/Trainova-sub001/shared/database"
	sharedLogger "github.com/dnlksnvv/Trainova-sub001/shared/logger"
	sharedMiddleware "github.com/dnlksnvv/Trainova-sub001/shared/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	ginprometheus "github.com/zsais/go-gin-prometheus"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// The HTTP plumbing shares the zap-based middleware with the other
	// services; the quote pipeline itself logs through zerolog.
	zapLogger, err := sharedLogger.New(sharedLogger.Config{
		Level:    cfg.Log.Level,
		Encoding: "json",
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()
	zap.ReplaceGlobals(zapLogger)

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Str("service", "motivation").Logger()

	ctx := context.Background()

	redisClient, err := database.NewRedisClient(ctx, database.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, zapLogger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	var aiClient *openai.Client
	if cfg.OpenAI.APIKey != "" {
		clientCfg := openai.DefaultConfig(cfg.OpenAI.APIKey)
		if cfg.OpenAI.BaseURL != "" {
			clientCfg.BaseURL = cfg.OpenAI.BaseURL
		}
		aiClient = openai.NewClientWithConfig(clientCfg)
		logger.Info().Str("model", cfg.OpenAI.Model).Msg("AI quote generation enabled")
	} else {
		logger.Info().Msg("No OpenAI API key configured, serving built-in quotes")
	}

	verifier, err := authutils.NewVerifier(cfg.TokenConfig(), zapLogger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to build token verifier")
	}

	quoteSvc := service.NewQuoteService(redisClient, aiClient, cfg.OpenAI.Model, logger)
	motivationHandler := handler.NewMotivationHandler(quoteSvc, logger)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(sharedMiddleware.GinZapLogger(zapLogger))
	router.Use(gin.Recovery())

	p := ginprometheus.NewPrometheus("gin")

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(strings.ReplaceAll(cfg.CORSAllowedOrigins, " ", ""), ",")
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	motivationHandler.RegisterRoutes(router, sharedMiddleware.RequireAuth(verifier, zapLogger))

	p.Use(router)

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info().Str("port", cfg.ServerPort).Msg("Starting HTTP server")
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("HTTP Server listen error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP Server forced to shutdown")
	}
	logger.Info().Msg("Server exiting")
}
