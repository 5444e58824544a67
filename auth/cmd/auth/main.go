package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dnlksnvv/Trainova-sub001/auth/internal/config"
	"github.com/dnlksnvv/Trainova-sub001/auth/internal/email"
	"github.com/dnlksnvv/Trainova-sub001/auth/internal/handler"
	"github.com/dnlksnvv/Trainova-sub001/auth/internal/messaging"
	"github.com/dnlksnvv/Trainova-sub001/auth/internal/service"
	"github.com/dnlksnvv/Trainova-sub001/auth/migrations"
	"github.com/dnlksnvv/Trainova-sub001/shared/authutils"
	"github.com/dnlksnvv/Trainova-sub001/shared/database"
	sharedLogger "github.com/dnlksnvv/Trainova-sub001/shared/logger"
	sharedMessaging "github.com/dnlksnvv/Trainova-sub001/shared/messaging"
	sharedMiddleware "github.com/dnlksnvv/Trainova-sub001/shared/middleware"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	ginprometheus "github.com/zsais/go-gin-prometheus"
)

func main() {
	cfg, err := config.LoadConfig("../../.env")
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := sharedLogger.New(sharedLogger.Config{
		Level:    cfg.LogLevel,
		Encoding: "json",
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	zap.ReplaceGlobals(logger)
	zap.L().Info("Logger initialized", zap.String("logLevel", cfg.LogLevel))

	ctx := context.Background()

	// --- External Connections ---
	pgPool, err := database.NewPostgresPool(ctx, cfg.PostgresConfig(), logger)
	if err != nil {
		zap.L().Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pgPool.Close()

	if err := database.RunMigrations(migrations.FS, cfg.PostgresConfig()); err != nil {
		zap.L().Fatal("Failed to apply database migrations", zap.Error(err))
	}
	zap.L().Info("Database migrations applied")

	redisClient, err := database.NewRedisClient(ctx, database.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, logger)
	if err != nil {
		zap.L().Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	mqConn, err := sharedMessaging.NewRabbitMQConnection(cfg.RabbitMQURL, logger)
	if err != nil {
		zap.L().Fatal("Failed to connect to RabbitMQ", zap.Error(err))
	}
	defer mqConn.Close()

	// --- Dependency Injection ---
	tokenCfg := cfg.TokenConfig()
	issuer, err := authutils.NewIssuer(tokenCfg)
	if err != nil {
		zap.L().Fatal("Failed to build token issuer", zap.Error(err))
	}
	verifier, err := authutils.NewVerifier(tokenCfg, logger)
	if err != nil {
		zap.L().Fatal("Failed to build token verifier", zap.Error(err))
	}

	userRepo := database.NewPgUserRepository(pgPool, logger)
	blacklistRepo := database.NewPgTokenBlacklistRepository(pgPool, cfg.BlacklistFailClosed, logger)
	emailSender := email.NewLogSender(logger)

	eventPublisher, err := messaging.NewRabbitMQUserEventPublisher(mqConn, logger)
	if err != nil {
		zap.L().Fatal("Failed to create user event publisher", zap.Error(err))
	}
	defer eventPublisher.Close()

	authSvc := service.NewAuthService(userRepo, blacklistRepo, issuer, verifier, emailSender, eventPublisher, cfg, logger)

	// Startup sweep keeps the blacklist from growing unbounded between
	// admin-triggered cleanups.
	if removed, err := authSvc.CleanExpiredTokens(ctx); err != nil {
		zap.L().Warn("Startup blacklist sweep failed", zap.Error(err))
	} else {
		zap.L().Info("Startup blacklist sweep completed", zap.Int64("removed", removed))
	}

	// --- Rate Limiter (login/register/reset-request) ---
	rateLimitStore := ratelimit.RedisStore(&ratelimit.RedisOptions{
		RedisClient: redisClient,
		Rate:        time.Minute,
		Limit:       10,
	})
	rateLimitMiddleware := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: func(c *gin.Context, info ratelimit.Info) {
			zap.L().Warn("Rate limit exceeded",
				zap.String("clientIP", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			c.String(http.StatusTooManyRequests, "Too many requests. Try again in "+time.Until(info.ResetTime).String())
		},
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	})

	authHandler := handler.NewAuthHandler(authSvc, cfg, logger)

	// --- HTTP Server Setup (Gin) ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(sharedMiddleware.GinZapLogger(logger))
	router.Use(gin.Recovery())

	p := ginprometheus.NewPrometheus("gin")

	corsConfig := cors.DefaultConfig()
	allowedOrigins := cfg.GetAllowedOrigins()
	if len(allowedOrigins) > 0 {
		corsConfig.AllowOrigins = allowedOrigins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	authHandler.RegisterRoutes(router, rateLimitMiddleware)

	p.Use(router)

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	zap.L().Info("Starting HTTP server", zap.String("port", cfg.ServerPort))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("HTTP Server listen error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP Server forced to shutdown", zap.Error(err))
	}

	zap.L().Info("Server exiting")
}
