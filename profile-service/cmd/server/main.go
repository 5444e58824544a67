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

	"github.com/dnlksnvv/Trainova-sub001/profile-service/internal/config"
	"github.com/dnlksnvv/Trainova-sub001/profile-service/internal/handler"
	"github.com/dnlksnvv/Trainova-sub001/profile-service/internal/messaging"
	"github.com/dnlksnvv/Trainova-sub001/profile-service/internal/repository"
	"github.com/dnlksnvv/Trainova-sub001/profile-service/internal/service"
	"github.com/dnlksnvv/Trainova-sub001/profile-service/migrations"
	"github.com/dnlksnvv/Trainova-sub001/shared/authutils"
	"github.com/dnlksnvv/Trainova-sub001/shared/database"
	sharedLogger "github.com/dnlksnvv/Trainova-sub001/shared/logger"
	sharedMessaging "github.com/dnlksnvv/Trainova-sub001/shared/messaging"
	sharedMiddleware "github.com/dnlksnvv/Trainova-sub001/shared/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	ginprometheus "github.com/zsais/go-gin-prometheus"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := sharedLogger.New(sharedLogger.Config{
		Level:    cfg.Log.Level,
		Encoding: "json",
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	ctx := context.Background()

	pgPool, err := database.NewPostgresPool(ctx, cfg.PostgresConfig(), logger)
	if err != nil {
		zap.L().Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pgPool.Close()

	if err := database.RunMigrations(migrations.FS, cfg.PostgresConfig()); err != nil {
		zap.L().Fatal("Failed to apply database migrations", zap.Error(err))
	}

	mqConn, err := sharedMessaging.NewRabbitMQConnection(cfg.RabbitMQ.URL, logger)
	if err != nil {
		zap.L().Fatal("Failed to connect to RabbitMQ", zap.Error(err))
	}
	defer mqConn.Close()

	verifier, err := authutils.NewVerifier(cfg.TokenConfig(), logger)
	if err != nil {
		zap.L().Fatal("Failed to build token verifier", zap.Error(err))
	}

	profileRepo := repository.NewPgProfileRepository(pgPool, logger)
	profileSvc := service.NewProfileService(profileRepo, logger)
	profileHandler := handler.NewProfileHandler(profileSvc, logger)

	consumer, err := messaging.NewUserRegisteredConsumer(mqConn, profileSvc, logger)
	if err != nil {
		zap.L().Fatal("Failed to create user.registered consumer", zap.Error(err))
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(sharedMiddleware.GinZapLogger(logger))
	router.Use(gin.Recovery())

	p := ginprometheus.NewPrometheus("gin")

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(strings.ReplaceAll(cfg.CORSAllowedOrigins, " ", ""), ",")
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	profileHandler.RegisterRoutes(router, sharedMiddleware.RequireAuth(verifier, logger))

	p.Use(router)

	go func() {
		if err := consumer.StartConsuming(); err != nil {
			zap.L().Error("UserRegisteredConsumer stopped with error", zap.Error(err))
		}
	}()

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down server...")

	if err := consumer.Stop(); err != nil {
		zap.L().Error("Error stopping consumer", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP Server forced to shutdown", zap.Error(err))
	}
	zap.L().Info("Server exiting")
}
