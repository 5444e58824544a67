package handler

import (
	"github.com/dnlksnvv/Trainova-sub001/auth/internal/config"
	"github.com/dnlksnvv/Trainova-sub001/auth/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService service.AuthService
	cfg         *config.Config
	logger      *zap.Logger
}

func NewAuthHandler(authService service.AuthService, cfg *config.Config, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
		logger:      logger.Named("AuthHandler"),
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.Engine, loginLimiter gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", loginLimiter, h.register)
		authGroup.POST("/login", loginLimiter, h.login)
		authGroup.POST("/refresh", h.refresh)
		authGroup.POST("/logout", h.AuthMiddleware(), h.logout)
		authGroup.GET("/me", h.AuthMiddleware(), h.getMe)

		authGroup.POST("/password-reset/request", loginLimiter, h.requestPasswordReset)
		authGroup.POST("/password-reset/confirm", h.confirmPasswordReset)

		authGroup.POST("/email-change/request", h.AuthMiddleware(), h.requestEmailChange)
		authGroup.POST("/email-change/confirm", h.confirmEmailChange)
	}

	adminGroup := router.Group("/admin")
	adminGroup.Use(h.AuthMiddleware(), h.AdminOnly())
	{
		adminGroup.POST("/clean-expired-tokens", h.cleanExpiredTokens)
	}
}
