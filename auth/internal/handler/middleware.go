package handler

import (
	"net/http"
	"strings"

	"github.com/dnlksnvv/Trainova-sub001/shared/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// contextAccessTokenKey stores the raw bearer token so logout can revoke
// the exact string that was presented.
const contextAccessTokenKey = "access_token"

// AuthMiddleware is the issuing-service variant of bearer auth: unlike the
// shared middleware used by the other services, it consults the revocation
// store on every request.
func (h *AuthHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Code: models.ErrCodeTokenInvalid, Detail: "Not authenticated"})
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Code: models.ErrCodeTokenInvalid, Detail: "Invalid authorization header format"})
			return
		}
		tokenString := parts[1]

		claims, err := h.authService.VerifyAccessToken(c.Request.Context(), tokenString)
		if err != nil {
			tokenVerificationsTotal.WithLabelValues("access", "failure").Inc()
			h.logger.Debug("Access token rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Code: models.ErrCodeTokenInvalid, Detail: "Invalid or expired token"})
			return
		}
		tokenVerificationsTotal.WithLabelValues("access", "success").Inc()

		c.Set(models.ContextUserIDKey, claims.UserID)
		c.Set(models.ContextEmailKey, claims.Email)
		c.Set(models.ContextRoleIDKey, claims.RoleID)
		c.Set(contextAccessTokenKey, tokenString)

		c.Next()
	}
}

// AdminOnly gates a route group to the admin role. It assumes
// AuthMiddleware has already run.
func (h *AuthHandler) AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !models.IsAdmin(c.GetInt(models.ContextRoleIDKey)) {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{Code: models.ErrCodeForbidden, Detail: "Admin role required"})
			return
		}
		c.Next()
	}
}
