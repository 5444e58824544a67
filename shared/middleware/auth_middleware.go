package middleware

import (
	"net/http"
	"strings"

	"github.com/dnlksnvv/Trainova-sub001/shared/authutils"
	"github.com/dnlksnvv/Trainova-sub001/shared/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// unauthenticatedPaths are reachable without a token: health checks, API
// docs and the root. OPTIONS preflight always passes through.
var unauthenticatedPaths = map[string]bool{
	"/":        true,
	"/health":  true,
	"/metrics": true,
	"/docs":    true,
}

// RequireAuth is the per-request auth gateway used by every downstream
// service. It extracts the bearer token, verifies it locally with the
// shared secret and injects user_id/email/role_id into the Gin context.
//
// It deliberately does NOT consult the revocation blacklist: only the auth
// service does that on its own endpoints. An explicitly revoked token
// therefore stays usable on downstream services until natural expiry.
func RequireAuth(verifier *authutils.Verifier, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.Named("AuthMiddleware")

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || isUnauthenticatedPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Authorization header missing", zap.String("path", c.Request.URL.Path))
			abortUnauthorized(c, "Not authenticated")
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			log.Warn("Malformed Authorization header", zap.String("path", c.Request.URL.Path))
			abortUnauthorized(c, "Invalid authorization header format, expected 'Bearer <token>'")
			return
		}

		claims, err := verifier.Decode(parts[1])
		if err != nil {
			// One message for every decode failure so the response does not
			// reveal whether the signature, structure or expiry was at fault.
			log.Warn("Token verification failed", zap.Error(err), zap.String("tokenSnippet", tokenSnippet(parts[1])))
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(models.ContextUserIDKey, claims.UserID)
		c.Set(models.ContextEmailKey, claims.Email)
		c.Set(models.ContextRoleIDKey, claims.RoleID)
		c.Next()
	}
}

// RequireAdmin gates a route group on role_id. It must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleID := c.GetInt(models.ContextRoleIDKey)
		if !models.IsAdmin(roleID) {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
				Code:   models.ErrCodeForbidden,
				Detail: "Admin privileges required",
			})
			return
		}
		c.Next()
	}
}

func isUnauthenticatedPath(path string) bool {
	if unauthenticatedPaths[path] {
		return true
	}
	return strings.HasPrefix(path, "/docs/")
}

func abortUnauthorized(c *gin.Context, detail string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
		Code:   models.ErrCodeTokenInvalid,
		Detail: detail,
	})
}

// tokenSnippet returns a loggable prefix of the token, never the whole value.
func tokenSnippet(tokenString string) string {
	const limit = 15
	if len(tokenString) > limit {
		return tokenString[:limit] + "..."
	}
	return tokenString
}
