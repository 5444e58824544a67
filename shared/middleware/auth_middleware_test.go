package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dnlksnvv/Trainova-sub001/shared/authutils"
	"github.com/dnlksnvv/Trainova-sub001/shared/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *authutils.Issuer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := authutils.Config{
		Secret:          "middleware-test-secret-0123456789",
		Algorithm:       "HS256",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	}
	issuer, err := authutils.NewIssuer(cfg)
	require.NoError(t, err)
	verifier, err := authutils.NewVerifier(cfg, nil)
	require.NoError(t, err)

	router := gin.New()
	router.Use(RequireAuth(verifier, nil))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString(models.ContextUserIDKey),
			"role_id": c.GetInt(models.ContextRoleIDKey),
		})
	})
	router.GET("/admin", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router, issuer
}

func doRequest(router *gin.Engine, authHeader string, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	router, issuer := newTestRouter(t)

	t.Run("health endpoint needs no token", func(t *testing.T) {
		w := doRequest(router, "", "/health")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		w := doRequest(router, "", "/whoami")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Not authenticated")
	})

	t.Run("non-bearer scheme is rejected before verification", func(t *testing.T) {
		w := doRequest(router, "Basic dXNlcjpwYXNz", "/whoami")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid authorization header format")
	})

	t.Run("header with too many parts", func(t *testing.T) {
		w := doRequest(router, "Bearer one two", "/whoami")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token gets the generic rejection", func(t *testing.T) {
		w := doRequest(router, "Bearer definitely-not-a-jwt", "/whoami")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid or expired token")
	})

	t.Run("valid token populates the context", func(t *testing.T) {
		token, err := issuer.CreateAccessToken("user-123", models.RoleUser, "a@b.com", 0, 1)
		require.NoError(t, err)

		w := doRequest(router, "Bearer "+token, "/whoami")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "user-123")
	})

	t.Run("bearer scheme is case-insensitive", func(t *testing.T) {
		token, err := issuer.CreateAccessToken("user-123", models.RoleUser, "a@b.com", 0, 1)
		require.NoError(t, err)

		w := doRequest(router, "bearer "+token, "/whoami")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	router, issuer := newTestRouter(t)

	t.Run("regular user is forbidden", func(t *testing.T) {
		token, err := issuer.CreateAccessToken("user-123", models.RoleUser, "a@b.com", 0, 1)
		require.NoError(t, err)

		w := doRequest(router, "Bearer "+token, "/admin")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin passes", func(t *testing.T) {
		token, err := issuer.CreateAccessToken("admin-1", models.RoleAdmin, "root@b.com", 0, 1)
		require.NoError(t, err)

		w := doRequest(router, "Bearer "+token, "/admin")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
