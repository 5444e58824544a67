package authutils

import (
	"testing"
	"time"

	"github.com/dnlksnvv/Trainova-sub001/shared/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Secret:          "issuer-test-secret-0123456789",
		Algorithm:       "HS256",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	}
}

func TestNewIssuer(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		issuer, err := NewIssuer(testConfig())
		require.NoError(t, err)
		require.NotNil(t, issuer)
	})

	t.Run("empty secret is rejected", func(t *testing.T) {
		cfg := testConfig()
		cfg.Secret = ""
		_, err := NewIssuer(cfg)
		assert.Error(t, err)
	})

	t.Run("unknown algorithm is rejected", func(t *testing.T) {
		cfg := testConfig()
		cfg.Algorithm = "RS256"
		_, err := NewIssuer(cfg)
		assert.Error(t, err)
	})

	t.Run("empty algorithm defaults to HS256", func(t *testing.T) {
		cfg := testConfig()
		cfg.Algorithm = ""
		issuer, err := NewIssuer(cfg)
		require.NoError(t, err)
		require.NotNil(t, issuer)
	})
}

func TestIssueAndDecodeRoundTrip(t *testing.T) {
	cfg := testConfig()
	issuer, err := NewIssuer(cfg)
	require.NoError(t, err)
	verifier, err := NewVerifier(cfg, nil)
	require.NoError(t, err)

	userID := "b3c8e4d1-0f3a-4f2e-9a3b-111122223333"

	t.Run("access token", func(t *testing.T) {
		token, err := issuer.CreateAccessToken(userID, models.RoleUser, "a@b.com", 0, 3)
		require.NoError(t, err)

		claims, err := verifier.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, models.RoleUser, claims.RoleID)
		assert.Equal(t, "a@b.com", claims.Email)
		assert.Equal(t, models.TokenTypeAccess, claims.TokenType)
		assert.Equal(t, 3, claims.PasswordVersion)
		assert.Equal(t, userID, claims.Subject)
		assert.NotEmpty(t, claims.ID)
		require.NotNil(t, claims.ExpiresAt)
		require.NotNil(t, claims.IssuedAt)
		assert.WithinDuration(t, claims.IssuedAt.Add(time.Hour), claims.ExpiresAt.Time, 2*time.Second)
	})

	t.Run("access token with minute override", func(t *testing.T) {
		token, err := issuer.CreateAccessToken(userID, models.RoleUser, "a@b.com", 5, 1)
		require.NoError(t, err)

		claims, err := verifier.Decode(token)
		require.NoError(t, err)
		assert.WithinDuration(t, claims.IssuedAt.Add(5*time.Minute), claims.ExpiresAt.Time, 2*time.Second)
	})

	t.Run("refresh token", func(t *testing.T) {
		token, err := issuer.CreateRefreshToken(userID, models.RoleAdmin, "a@b.com", 1)
		require.NoError(t, err)

		claims, err := verifier.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, models.TokenTypeRefresh, claims.TokenType)
		assert.Equal(t, models.RoleAdmin, claims.RoleID)
		assert.WithinDuration(t, claims.IssuedAt.Add(24*time.Hour), claims.ExpiresAt.Time, 2*time.Second)
	})

	t.Run("reset token falls back to default lifetime", func(t *testing.T) {
		token, err := issuer.CreateResetPasswordToken(userID, models.RoleUser, "a@b.com", 0, 1)
		require.NoError(t, err)

		claims, err := verifier.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, models.TokenTypeResetPassword, claims.TokenType)
		assert.WithinDuration(t, claims.IssuedAt.Add(defaultResetPasswordTTL), claims.ExpiresAt.Time, 2*time.Second)
	})

	t.Run("email change token carries the new address", func(t *testing.T) {
		token, err := issuer.CreateEmailChangeToken(userID, models.RoleUser, "new@b.com", 15, 1)
		require.NoError(t, err)

		claims, err := verifier.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, models.TokenTypeEmailChange, claims.TokenType)
		assert.Equal(t, "new@b.com", claims.Email)
	})

	t.Run("tokens carry unique jti", func(t *testing.T) {
		t1, err := issuer.CreateAccessToken(userID, models.RoleUser, "a@b.com", 0, 1)
		require.NoError(t, err)
		t2, err := issuer.CreateAccessToken(userID, models.RoleUser, "a@b.com", 0, 1)
		require.NoError(t, err)
		assert.NotEqual(t, t1, t2)
	})
}
