package authutils

import (
	"testing"
	"time"

	"github.com/dnlksnvv/Trainova-sub001/shared/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signRaw crafts a token directly, bypassing the Issuer, so tests can mint
// expired or foreign tokens.
func signRaw(t *testing.T, secret string, method jwt.SigningMethod, tokenType string, issuedAt, expiresAt time.Time) string {
	t.Helper()
	claims := &models.TokenClaims{
		UserID:          uuid.NewString(),
		RoleID:          models.RoleUser,
		Email:           "a@b.com",
		TokenType:       tokenType,
		PasswordVersion: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newTestVerifier(t *testing.T) *Verifier {
	t.Helper()
	v, err := NewVerifier(testConfig(), nil)
	require.NoError(t, err)
	return v
}

func TestDecodeRejectsGarbage(t *testing.T) {
	v := newTestVerifier(t)

	t.Run("too short", func(t *testing.T) {
		_, err := v.Decode("abc")
		assert.ErrorIs(t, err, models.ErrTokenMalformed)
	})

	t.Run("whitespace only", func(t *testing.T) {
		_, err := v.Decode("              ")
		assert.ErrorIs(t, err, models.ErrTokenMalformed)
	})

	t.Run("not a jwt", func(t *testing.T) {
		_, err := v.Decode("definitely-not-a-jwt-token")
		assert.ErrorIs(t, err, models.ErrTokenMalformed)
	})

	t.Run("surrounding whitespace is tolerated", func(t *testing.T) {
		token := signRaw(t, testConfig().Secret, jwt.SigningMethodHS256, models.TokenTypeAccess,
			time.Now(), time.Now().Add(time.Hour))
		claims, err := v.Decode("  " + token + "  ")
		require.NoError(t, err)
		assert.Equal(t, models.TokenTypeAccess, claims.TokenType)
	})
}

func TestDecodeSignatureAndAlgorithm(t *testing.T) {
	v := newTestVerifier(t)

	t.Run("wrong secret", func(t *testing.T) {
		token := signRaw(t, "some-other-secret-0123456789", jwt.SigningMethodHS256, models.TokenTypeAccess,
			time.Now(), time.Now().Add(time.Hour))
		_, err := v.Decode(token)
		assert.ErrorIs(t, err, models.ErrTokenInvalid)
	})

	t.Run("wrong hmac variant", func(t *testing.T) {
		token := signRaw(t, testConfig().Secret, jwt.SigningMethodHS384, models.TokenTypeAccess,
			time.Now(), time.Now().Add(time.Hour))
		_, err := v.Decode(token)
		assert.ErrorIs(t, err, models.ErrTokenInvalid)
	})

	t.Run("unsigned token", func(t *testing.T) {
		claims := &models.TokenClaims{TokenType: models.TokenTypeAccess}
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = v.Decode(unsigned)
		assert.Error(t, err)
	})
}

func TestDecodeExpiry(t *testing.T) {
	v := newTestVerifier(t)
	secret := testConfig().Secret

	t.Run("expired access token is rejected", func(t *testing.T) {
		token := signRaw(t, secret, jwt.SigningMethodHS256, models.TokenTypeAccess,
			time.Now().Add(-2*time.Hour), time.Now().Add(-time.Hour))
		_, err := v.Decode(token)
		assert.ErrorIs(t, err, models.ErrTokenExpired)
	})

	t.Run("expired refresh token is rejected", func(t *testing.T) {
		token := signRaw(t, secret, jwt.SigningMethodHS256, models.TokenTypeRefresh,
			time.Now().Add(-2*time.Hour), time.Now().Add(-time.Hour))
		_, err := v.Decode(token)
		assert.ErrorIs(t, err, models.ErrTokenExpired)
	})

	t.Run("expired reset_password token still decodes", func(t *testing.T) {
		token := signRaw(t, secret, jwt.SigningMethodHS256, models.TokenTypeResetPassword,
			time.Now().Add(-2*time.Hour), time.Now().Add(-time.Hour))
		claims, err := v.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, models.TokenTypeResetPassword, claims.TokenType)
	})

	t.Run("expired reset token with bad signature is still rejected", func(t *testing.T) {
		token := signRaw(t, "some-other-secret-0123456789", jwt.SigningMethodHS256, models.TokenTypeResetPassword,
			time.Now().Add(-2*time.Hour), time.Now().Add(-time.Hour))
		_, err := v.Decode(token)
		assert.ErrorIs(t, err, models.ErrTokenInvalid)
	})
}

func TestIsValid(t *testing.T) {
	v := newTestVerifier(t)
	secret := testConfig().Secret

	valid := signRaw(t, secret, jwt.SigningMethodHS256, models.TokenTypeAccess,
		time.Now(), time.Now().Add(time.Hour))

	assert.True(t, v.IsValid(valid, models.TokenTypeAccess))
	assert.True(t, v.IsValid(valid, ""))
	assert.False(t, v.IsValid(valid, models.TokenTypeRefresh))
	assert.False(t, v.IsValid("abc", models.TokenTypeAccess))
}
