package service

import (
	"context"
	"testing"
	"time"

	"github.com/dnlksnvv/Trainova-sub001/auth/internal/config"
	"github.com/dnlksnvv/Trainova-sub001/shared/authutils"
	"github.com/dnlksnvv/Trainova-sub001/shared/interfaces/mocks"
	"github.com/dnlksnvv/Trainova-sub001/shared/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testPepper = "test-pepper-for-unit-tests"

func TestHashAndCheckPassword(t *testing.T) {
	password := "mysecretpassword1"

	hashedPassword, err := hashPassword(password, testPepper)
	require.NoError(t, err)
	require.NotEmpty(t, hashedPassword)
	assert.NotEqual(t, password, hashedPassword)

	assert.True(t, checkPasswordHash(password, hashedPassword, testPepper))
	assert.False(t, checkPasswordHash("wrongpassword1", hashedPassword, testPepper))
	assert.False(t, checkPasswordHash(password, hashedPassword, "another-pepper"))
	assert.False(t, checkPasswordHash(password, "not-a-bcrypt-hash", testPepper))
}

type testEnv struct {
	userRepo  *mocks.UserRepository
	blacklist *mocks.TokenBlacklistRepository
	email     *mocks.EmailSender
	events    *mocks.UserEventPublisher
	issuer    *authutils.Issuer
	svc       AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tokenCfg := authutils.Config{
		Secret:          "unit-test-secret-0123456789",
		Algorithm:       "HS256",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	}
	issuer, err := authutils.NewIssuer(tokenCfg)
	require.NoError(t, err)
	verifier, err := authutils.NewVerifier(tokenCfg, zap.NewNop())
	require.NoError(t, err)

	env := &testEnv{
		userRepo:  new(mocks.UserRepository),
		blacklist: new(mocks.TokenBlacklistRepository),
		email:     new(mocks.EmailSender),
		events:    new(mocks.UserEventPublisher),
		issuer:    issuer,
	}
	cfg := &config.Config{
		PasswordPepper:                  testPepper,
		ResetPasswordTokenExpireMinutes: 30,
	}
	env.svc = NewAuthService(env.userRepo, env.blacklist, issuer, verifier, env.email, env.events, cfg, zap.NewNop())
	return env
}

func testUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := hashPassword(password, testPepper)
	require.NoError(t, err)
	return &models.User{
		ID:              uuid.New(),
		Email:           "user@example.com",
		PasswordHash:    hash,
		RoleID:          models.RoleUser,
		PasswordVersion: 1,
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("successful login returns bearer pair", func(t *testing.T) {
		env := newTestEnv(t)
		user := testUser(t, "correct-horse1")
		env.userRepo.On("GetUserByEmail", ctx, user.Email).Return(user, nil).Once()

		tokens, err := env.svc.Login(ctx, "User@Example.com ", "correct-horse1")
		require.NoError(t, err)
		require.NotNil(t, tokens)
		assert.Equal(t, "bearer", tokens.TokenType)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		assert.NotEqual(t, tokens.AccessToken, tokens.RefreshToken)
		env.userRepo.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		env := newTestEnv(t)
		user := testUser(t, "correct-horse1")
		env.userRepo.On("GetUserByEmail", ctx, user.Email).Return(user, nil).Once()

		_, err := env.svc.Login(ctx, user.Email, "wrong-password1")
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		env := newTestEnv(t)
		env.userRepo.On("GetUserByEmail", ctx, "ghost@example.com").Return(nil, models.ErrUserNotFound).Once()

		_, err := env.svc.Login(ctx, "ghost@example.com", "whatever1")
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("successful rotation revokes the spent token", func(t *testing.T) {
		env := newTestEnv(t)
		user := testUser(t, "pw1")
		refresh, err := env.issuer.CreateRefreshToken(user.ID.String(), user.RoleID, user.Email, user.PasswordVersion)
		require.NoError(t, err)

		env.blacklist.On("IsBlacklisted", ctx, refresh).Return(false).Once()
		env.userRepo.On("GetUserByID", ctx, user.ID).Return(user, nil).Once()
		env.blacklist.On("Add", ctx, refresh, mock.AnythingOfType("time.Time")).Return(true).Once()

		tokens, err := env.svc.Refresh(ctx, refresh)
		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEqual(t, refresh, tokens.RefreshToken)
		env.blacklist.AssertExpectations(t)
	})

	t.Run("revoked refresh token is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		user := testUser(t, "pw1")
		refresh, err := env.issuer.CreateRefreshToken(user.ID.String(), user.RoleID, user.Email, user.PasswordVersion)
		require.NoError(t, err)

		env.blacklist.On("IsBlacklisted", ctx, refresh).Return(true).Once()

		_, err = env.svc.Refresh(ctx, refresh)
		assert.ErrorIs(t, err, models.ErrTokenRevoked)
		env.userRepo.AssertNotCalled(t, "GetUserByID", mock.Anything, mock.Anything)
	})

	t.Run("access token cannot be used as refresh token", func(t *testing.T) {
		env := newTestEnv(t)
		user := testUser(t, "pw1")
		access, err := env.issuer.CreateAccessToken(user.ID.String(), user.RoleID, user.Email, 0, user.PasswordVersion)
		require.NoError(t, err)

		_, err = env.svc.Refresh(ctx, access)
		assert.ErrorIs(t, err, models.ErrWrongTokenType)
	})

	t.Run("stale password_version is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		user := testUser(t, "pw1")
		refresh, err := env.issuer.CreateRefreshToken(user.ID.String(), user.RoleID, user.Email, 1)
		require.NoError(t, err)

		// Password changed after the token was minted.
		current := *user
		current.PasswordVersion = 2

		env.blacklist.On("IsBlacklisted", ctx, refresh).Return(false).Once()
		env.userRepo.On("GetUserByID", ctx, user.ID).Return(&current, nil).Once()

		_, err = env.svc.Refresh(ctx, refresh)
		assert.ErrorIs(t, err, models.ErrTokenInvalid)
		env.blacklist.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("both tokens are blacklisted", func(t *testing.T) {
		env := newTestEnv(t)
		user := testUser(t, "pw1")
		access, err := env.issuer.CreateAccessToken(user.ID.String(), user.RoleID, user.Email, 0, user.PasswordVersion)
		require.NoError(t, err)
		refresh, err := env.issuer.CreateRefreshToken(user.ID.String(), user.RoleID, user.Email, user.PasswordVersion)
		require.NoError(t, err)

		env.blacklist.On("Add", ctx, access, mock.AnythingOfType("time.Time")).Return(true).Once()
		env.blacklist.On("Add", ctx, refresh, mock.AnythingOfType("time.Time")).Return(true).Once()

		env.svc.Logout(ctx, access, refresh)
		env.blacklist.AssertExpectations(t)
	})

	t.Run("garbage tokens are skipped without store writes", func(t *testing.T) {
		env := newTestEnv(t)

		env.svc.Logout(ctx, "abc", "")
		env.blacklist.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("store outage does not surface", func(t *testing.T) {
		env := newTestEnv(t)
		user := testUser(t, "pw1")
		access, err := env.issuer.CreateAccessToken(user.ID.String(), user.RoleID, user.Email, 0, user.PasswordVersion)
		require.NoError(t, err)

		env.blacklist.On("Add", ctx, access, mock.AnythingOfType("time.Time")).Return(false).Once()

		env.svc.Logout(ctx, access, "")
		env.blacklist.AssertExpectations(t)
	})
}

func TestVerifyAccessToken(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token passes with blacklist check", func(t *testing.T) {
		env := newTestEnv(t)
		user := testUser(t, "pw1")
		access, err := env.issuer.CreateAccessToken(user.ID.String(), user.RoleID, user.Email, 0, user.PasswordVersion)
		require.NoError(t, err)

		env.blacklist.On("IsBlacklisted", ctx, access).Return(false).Once()

		claims, err := env.svc.VerifyAccessToken(ctx, access)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.UserID)
		assert.Equal(t, models.TokenTypeAccess, claims.TokenType)
	})

	t.Run("blacklisted token is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		user := testUser(t, "pw1")
		access, err := env.issuer.CreateAccessToken(user.ID.String(), user.RoleID, user.Email, 0, user.PasswordVersion)
		require.NoError(t, err)

		env.blacklist.On("IsBlacklisted", ctx, access).Return(true).Once()

		_, err = env.svc.VerifyAccessToken(ctx, access)
		assert.ErrorIs(t, err, models.ErrTokenRevoked)
	})

	t.Run("refresh token is the wrong type", func(t *testing.T) {
		env := newTestEnv(t)
		user := testUser(t, "pw1")
		refresh, err := env.issuer.CreateRefreshToken(user.ID.String(), user.RoleID, user.Email, user.PasswordVersion)
		require.NoError(t, err)

		_, err = env.svc.VerifyAccessToken(ctx, refresh)
		assert.ErrorIs(t, err, models.ErrWrongTokenType)
	})
}

func TestConfirmPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("successful reset bumps version and revokes the token", func(t *testing.T) {
		env := newTestEnv(t)
		user := testUser(t, "old-password1")
		token, err := env.issuer.CreateResetPasswordToken(user.ID.String(), user.RoleID, user.Email, 30, user.PasswordVersion)
		require.NoError(t, err)

		env.blacklist.On("IsBlacklisted", ctx, token).Return(false).Once()
		env.userRepo.On("GetUserByID", ctx, user.ID).Return(user, nil).Once()
		env.userRepo.On("UpdatePassword", ctx, user.ID, mock.AnythingOfType("string")).Return(2, nil).Once()
		env.blacklist.On("Add", ctx, token, mock.AnythingOfType("time.Time")).Return(true).Once()
		env.events.On("PublishPasswordChanged", ctx, mock.MatchedBy(func(ev models.UserPasswordChangedEvent) bool {
			return ev.UserID == user.ID.String() && ev.PasswordVersion == 2
		})).Return(nil).Once()

		err = env.svc.ConfirmPasswordReset(ctx, token, "new-password1")
		require.NoError(t, err)
		env.userRepo.AssertExpectations(t)
		env.blacklist.AssertExpectations(t)
		env.events.AssertExpectations(t)
	})

	t.Run("used token is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		user := testUser(t, "old-password1")
		token, err := env.issuer.CreateResetPasswordToken(user.ID.String(), user.RoleID, user.Email, 30, user.PasswordVersion)
		require.NoError(t, err)

		env.blacklist.On("IsBlacklisted", ctx, token).Return(true).Once()

		err = env.svc.ConfirmPasswordReset(ctx, token, "new-password1")
		assert.ErrorIs(t, err, models.ErrTokenRevoked)
		env.userRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("token minted before a later password change is dead", func(t *testing.T) {
		env := newTestEnv(t)
		user := testUser(t, "old-password1")
		token, err := env.issuer.CreateResetPasswordToken(user.ID.String(), user.RoleID, user.Email, 30, 1)
		require.NoError(t, err)

		current := *user
		current.PasswordVersion = 3

		env.blacklist.On("IsBlacklisted", ctx, token).Return(false).Once()
		env.userRepo.On("GetUserByID", ctx, user.ID).Return(&current, nil).Once()

		err = env.svc.ConfirmPasswordReset(ctx, token, "new-password1")
		assert.ErrorIs(t, err, models.ErrTokenInvalid)
	})

	t.Run("access token is the wrong type", func(t *testing.T) {
		env := newTestEnv(t)
		user := testUser(t, "old-password1")
		access, err := env.issuer.CreateAccessToken(user.ID.String(), user.RoleID, user.Email, 0, user.PasswordVersion)
		require.NoError(t, err)

		err = env.svc.ConfirmPasswordReset(ctx, access, "new-password1")
		assert.ErrorIs(t, err, models.ErrWrongTokenType)
	})
}

func TestRequestPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("known email sends a token", func(t *testing.T) {
		env := newTestEnv(t)
		user := testUser(t, "pw1")
		env.userRepo.On("GetUserByEmail", ctx, user.Email).Return(user, nil).Once()
		env.email.On("SendPasswordReset", ctx, user.Email, mock.AnythingOfType("string")).Return(nil).Once()

		err := env.svc.RequestPasswordReset(ctx, user.Email)
		require.NoError(t, err)
		env.email.AssertExpectations(t)
	})

	t.Run("unknown email is silently accepted", func(t *testing.T) {
		env := newTestEnv(t)
		env.userRepo.On("GetUserByEmail", ctx, "ghost@example.com").Return(nil, models.ErrUserNotFound).Once()

		err := env.svc.RequestPasswordReset(ctx, "ghost@example.com")
		require.NoError(t, err)
		env.email.AssertNotCalled(t, "SendPasswordReset", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("successful registration publishes an event", func(t *testing.T) {
		env := newTestEnv(t)

		env.userRepo.On("CreateUser", ctx, mock.MatchedBy(func(u *models.User) bool {
			assert.Equal(t, "new@example.com", u.Email)
			assert.Equal(t, models.RoleUser, u.RoleID)
			assert.NotEmpty(t, u.PasswordHash)
			u.ID = uuid.New()
			u.PasswordVersion = 1
			return true
		})).Return(nil).Once()
		env.events.On("PublishUserRegistered", ctx, mock.MatchedBy(func(ev models.UserRegisteredEvent) bool {
			return ev.Email == "new@example.com"
		})).Return(nil).Once()

		user, tokens, err := env.svc.Register(ctx, " New@Example.com ", "password1", "Ada", "Lovelace")
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", user.Email)
		assert.Equal(t, "bearer", tokens.TokenType)
		env.events.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		env := newTestEnv(t)
		env.userRepo.On("CreateUser", ctx, mock.Anything).Return(models.ErrEmailAlreadyExists).Once()

		_, _, err := env.svc.Register(ctx, "dup@example.com", "password1", "", "")
		assert.ErrorIs(t, err, models.ErrEmailAlreadyExists)
	})

	t.Run("invalid email format", func(t *testing.T) {
		env := newTestEnv(t)

		_, _, err := env.svc.Register(ctx, "not-an-email", "password1", "", "")
		assert.ErrorIs(t, err, models.ErrInvalidInput)
		env.userRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})
}
