package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dnlksnvv/Trainova-sub001/auth/internal/config"
	"github.com/dnlksnvv/Trainova-sub001/shared/authutils"
	"github.com/dnlksnvv/Trainova-sub001/shared/interfaces"
	"github.com/dnlksnvv/Trainova-sub001/shared/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Compile-time check to ensure authServiceImpl implements AuthService
var _ AuthService = (*authServiceImpl)(nil)

type authServiceImpl struct {
	userRepo    interfaces.UserRepository
	blacklist   interfaces.TokenBlacklistRepository
	issuer      *authutils.Issuer
	verifier    *authutils.Verifier
	emailSender interfaces.EmailSender
	events      interfaces.UserEventPublisher
	cfg         *config.Config
	logger      *zap.Logger
}

// NewAuthService wires the token subsystem together.
func NewAuthService(
	userRepo interfaces.UserRepository,
	blacklist interfaces.TokenBlacklistRepository,
	issuer *authutils.Issuer,
	verifier *authutils.Verifier,
	emailSender interfaces.EmailSender,
	events interfaces.UserEventPublisher,
	cfg *config.Config,
	logger *zap.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:    userRepo,
		blacklist:   blacklist,
		issuer:      issuer,
		verifier:    verifier,
		emailSender: emailSender,
		events:      events,
		cfg:         cfg,
		logger:      logger.Named("AuthService"),
	}
}

// Register creates a new user and issues the first token pair.
func (s *authServiceImpl) Register(ctx context.Context, email, password, firstName, lastName string) (*models.User, *models.TokenPairResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	log := s.logger.With(zap.String("email", email))
	log.Info("Registering new user")

	if _, err := mail.ParseAddress(email); err != nil {
		log.Warn("Registration attempt with invalid email format", zap.Error(err))
		return nil, nil, fmt.Errorf("invalid email format: %w", models.ErrInvalidInput)
	}
	if password == "" {
		log.Warn("Registration attempt with empty password")
		return nil, nil, models.ErrInvalidInput
	}

	hashedPassword, err := hashPassword(password, s.cfg.PasswordPepper)
	if err != nil {
		log.Error("Failed to hash password during registration", zap.Error(err))
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hashedPassword,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		RoleID:       models.RoleUser,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		// Duplicate email is already mapped by the repository.
		return nil, nil, err
	}

	pair, err := s.issueTokenPair(user)
	if err != nil {
		log.Error("Failed to issue tokens after registration", zap.Error(err), zap.String("userID", user.ID.String()))
		return nil, nil, err
	}

	if err := s.events.PublishUserRegistered(ctx, models.UserRegisteredEvent{
		UserID:     user.ID.String(),
		Email:      user.Email,
		OccurredAt: time.Now().UTC(),
	}); err != nil {
		// Registration already committed; the profile row can be created
		// later by hand, so only log.
		log.Error("Failed to publish user.registered event", zap.Error(err), zap.String("userID", user.ID.String()))
	}

	log.Info("User registered", zap.String("userID", user.ID.String()))
	return user, pair, nil
}

// Login authenticates a user and returns a fresh token pair.
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*models.TokenPairResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	log := s.logger.With(zap.String("email", email))
	log.Info("Login attempt")

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			log.Warn("Login failed: user not found")
			return nil, models.ErrInvalidCredentials
		}
		log.Error("Login failed: error getting user from repository", zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !checkPasswordHash(password, user.PasswordHash, s.cfg.PasswordPepper) {
		log.Warn("Login failed: invalid password", zap.String("userID", user.ID.String()))
		return nil, models.ErrInvalidCredentials
	}

	pair, err := s.issueTokenPair(user)
	if err != nil {
		log.Error("Failed to issue tokens during login", zap.Error(err), zap.String("userID", user.ID.String()))
		return nil, err
	}

	log.Info("User logged in", zap.String("userID", user.ID.String()))
	return pair, nil
}

// Logout revokes the presented tokens by writing them to the blacklist.
// A store outage is absorbed: the client still sees a successful logout and
// the tokens simply age out.
func (s *authServiceImpl) Logout(ctx context.Context, accessToken, refreshToken string) {
	s.revokeToken(ctx, accessToken, "access")
	s.revokeToken(ctx, refreshToken, "refresh")
}

func (s *authServiceImpl) revokeToken(ctx context.Context, token, kind string) {
	if token == "" {
		return
	}
	claims, err := s.verifier.Decode(token)
	if err != nil {
		// Expired or garbage tokens need no blacklist entry.
		s.logger.Debug("Skipping revocation of undecodable token", zap.String("kind", kind), zap.Error(err))
		return
	}
	expiresAt := time.Now().Add(time.Hour)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if !s.blacklist.Add(ctx, token, expiresAt) {
		s.logger.Warn("Revocation store rejected blacklist write, token stays valid until expiry",
			zap.String("kind", kind), zap.String("userID", claims.UserID))
	}
}

// Refresh rotates a token pair.
func (s *authServiceImpl) Refresh(ctx context.Context, refreshToken string) (*models.TokenPairResponse, error) {
	log := s.logger.With(zap.String("operation", "Refresh"))

	claims, err := s.verifier.Decode(refreshToken)
	if err != nil {
		log.Warn("Refresh attempt with undecodable token", zap.Error(err))
		return nil, err
	}
	if !claims.IsType(models.TokenTypeRefresh) {
		log.Warn("Refresh attempt with wrong token type", zap.String("tokenType", claims.TokenType))
		return nil, models.ErrWrongTokenType
	}
	if s.blacklist.IsBlacklisted(ctx, refreshToken) {
		log.Warn("Refresh attempt with revoked token", zap.String("userID", claims.UserID))
		return nil, models.ErrTokenRevoked
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		log.Warn("Refresh token carries malformed user_id", zap.String("userID", claims.UserID))
		return nil, models.ErrTokenInvalid
	}
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			log.Warn("User from refresh token no longer exists", zap.String("userID", claims.UserID))
			return nil, models.ErrTokenInvalid
		}
		return nil, fmt.Errorf("failed to get user for refresh: %w", err)
	}

	// Tokens minted before the last password change carry a stale counter
	// and must not rotate into fresh credentials.
	if claims.PasswordVersion != user.PasswordVersion {
		log.Warn("Refresh token password_version mismatch",
			zap.Int("tokenVersion", claims.PasswordVersion),
			zap.Int("currentVersion", user.PasswordVersion),
			zap.String("userID", claims.UserID))
		return nil, models.ErrTokenInvalid
	}

	pair, err := s.issueTokenPair(user)
	if err != nil {
		log.Error("Failed to issue tokens during refresh", zap.Error(err), zap.String("userID", claims.UserID))
		return nil, err
	}

	// Rotation: the spent refresh token is revoked so it cannot be replayed.
	s.revokeToken(ctx, refreshToken, "refresh")

	log.Info("Token pair refreshed", zap.String("userID", claims.UserID))
	return pair, nil
}

// VerifyAccessToken decodes an access token and consults the blacklist.
func (s *authServiceImpl) VerifyAccessToken(ctx context.Context, tokenString string) (*models.TokenClaims, error) {
	claims, err := s.verifier.Decode(tokenString)
	if err != nil {
		return nil, err
	}
	if !claims.IsType(models.TokenTypeAccess) {
		return nil, models.ErrWrongTokenType
	}
	if s.blacklist.IsBlacklisted(ctx, tokenString) {
		s.logger.Debug("Access token is blacklisted", zap.String("userID", claims.UserID))
		return nil, models.ErrTokenRevoked
	}
	return claims, nil
}

// RequestPasswordReset mints a reset token and hands it to the email
// boundary. An unknown email is not an error: the response must not reveal
// whether an account exists.
func (s *authServiceImpl) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	log := s.logger.With(zap.String("email", email))

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			log.Info("Password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("failed to get user for password reset: %w", err)
	}

	token, err := s.issuer.CreateResetPasswordToken(user.ID.String(), user.RoleID, user.Email,
		s.cfg.ResetPasswordTokenExpireMinutes, user.PasswordVersion)
	if err != nil {
		log.Error("Failed to create reset password token", zap.Error(err))
		return err
	}

	if err := s.emailSender.SendPasswordReset(ctx, user.Email, token); err != nil {
		log.Error("Failed to send password reset email", zap.Error(err))
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	log.Info("Password reset email queued", zap.String("userID", user.ID.String()))
	return nil
}

// ConfirmPasswordReset applies a new password. The reset token decodes even
// when expired (the verifier exempts the type); a used or superseded token
// is rejected here instead.
func (s *authServiceImpl) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	log := s.logger.With(zap.String("operation", "ConfirmPasswordReset"))

	claims, err := s.verifier.Decode(token)
	if err != nil {
		log.Warn("Password reset confirmation with undecodable token", zap.Error(err))
		return err
	}
	if !claims.IsType(models.TokenTypeResetPassword) {
		return models.ErrWrongTokenType
	}
	if s.blacklist.IsBlacklisted(ctx, token) {
		log.Warn("Password reset token already used", zap.String("userID", claims.UserID))
		return models.ErrTokenRevoked
	}
	if newPassword == "" {
		return models.ErrInvalidInput
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return models.ErrTokenInvalid
	}
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return models.ErrTokenInvalid
		}
		return fmt.Errorf("failed to get user for password reset: %w", err)
	}

	// A reset link minted before a later password change is dead.
	if claims.PasswordVersion != user.PasswordVersion {
		log.Warn("Password reset token superseded by a newer password change", zap.String("userID", claims.UserID))
		return models.ErrTokenInvalid
	}

	hashed, err := hashPassword(newPassword, s.cfg.PasswordPepper)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}
	newVersion, err := s.userRepo.UpdatePassword(ctx, userID, hashed)
	if err != nil {
		return err
	}

	// Single use: revoke the reset token itself.
	s.revokeToken(ctx, token, "reset_password")

	if err := s.events.PublishPasswordChanged(ctx, models.UserPasswordChangedEvent{
		UserID:          claims.UserID,
		PasswordVersion: newVersion,
		OccurredAt:      time.Now().UTC(),
	}); err != nil {
		log.Error("Failed to publish user.password_changed event", zap.Error(err), zap.String("userID", claims.UserID))
	}

	log.Info("Password reset completed", zap.String("userID", claims.UserID), zap.Int("passwordVersion", newVersion))
	return nil
}

// RequestEmailChange mints an email_change token bound to the new address
// and sends the confirmation link there.
func (s *authServiceImpl) RequestEmailChange(ctx context.Context, userIDStr, newEmail string) error {
	newEmail = strings.ToLower(strings.TrimSpace(newEmail))
	log := s.logger.With(zap.String("userID", userIDStr), zap.String("newEmail", newEmail))

	if _, err := mail.ParseAddress(newEmail); err != nil {
		return fmt.Errorf("invalid email format: %w", models.ErrInvalidInput)
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return models.ErrInvalidInput
	}
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if _, err := s.userRepo.GetUserByEmail(ctx, newEmail); err == nil {
		return models.ErrEmailAlreadyExists
	} else if !errors.Is(err, models.ErrUserNotFound) {
		return fmt.Errorf("failed to check new email: %w", err)
	}

	token, err := s.issuer.CreateEmailChangeToken(user.ID.String(), user.RoleID, newEmail,
		s.cfg.ResetPasswordTokenExpireMinutes, user.PasswordVersion)
	if err != nil {
		log.Error("Failed to create email change token", zap.Error(err))
		return err
	}
	if err := s.emailSender.SendEmailChangeConfirmation(ctx, newEmail, token); err != nil {
		log.Error("Failed to send email change confirmation", zap.Error(err))
		return fmt.Errorf("failed to send email change confirmation: %w", err)
	}
	log.Info("Email change confirmation queued")
	return nil
}

// ConfirmEmailChange applies the address carried in the token. Unlike reset
// tokens, email_change tokens are subject to normal expiry.
func (s *authServiceImpl) ConfirmEmailChange(ctx context.Context, token string) error {
	log := s.logger.With(zap.String("operation", "ConfirmEmailChange"))

	claims, err := s.verifier.Decode(token)
	if err != nil {
		log.Warn("Email change confirmation with undecodable token", zap.Error(err))
		return err
	}
	if !claims.IsType(models.TokenTypeEmailChange) {
		return models.ErrWrongTokenType
	}
	if s.blacklist.IsBlacklisted(ctx, token) {
		return models.ErrTokenRevoked
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return models.ErrTokenInvalid
	}
	if err := s.userRepo.UpdateEmail(ctx, userID, claims.Email); err != nil {
		return err
	}

	s.revokeToken(ctx, token, "email_change")
	log.Info("Email change applied", zap.String("userID", claims.UserID))
	return nil
}

// CleanExpiredTokens sweeps the blacklist.
func (s *authServiceImpl) CleanExpiredTokens(ctx context.Context) (int64, error) {
	return s.blacklist.CleanExpired(ctx)
}

// issueTokenPair creates access+refresh tokens stamped with the user's
// current password_version.
func (s *authServiceImpl) issueTokenPair(user *models.User) (*models.TokenPairResponse, error) {
	access, err := s.issuer.CreateAccessToken(user.ID.String(), user.RoleID, user.Email, 0, user.PasswordVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}
	refresh, err := s.issuer.CreateRefreshToken(user.ID.String(), user.RoleID, user.Email, user.PasswordVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh token: %w", err)
	}
	return &models.TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}

// --- Helper Functions ---

// applyPepper applies HMAC-SHA256 using the pepper as the key.
func applyPepper(password, pepper string) []byte {
	h := hmac.New(sha256.New, []byte(pepper))
	h.Write([]byte(password))
	return h.Sum(nil)
}

// hashPassword generates a bcrypt hash of the peppered password.
func hashPassword(password, pepper string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword(applyPepper(password, pepper), bcrypt.DefaultCost)
	return string(bytes), err
}

// checkPasswordHash compares a plain password (after peppering) with a stored hash.
func checkPasswordHash(password, hash, pepper string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), applyPepper(password, pepper)) == nil
}
