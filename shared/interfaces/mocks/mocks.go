package mocks

import (
	"context"
	"time"

	"github.com/dnlksnvv/Trainova-sub001/shared/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock UserRepository
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) (int, error) {
	args := m.Called(ctx, userID, passwordHash)
	return args.Int(0), args.Error(1)
}

func (m *UserRepository) UpdateEmail(ctx context.Context, userID uuid.UUID, email string) error {
	args := m.Called(ctx, userID, email)
	return args.Error(0)
}

// Mock TokenBlacklistRepository
type TokenBlacklistRepository struct {
	mock.Mock
}

func (m *TokenBlacklistRepository) Add(ctx context.Context, token string, expiresAt time.Time) bool {
	args := m.Called(ctx, token, expiresAt)
	return args.Bool(0)
}

func (m *TokenBlacklistRepository) IsBlacklisted(ctx context.Context, token string) bool {
	args := m.Called(ctx, token)
	return args.Bool(0)
}

func (m *TokenBlacklistRepository) CleanExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Mock EmailSender
type EmailSender struct {
	mock.Mock
}

func (m *EmailSender) SendPasswordReset(ctx context.Context, email, token string) error {
	args := m.Called(ctx, email, token)
	return args.Error(0)
}

func (m *EmailSender) SendEmailChangeConfirmation(ctx context.Context, email, token string) error {
	args := m.Called(ctx, email, token)
	return args.Error(0)
}

// Mock UserEventPublisher
type UserEventPublisher struct {
	mock.Mock
}

func (m *UserEventPublisher) PublishUserRegistered(ctx context.Context, event models.UserRegisteredEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *UserEventPublisher) PublishPasswordChanged(ctx context.Context, event models.UserPasswordChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *UserEventPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
