package service

import (
	"context"

	"github.com/dnlksnvv/Trainova-sub001/profile-service/internal/repository"
	"github.com/dnlksnvv/Trainova-sub001/shared/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProfileService exposes the profile operations used by the HTTP layer and
// the registration event consumer.
type ProfileService interface {
	EnsureProfile(ctx context.Context, userID uuid.UUID) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	UpdateProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error)
}

var _ ProfileService = (*profileServiceImpl)(nil)

type profileServiceImpl struct {
	repo   repository.ProfileRepository
	logger *zap.Logger
}

func NewProfileService(repo repository.ProfileRepository, logger *zap.Logger) ProfileService {
	return &profileServiceImpl{
		repo:   repo,
		logger: logger.Named("ProfileService"),
	}
}

// EnsureProfile creates the blank row for a new user. Idempotent.
func (s *profileServiceImpl) EnsureProfile(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.CreateEmpty(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("Profile ensured", zap.String("userID", userID.String()))
	return nil
}

func (s *profileServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *profileServiceImpl) UpdateProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}
	s.logger.Info("Profile updated", zap.String("userID", profile.UserID.String()))
	return profile, nil
}
