package service

import (
	"context"

	"github.com/dnlksnvv/Trainova-sub001/shared/models"
	"github.com/dnlksnvv/Trainova-sub001/workouts-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// WorkoutService enforces ownership: users see and mutate only their own
// workouts.
type WorkoutService interface {
	CreateWorkout(ctx context.Context, workout *models.Workout) (*models.Workout, error)
	GetWorkout(ctx context.Context, userID, workoutID uuid.UUID) (*models.Workout, error)
	ListWorkouts(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Workout, error)
	UpdateWorkout(ctx context.Context, userID uuid.UUID, workout *models.Workout) (*models.Workout, error)
	DeleteWorkout(ctx context.Context, userID, workoutID uuid.UUID) error
}

var _ WorkoutService = (*workoutServiceImpl)(nil)

type workoutServiceImpl struct {
	repo   repository.WorkoutRepository
	logger *zap.Logger
}

func NewWorkoutService(repo repository.WorkoutRepository, logger *zap.Logger) WorkoutService {
	return &workoutServiceImpl{
		repo:   repo,
		logger: logger.Named("WorkoutService"),
	}
}

func (s *workoutServiceImpl) CreateWorkout(ctx context.Context, workout *models.Workout) (*models.Workout, error) {
	if err := s.repo.Create(ctx, workout); err != nil {
		return nil, err
	}
	s.logger.Info("Workout created", zap.String("id", workout.ID.String()), zap.String("userID", workout.UserID.String()))
	return workout, nil
}

// GetWorkout returns not-found for foreign workouts: existence of another
// user's data must not leak.
func (s *workoutServiceImpl) GetWorkout(ctx context.Context, userID, workoutID uuid.UUID) (*models.Workout, error) {
	workout, err := s.repo.GetByID(ctx, workoutID)
	if err != nil {
		return nil, err
	}
	if workout.UserID != userID {
		return nil, models.ErrWorkoutNotFound
	}
	return workout, nil
}

func (s *workoutServiceImpl) ListWorkouts(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Workout, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

func (s *workoutServiceImpl) UpdateWorkout(ctx context.Context, userID uuid.UUID, workout *models.Workout) (*models.Workout, error) {
	existing, err := s.GetWorkout(ctx, userID, workout.ID)
	if err != nil {
		return nil, err
	}
	workout.UserID = existing.UserID
	workout.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, workout); err != nil {
		return nil, err
	}
	s.logger.Info("Workout updated", zap.String("id", workout.ID.String()))
	return workout, nil
}

func (s *workoutServiceImpl) DeleteWorkout(ctx context.Context, userID, workoutID uuid.UUID) error {
	if _, err := s.GetWorkout(ctx, userID, workoutID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, workoutID); err != nil {
		return err
	}
	s.logger.Info("Workout deleted", zap.String("id", workoutID.String()))
	return nil
}
