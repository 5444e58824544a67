package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dnlksnvv/Trainova-sub001/shared/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// WorkoutRepository persists logged training sessions.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *models.Workout) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Workout, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Workout, error)
	Update(ctx context.Context, workout *models.Workout) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ WorkoutRepository = (*pgWorkoutRepository)(nil)

type pgWorkoutRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPgWorkoutRepository(db *pgxpool.Pool, logger *zap.Logger) WorkoutRepository {
	return &pgWorkoutRepository{
		db:     db,
		logger: logger.Named("PgWorkoutRepo"),
	}
}

func (r *pgWorkoutRepository) Create(ctx context.Context, workout *models.Workout) error {
	query := `INSERT INTO workouts (user_id, title, description, duration_minutes, intensity, performed_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query,
		workout.UserID, workout.Title, workout.Description,
		workout.DurationMinutes, workout.Intensity, workout.PerformedAt).
		Scan(&workout.ID, &workout.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create workout", zap.Error(err), zap.String("userID", workout.UserID.String()))
		return fmt.Errorf("failed to create workout: %w", err)
	}
	return nil
}

func (r *pgWorkoutRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Workout, error) {
	query := `SELECT id, user_id, title, description, duration_minutes, intensity, performed_at, created_at
	          FROM workouts WHERE id = $1`
	workout := &models.Workout{}
	err := pgxscan.Get(ctx, r.db, workout, query, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrWorkoutNotFound
		}
		r.logger.Error("Failed to get workout", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("failed to get workout: %w", err)
	}
	return workout, nil
}

func (r *pgWorkoutRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Workout, error) {
	query := `SELECT id, user_id, title, description, duration_minutes, intensity, performed_at, created_at
	          FROM workouts WHERE user_id = $1
	          ORDER BY performed_at DESC
	          LIMIT $2 OFFSET $3`
	var workouts []*models.Workout
	err := pgxscan.Select(ctx, r.db, &workouts, query, userID, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list workouts", zap.Error(err), zap.String("userID", userID.String()))
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	return workouts, nil
}

func (r *pgWorkoutRepository) Update(ctx context.Context, workout *models.Workout) error {
	query := `UPDATE workouts
	          SET title = $2, description = $3, duration_minutes = $4, intensity = $5, performed_at = $6
	          WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		workout.ID, workout.Title, workout.Description,
		workout.DurationMinutes, workout.Intensity, workout.PerformedAt)
	if err != nil {
		r.logger.Error("Failed to update workout", zap.Error(err), zap.String("id", workout.ID.String()))
		return fmt.Errorf("failed to update workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrWorkoutNotFound
	}
	return nil
}

func (r *pgWorkoutRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM workouts WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete workout", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("failed to delete workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrWorkoutNotFound
	}
	return nil
}
