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

// CourseRepository persists the training program catalog.
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	List(ctx context.Context, limit, offset int) ([]*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ CourseRepository = (*pgCourseRepository)(nil)

type pgCourseRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPgCourseRepository(db *pgxpool.Pool, logger *zap.Logger) CourseRepository {
	return &pgCourseRepository{
		db:     db,
		logger: logger.Named("PgCourseRepo"),
	}
}

func (r *pgCourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `INSERT INTO courses (title, description, level, duration_weeks)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, course.Title, course.Description, course.Level, course.DurationWeeks).
		Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create course", zap.Error(err), zap.String("title", course.Title))
		return fmt.Errorf("failed to create course: %w", err)
	}
	return nil
}

func (r *pgCourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	query := `SELECT id, title, description, level, duration_weeks, created_at, updated_at
	          FROM courses WHERE id = $1`
	course := &models.Course{}
	err := pgxscan.Get(ctx, r.db, course, query, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrCourseNotFound
		}
		r.logger.Error("Failed to get course", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

func (r *pgCourseRepository) List(ctx context.Context, limit, offset int) ([]*models.Course, error) {
	query := `SELECT id, title, description, level, duration_weeks, created_at, updated_at
	          FROM courses ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	var courses []*models.Course
	err := pgxscan.Select(ctx, r.db, &courses, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list courses", zap.Error(err))
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

func (r *pgCourseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `UPDATE courses
	          SET title = $2, description = $3, level = $4, duration_weeks = $5, updated_at = now()
	          WHERE id = $1
	          RETURNING updated_at`
	err := r.db.QueryRow(ctx, query, course.ID, course.Title, course.Description, course.Level, course.DurationWeeks).
		Scan(&course.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrCourseNotFound
		}
		r.logger.Error("Failed to update course", zap.Error(err), zap.String("id", course.ID.String()))
		return fmt.Errorf("failed to update course: %w", err)
	}
	return nil
}

func (r *pgCourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete course", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("failed to delete course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrCourseNotFound
	}
	return nil
}
