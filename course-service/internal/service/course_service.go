package service

import (
	"context"

	"github.com/dnlksnvv/Trainova-sub001/course-service/internal/repository"
	"github.com/dnlksnvv/Trainova-sub001/shared/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// CourseService manages the training program catalog. Reads are public;
// mutation authorization happens at the HTTP layer via the admin gate.
type CourseService interface {
	CreateCourse(ctx context.Context, course *models.Course) (*models.Course, error)
	GetCourse(ctx context.Context, id uuid.UUID) (*models.Course, error)
	ListCourses(ctx context.Context, limit, offset int) ([]*models.Course, error)
	UpdateCourse(ctx context.Context, course *models.Course) (*models.Course, error)
	DeleteCourse(ctx context.Context, id uuid.UUID) error
}

var _ CourseService = (*courseServiceImpl)(nil)

type courseServiceImpl struct {
	repo   repository.CourseRepository
	logger *zap.Logger
}

func NewCourseService(repo repository.CourseRepository, logger *zap.Logger) CourseService {
	return &courseServiceImpl{
		repo:   repo,
		logger: logger.Named("CourseService"),
	}
}

func (s *courseServiceImpl) CreateCourse(ctx context.Context, course *models.Course) (*models.Course, error) {
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, err
	}
	s.logger.Info("Course created", zap.String("id", course.ID.String()), zap.String("title", course.Title))
	return course, nil
}

func (s *courseServiceImpl) GetCourse(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *courseServiceImpl) ListCourses(ctx context.Context, limit, offset int) ([]*models.Course, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *courseServiceImpl) UpdateCourse(ctx context.Context, course *models.Course) (*models.Course, error) {
	if err := s.repo.Update(ctx, course); err != nil {
		return nil, err
	}
	s.logger.Info("Course updated", zap.String("id", course.ID.String()))
	return course, nil
}

func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Course deleted", zap.String("id", id.String()))
	return nil
}
