package services

import (
	"context"
	"time"

	"pathshala-backend/application/ports"
	"pathshala-backend/domain/catalog"
	pkgerrors "pathshala-backend/pkg/errors"
	"pathshala-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CourseService manages the courses coaches offer
type CourseService struct {
	courses ports.CourseRepository
	logger  *zap.Logger
	now     func() time.Time
}

// NewCourseService creates a course service
func NewCourseService(courses ports.CourseRepository, logger *zap.Logger) *CourseService {
	return &CourseService{
		courses: courses,
		logger:  logger,
		now:     time.Now,
	}
}

// CreateCourse creates a draft course owned by the coach
func (s *CourseService) CreateCourse(ctx context.Context, coachID, title, description, category string, price float64, duration int) (catalog.Course, error) {
	course, err := catalog.NewCourse(uuid.New().String(), coachID, title, description, category, price, duration, s.now())
	if err != nil {
		return catalog.Course{}, err
	}

	if err := s.courses.Create(ctx, course); err != nil {
		return catalog.Course{}, pkgerrors.NewInternalError("failed to create course").WithCause(err)
	}
	return course, nil
}

// GetCourse returns a single course
func (s *CourseService) GetCourse(ctx context.Context, courseID string) (catalog.Course, error) {
	course, found, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return catalog.Course{}, pkgerrors.NewInternalError("failed to load course").WithCause(err)
	}
	if !found {
		return catalog.Course{}, pkgerrors.NewNotFoundError("course")
	}
	return course, nil
}

// ListCoachCourses returns all courses owned by a coach
func (s *CourseService) ListCoachCourses(ctx context.Context, coachID string) ([]catalog.Course, error) {
	return s.courses.ListByCoach(ctx, coachID)
}

// SetStatus publishes or archives a course; only the owning coach may
func (s *CourseService) SetStatus(ctx context.Context, coachID, courseID string, status catalog.CourseStatus) (catalog.Course, error) {
	course, found, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return catalog.Course{}, pkgerrors.NewInternalError("failed to load course").WithCause(err)
	}
	if !found {
		return catalog.Course{}, pkgerrors.NewNotFoundError("course")
	}
	if course.CoachID != coachID {
		return catalog.Course{}, pkgerrors.NewForbiddenError("course belongs to another coach")
	}

	switch status {
	case catalog.CourseActive, catalog.CourseDraft, catalog.CourseArchived:
	default:
		return catalog.Course{}, pkgerrors.NewValidationError("invalid course status")
	}

	course.Status = status
	course.UpdatedAt = utils.FormatRFC3339(s.now())
	if err := s.courses.Save(ctx, course); err != nil {
		return catalog.Course{}, pkgerrors.NewInternalError("failed to update course").WithCause(err)
	}
	return course, nil
}
