package services

import (
	"context"
	"testing"

	"pathshala-backend/domain/catalog"
	pkgerrors "pathshala-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestCourseService_CreateCourse_StartsAsDraft(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockCourseRepository)
	logger := zap.NewNop()

	mockRepo.On("Create", ctx, mock.MatchedBy(func(c catalog.Course) bool {
		return c.CoachID == "coach-1" && c.Status == catalog.CourseDraft
	})).Return(nil).Once()

	svc := NewCourseService(mockRepo, logger)

	course, err := svc.CreateCourse(ctx, "coach-1", "Opening Theory", "From e4 to endgames", "chess", 1499, 60)

	assert.NoError(t, err)
	assert.NotEmpty(t, course.CourseID)
	assert.Equal(t, catalog.CourseDraft, course.Status)
	mockRepo.AssertExpectations(t)
}

func TestCourseService_SetStatus_OwnerOnly(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockCourseRepository)
	logger := zap.NewNop()

	course := catalog.Course{CourseID: "c-1", CoachID: "coach-1", Status: catalog.CourseDraft}
	mockRepo.On("GetByID", ctx, "c-1").Return(course, true, nil)

	svc := NewCourseService(mockRepo, logger)

	_, err := svc.SetStatus(ctx, "coach-2", "c-1", catalog.CourseActive)

	assert.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeForbidden))
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCourseService_GetCourse_NotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockCourseRepository)
	logger := zap.NewNop()

	mockRepo.On("GetByID", ctx, "missing").Return(catalog.Course{}, false, nil)

	svc := NewCourseService(mockRepo, logger)

	_, err := svc.GetCourse(ctx, "missing")

	assert.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeNotFound))
}
