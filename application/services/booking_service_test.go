package services

import (
	"context"
	"testing"
	"time"

	"pathshala-backend/domain/catalog"
	pkgerrors "pathshala-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestBookingService_CreateBooking(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockBookingRepository)
	logger := zap.NewNop()

	mockRepo.On("Create", ctx, mock.MatchedBy(func(b catalog.Booking) bool {
		return b.UserID == "student-1" && b.CoachID == "coach-1" && b.Status == catalog.BookingPending
	})).Return(nil).Once()

	svc := NewBookingService(mockRepo, logger)

	booking, err := svc.CreateBooking(ctx, "student-1", "coach-1", "chess-lesson", "2025-07-01T10:00:00Z")

	assert.NoError(t, err)
	assert.NotEmpty(t, booking.BookingID)
	assert.Equal(t, catalog.BookingPending, booking.Status)
	mockRepo.AssertExpectations(t)
}

func TestBookingService_CreateBooking_RejectsBadDateTime(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockBookingRepository)
	logger := zap.NewNop()

	svc := NewBookingService(mockRepo, logger)

	_, err := svc.CreateBooking(ctx, "student-1", "coach-1", "chess-lesson", "next tuesday")

	assert.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeValidation))
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookingService_UpdateStatus_OnlyParticipants(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockBookingRepository)
	logger := zap.NewNop()

	booking := catalog.Booking{
		BookingID: "b-1",
		UserID:    "student-1",
		CoachID:   "coach-1",
		Status:    catalog.BookingPending,
		DateTime:  time.Now().UTC().Format(time.RFC3339),
	}
	mockRepo.On("GetByID", ctx, "b-1").Return(booking, true, nil)

	svc := NewBookingService(mockRepo, logger)

	_, err := svc.UpdateStatus(ctx, "someone-else", "b-1", catalog.BookingCancelled)

	assert.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeForbidden))
	mockRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_UpdateStatus_CoachCanSchedule(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockBookingRepository)
	logger := zap.NewNop()

	booking := catalog.Booking{
		BookingID: "b-1",
		UserID:    "student-1",
		CoachID:   "coach-1",
		Status:    catalog.BookingPending,
	}
	mockRepo.On("GetByID", ctx, "b-1").Return(booking, true, nil)
	mockRepo.On("UpdateStatus", ctx, "b-1", catalog.BookingScheduled).Return(nil).Once()

	svc := NewBookingService(mockRepo, logger)

	updated, err := svc.UpdateStatus(ctx, "coach-1", "b-1", catalog.BookingScheduled)

	assert.NoError(t, err)
	assert.Equal(t, catalog.BookingScheduled, updated.Status)
	mockRepo.AssertExpectations(t)
}
