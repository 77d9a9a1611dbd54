package services

import (
	"context"
	"time"

	"pathshala-backend/application/ports"
	"pathshala-backend/domain/catalog"
	pkgerrors "pathshala-backend/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingService manages coaching appointments
type BookingService struct {
	bookings ports.BookingRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewBookingService creates a booking service
func NewBookingService(bookings ports.BookingRepository, logger *zap.Logger) *BookingService {
	return &BookingService{
		bookings: bookings,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateBooking books an appointment with a coach for the given user
func (s *BookingService) CreateBooking(ctx context.Context, userID, coachID, serviceType, dateTime string) (catalog.Booking, error) {
	booking, err := catalog.NewBooking(uuid.New().String(), userID, coachID, serviceType, dateTime, s.now())
	if err != nil {
		return catalog.Booking{}, err
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return catalog.Booking{}, pkgerrors.NewInternalError("failed to create booking").WithCause(err)
	}

	s.logger.Info("booking created",
		zap.String("bookingId", booking.BookingID),
		zap.String("coachId", coachID),
	)
	return booking, nil
}

// ListUserBookings returns the appointments booked by a user
func (s *BookingService) ListUserBookings(ctx context.Context, userID string) ([]catalog.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// ListCoachBookings returns the appointments assigned to a coach
func (s *BookingService) ListCoachBookings(ctx context.Context, coachID string) ([]catalog.Booking, error) {
	return s.bookings.ListByCoach(ctx, coachID)
}

// UpdateStatus moves a booking through its lifecycle. Only the booked
// user or the assigned coach may change it.
func (s *BookingService) UpdateStatus(ctx context.Context, actorID, bookingID string, status catalog.BookingStatus) (catalog.Booking, error) {
	booking, found, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return catalog.Booking{}, pkgerrors.NewInternalError("failed to load booking").WithCause(err)
	}
	if !found {
		return catalog.Booking{}, pkgerrors.NewNotFoundError("booking")
	}
	if booking.UserID != actorID && booking.CoachID != actorID {
		return catalog.Booking{}, pkgerrors.NewForbiddenError("booking belongs to another user")
	}

	switch status {
	case catalog.BookingPending, catalog.BookingScheduled, catalog.BookingCompleted, catalog.BookingCancelled:
	default:
		return catalog.Booking{}, pkgerrors.NewValidationError("invalid booking status")
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, status); err != nil {
		return catalog.Booking{}, pkgerrors.NewInternalError("failed to update booking").WithCause(err)
	}
	booking.Status = status
	return booking, nil
}
