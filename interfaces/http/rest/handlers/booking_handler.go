package handlers

import (
	"net/http"

	"pathshala-backend/application/services"
	"pathshala-backend/domain/catalog"
	"pathshala-backend/pkg/auth"
	"pathshala-backend/pkg/common"
	"pathshala-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BookingHandler serves coaching appointments
type BookingHandler struct {
	bookings *services.BookingService
	logger   *zap.Logger
}

// NewBookingHandler creates a booking handler
func NewBookingHandler(bookings *services.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{
		bookings: bookings,
		logger:   logger,
	}
}

type createBookingRequest struct {
	CoachID     string `json:"coachId" validate:"required"`
	ServiceType string `json:"serviceType" validate:"required,max=100"`
	DateTime    string `json:"dateTime" validate:"required"`
}

type updateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending scheduled completed cancelled"`
}

// Create handles POST /bookings
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	var req createBookingRequest
	if err := common.ParseJSONBody(r, &req, maxRequestBody); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	booking, err := h.bookings.CreateBooking(r.Context(), user.UserID, req.CoachID, req.ServiceType, req.DateTime)
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, booking)
}

// ListMine handles GET /bookings, the caller's own appointments
func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	bookings, err := h.bookings.ListUserBookings(r.Context(), user.UserID)
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	if bookings == nil {
		bookings = []catalog.Booking{}
	}

	common.RespondJSON(w, http.StatusOK, bookings)
}

// ListForCoach handles GET /bookings/coach, the appointments assigned to
// the calling coach
func (h *BookingHandler) ListForCoach(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	bookings, err := h.bookings.ListCoachBookings(r.Context(), user.UserID)
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	if bookings == nil {
		bookings = []catalog.Booking{}
	}

	common.RespondJSON(w, http.StatusOK, bookings)
}

// UpdateStatus handles PUT /bookings/{bookingID}/status
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	bookingID := chi.URLParam(r, "bookingID")
	if bookingID == "" {
		respondBadRequest(w, "bookingID is required")
		return
	}

	var req updateBookingStatusRequest
	if err := common.ParseJSONBody(r, &req, maxRequestBody); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	booking, err := h.bookings.UpdateStatus(r.Context(), user.UserID, bookingID, catalog.BookingStatus(req.Status))
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, booking)
}
