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

// CourseHandler serves the courses coaches offer
type CourseHandler struct {
	courses *services.CourseService
	logger  *zap.Logger
}

// NewCourseHandler creates a course handler
func NewCourseHandler(courses *services.CourseService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{
		courses: courses,
		logger:  logger,
	}
}

type createCourseRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description" validate:"max=5000"`
	Category    string  `json:"category" validate:"max=100"`
	Price       float64 `json:"price" validate:"gte=0"`
	Duration    int     `json:"duration" validate:"gte=0"`
}

type setCourseStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active draft archived"`
}

// Create handles POST /courses, coach only
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	var req createCourseRequest
	if err := common.ParseJSONBody(r, &req, maxRequestBody); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	course, err := h.courses.CreateCourse(r.Context(), user.UserID, req.Title, req.Description, req.Category, req.Price, req.Duration)
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, course)
}

// Get handles GET /courses/{courseID}
func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")
	if courseID == "" {
		respondBadRequest(w, "courseID is required")
		return
	}

	course, err := h.courses.GetCourse(r.Context(), courseID)
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, course)
}

// ListMine handles GET /courses/mine, the calling coach's courses
func (h *CourseHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	courses, err := h.courses.ListCoachCourses(r.Context(), user.UserID)
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	if courses == nil {
		courses = []catalog.Course{}
	}

	common.RespondJSON(w, http.StatusOK, courses)
}

// SetStatus handles PUT /courses/{courseID}/status, coach only
func (h *CourseHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	courseID := chi.URLParam(r, "courseID")
	if courseID == "" {
		respondBadRequest(w, "courseID is required")
		return
	}

	var req setCourseStatusRequest
	if err := common.ParseJSONBody(r, &req, maxRequestBody); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	course, err := h.courses.SetStatus(r.Context(), user.UserID, courseID, catalog.CourseStatus(req.Status))
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, course)
}
