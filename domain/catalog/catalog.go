package catalog

import (
	"time"

	pkgerrors "pathshala-backend/pkg/errors"
	"pathshala-backend/pkg/utils"
)

// BookingStatus tracks the lifecycle of a coaching appointment
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingScheduled BookingStatus = "scheduled"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking is a coaching appointment between a student and a coach
type Booking struct {
	BookingID   string        `json:"bookingId" dynamodbav:"bookingId"`
	UserID      string        `json:"userId" dynamodbav:"userId"`
	CoachID     string        `json:"coachId" dynamodbav:"coachId"`
	ServiceType string        `json:"serviceType" dynamodbav:"serviceType"`
	DateTime    string        `json:"dateTime" dynamodbav:"dateTime"`
	Status      BookingStatus `json:"status" dynamodbav:"status"`
	Notes       string        `json:"notes,omitempty" dynamodbav:"notes,omitempty"`
	CreatedAt   string        `json:"createdAt" dynamodbav:"createdAt"`
}

// CourseStatus tracks course visibility
type CourseStatus string

const (
	CourseActive   CourseStatus = "active"
	CourseDraft    CourseStatus = "draft"
	CourseArchived CourseStatus = "archived"
)

// Course is a class offered by a coach
type Course struct {
	CourseID         string       `json:"courseId" dynamodbav:"courseId"`
	Title            string       `json:"title" dynamodbav:"title"`
	Description      string       `json:"description" dynamodbav:"description"`
	CoachID          string       `json:"coachId" dynamodbav:"coachId"`
	Price            float64      `json:"price" dynamodbav:"price"`
	Category         string       `json:"category" dynamodbav:"category"`
	DurationMinutes  int          `json:"duration" dynamodbav:"duration"`
	Status           CourseStatus `json:"status" dynamodbav:"status"`
	EnrolledStudents int          `json:"enrolledStudents" dynamodbav:"enrolledStudents"`
	Rating           float64      `json:"rating" dynamodbav:"rating"`
	TotalReviews     int          `json:"totalReviews" dynamodbav:"totalReviews"`
	CreatedAt        string       `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt        string       `json:"updatedAt" dynamodbav:"updatedAt"`
}

// NewBooking validates and builds a booking in the pending state
func NewBooking(id, userID, coachID, serviceType, dateTime string, now time.Time) (Booking, error) {
	if userID == "" || coachID == "" {
		return Booking{}, pkgerrors.NewValidationError("userId and coachId are required")
	}
	if serviceType == "" {
		return Booking{}, pkgerrors.NewValidationError("serviceType is required")
	}
	if _, err := utils.ParseRFC3339(dateTime); err != nil {
		return Booking{}, pkgerrors.NewValidationError("dateTime must be RFC3339")
	}
	return Booking{
		BookingID:   id,
		UserID:      userID,
		CoachID:     coachID,
		ServiceType: serviceType,
		DateTime:    dateTime,
		Status:      BookingPending,
		CreatedAt:   utils.FormatRFC3339(now),
	}, nil
}

// NewCourse validates and builds a draft course
func NewCourse(id, coachID, title, description, category string, price float64, duration int, now time.Time) (Course, error) {
	if coachID == "" {
		return Course{}, pkgerrors.NewValidationError("coachId is required")
	}
	if title == "" {
		return Course{}, pkgerrors.NewValidationError("title is required")
	}
	if price < 0 {
		return Course{}, pkgerrors.NewValidationError("price must not be negative")
	}
	ts := utils.FormatRFC3339(now)
	return Course{
		CourseID:        id,
		CoachID:         coachID,
		Title:           title,
		Description:     description,
		Category:        category,
		Price:           price,
		DurationMinutes: duration,
		Status:          CourseDraft,
		CreatedAt:       ts,
		UpdatedAt:       ts,
	}, nil
}
