package di

import (
	"pathshala-backend/application/ports"
	"pathshala-backend/application/services"
	"pathshala-backend/infrastructure/config"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	Identity       ports.IdentityProvider
	Profiles       ports.ProfileStore
	Bookings       ports.BookingRepository
	Courses        ports.CourseRepository
	Images         ports.ImageStore
	Events         ports.EventPublisher
	Verifier       *services.TokenVerifier
	Reconciler     *services.Reconciler
	BookingService *services.BookingService
	CourseService  *services.CourseService
}
