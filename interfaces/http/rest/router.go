// Package rest wires the HTTP surface: router, middleware and handlers.
package rest

import (
	"net/http"

	"pathshala-backend/domain/account"
	"pathshala-backend/infrastructure/di"
	"pathshala-backend/interfaces/http/rest/handlers"
	"pathshala-backend/interfaces/http/rest/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	container *di.Container
	codec     *middleware.SessionCodec
	logger    *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(container *di.Container) *Router {
	return &Router{
		container: container,
		codec: &middleware.SessionCodec{
			Domain: container.Config.CookieDomain,
			Secure: container.Config.SecureCookies,
			Logger: container.Logger,
		},
		logger: container.Logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.container.Config.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*.pathshala.app"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Every API route sees the decoded session; identity is only attached
	// after the bearer token has been verified with the identity provider
	router.Use(middleware.WithSession(rt.codec, rt.container.Verifier))

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	router.Route("/api/v1", func(r chi.Router) {
		// Authentication lifecycle
		r.Route("/auth", func(r chi.Router) {
			authHandler := handlers.NewAuthHandler(rt.container.Reconciler, rt.codec, rt.logger)
			r.Post("/signin", authHandler.SignIn)
			r.Post("/signup", authHandler.SignUp)
			r.Post("/signup/confirm", authHandler.ConfirmSignUp)
			r.Post("/signout", authHandler.SignOut)
			r.Post("/password/forgot", authHandler.ForgotPassword)
			r.Post("/password/confirm", authHandler.ConfirmForgotPassword)
			r.Get("/session", authHandler.Session)
		})

		// Profile endpoints
		r.Route("/profile", func(r chi.Router) {
			r.Use(middleware.RequireAuthenticated())
			profileHandler := handlers.NewProfileHandler(
				rt.container.Reconciler,
				rt.container.Profiles,
				rt.container.Images,
				rt.codec,
				rt.logger,
			)
			r.Get("/me", profileHandler.Me)
			r.Patch("/me", profileHandler.Update)
			r.Post("/me/picture", profileHandler.PresignPicture)
		})

		// Booking endpoints
		r.Route("/bookings", func(r chi.Router) {
			r.Use(middleware.RequireAuthenticated())
			bookingHandler := handlers.NewBookingHandler(rt.container.BookingService, rt.logger)
			r.Post("/", bookingHandler.Create)
			r.Get("/", bookingHandler.ListMine)
			r.With(middleware.RequireRole(string(account.RoleCoach), string(account.RoleAdmin))).
				Get("/coach", bookingHandler.ListForCoach)
			r.Put("/{bookingID}/status", bookingHandler.UpdateStatus)
		})

		// Course endpoints
		r.Route("/courses", func(r chi.Router) {
			courseHandler := handlers.NewCourseHandler(rt.container.CourseService, rt.logger)
			r.Get("/{courseID}", courseHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuthenticated())
				r.Use(middleware.RequireRole(string(account.RoleCoach), string(account.RoleAdmin)))
				r.Post("/", courseHandler.Create)
				r.Get("/mine", courseHandler.ListMine)
				r.Put("/{courseID}/status", courseHandler.SetStatus)
			})
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
