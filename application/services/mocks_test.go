package services

import (
	"context"

	"pathshala-backend/application/ports"
	"pathshala-backend/domain/account"
	"pathshala-backend/domain/catalog"

	"github.com/stretchr/testify/mock"
)

// MockIdentityProvider is a testify mock for ports.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) ExchangeCredentials(ctx context.Context, email, password string) (ports.Credential, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(ports.Credential), args.Error(1)
}

func (m *MockIdentityProvider) GetAttributes(ctx context.Context, token string) (account.Identity, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(account.Identity), args.Error(1)
}

func (m *MockIdentityProvider) Register(ctx context.Context, email, password, name string, role account.Role) error {
	args := m.Called(ctx, email, password, name, role)
	return args.Error(0)
}

func (m *MockIdentityProvider) ConfirmRegistration(ctx context.Context, email, code string) error {
	args := m.Called(ctx, email, code)
	return args.Error(0)
}

func (m *MockIdentityProvider) UpdateAttributes(ctx context.Context, token string, attributes map[string]string) error {
	args := m.Called(ctx, token, attributes)
	return args.Error(0)
}

func (m *MockIdentityProvider) InvalidateToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockIdentityProvider) RequestPasswordReset(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockIdentityProvider) ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error {
	args := m.Called(ctx, email, code, newPassword)
	return args.Error(0)
}

func (m *MockIdentityProvider) IsTokenExpired(err error) bool {
	args := m.Called(err)
	return args.Bool(0)
}

// MockProfileStore is a testify mock for ports.ProfileStore
type MockProfileStore struct {
	mock.Mock
}

func (m *MockProfileStore) Get(ctx context.Context, userID string) (account.Profile, bool, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(account.Profile), args.Bool(1), args.Error(2)
}

func (m *MockProfileStore) Create(ctx context.Context, profile account.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileStore) Put(ctx context.Context, profile account.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileStore) Update(ctx context.Context, profile account.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// MockEventPublisher is a testify mock for ports.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event ports.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockBookingRepository is a testify mock for ports.BookingRepository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking catalog.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, bookingID string) (catalog.Booking, bool, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).(catalog.Booking), args.Bool(1), args.Error(2)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID string) ([]catalog.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]catalog.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByCoach(ctx context.Context, coachID string) ([]catalog.Booking, error) {
	args := m.Called(ctx, coachID)
	return args.Get(0).([]catalog.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, bookingID string, status catalog.BookingStatus) error {
	args := m.Called(ctx, bookingID, status)
	return args.Error(0)
}

// MockCourseRepository is a testify mock for ports.CourseRepository
type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) Create(ctx context.Context, course catalog.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseRepository) GetByID(ctx context.Context, courseID string) (catalog.Course, bool, error) {
	args := m.Called(ctx, courseID)
	return args.Get(0).(catalog.Course), args.Bool(1), args.Error(2)
}

func (m *MockCourseRepository) ListByCoach(ctx context.Context, coachID string) ([]catalog.Course, error) {
	args := m.Called(ctx, coachID)
	return args.Get(0).([]catalog.Course), args.Error(1)
}

func (m *MockCourseRepository) Save(ctx context.Context, course catalog.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}
