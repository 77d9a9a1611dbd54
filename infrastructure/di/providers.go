package di

import (
	"context"

	"pathshala-backend/application/ports"
	"pathshala-backend/application/services"
	"pathshala-backend/infrastructure/config"
	"pathshala-backend/infrastructure/identity/cognito"
	"pathshala-backend/infrastructure/media/s3"
	"pathshala-backend/infrastructure/messaging/eventbridge"
	dynamorepo "pathshala-backend/infrastructure/persistence/dynamodb"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideCognitoClient creates a Cognito client
func ProvideCognitoClient(awsCfg aws.Config) *awscognito.Client {
	return awscognito.NewFromConfig(awsCfg)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideS3Client creates an S3 client
func ProvideS3Client(awsCfg aws.Config) *awss3.Client {
	return awss3.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideIdentityProvider creates the Cognito identity adapter
func ProvideIdentityProvider(client *awscognito.Client, cfg *config.Config, logger *zap.Logger) ports.IdentityProvider {
	return cognito.NewProvider(client, cfg.UserPoolClientID, logger)
}

// ProvideProfileStore creates the users-table profile repository
func ProvideProfileStore(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ProfileStore {
	return dynamorepo.NewProfileRepository(client, cfg.UsersTable, logger)
}

// ProvideBookingRepository creates the bookings-table repository
func ProvideBookingRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.BookingRepository {
	return dynamorepo.NewBookingRepository(client, cfg.BookingsTable, cfg.UserBookingsIndex, cfg.CoachBookingsIndex, logger)
}

// ProvideCourseRepository creates the courses-table repository
func ProvideCourseRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.CourseRepository {
	return dynamorepo.NewCourseRepository(client, cfg.CoursesTable, cfg.CoachCoursesIndex, logger)
}

// ProvideImageStore creates the S3 image store
func ProvideImageStore(client *awss3.Client, cfg *config.Config, logger *zap.Logger) ports.ImageStore {
	return s3.NewImageStore(client, cfg.UploadsBucket, cfg.AWSRegion, logger)
}

// ProvideEventPublisher creates the audit event publisher, or nil when no
// bus is configured (audit events are optional)
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	if cfg.EventBusName == "" {
		return nil
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideTokenVerifier creates the bearer-token verifier used by the
// session middleware
func ProvideTokenVerifier(idp ports.IdentityProvider, logger *zap.Logger) *services.TokenVerifier {
	return services.NewTokenVerifier(idp, logger)
}

// ProvideReconciler creates the session/profile reconciler
func ProvideReconciler(idp ports.IdentityProvider, profiles ports.ProfileStore, events ports.EventPublisher, logger *zap.Logger) *services.Reconciler {
	return services.NewReconciler(idp, profiles, events, logger)
}

// ProvideBookingService creates the booking service
func ProvideBookingService(bookings ports.BookingRepository, logger *zap.Logger) *services.BookingService {
	return services.NewBookingService(bookings, logger)
}

// ProvideCourseService creates the course service
func ProvideCourseService(courses ports.CourseRepository, logger *zap.Logger) *services.CourseService {
	return services.NewCourseService(courses, logger)
}
