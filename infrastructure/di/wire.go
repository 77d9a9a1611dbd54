//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"pathshala-backend/infrastructure/config"

	"github.com/google/wire"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideCognitoClient,
	ProvideDynamoDBClient,
	ProvideS3Client,
	ProvideEventBridgeClient,
	ProvideIdentityProvider,
	ProvideProfileStore,
	ProvideBookingRepository,
	ProvideCourseRepository,
	ProvideImageStore,
	ProvideEventPublisher,
	ProvideTokenVerifier,
	ProvideReconciler,
	ProvideBookingService,
	ProvideCourseService,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
