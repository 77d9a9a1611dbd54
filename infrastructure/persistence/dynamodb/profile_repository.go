// Package dynamodb implements the persistence ports over DynamoDB tables.
package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"pathshala-backend/application/ports"
	"pathshala-backend/domain/account"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awstypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// ProfileRepository implements ports.ProfileStore over the users table,
// one item per user keyed by userId.
type ProfileRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewProfileRepository creates a ProfileRepository
func NewProfileRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.ProfileStore {
	return &ProfileRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// Get returns the profile for a user, or found=false when absent
func (r *ProfileRepository) Get(ctx context.Context, userID string) (account.Profile, bool, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       profileKey(userID),
	})
	if err != nil {
		return account.Profile{}, false, fmt.Errorf("get profile: %w", err)
	}
	if out.Item == nil {
		return account.Profile{}, false, nil
	}

	var profile account.Profile
	if err := attributevalue.UnmarshalMap(out.Item, &profile); err != nil {
		return account.Profile{}, false, fmt.Errorf("unmarshal profile: %w", err)
	}
	return profile, true, nil
}

// Create writes a profile only if no record exists for the identifier.
// A duplicate is reported as ProfileExistsError so lazy creation stays
// race-safe.
func (r *ProfileRepository) Create(ctx context.Context, profile account.Profile) error {
	item, err := attributevalue.MarshalMap(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(userId)"),
	})
	if err != nil {
		var conditionFailed *awstypes.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return &ports.ProfileExistsError{UserID: profile.UserID}
		}
		return fmt.Errorf("create profile: %w", err)
	}

	r.logger.Info("profile created",
		zap.String("userId", profile.UserID),
	)
	return nil
}

// Put unconditionally creates or replaces the profile
func (r *ProfileRepository) Put(ctx context.Context, profile account.Profile) error {
	item, err := attributevalue.MarshalMap(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put profile: %w", err)
	}
	return nil
}

// Update replaces the profile only if the record already exists, guarding
// against resurrecting a record deleted out-of-band.
func (r *ProfileRepository) Update(ctx context.Context, profile account.Profile) error {
	item, err := attributevalue.MarshalMap(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_exists(userId)"),
	})
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// profileKey builds the primary key for a user item
func profileKey(userID string) map[string]awstypes.AttributeValue {
	return map[string]awstypes.AttributeValue{
		"userId": &awstypes.AttributeValueMemberS{Value: userID},
	}
}
