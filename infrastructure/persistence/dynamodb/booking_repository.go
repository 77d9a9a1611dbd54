package dynamodb

import (
	"context"
	"fmt"

	"pathshala-backend/application/ports"
	"pathshala-backend/domain/catalog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awstypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// BookingRepository implements ports.BookingRepository over the bookings
// table, with GSIs for per-user and per-coach listings.
type BookingRepository struct {
	client          *dynamodb.Client
	tableName       string
	userIndexName   string
	coachIndexName  string
	logger          *zap.Logger
}

// NewBookingRepository creates a BookingRepository
func NewBookingRepository(client *dynamodb.Client, tableName, userIndexName, coachIndexName string, logger *zap.Logger) ports.BookingRepository {
	return &BookingRepository{
		client:         client,
		tableName:      tableName,
		userIndexName:  userIndexName,
		coachIndexName: coachIndexName,
		logger:         logger,
	}
}

// Create persists a new booking
func (r *BookingRepository) Create(ctx context.Context, booking catalog.Booking) error {
	item, err := attributevalue.MarshalMap(booking)
	if err != nil {
		return fmt.Errorf("marshal booking: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(bookingId)"),
	})
	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

// GetByID returns a single booking
func (r *BookingRepository) GetByID(ctx context.Context, bookingID string) (catalog.Booking, bool, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]awstypes.AttributeValue{
			"bookingId": &awstypes.AttributeValueMemberS{Value: bookingID},
		},
	})
	if err != nil {
		return catalog.Booking{}, false, fmt.Errorf("get booking: %w", err)
	}
	if out.Item == nil {
		return catalog.Booking{}, false, nil
	}

	var booking catalog.Booking
	if err := attributevalue.UnmarshalMap(out.Item, &booking); err != nil {
		return catalog.Booking{}, false, fmt.Errorf("unmarshal booking: %w", err)
	}
	return booking, true, nil
}

// ListByUser returns the bookings made by a user
func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]catalog.Booking, error) {
	return r.queryIndex(ctx, r.userIndexName, "userId", userID)
}

// ListByCoach returns the bookings assigned to a coach
func (r *BookingRepository) ListByCoach(ctx context.Context, coachID string) ([]catalog.Booking, error) {
	return r.queryIndex(ctx, r.coachIndexName, "coachId", coachID)
}

// UpdateStatus moves a booking's status field
func (r *BookingRepository) UpdateStatus(ctx context.Context, bookingID string, status catalog.BookingStatus) error {
	update := expression.Set(expression.Name("status"), expression.Value(string(status)))
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return fmt.Errorf("build update expression: %w", err)
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]awstypes.AttributeValue{
			"bookingId": &awstypes.AttributeValueMemberS{Value: bookingID},
		},
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ConditionExpression:       aws.String("attribute_exists(bookingId)"),
	})
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	return nil
}

// queryIndex runs a key-equality query against a GSI
func (r *BookingRepository) queryIndex(ctx context.Context, indexName, keyName, keyValue string) ([]catalog.Booking, error) {
	keyCond := expression.Key(keyName).Equal(expression.Value(keyValue))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("build query expression: %w", err)
	}

	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(indexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}

	bookings := make([]catalog.Booking, 0, len(out.Items))
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &bookings); err != nil {
		return nil, fmt.Errorf("unmarshal bookings: %w", err)
	}
	return bookings, nil
}
