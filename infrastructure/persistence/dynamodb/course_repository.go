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

// CourseRepository implements ports.CourseRepository over the courses
// table, with a GSI for per-coach listings.
type CourseRepository struct {
	client         *dynamodb.Client
	tableName      string
	coachIndexName string
	logger         *zap.Logger
}

// NewCourseRepository creates a CourseRepository
func NewCourseRepository(client *dynamodb.Client, tableName, coachIndexName string, logger *zap.Logger) ports.CourseRepository {
	return &CourseRepository{
		client:         client,
		tableName:      tableName,
		coachIndexName: coachIndexName,
		logger:         logger,
	}
}

// Create persists a new course
func (r *CourseRepository) Create(ctx context.Context, course catalog.Course) error {
	item, err := attributevalue.MarshalMap(course)
	if err != nil {
		return fmt.Errorf("marshal course: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(courseId)"),
	})
	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// GetByID returns a single course
func (r *CourseRepository) GetByID(ctx context.Context, courseID string) (catalog.Course, bool, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]awstypes.AttributeValue{
			"courseId": &awstypes.AttributeValueMemberS{Value: courseID},
		},
	})
	if err != nil {
		return catalog.Course{}, false, fmt.Errorf("get course: %w", err)
	}
	if out.Item == nil {
		return catalog.Course{}, false, nil
	}

	var course catalog.Course
	if err := attributevalue.UnmarshalMap(out.Item, &course); err != nil {
		return catalog.Course{}, false, fmt.Errorf("unmarshal course: %w", err)
	}
	return course, true, nil
}

// ListByCoach returns all courses owned by a coach
func (r *CourseRepository) ListByCoach(ctx context.Context, coachID string) ([]catalog.Course, error) {
	keyCond := expression.Key("coachId").Equal(expression.Value(coachID))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("build query expression: %w", err)
	}

	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.coachIndexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, fmt.Errorf("query courses: %w", err)
	}

	courses := make([]catalog.Course, 0, len(out.Items))
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &courses); err != nil {
		return nil, fmt.Errorf("unmarshal courses: %w", err)
	}
	return courses, nil
}

// Save replaces an existing course
func (r *CourseRepository) Save(ctx context.Context, course catalog.Course) error {
	item, err := attributevalue.MarshalMap(course)
	if err != nil {
		return fmt.Errorf("marshal course: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_exists(courseId)"),
	})
	if err != nil {
		return fmt.Errorf("save course: %w", err)
	}
	return nil
}
