// Package eventbridge publishes account audit events to an EventBridge bus.
package eventbridge

import (
	"context"
	"encoding/json"
	"fmt"

	"pathshala-backend/application/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"
)

// eventSource identifies this service on the bus
const eventSource = "pathshala.accounts"

// Publisher implements ports.EventPublisher using AWS EventBridge
type Publisher struct {
	client       *eventbridge.Client
	eventBusName string
	logger       *zap.Logger
}

// NewPublisher creates an EventBridge publisher
func NewPublisher(client *eventbridge.Client, eventBusName string, logger *zap.Logger) ports.EventPublisher {
	return &Publisher{
		client:       client,
		eventBusName: eventBusName,
		logger:       logger,
	}
}

// Publish sends a single event to the bus
func (p *Publisher) Publish(ctx context.Context, event ports.Event) error {
	detail, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	out, err := p.client.PutEvents(ctx, &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{
			{
				EventBusName: aws.String(p.eventBusName),
				Source:       aws.String(eventSource),
				DetailType:   aws.String(event.Type),
				Detail:       aws.String(string(detail)),
				Time:         aws.Time(event.Timestamp),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("put events: %w", err)
	}
	if out.FailedEntryCount > 0 {
		return fmt.Errorf("event bus rejected %d entries", out.FailedEntryCount)
	}

	p.logger.Debug("audit event published",
		zap.String("type", event.Type),
	)
	return nil
}
