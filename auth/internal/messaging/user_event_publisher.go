package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dnlksnvv/Trainova-sub001/shared/interfaces"
	sharedmessaging "github.com/dnlksnvv/Trainova-sub001/shared/messaging"
	"github.com/dnlksnvv/Trainova-sub001/shared/models"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var _ interfaces.UserEventPublisher = (*RabbitMQUserEventPublisher)(nil)

// RabbitMQUserEventPublisher publishes user lifecycle events to the shared
// topic exchange. Routing keys are the event names themselves.
type RabbitMQUserEventPublisher struct {
	conn   *amqp091.Connection
	ch     *amqp091.Channel
	logger *zap.Logger
}

func NewRabbitMQUserEventPublisher(conn *amqp091.Connection, logger *zap.Logger) (*RabbitMQUserEventPublisher, error) {
	if conn == nil {
		return nil, fmt.Errorf("rabbitmq connection is nil")
	}

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("Failed to open a channel for user events", zap.Error(err))
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	if err := sharedmessaging.DeclareUserEventsExchange(ch); err != nil {
		_ = ch.Close()
		logger.Error("Failed to declare user events exchange", zap.Error(err))
		return nil, err
	}

	return &RabbitMQUserEventPublisher{
		conn:   conn,
		ch:     ch,
		logger: logger.Named("UserEventPublisher"),
	}, nil
}

func (p *RabbitMQUserEventPublisher) PublishUserRegistered(ctx context.Context, event models.UserRegisteredEvent) error {
	return p.publish(ctx, models.EventUserRegistered, event)
}

func (p *RabbitMQUserEventPublisher) PublishPasswordChanged(ctx context.Context, event models.UserPasswordChangedEvent) error {
	return p.publish(ctx, models.EventUserPasswordChanged, event)
}

func (p *RabbitMQUserEventPublisher) publish(ctx context.Context, routingKey string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("Failed to marshal user event", zap.Error(err), zap.String("routingKey", routingKey))
		return fmt.Errorf("failed to marshal user event: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		sharedmessaging.UserEventsExchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	)
	if err != nil {
		p.logger.Error("Failed to publish user event", zap.Error(err), zap.String("routingKey", routingKey))
		return fmt.Errorf("failed to publish user event '%s': %w", routingKey, err)
	}

	p.logger.Debug("User event published", zap.String("routingKey", routingKey))
	return nil
}

// Close closes the RabbitMQ channel.
func (p *RabbitMQUserEventPublisher) Close() error {
	if p.ch != nil {
		return p.ch.Close()
	}
	return nil
}
