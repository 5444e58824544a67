package messaging

import (
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	// UserEventsExchange carries user lifecycle events (registration,
	// password changes) from auth to the downstream services.
	UserEventsExchange     = "user.events"
	UserEventsExchangeType = "topic"
)

// NewRabbitMQConnection dials RabbitMQ with retry logic.
func NewRabbitMQConnection(url string, logger *zap.Logger) (*amqp091.Connection, error) {
	const maxRetries = 20
	retryDelay := 3 * time.Second

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		attempt := i + 1
		conn, err := amqp091.Dial(url)
		if err == nil {
			logger.Info("Connected to RabbitMQ", zap.Int("attempt", attempt))
			return conn, nil
		}
		lastErr = fmt.Errorf("unable to dial rabbitmq (attempt %d/%d): %w", attempt, maxRetries, err)
		logger.Warn("RabbitMQ dial failed, retrying...", zap.Int("attempt", attempt), zap.Error(err))
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}

	return nil, fmt.Errorf("failed to connect to rabbitmq after %d attempts: %w", maxRetries, lastErr)
}

// DeclareUserEventsExchange declares the shared topic exchange on the given
// channel. Publishers and consumers both call it so startup order does not
// matter.
func DeclareUserEventsExchange(ch *amqp091.Channel) error {
	err := ch.ExchangeDeclare(
		UserEventsExchange,
		UserEventsExchangeType,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange '%s': %w", UserEventsExchange, err)
	}
	return nil
}
