package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dnlksnvv/Trainova-sub001/profile-service/internal/service"
	sharedMessaging "github.com/dnlksnvv/Trainova-sub001/shared/messaging"
	"github.com/dnlksnvv/Trainova-sub001/shared/models"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const userRegisteredQueue = "profile_service_user_registered"

// UserRegisteredConsumer listens for user.registered events and creates the
// blank profile row for each new user.
type UserRegisteredConsumer struct {
	conn        *amqp091.Connection
	ch          *amqp091.Channel
	profileSvc  service.ProfileService
	logger      *zap.Logger
	consumerTag string
	done        chan error
}

func NewUserRegisteredConsumer(conn *amqp091.Connection, profileSvc service.ProfileService, logger *zap.Logger) (*UserRegisteredConsumer, error) {
	if conn == nil {
		return nil, fmt.Errorf("rabbitmq connection is nil")
	}

	consumerTag := fmt.Sprintf("profile_user_registered_%d", time.Now().UnixNano())
	consumer := &UserRegisteredConsumer{
		conn:        conn,
		profileSvc:  profileSvc,
		logger:      logger.Named("UserRegisteredConsumer").With(zap.String("queue", userRegisteredQueue)),
		consumerTag: consumerTag,
		done:        make(chan error),
	}

	if err := consumer.setupChannelAndQueue(); err != nil {
		return nil, fmt.Errorf("failed to setup channel and queue: %w", err)
	}
	return consumer, nil
}

func (c *UserRegisteredConsumer) setupChannelAndQueue() error {
	var err error
	c.ch, err = c.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}

	if err := sharedMessaging.DeclareUserEventsExchange(c.ch); err != nil {
		_ = c.ch.Close()
		return err
	}

	_, err = c.ch.QueueDeclare(
		userRegisteredQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		_ = c.ch.Close()
		return fmt.Errorf("failed to declare queue '%s': %w", userRegisteredQueue, err)
	}

	err = c.ch.QueueBind(userRegisteredQueue, models.EventUserRegistered, sharedMessaging.UserEventsExchange, false, nil)
	if err != nil {
		_ = c.ch.Close()
		return fmt.Errorf("failed to bind queue '%s': %w", userRegisteredQueue, err)
	}

	if err := c.ch.Qos(1, 0, false); err != nil {
		_ = c.ch.Close()
		return fmt.Errorf("failed to set QoS: %w", err)
	}
	return nil
}

// StartConsuming blocks until the consumer stops or the channel fails.
func (c *UserRegisteredConsumer) StartConsuming() error {
	deliveries, err := c.ch.Consume(
		userRegisteredQueue,
		c.consumerTag,
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	go c.handleDeliveries(deliveries)

	go func() {
		notifyClose := make(chan *amqp091.Error)
		c.ch.NotifyClose(notifyClose)
		select {
		case err := <-notifyClose:
			if err != nil {
				c.logger.Error("RabbitMQ channel closed unexpectedly", zap.Error(err))
				c.done <- err
			} else {
				c.done <- nil
			}
		case <-c.done:
		}
	}()

	c.logger.Info("Consumer started", zap.String("tag", c.consumerTag))
	return <-c.done
}

func (c *UserRegisteredConsumer) handleDeliveries(deliveries <-chan amqp091.Delivery) {
	for d := range deliveries {
		log := c.logger.With(zap.Uint64("deliveryTag", d.DeliveryTag))

		var event models.UserRegisteredEvent
		if err := json.Unmarshal(d.Body, &event); err != nil {
			log.Warn("Dropping undecodable user.registered event", zap.Error(err))
			if err := d.Nack(false, false); err != nil {
				log.Error("Failed to nack undecodable message", zap.Error(err))
			}
			continue
		}

		userID, err := uuid.Parse(event.UserID)
		if err != nil {
			log.Warn("Dropping event with malformed user id", zap.String("userID", event.UserID))
			if err := d.Nack(false, false); err != nil {
				log.Error("Failed to nack malformed message", zap.Error(err))
			}
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = c.profileSvc.EnsureProfile(ctx, userID)
		cancel()

		if err != nil {
			log.Error("Failed to ensure profile, requeueing", zap.Error(err), zap.String("userID", event.UserID))
			if nackErr := d.Nack(false, true); nackErr != nil {
				log.Error("Failed to nack message after service error", zap.Error(nackErr))
			}
			time.Sleep(1 * time.Second)
			continue
		}

		if ackErr := d.Ack(false); ackErr != nil {
			log.Error("Failed to ack message", zap.Error(ackErr))
		}
	}
	c.logger.Info("Deliveries channel closed")
	select {
	case c.done <- nil:
	default:
	}
}

// Stop cancels the subscription and closes the channel.
func (c *UserRegisteredConsumer) Stop() error {
	if c.ch == nil {
		return nil
	}
	if err := c.ch.Cancel(c.consumerTag, false); err != nil {
		c.logger.Error("Failed to cancel consumer", zap.Error(err))
	}
	if err := c.ch.Close(); err != nil {
		c.logger.Error("Failed to close channel", zap.Error(err))
	}
	select {
	case c.done <- nil:
	default:
	}
	return nil
}
