package interfaces

import (
	"context"

	"github.com/dnlksnvv/Trainova-sub001/shared/models"
)

// UserEventPublisher publishes auth lifecycle events to the message broker.
type UserEventPublisher interface {
	PublishUserRegistered(ctx context.Context, event models.UserRegisteredEvent) error
	PublishPasswordChanged(ctx context.Context, event models.UserPasswordChangedEvent) error
	Close() error
}
