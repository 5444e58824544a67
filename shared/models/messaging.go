package models

import "time"

// Event routing keys published by the auth service.
const (
	EventUserRegistered      = "user.registered"
	EventUserPasswordChanged = "user.password_changed"
)

// UserRegisteredEvent is published after a successful registration.
// profile-service consumes it to create the initial profile row.
type UserRegisteredEvent struct {
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

// UserPasswordChangedEvent is published after a password change.
// The password_version in previously issued tokens no longer matches,
// so refresh attempts with old tokens will be rejected.
type UserPasswordChangedEvent struct {
	UserID          string    `json:"user_id"`
	PasswordVersion int       `json:"password_version"`
	OccurredAt      time.Time `json:"occurred_at"`
}
