package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the auth service's account record.
type User struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	RoleID          int       `json:"role_id"`
	PasswordVersion int       `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
}
