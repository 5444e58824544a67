package models

import (
	"time"

	"github.com/google/uuid"
)

// Workout is a training session logged by a user.
type Workout struct {
	ID              uuid.UUID `json:"id" db:"id"`
	UserID          uuid.UUID `json:"user_id" db:"user_id"`
	Title           string    `json:"title" db:"title"`
	Description     string    `json:"description" db:"description"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes"`
	Intensity       string    `json:"intensity" db:"intensity"`
	PerformedAt     time.Time `json:"performed_at" db:"performed_at"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
