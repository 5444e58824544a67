package models

import (
	"time"

	"github.com/google/uuid"
)

// Course is a training program curated by administrators. Reads are public,
// writes are admin-only.
type Course struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Description   string    `json:"description" db:"description"`
	Level         string    `json:"level" db:"level"`
	DurationWeeks int       `json:"duration_weeks" db:"duration_weeks"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
