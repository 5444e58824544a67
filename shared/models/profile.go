package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the fitness profile attached to a user. The row is created by
// the user.registered consumer and later filled in by the user.
type Profile struct {
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	FirstName string     `json:"first_name" db:"first_name"`
	LastName  string     `json:"last_name" db:"last_name"`
	BirthDate *time.Time `json:"birth_date,omitempty" db:"birth_date"`
	Gender    string     `json:"gender" db:"gender"`
	HeightCm  float64    `json:"height_cm" db:"height_cm"`
	WeightKg  float64    `json:"weight_kg" db:"weight_kg"`
	Goal      string     `json:"goal" db:"goal"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}
