package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a user comment on a course. The author may delete their own
// comments; admins may delete any.
type Comment struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CourseID  uuid.UUID `json:"course_id" db:"course_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
