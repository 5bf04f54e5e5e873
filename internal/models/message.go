package models

import (
	"time"

	"github.com/google/uuid"
)

// MessageDB represents a message record in the database.
// The serial primary key doubles as the insertion order of a user's messages.
type MessageDB struct {
	MessageID int64     `json:"id" db:"message_id"`         // Primary key, serial
	Text      string    `json:"text" db:"text"`             // Non-empty message body
	UserID    uuid.UUID `json:"user_id" db:"user_id"`       // Author, FK to users
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Creation timestamp
}
