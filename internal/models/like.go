package models

import (
	"time"

	"github.com/google/uuid"
)

// LikeDB represents a like of a message by a user.
type LikeDB struct {
	LikeID    int64     `json:"id" db:"like_id"` // Primary key, serial
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	MessageID int64     `json:"message_id" db:"message_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
