package models

import (
	"time"

	"github.com/google/uuid"
)

// FollowDB represents a directional follow edge: follower follows followed.
// The pair is unique, so repeated follows are no-ops.
type FollowDB struct {
	FollowID   int64     `json:"id" db:"follow_id"`            // Primary key, serial
	FollowerID uuid.UUID `json:"follower_id" db:"follower_id"` // Who follows
	FollowedID uuid.UUID `json:"followed_id" db:"followed_id"` // Who is followed
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
