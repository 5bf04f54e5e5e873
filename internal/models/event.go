package models

// Event is the payload published to Kafka when something noteworthy happens
// (a message is posted, a user follows another user).
type Event struct {
	EventID   string `json:"event_id"`            // Unique event id
	Type      string `json:"type"`                // e.g. "message.posted", "user.followed"
	Timestamp int64  `json:"timestamp"`           // Unix timestamp
	UserID    string `json:"user_id"`             // Acting user
	SubjectID string `json:"subject_id,omitempty"` // Target: message id or followed user id
}

// Event types published by the services.
const (
	EventMessagePosted = "message.posted"
	EventUserFollowed  = "user.followed"
)
