package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/warblerhq/warbler/internal/logger"
	"github.com/warblerhq/warbler/internal/models"
	"github.com/warblerhq/warbler/internal/repositories"
)

var (
	// ErrUserNotFound is returned when an operation references a user that
	// does not exist in the store.
	ErrUserNotFound = errors.New("user not found")
	// ErrCannotFollowSelf is returned before any store interaction when a
	// user tries to follow themselves.
	ErrCannotFollowSelf = errors.New("cannot follow yourself")
)

// FollowReader defines derived read queries over follow edges.
type FollowReader interface {
	Followers(ctx context.Context, userID uuid.UUID) ([]models.UserDB, error)
	Following(ctx context.Context, userID uuid.UUID) ([]models.UserDB, error)
	IsFollowing(ctx context.Context, followerID, followedID uuid.UUID) (bool, error)
}

// FollowWriter defines follow edge mutations.
type FollowWriter interface {
	Save(ctx context.Context, followerID, followedID uuid.UUID) error
	Delete(ctx context.Context, followerID, followedID uuid.UUID) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// UserService handles user listing, deletion, and the follow graph.
type UserService struct {
	reader       UserReader
	writer       UserWriter
	followReader FollowReader
	followWriter FollowWriter
	kafkaWriter  KafkaWriter
}

// NewUserService creates a new UserService.
func NewUserService(
	reader UserReader,
	writer UserWriter,
	followReader FollowReader,
	followWriter FollowWriter,
	kafkaWriter KafkaWriter,
) *UserService {
	return &UserService{
		reader:       reader,
		writer:       writer,
		followReader: followReader,
		followWriter: followWriter,
		kafkaWriter:  kafkaWriter,
	}
}

// publishEvent publishes a domain event to Kafka. Failures are logged and
// swallowed: event delivery never fails the request that produced it.
func publishEvent(ctx context.Context, w KafkaWriter, event models.Event) {
	if w == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "event_type", event.Type)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal event for Kafka", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: data,
	}

	if err := w.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish event to Kafka", "event_id", event.EventID, "error", err)
	} else {
		logger.Log.Infow("Event published to Kafka", "event_id", event.EventID, "type", event.Type)
	}
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]models.UserDB, error) {
	return s.reader.List(ctx)
}

// Get returns the user with the given id.
func (s *UserService) Get(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	user, err := s.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "userID", userID, "error", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Delete removes the user; their messages, likes, and follow edges cascade.
func (s *UserService) Delete(ctx context.Context, userID uuid.UUID) error {
	err := s.writer.Delete(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		logger.Log.Errorw("failed to delete user", "userID", userID, "error", err)
	}
	return err
}

// Follow inserts the follower → followed edge and publishes a user.followed
// event. Following an unknown user surfaces as ErrUserNotFound; following
// twice is a no-op.
func (s *UserService) Follow(ctx context.Context, followerID, followedID uuid.UUID) error {
	if followerID == followedID {
		return ErrCannotFollowSelf
	}

	if err := s.followWriter.Save(ctx, followerID, followedID); err != nil {
		if errors.Is(err, repositories.ErrForeignKeyViolation) {
			return ErrUserNotFound
		}
		logger.Log.Errorw("failed to save follow", "followerID", followerID, "followedID", followedID, "error", err)
		return err
	}

	publishEvent(ctx, s.kafkaWriter, models.Event{
		EventID:   uuid.NewString(),
		Type:      models.EventUserFollowed,
		Timestamp: time.Now().Unix(),
		UserID:    followerID.String(),
		SubjectID: followedID.String(),
	})

	return nil
}

// Unfollow removes the follower → followed edge if present.
func (s *UserService) Unfollow(ctx context.Context, followerID, followedID uuid.UUID) error {
	return s.followWriter.Delete(ctx, followerID, followedID)
}

// Followers returns the users following userID.
func (s *UserService) Followers(ctx context.Context, userID uuid.UUID) ([]models.UserDB, error) {
	return s.followReader.Followers(ctx, userID)
}

// Following returns the users userID follows.
func (s *UserService) Following(ctx context.Context, userID uuid.UUID) ([]models.UserDB, error) {
	return s.followReader.Following(ctx, userID)
}

// IsFollowing reports whether a follows b.
func (s *UserService) IsFollowing(ctx context.Context, a, b uuid.UUID) (bool, error) {
	return s.followReader.IsFollowing(ctx, a, b)
}

// IsFollowedBy reports whether a is followed by b.
func (s *UserService) IsFollowedBy(ctx context.Context, a, b uuid.UUID) (bool, error) {
	return s.followReader.IsFollowing(ctx, b, a)
}
