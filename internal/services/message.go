package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/warblerhq/warbler/internal/logger"
	"github.com/warblerhq/warbler/internal/models"
	"github.com/warblerhq/warbler/internal/repositories"
)

var (
	// ErrMessageTextRequired is returned before any store interaction when
	// a message has empty text.
	ErrMessageTextRequired = errors.New("message text is required")
	// ErrAuthorNotFound is returned when the message's author does not
	// exist; unlike empty text this is detected by the store.
	ErrAuthorNotFound = errors.New("message author not found")
	// ErrMessageNotFound is returned when a message id matches nothing.
	ErrMessageNotFound = errors.New("message not found")
	// ErrLikeTargetNotFound is returned when a like references an unknown
	// user or message.
	ErrLikeTargetNotFound = errors.New("like target not found")
)

// MessageReader defines read-only operations for messages.
type MessageReader interface {
	GetByID(ctx context.Context, messageID int64) (*models.MessageDB, error)
	List(ctx context.Context, filter repositories.MessageFilter) ([]models.MessageDB, error)
}

// MessageWriter defines write operations for messages.
type MessageWriter interface {
	Save(ctx context.Context, userID uuid.UUID, text string) (int64, error)
}

// LikeReader defines derived read queries over likes.
type LikeReader interface {
	LikersOf(ctx context.Context, messageID int64) ([]models.UserDB, error)
}

// LikeWriter defines like mutations.
type LikeWriter interface {
	Save(ctx context.Context, userID uuid.UUID, messageID int64) error
	Delete(ctx context.Context, userID uuid.UUID, messageID int64) error
}

// MessageService handles posting, reading, and liking messages.
type MessageService struct {
	reader      MessageReader
	writer      MessageWriter
	likeReader  LikeReader
	likeWriter  LikeWriter
	kafkaWriter KafkaWriter
}

// NewMessageService creates a new MessageService.
func NewMessageService(
	reader MessageReader,
	writer MessageWriter,
	likeReader LikeReader,
	likeWriter LikeWriter,
	kafkaWriter KafkaWriter,
) *MessageService {
	return &MessageService{
		reader:      reader,
		writer:      writer,
		likeReader:  likeReader,
		likeWriter:  likeWriter,
		kafkaWriter: kafkaWriter,
	}
}

// Post creates a message authored by userID and publishes a message.posted
// event. Empty text fails eagerly; an unknown author fails at the store.
func (s *MessageService) Post(ctx context.Context, userID uuid.UUID, text string) (*models.MessageDB, error) {
	if text == "" {
		logger.Log.Errorw("post with empty text", "userID", userID)
		return nil, ErrMessageTextRequired
	}

	messageID, err := s.writer.Save(ctx, userID, text)
	if err != nil {
		if errors.Is(err, repositories.ErrForeignKeyViolation) {
			return nil, ErrAuthorNotFound
		}
		logger.Log.Errorw("failed to save message", "userID", userID, "error", err)
		return nil, err
	}

	publishEvent(ctx, s.kafkaWriter, models.Event{
		EventID:   uuid.NewString(),
		Type:      models.EventMessagePosted,
		Timestamp: time.Now().Unix(),
		UserID:    userID.String(),
		SubjectID: formatMessageID(messageID),
	})

	return s.reader.GetByID(ctx, messageID)
}

// Get returns the message with the given id.
func (s *MessageService) Get(ctx context.Context, messageID int64) (*models.MessageDB, error) {
	msg, err := s.reader.GetByID(ctx, messageID)
	if err != nil {
		logger.Log.Errorw("failed to get message", "messageID", messageID, "error", err)
		return nil, err
	}
	if msg == nil {
		return nil, ErrMessageNotFound
	}
	return msg, nil
}

// MessagesBy returns the messages authored by userID in insertion order.
func (s *MessageService) MessagesBy(ctx context.Context, userID uuid.UUID) ([]models.MessageDB, error) {
	return s.reader.List(ctx, repositories.MessageFilter{AuthorID: &userID})
}

// Timeline returns the newest slice of all messages.
func (s *MessageService) Timeline(ctx context.Context, limit, offset uint64) ([]models.MessageDB, error) {
	return s.reader.List(ctx, repositories.MessageFilter{Limit: limit, Offset: offset})
}

// Like records that userID liked the message. An unknown user or message
// surfaces as ErrLikeTargetNotFound; liking twice is a no-op.
func (s *MessageService) Like(ctx context.Context, userID uuid.UUID, messageID int64) error {
	if err := s.likeWriter.Save(ctx, userID, messageID); err != nil {
		if errors.Is(err, repositories.ErrForeignKeyViolation) {
			return ErrLikeTargetNotFound
		}
		logger.Log.Errorw("failed to save like", "userID", userID, "messageID", messageID, "error", err)
		return err
	}
	return nil
}

// Unlike removes the user's like of the message if present.
func (s *MessageService) Unlike(ctx context.Context, userID uuid.UUID, messageID int64) error {
	return s.likeWriter.Delete(ctx, userID, messageID)
}

// Likers returns the users who liked the message, in like order.
func (s *MessageService) Likers(ctx context.Context, messageID int64) ([]models.UserDB, error) {
	return s.likeReader.LikersOf(ctx, messageID)
}

func formatMessageID(id int64) string {
	return strconv.FormatInt(id, 10)
}
