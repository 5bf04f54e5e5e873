package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/warblerhq/warbler/internal/logger"
	"github.com/warblerhq/warbler/internal/models"
)

// MessageFilter narrows down a message listing. A nil AuthorID means all
// authors; a zero Limit means no limit.
type MessageFilter struct {
	AuthorID *uuid.UUID
	Limit    uint64
	Offset   uint64
}

// MessageReadRepository handles message read operations. Reads run on the
// request's transaction when one is present, so a message written earlier in
// the same request is visible before commit.
type MessageReadRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewMessageReadRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *MessageReadRepository {
	return &MessageReadRepository{db: db, txGetter: txGetter}
}

func (r *MessageReadRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// GetByID returns the message with the given id, or nil if absent.
func (r *MessageReadRepository) GetByID(ctx context.Context, messageID int64) (*models.MessageDB, error) {
	const query = `
		SELECT message_id, text, user_id, created_at
		FROM messages
		WHERE message_id = $1
	`

	var msg models.MessageDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &msg, query, messageID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{messageID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// List returns messages matching the filter, in insertion order.
func (r *MessageReadRepository) List(ctx context.Context, filter MessageFilter) ([]models.MessageDB, error) {
	builder := sq.Select("message_id", "text", "user_id", "created_at").
		From("messages").
		OrderBy("message_id ASC").
		PlaceholderFormat(sq.Dollar)

	if filter.AuthorID != nil {
		builder = builder.Where(sq.Eq{"user_id": *filter.AuthorID})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		builder = builder.Offset(filter.Offset)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	msgs := []models.MessageDB{}
	err = sqlx.SelectContext(ctx, r.executor(ctx), &msgs, query, args...)

	logger.Log.Infow(
		"query", query,
		"args", args,
		"result_count", len(msgs),
		"error", err,
	)

	return msgs, err
}

// MessageWriteRepository handles message write operations.
type MessageWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewMessageWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *MessageWriteRepository {
	return &MessageWriteRepository{db: db, txGetter: txGetter}
}

func (r *MessageWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a message authored by userID. A non-existent author surfaces
// as ErrForeignKeyViolation; empty text never reaches this method.
func (r *MessageWriteRepository) Save(ctx context.Context, userID uuid.UUID, text string) (int64, error) {
	query := `
		INSERT INTO messages (text, user_id, created_at)
		VALUES ($1, $2, NOW())
		RETURNING message_id
	`
	args := []any{text, userID}

	var messageID int64
	err := sqlx.GetContext(ctx, r.executor(ctx), &messageID, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", messageID,
		"error", err,
	)

	return messageID, mapConstraintErr(err)
}
