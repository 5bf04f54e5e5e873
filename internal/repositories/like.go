package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/warblerhq/warbler/internal/logger"
	"github.com/warblerhq/warbler/internal/models"
)

// LikeReadRepository answers derived queries over the likes table. Reads run
// on the request's transaction when one is present.
type LikeReadRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewLikeReadRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *LikeReadRepository {
	return &LikeReadRepository{db: db, txGetter: txGetter}
}

func (r *LikeReadRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// LikersOf returns the users who liked the message, in like insertion order.
func (r *LikeReadRepository) LikersOf(ctx context.Context, messageID int64) ([]models.UserDB, error) {
	const query = `
		SELECT u.user_id, u.username, u.email, u.password_hash, u.image_url, u.created_at, u.updated_at
		FROM users u
		INNER JOIN likes l ON l.user_id = u.user_id
		WHERE l.message_id = $1
		ORDER BY l.like_id
	`

	users := []models.UserDB{}
	err := sqlx.SelectContext(ctx, r.executor(ctx), &users, query, messageID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{messageID},
		"result_count", len(users),
		"error", err,
	)

	return users, err
}

// LikeWriteRepository handles like mutations.
type LikeWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewLikeWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *LikeWriteRepository {
	return &LikeWriteRepository{db: db, txGetter: txGetter}
}

func (r *LikeWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a like. Liking twice is a no-op; an unknown user or message
// surfaces as ErrForeignKeyViolation.
func (r *LikeWriteRepository) Save(ctx context.Context, userID uuid.UUID, messageID int64) error {
	query := `
		INSERT INTO likes (user_id, message_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, message_id) DO NOTHING
	`
	args := []any{userID, messageID}

	res, err := r.executor(ctx).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", rowsAffected,
		"error", err,
	)

	return mapConstraintErr(err)
}

// Delete removes the user's like of the message if present.
func (r *LikeWriteRepository) Delete(ctx context.Context, userID uuid.UUID, messageID int64) error {
	query := `DELETE FROM likes WHERE user_id = $1 AND message_id = $2`
	args := []any{userID, messageID}

	res, err := r.executor(ctx).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", query,
		"args", args,
		"result", rowsAffected,
		"error", err,
	)

	return err
}
