package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/warblerhq/warbler/internal/logger"
	"github.com/warblerhq/warbler/internal/models"
)

// FollowReadRepository answers derived queries over the follows table.
// Followers and following are always computed here, never stored on the user.
// Reads run on the request's transaction when one is present.
type FollowReadRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewFollowReadRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *FollowReadRepository {
	return &FollowReadRepository{db: db, txGetter: txGetter}
}

func (r *FollowReadRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Followers returns the users following userID, in follow insertion order.
func (r *FollowReadRepository) Followers(ctx context.Context, userID uuid.UUID) ([]models.UserDB, error) {
	const query = `
		SELECT u.user_id, u.username, u.email, u.password_hash, u.image_url, u.created_at, u.updated_at
		FROM users u
		INNER JOIN follows f ON f.follower_id = u.user_id
		WHERE f.followed_id = $1
		ORDER BY f.follow_id
	`

	users := []models.UserDB{}
	err := sqlx.SelectContext(ctx, r.executor(ctx), &users, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result_count", len(users),
		"error", err,
	)

	return users, err
}

// Following returns the users that userID follows, in follow insertion order.
func (r *FollowReadRepository) Following(ctx context.Context, userID uuid.UUID) ([]models.UserDB, error) {
	const query = `
		SELECT u.user_id, u.username, u.email, u.password_hash, u.image_url, u.created_at, u.updated_at
		FROM users u
		INNER JOIN follows f ON f.followed_id = u.user_id
		WHERE f.follower_id = $1
		ORDER BY f.follow_id
	`

	users := []models.UserDB{}
	err := sqlx.SelectContext(ctx, r.executor(ctx), &users, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result_count", len(users),
		"error", err,
	)

	return users, err
}

// IsFollowing reports whether the follower → followed edge exists.
func (r *FollowReadRepository) IsFollowing(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM follows WHERE follower_id = $1 AND followed_id = $2
		)
	`

	var exists bool
	err := sqlx.GetContext(ctx, r.executor(ctx), &exists, query, followerID, followedID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{followerID, followedID},
		"result", exists,
		"error", err,
	)

	return exists, err
}

// FollowWriteRepository handles follow edge mutations.
type FollowWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewFollowWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *FollowWriteRepository {
	return &FollowWriteRepository{db: db, txGetter: txGetter}
}

func (r *FollowWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a directional follow edge. Duplicate follows are no-ops;
// a non-existent endpoint surfaces as ErrForeignKeyViolation.
func (r *FollowWriteRepository) Save(ctx context.Context, followerID, followedID uuid.UUID) error {
	query := `
		INSERT INTO follows (follower_id, followed_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (follower_id, followed_id) DO NOTHING
	`
	args := []any{followerID, followedID}

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

// Delete removes the follower → followed edge if present.
func (r *FollowWriteRepository) Delete(ctx context.Context, followerID, followedID uuid.UUID) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2`
	args := []any{followerID, followedID}

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
