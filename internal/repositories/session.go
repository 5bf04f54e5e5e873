package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/warblerhq/warbler/internal/logger"
)

// ErrSessionNotFound is returned when a session id is absent from the store,
// either because it expired or because the user logged out.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository stores active sessions in Redis. A session maps the
// session id carried in the token to the authenticated user's id; deleting
// it revokes the token before its expiry.
type SessionRepository struct {
	client *redis.Client
	exp    time.Duration // session lifetime, matches the token lifetime
}

// NewSessionRepository creates a repository with the given session lifetime.
func NewSessionRepository(client *redis.Client, expiration time.Duration) *SessionRepository {
	return &SessionRepository{
		client: client,
		exp:    expiration,
	}
}

func sessionKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("session:%s", sessionID)
}

// Save stores the session with the configured TTL.
func (r *SessionRepository) Save(ctx context.Context, sessionID, userID uuid.UUID) error {
	key := sessionKey(sessionID)
	err := r.client.Set(ctx, key, userID.String(), r.exp).Err()

	logger.Log.Infow(
		"key", key,
		"user_id", userID,
		"error", err,
	)

	return err
}

// Get returns the user id bound to the session, or ErrSessionNotFound.
func (r *SessionRepository) Get(ctx context.Context, sessionID uuid.UUID) (uuid.UUID, error) {
	key := sessionKey(sessionID)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Infow(
			"key", key,
			"error", err,
		)
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrSessionNotFound
		}
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, err
	}

	logger.Log.Infow(
		"key", key,
		"user_id", userID,
		"error", nil,
	)

	return userID, nil
}

// Delete revokes the session.
func (r *SessionRepository) Delete(ctx context.Context, sessionID uuid.UUID) error {
	key := sessionKey(sessionID)
	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow(
		"key", key,
		"error", err,
	)

	return err
}
