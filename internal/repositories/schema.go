package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Schema is the full database schema. Check constraints back up the eager
// validation in the services; ON DELETE CASCADE implements the deletion
// policy for a user's messages, likes, and follow edges.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	user_id UUID PRIMARY KEY,
	username VARCHAR(50) NOT NULL UNIQUE CHECK (username <> ''),
	email VARCHAR(100) NOT NULL UNIQUE CHECK (email <> ''),
	password_hash VARCHAR(255) NOT NULL,
	image_url VARCHAR(255),
	created_at TIMESTAMP NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS messages (
	message_id BIGSERIAL PRIMARY KEY,
	text TEXT NOT NULL CHECK (text <> ''),
	user_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
	created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS follows (
	follow_id BIGSERIAL PRIMARY KEY,
	follower_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
	followed_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
	created_at TIMESTAMP NOT NULL DEFAULT NOW(),
	UNIQUE (follower_id, followed_id)
);

CREATE TABLE IF NOT EXISTS likes (
	like_id BIGSERIAL PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
	message_id BIGINT NOT NULL REFERENCES messages(message_id) ON DELETE CASCADE,
	created_at TIMESTAMP NOT NULL DEFAULT NOW(),
	UNIQUE (user_id, message_id)
);
`

// EnsureSchema creates the tables if they do not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, Schema)
	return err
}
