package repositories

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func TestUserRepository(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	writeRepo := NewUserWriteRepository(db, noTx)
	readRepo := NewUserReadRepository(db, noTx)

	t.Run("save and read back", func(t *testing.T) {
		userID, err := writeRepo.Save(ctx, "alice", "alice@example.com", "$2a$10$hash", nil)
		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, userID)

		user, err := readRepo.GetByID(ctx, userID)
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, "$2a$10$hash", user.PasswordHash)
		assert.Nil(t, user.ImageURL)

		byName, err := readRepo.GetByUsername(ctx, "alice")
		assert.NoError(t, err)
		assert.NotNil(t, byName)
		assert.Equal(t, userID, byName.UserID)
	})

	t.Run("absent user is nil, not an error", func(t *testing.T) {
		user, err := readRepo.GetByID(ctx, uuid.New())
		assert.NoError(t, err)
		assert.Nil(t, user)

		user, err = readRepo.GetByUsername(ctx, "nobody")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("duplicate username is a unique violation", func(t *testing.T) {
		_, err := writeRepo.Save(ctx, "alice", "other@example.com", "$2a$10$hash", nil)
		assert.ErrorIs(t, err, ErrUniqueViolation)

		// The original row is untouched.
		user, err := readRepo.GetByUsername(ctx, "alice")
		assert.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("duplicate email is a unique violation", func(t *testing.T) {
		_, err := writeRepo.Save(ctx, "alice2", "alice@example.com", "$2a$10$hash", nil)
		assert.ErrorIs(t, err, ErrUniqueViolation)
	})

	t.Run("empty username is a check violation", func(t *testing.T) {
		_, err := writeRepo.Save(ctx, "", "empty@example.com", "$2a$10$hash", nil)
		assert.ErrorIs(t, err, ErrCheckViolation)
	})

	t.Run("list is ordered by username", func(t *testing.T) {
		mustCreateUser(t, db, "zed")
		mustCreateUser(t, db, "bob")

		users, err := readRepo.List(ctx)
		assert.NoError(t, err)
		assert.Len(t, users, 3)
		assert.Equal(t, "alice", users[0].Username)
		assert.Equal(t, "bob", users[1].Username)
		assert.Equal(t, "zed", users[2].Username)
	})

	t.Run("image url round trips", func(t *testing.T) {
		imageURL := "https://example.com/pic.png"
		userID, err := writeRepo.Save(ctx, "carol", "carol@example.com", "$2a$10$hash", &imageURL)
		assert.NoError(t, err)

		user, err := readRepo.GetByID(ctx, userID)
		assert.NoError(t, err)
		assert.NotNil(t, user.ImageURL)
		assert.Equal(t, imageURL, *user.ImageURL)
	})

	t.Run("delete removes the user and cascades", func(t *testing.T) {
		userID := mustCreateUser(t, db, "doomed")
		messageID := mustCreateMessage(t, db, userID, "soon gone")

		assert.NoError(t, writeRepo.Delete(ctx, userID))

		user, err := readRepo.GetByID(ctx, userID)
		assert.NoError(t, err)
		assert.Nil(t, user)

		msg, err := NewMessageReadRepository(db, noTx).GetByID(ctx, messageID)
		assert.NoError(t, err)
		assert.Nil(t, msg)
	})

	t.Run("deleting an absent user reports no rows", func(t *testing.T) {
		err := writeRepo.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("row saved in an open transaction is readable through it before commit", func(t *testing.T) {
		tx, err := db.Beginx()
		assert.NoError(t, err)
		defer tx.Rollback()

		inTx := func(ctx context.Context) *sqlx.Tx { return tx }
		txWrite := NewUserWriteRepository(db, inTx)
		txRead := NewUserReadRepository(db, inTx)

		userID, err := txWrite.Save(ctx, "pending", "pending@example.com", "$2a$10$hash", nil)
		assert.NoError(t, err)

		user, err := txRead.GetByID(ctx, userID)
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "pending", user.Username)

		// Pool-bound reads cannot see the row until the transaction commits.
		outside, err := readRepo.GetByID(ctx, userID)
		assert.NoError(t, err)
		assert.Nil(t, outside)

		assert.NoError(t, tx.Commit())

		committed, err := readRepo.GetByID(ctx, userID)
		assert.NoError(t, err)
		assert.NotNil(t, committed)
	})
}
