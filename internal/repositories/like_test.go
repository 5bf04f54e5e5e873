package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLikeRepository(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	writeRepo := NewLikeWriteRepository(db, noTx)
	readRepo := NewLikeReadRepository(db, noTx)

	alice := mustCreateUser(t, db, "alice")
	bob := mustCreateUser(t, db, "bob")
	messageID := mustCreateMessage(t, db, alice, "like me")

	t.Run("like and list likers", func(t *testing.T) {
		assert.NoError(t, writeRepo.Save(ctx, bob, messageID))

		likers, err := readRepo.LikersOf(ctx, messageID)
		assert.NoError(t, err)
		assert.Len(t, likers, 1)
		assert.Equal(t, bob, likers[0].UserID)
	})

	t.Run("liking twice is a no-op", func(t *testing.T) {
		assert.NoError(t, writeRepo.Save(ctx, bob, messageID))

		likers, err := readRepo.LikersOf(ctx, messageID)
		assert.NoError(t, err)
		assert.Len(t, likers, 1)
	})

	t.Run("likers come back in like order", func(t *testing.T) {
		assert.NoError(t, writeRepo.Save(ctx, alice, messageID))

		likers, err := readRepo.LikersOf(ctx, messageID)
		assert.NoError(t, err)
		assert.Len(t, likers, 2)
		assert.Equal(t, bob, likers[0].UserID)
		assert.Equal(t, alice, likers[1].UserID)
	})

	t.Run("unlike removes the like", func(t *testing.T) {
		assert.NoError(t, writeRepo.Delete(ctx, bob, messageID))

		likers, err := readRepo.LikersOf(ctx, messageID)
		assert.NoError(t, err)
		assert.Len(t, likers, 1)
		assert.Equal(t, alice, likers[0].UserID)
	})

	t.Run("unknown user is a foreign key violation", func(t *testing.T) {
		err := writeRepo.Save(ctx, uuid.New(), messageID)
		assert.ErrorIs(t, err, ErrForeignKeyViolation)
	})

	t.Run("unknown message is a foreign key violation", func(t *testing.T) {
		err := writeRepo.Save(ctx, alice, 99999)
		assert.ErrorIs(t, err, ErrForeignKeyViolation)
	})

	t.Run("deleting a message removes its likes", func(t *testing.T) {
		doomedMsg := mustCreateMessage(t, db, alice, "fleeting")
		assert.NoError(t, writeRepo.Save(ctx, bob, doomedMsg))

		_, err := db.ExecContext(ctx, "DELETE FROM messages WHERE message_id = $1", doomedMsg)
		assert.NoError(t, err)

		likers, err := readRepo.LikersOf(ctx, doomedMsg)
		assert.NoError(t, err)
		assert.Empty(t, likers)
	})
}
