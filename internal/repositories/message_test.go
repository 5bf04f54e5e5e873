package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func TestMessageRepository(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	writeRepo := NewMessageWriteRepository(db, noTx)
	readRepo := NewMessageReadRepository(db, noTx)

	u1 := mustCreateUser(t, db, "u1")
	u2 := mustCreateUser(t, db, "u2")

	t.Run("save and read back", func(t *testing.T) {
		messageID, err := writeRepo.Save(ctx, u1, "Sample text")
		assert.NoError(t, err)
		assert.NotZero(t, messageID)

		msg, err := readRepo.GetByID(ctx, messageID)
		assert.NoError(t, err)
		assert.NotNil(t, msg)
		assert.Equal(t, "Sample text", msg.Text)
		assert.Equal(t, u1, msg.UserID)
		assert.False(t, msg.CreatedAt.IsZero())
	})

	t.Run("list by author", func(t *testing.T) {
		msgs, err := readRepo.List(ctx, MessageFilter{AuthorID: &u1})
		assert.NoError(t, err)
		assert.Len(t, msgs, 1)
		assert.Equal(t, "Sample text", msgs[0].Text)
		assert.Equal(t, u1, msgs[0].UserID)

		msgs, err = readRepo.List(ctx, MessageFilter{AuthorID: &u2})
		assert.NoError(t, err)
		assert.Empty(t, msgs)
	})

	t.Run("list keeps insertion order", func(t *testing.T) {
		mustCreateMessage(t, db, u1, "second")
		mustCreateMessage(t, db, u2, "third")

		msgs, err := readRepo.List(ctx, MessageFilter{})
		assert.NoError(t, err)
		assert.Len(t, msgs, 3)
		assert.Equal(t, "Sample text", msgs[0].Text)
		assert.Equal(t, "second", msgs[1].Text)
		assert.Equal(t, "third", msgs[2].Text)
	})

	t.Run("list with limit and offset", func(t *testing.T) {
		msgs, err := readRepo.List(ctx, MessageFilter{Limit: 1, Offset: 1})
		assert.NoError(t, err)
		assert.Len(t, msgs, 1)
		assert.Equal(t, "second", msgs[0].Text)
	})

	t.Run("unknown author is a foreign key violation", func(t *testing.T) {
		_, err := writeRepo.Save(ctx, uuid.New(), "orphan")
		assert.ErrorIs(t, err, ErrForeignKeyViolation)
	})

	t.Run("empty text is a check violation", func(t *testing.T) {
		_, err := writeRepo.Save(ctx, u1, "")
		assert.ErrorIs(t, err, ErrCheckViolation)
	})

	t.Run("absent message is nil, not an error", func(t *testing.T) {
		msg, err := readRepo.GetByID(ctx, 99999)
		assert.NoError(t, err)
		assert.Nil(t, msg)
	})

	t.Run("message saved in an open transaction is readable through it before commit", func(t *testing.T) {
		tx, err := db.Beginx()
		assert.NoError(t, err)
		defer tx.Rollback()

		inTx := func(ctx context.Context) *sqlx.Tx { return tx }
		txWrite := NewMessageWriteRepository(db, inTx)
		txRead := NewMessageReadRepository(db, inTx)

		messageID, err := txWrite.Save(ctx, u1, "pending")
		assert.NoError(t, err)

		msg, err := txRead.GetByID(ctx, messageID)
		assert.NoError(t, err)
		assert.NotNil(t, msg)
		assert.Equal(t, "pending", msg.Text)
		assert.Equal(t, u1, msg.UserID)

		// Pool-bound reads cannot see the row until the transaction commits.
		outside, err := readRepo.GetByID(ctx, messageID)
		assert.NoError(t, err)
		assert.Nil(t, outside)

		assert.NoError(t, tx.Commit())

		committed, err := readRepo.GetByID(ctx, messageID)
		assert.NoError(t, err)
		assert.NotNil(t, committed)
	})
}
