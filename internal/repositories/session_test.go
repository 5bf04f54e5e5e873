package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)
	defer redisC.Terminate(ctx)

	host, err := redisC.Host(ctx)
	assert.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	assert.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	defer client.Close()

	assert.NoError(t, client.Ping(ctx).Err())

	repo := NewSessionRepository(client, 2*time.Second)

	t.Run("save and get", func(t *testing.T) {
		sessionID, userID := uuid.New(), uuid.New()

		assert.NoError(t, repo.Save(ctx, sessionID, userID))

		got, err := repo.Get(ctx, sessionID)
		assert.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("missing session", func(t *testing.T) {
		_, err := repo.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("delete revokes the session", func(t *testing.T) {
		sessionID, userID := uuid.New(), uuid.New()

		assert.NoError(t, repo.Save(ctx, sessionID, userID))
		assert.NoError(t, repo.Delete(ctx, sessionID))

		_, err := repo.Get(ctx, sessionID)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("deleting an absent session is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.Delete(ctx, uuid.New()))
	})

	t.Run("session expires after its TTL", func(t *testing.T) {
		sessionID, userID := uuid.New(), uuid.New()

		assert.NoError(t, repo.Save(ctx, sessionID, userID))
		time.Sleep(3 * time.Second)

		_, err := repo.Get(ctx, sessionID)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}
