package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgresContainer(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "5432")

	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())

	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err)

	require.NoError(t, EnsureSchema(context.Background(), db))

	teardown := func() {
		db.Close()
		container.Terminate(context.Background())
	}

	return db, teardown
}

// noTx makes write repositories run against the pool directly.
func noTx(ctx context.Context) *sqlx.Tx { return nil }

func mustCreateUser(t *testing.T, db *sqlx.DB, username string) uuid.UUID {
	t.Helper()

	repo := NewUserWriteRepository(db, noTx)
	userID, err := repo.Save(context.Background(), username, username+"@example.com", "$2a$10$hash", nil)
	assert.NoError(t, err)
	return userID
}

func mustCreateMessage(t *testing.T, db *sqlx.DB, userID uuid.UUID, text string) int64 {
	t.Helper()

	repo := NewMessageWriteRepository(db, noTx)
	messageID, err := repo.Save(context.Background(), userID, text)
	assert.NoError(t, err)
	return messageID
}
