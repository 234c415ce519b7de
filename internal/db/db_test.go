package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeDB(t *testing.T) {
	ctx := context.Background()
	pool, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })

	require.NoError(t, InitializeDB(ctx, pool))
	// Running it twice is harmless.
	require.NoError(t, InitializeDB(ctx, pool))

	_, err = pool.ExecContext(ctx, `INSERT INTO users (username, password_hash) VALUES (?, ?)`, "alice", "hash")
	require.NoError(t, err)

	_, err = pool.ExecContext(ctx, `INSERT INTO users (username, password_hash) VALUES (?, ?)`, "alice", "other")
	assert.Error(t, err, "usernames are unique")

	var count int
	require.NoError(t, pool.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`))
	assert.Equal(t, 1, count)
}

func TestNewRedisClientUnreachable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client, err := NewRedisClient(ctx, "127.0.0.1:1")
	assert.Error(t, err)
	assert.Nil(t, client)
}
