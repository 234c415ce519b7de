package repository

import (
	"context"
	"ctchen222/Power-Tic-Tac-Toe/internal/game"
	"ctchen222/Power-Tic-Tac-Toe/internal/player"
	"ctchen222/Power-Tic-Tac-Toe/internal/session"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// newRedis starts a throwaway Redis container for one test.
func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping Redis integration test in short mode")
	}

	ctx := context.Background()
	ctr, err := tcredis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	uri, err := ctr.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := redis.ParseURL(uri)
	require.NoError(t, err)

	rdb := redis.NewClient(opts)
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.Ping(ctx).Err())
	return rdb
}

func TestSessionRepository(t *testing.T) {
	rdb := newRedis(t)
	repo := NewSessionRepository(rdb, time.Minute)
	ctx := context.Background()

	s := session.New(session.PvComputer, session.WithPowerUpPlacer(func(game.Board, *rand.Rand) game.PowerUps {
		return game.PowerUps{{Row: 2, Col: 2}: game.Steal}
	}), session.WithDeferredOpponent())
	snap, err := s.PlayAt(game.Position{Row: 1, Col: 1})
	require.NoError(t, err)

	record := &SessionRecord{
		RoomID:     "room-1",
		Difficulty: "hard",
		Snapshot:   snap,
		UpdatedAt:  time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC),
	}

	t.Run("Save and find", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, record))

		got, err := repo.FindByID(ctx, "room-1")

		require.NoError(t, err)
		assert.Equal(t, record.Difficulty, got.Difficulty)
		assert.True(t, record.UpdatedAt.Equal(got.UpdatedAt))
		assert.Equal(t, snap, got.Snapshot)

		ttl, err := rdb.TTL(ctx, "session:room-1").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Minute)
	})

	t.Run("Restores into a playable session", func(t *testing.T) {
		got, err := repo.FindByID(ctx, "room-1")
		require.NoError(t, err)

		restored, err := session.Restore(got.Snapshot, session.WithDeferredOpponent())
		require.NoError(t, err)
		assert.Equal(t, game.Opponent, restored.Turn())
	})

	t.Run("Unknown room", func(t *testing.T) {
		_, err := repo.FindByID(ctx, "missing")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "room-1"))
		_, err := repo.FindByID(ctx, "room-1")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("Corrupt payload", func(t *testing.T) {
		require.NoError(t, rdb.Set(ctx, "session:bad", "{not json", time.Minute).Err())
		_, err := repo.FindByID(ctx, "bad")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestPlayerRepository(t *testing.T) {
	rdb := newRedis(t)
	repo := NewPlayerRepository(rdb, time.Minute)
	ctx := context.Background()

	t.Run("Unknown player has no room", func(t *testing.T) {
		roomID, status, err := repo.FindForReconnection(ctx, "ghost")
		require.NoError(t, err)
		assert.Empty(t, roomID)
		assert.Empty(t, status)
	})

	t.Run("Assign, disconnect and go offline", func(t *testing.T) {
		require.NoError(t, repo.AssignRoom(ctx, "p1", "room-9"))

		roomID, status, err := repo.FindForReconnection(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "room-9", roomID)
		assert.Equal(t, player.StatusConnected, status)

		require.NoError(t, repo.UpdateConnectionStatus(ctx, "p1", player.StatusDisconnected))
		_, status, err = repo.FindForReconnection(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, player.StatusDisconnected, status)

		require.NoError(t, repo.SetOffline(ctx, "p1"))
		roomID, _, err = repo.FindForReconnection(ctx, "p1")
		require.NoError(t, err)
		assert.Empty(t, roomID)
	})
}
