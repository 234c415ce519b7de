package repository

import (
	"context"
	"ctchen222/Power-Tic-Tac-Toe/internal/player"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("repository")

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks . PlayerRepository,SessionRepository

// PlayerRepository defines the interface for player data operations.
type PlayerRepository interface {
	FindForReconnection(ctx context.Context, id string) (roomID string, status player.PlayerStatus, err error)
	UpdateConnectionStatus(ctx context.Context, id string, status player.PlayerStatus) error
	AssignRoom(ctx context.Context, id, roomID string) error
	SetOffline(ctx context.Context, id string) error
}

type redisPlayerRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewPlayerRepository creates a new Redis-based PlayerRepository. Player
// entries expire together with the session snapshots they point to.
func NewPlayerRepository(rdb *redis.Client, ttl time.Duration) PlayerRepository {
	return &redisPlayerRepository{
		rdb: rdb,
		ttl: ttl,
	}
}

func playerKey(id string) string {
	return fmt.Sprintf("player:%s", id)
}

// FindForReconnection returns the room a player was last assigned to. An
// unknown player yields an empty room id.
func (r *redisPlayerRepository) FindForReconnection(ctx context.Context, id string) (string, player.PlayerStatus, error) {
	ctx, span := tracer.Start(ctx, "PlayerRepository.FindForReconnection")
	defer span.End()

	data, err := r.rdb.HGetAll(ctx, playerKey(id)).Result()
	if err != nil {
		return "", "", fmt.Errorf("failed to get player from redis: %w", err)
	}
	return data["room_id"], player.PlayerStatus(data["connection_status"]), nil
}

// UpdateConnectionStatus updates only the connection status of a player.
func (r *redisPlayerRepository) UpdateConnectionStatus(ctx context.Context, id string, status player.PlayerStatus) error {
	ctx, span := tracer.Start(ctx, "PlayerRepository.UpdateConnectionStatus")
	defer span.End()

	return r.rdb.HSet(ctx, playerKey(id), "connection_status", string(status)).Err()
}

// AssignRoom records that a player drives roomID.
func (r *redisPlayerRepository) AssignRoom(ctx context.Context, id, roomID string) error {
	ctx, span := tracer.Start(ctx, "PlayerRepository.AssignRoom")
	defer span.End()

	key := playerKey(id)
	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, key, "room_id", roomID)
	pipe.HSet(ctx, key, "status", "in_game")
	pipe.HSet(ctx, key, "connection_status", string(player.StatusConnected))
	pipe.Expire(ctx, key, r.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// SetOffline marks a player as offline once their room has closed.
func (r *redisPlayerRepository) SetOffline(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "PlayerRepository.SetOffline")
	defer span.End()

	key := playerKey(id)
	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, key, "status", "offline")
	pipe.HSet(ctx, key, "connection_status", string(player.StatusDisconnected))
	pipe.HDel(ctx, key, "room_id")
	_, err := pipe.Exec(ctx)
	return err
}
