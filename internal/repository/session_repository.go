package repository

import (
	"context"
	"ctchen222/Power-Tic-Tac-Toe/internal/session"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrSessionNotFound is returned when no live snapshot is stored for a room.
var ErrSessionNotFound = errors.New("session not found")

// SessionRecord is the stored form of a room's live session.
type SessionRecord struct {
	RoomID     string           `json:"room_id"`
	Difficulty string           `json:"difficulty,omitempty"`
	Snapshot   session.Snapshot `json:"snapshot"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// SessionRepository mirrors live session snapshots so that a room can be
// rebuilt after a reconnect or restart.
type SessionRepository interface {
	Save(ctx context.Context, record *SessionRecord) error
	FindByID(ctx context.Context, roomID string) (*SessionRecord, error)
	Delete(ctx context.Context, roomID string) error
}

type redisSessionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSessionRepository creates a Redis-based SessionRepository. Every Save
// refreshes the key's expiry to ttl.
func NewSessionRepository(rdb *redis.Client, ttl time.Duration) SessionRepository {
	return &redisSessionRepository{rdb: rdb, ttl: ttl}
}

func sessionKey(roomID string) string {
	return fmt.Sprintf("session:%s", roomID)
}

// Save overwrites the stored snapshot for record.RoomID.
func (r *redisSessionRepository) Save(ctx context.Context, record *SessionRecord) error {
	ctx, span := tracer.Start(ctx, "SessionRepository.Save", trace.WithAttributes(
		attribute.String("room.id", record.RoomID),
	))
	defer span.End()

	data, err := json.Marshal(record)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal session")
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.rdb.Set(ctx, sessionKey(record.RoomID), data, r.ttl).Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to save session")
		return fmt.Errorf("failed to save session in redis: %w", err)
	}
	return nil
}

// FindByID loads the stored snapshot, or ErrSessionNotFound.
func (r *redisSessionRepository) FindByID(ctx context.Context, roomID string) (*SessionRecord, error) {
	ctx, span := tracer.Start(ctx, "SessionRepository.FindByID", trace.WithAttributes(
		attribute.String("room.id", roomID),
	))
	defer span.End()

	data, err := r.rdb.Get(ctx, sessionKey(roomID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get session")
		return nil, fmt.Errorf("failed to get session from redis: %w", err)
	}

	var record SessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to unmarshal session")
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &record, nil
}

func (r *redisSessionRepository) Delete(ctx context.Context, roomID string) error {
	ctx, span := tracer.Start(ctx, "SessionRepository.Delete", trace.WithAttributes(
		attribute.String("room.id", roomID),
	))
	defer span.End()

	return r.rdb.Del(ctx, sessionKey(roomID)).Err()
}
