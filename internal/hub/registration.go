package hub

import (
	"context"
	"ctchen222/Power-Tic-Tac-Toe/internal/bot"
	"ctchen222/Power-Tic-Tac-Toe/internal/hub/types"
	"ctchen222/Power-Tic-Tac-Toe/internal/player"
	"ctchen222/Power-Tic-Tac-Toe/internal/repository"
	"ctchen222/Power-Tic-Tac-Toe/internal/room"
	"ctchen222/Power-Tic-Tac-Toe/internal/session"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// handleRegistration attaches a client to, in order of preference: the live
// room its player id is mapped to, the stored room it asked for, or a new
// room. A live room is never handed to a player it does not belong to.
func (h *Hub) handleRegistration(runCtx context.Context, req *types.RegistrationRequest) {
	ctx := req.Ctx
	if ctx == nil {
		ctx = runCtx
	}
	p := req.Player
	ctx, span := tracer.Start(ctx, "hub.handleRegistration", trace.WithAttributes(
		attribute.String("player.id", p.ID),
		attribute.String("room.requested", req.RoomID),
		attribute.String("game.mode", req.Mode),
	))
	defer span.End()

	storedRoomID, _, err := h.playerRepo.FindForReconnection(ctx, p.ID)
	if err != nil {
		slog.WarnContext(ctx, "Could not look up player for reconnection", "player.id", p.ID, "error", err)
		span.RecordError(err)
	}

	if r, ok := h.liveRoom(ctx, storedRoomID); ok {
		h.reconnect(ctx, r, p)
		return
	}

	roomID := req.RoomID
	if roomID == "" {
		roomID = storedRoomID
	}
	if _, ok := h.liveRoom(ctx, roomID); ok {
		slog.WarnContext(ctx, "Requested room is in use by another player, creating a new one", "player.id", p.ID, "room.id", roomID)
		span.SetAttributes(attribute.Bool("room.denied", true))
		roomID = ""
	}

	if roomID != "" {
		r, err := h.restoreRoom(ctx, roomID)
		switch {
		case err == nil:
			h.startRoom(ctx, runCtx, r, p)
			return
		case errors.Is(err, repository.ErrSessionNotFound):
			slog.InfoContext(ctx, "No stored session for room, creating a new one", "room.id", roomID)
		default:
			slog.ErrorContext(ctx, "Could not restore room", "room.id", roomID, "error", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "Could not restore room")
		}
	}

	r := h.createRoom(ctx, session.ParseMode(req.Mode), bot.ParseDifficulty(req.Difficulty))
	h.startRoom(ctx, runCtx, r, p)
}

// liveRoom returns the running room with the given id. A room that closed
// but has not been unregistered yet is dropped from the map.
func (h *Hub) liveRoom(ctx context.Context, roomID string) (*room.Room, bool) {
	r, ok := h.rooms[roomID]
	if !ok {
		return nil, false
	}
	if r.Closed() {
		h.removeRoom(ctx, r)
		return nil, false
	}
	return r, true
}

func (h *Hub) reconnect(ctx context.Context, r *room.Room, p *player.Player) {
	ctx, span := tracer.Start(ctx, "hub.reconnect", trace.WithAttributes(
		attribute.String("player.id", p.ID),
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	slog.InfoContext(ctx, "Player reattached to live room", "player.id", p.ID, "room.id", r.ID)
	h.assignRoom(ctx, p.ID, r.ID)
	r.Attach(ctx, p)
}

func (h *Hub) createRoom(ctx context.Context, mode session.Mode, difficulty bot.Difficulty) *room.Room {
	roomID := h.newRoomID()
	sess := session.New(mode, h.sessionOptions(difficulty)...)
	r := room.NewRoom(roomID, sess, difficulty, h.sessionRepo, h.playerRepo, h.settings)

	record := &repository.SessionRecord{
		RoomID:     roomID,
		Difficulty: string(difficulty),
		Snapshot:   sess.Snapshot(),
		UpdatedAt:  time.Now().UTC(),
	}
	if err := h.sessionRepo.Save(ctx, record); err != nil {
		slog.ErrorContext(ctx, "Failed to save new session", "room.id", roomID, "error", err)
		trace.SpanFromContext(ctx).RecordError(err)
	}

	slog.InfoContext(ctx, "Room created", "room.id", roomID, "game.mode", mode, "bot.difficulty", difficulty)
	return r
}

func (h *Hub) restoreRoom(ctx context.Context, roomID string) (*room.Room, error) {
	ctx, span := tracer.Start(ctx, "hub.restoreRoom", trace.WithAttributes(
		attribute.String("room.id", roomID),
	))
	defer span.End()

	record, err := h.sessionRepo.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	difficulty := bot.ParseDifficulty(record.Difficulty)
	sess, err := session.Restore(record.Snapshot, h.sessionOptions(difficulty)...)
	if err != nil {
		return nil, fmt.Errorf("restore room %s: %w", roomID, err)
	}

	slog.InfoContext(ctx, "Room restored from stored session", "room.id", roomID)
	return room.NewRoom(roomID, sess, difficulty, h.sessionRepo, h.playerRepo, h.settings), nil
}

// startRoom registers r, adds its first player and starts its loop.
func (h *Hub) startRoom(ctx, runCtx context.Context, r *room.Room, p *player.Player) {
	h.rooms[r.ID] = r
	h.assignRoom(ctx, p.ID, r.ID)

	r.AddPlayer(p)
	r.Start(runCtx, h.unregister)
	r.SendInitialState(ctx, p)
}

func (h *Hub) assignRoom(ctx context.Context, playerID, roomID string) {
	if err := h.playerRepo.AssignRoom(ctx, playerID, roomID); err != nil {
		slog.ErrorContext(ctx, "Failed to assign player to room", "player.id", playerID, "room.id", roomID, "error", err)
		span := trace.SpanFromContext(ctx)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to assign player to room")
	}
}

func (h *Hub) sessionOptions(difficulty bot.Difficulty) []session.Option {
	rng := h.newRand()
	return []session.Option{
		session.WithRand(rng),
		session.WithStrategy(bot.NewOpponent(difficulty, rng)),
		session.WithDeferredOpponent(),
	}
}
