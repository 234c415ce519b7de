package room

import (
	"context"
	"ctchen222/Power-Tic-Tac-Toe/internal/game"
	"ctchen222/Power-Tic-Tac-Toe/internal/player"
	"ctchen222/Power-Tic-Tac-Toe/internal/repository"
	"ctchen222/Power-Tic-Tac-Toe/internal/session"
	"ctchen222/Power-Tic-Tac-Toe/internal/validator"
	"ctchen222/Power-Tic-Tac-Toe/pkg/proto"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var errMissingPosition = errors.New("position is required")

// HandleMessage handles a message from a player. It acts as a dispatcher.
func (r *Room) HandleMessage(p *player.Player, rawMessage []byte) {
	ctx, span := tracer.Start(context.Background(), "room.HandleMessage", trace.WithAttributes(
		attribute.String("player.id", p.ID),
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if p.Status == player.StatusDisconnected {
		slog.WarnContext(ctx, "ignoring message from disconnected player", "player.id", p.ID)
		span.SetStatus(codes.Error, "Message from disconnected player")
		return
	}

	var message proto.ClientToServerMessage
	if err := json.Unmarshal(rawMessage, &message); err != nil {
		slog.ErrorContext(ctx, "error unmarshalling message", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error unmarshalling message")
		r.sendError(ctx, p, "malformed message")
		return
	}

	if err := validator.Struct(message); err != nil {
		slog.WarnContext(ctx, "invalid message from player", "player.id", p.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid message format")
		r.sendError(ctx, p, err.Error())
		return
	}

	span.SetAttributes(attribute.String("message.type", message.Type))

	switch message.Type {
	case proto.TypeMove:
		r.handleMove(ctx, p, message.Position, false)
	case proto.TypeWildCard:
		r.handleMove(ctx, p, message.Position, true)
	case proto.TypeReset:
		r.handleReset(ctx, p)
	}
}

// handleMove applies a placement. A wildcard message places the bonus mark
// of a pending wild card; a move message does the same while one is pending.
func (r *Room) handleMove(ctx context.Context, p *player.Player, position []int, wildcard bool) {
	ctx, span := tracer.Start(ctx, "room.handleMove", trace.WithAttributes(
		attribute.String("player.id", p.ID),
		attribute.String("room.id", r.ID),
		attribute.Bool("move.wildcard", wildcard),
	))
	defer span.End()

	if len(position) != 2 {
		span.SetStatus(codes.Error, "Missing position")
		r.sendError(ctx, p, errMissingPosition.Error())
		return
	}
	pos := game.Position{Row: position[0], Col: position[1]}
	span.SetAttributes(attribute.Int("move.row", pos.Row), attribute.Int("move.col", pos.Col))

	mover := r.session.Turn()
	var (
		snap session.Snapshot
		err  error
	)
	if wildcard {
		snap, err = r.session.CompleteWildCardMove(pos)
	} else {
		snap, err = r.session.PlayAt(pos)
	}
	if err != nil {
		slog.WarnContext(ctx, "invalid move from player", "player.id", p.ID, "error", err)
		span.SetAttributes(attribute.Bool("move.valid", false))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid move")
		r.sendError(ctx, p, err.Error())
		return
	}
	span.SetAttributes(attribute.Bool("move.valid", true))

	r.commit(ctx, mover, snap)
}

func (r *Room) handleReset(ctx context.Context, p *player.Player) {
	ctx, span := tracer.Start(ctx, "room.handleReset", trace.WithAttributes(
		attribute.String("player.id", p.ID),
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	slog.InfoContext(ctx, "Player reset the game", "player.id", p.ID, "room.id", r.ID)
	r.opponentTimer.Stop()
	r.commit(ctx, game.Empty, r.session.ResetGame())
}

// handleOpponentTurn plays the computer's move once its delay has passed.
func (r *Room) handleOpponentTurn(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "room.handleOpponentTurn", trace.WithAttributes(
		attribute.String("room.id", r.ID),
		attribute.String("bot.difficulty", string(r.Difficulty)),
	))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session.IsOver() || r.session.Turn() != game.Opponent {
		return
	}
	snap, err := r.session.PlayOpponent()
	if err != nil {
		slog.ErrorContext(ctx, "opponent could not move", "room.id", r.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Opponent could not move")
		return
	}
	r.commit(ctx, game.Opponent, snap)
}

// commit records, stores and broadcasts an accepted transition, then arms
// the opponent timer if the computer is to move. It expects r.mu to be held.
func (r *Room) commit(ctx context.Context, mover game.Side, snap session.Snapshot) {
	span := trace.SpanFromContext(ctx)

	if mover != game.Empty {
		moveCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("side", string(mover))))
	}
	if snap.Outcome.Kind != session.OutcomeNone {
		roundCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", string(snap.Outcome.Kind))))
		slog.InfoContext(ctx, "Round finished", "room.id", r.ID, "outcome", snap.Outcome.Kind, "winner", snap.Outcome.Winner)
	}
	if snap.Outcome.Kind == session.OutcomeGameWin {
		completedCounter.Add(ctx, 1)
	}

	record := &repository.SessionRecord{
		RoomID:     r.ID,
		Difficulty: string(r.Difficulty),
		Snapshot:   snap,
		UpdatedAt:  time.Now().UTC(),
	}
	if err := r.sessionRepo.Save(ctx, record); err != nil {
		slog.ErrorContext(ctx, "failed to save session", "room.id", r.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to save session")
	}

	r.broadcast(ctx, NewUpdateMessage(snap))
	r.scheduleOpponent()
}

// scheduleOpponent arms the opponent timer when the computer is to move.
// It expects r.mu to be held.
func (r *Room) scheduleOpponent() {
	if r.session.Mode() != session.PvComputer || r.session.IsOver() || r.session.Turn() != game.Opponent {
		return
	}
	r.opponentTimer.Reset(r.settings.OpponentDelay)
}

func (r *Room) sendError(ctx context.Context, p *player.Player, reason string) {
	r.send(ctx, p, &proto.ServerToClientMessage{Type: proto.TypeError, Reason: reason})
}
