package room

import (
	"context"
	"ctchen222/Power-Tic-Tac-Toe/internal/player"
	"ctchen222/Power-Tic-Tac-Toe/internal/session"
	"ctchen222/Power-Tic-Tac-Toe/pkg/proto"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// AddPlayer adds a player to the room, replacing an earlier connection of
// the same player. It reports whether a connection was replaced.
func (r *Room) AddPlayer(p *player.Player) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.Players {
		if existing.ID == p.ID {
			if existing.Conn != nil && existing.Conn != p.Conn {
				_ = existing.Conn.Close()
			}
			r.Players[i] = p
			return true
		}
	}
	r.Players = append(r.Players, p)
	return false
}

// Attach adds p and starts reading from its connection, then sends the
// assignment and the current state to p only.
func (r *Room) Attach(ctx context.Context, p *player.Player) {
	ctx, span := tracer.Start(ctx, "room.Attach", trace.WithAttributes(
		attribute.String("player.id", p.ID),
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	replaced := r.AddPlayer(p)
	span.SetAttributes(attribute.Bool("player.reconnected", replaced))
	go r.ReadPump(p)
	r.SendInitialState(ctx, p)
}

// SendInitialState sends the assignment and current state to p.
func (r *Room) SendInitialState(ctx context.Context, p *player.Player) {
	r.mu.Lock()
	defer r.mu.Unlock()

	mode := r.session.Mode()
	assignment := &proto.PlayerAssignmentMessage{
		Type:     proto.TypeAssignment,
		PlayerID: p.ID,
		RoomID:   r.ID,
		Mode:     mode,
		Sides:    controlledSides(mode),
	}
	if mode == session.PvComputer {
		assignment.Difficulty = string(r.Difficulty)
	}
	r.send(ctx, p, assignment)
	r.send(ctx, p, NewUpdateMessage(r.session.Snapshot()))
}

// Snapshot returns the current session state.
func (r *Room) Snapshot() session.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session.Snapshot()
}

// hasPlayer expects r.mu to be held.
func (r *Room) hasPlayer(p *player.Player) bool {
	return slices.Contains(r.Players, p)
}
