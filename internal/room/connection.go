package room

import (
	"context"
	"ctchen222/Power-Tic-Tac-Toe/internal/hub/types"
	"ctchen222/Power-Tic-Tac-Toe/internal/player"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// broadcast sends a message to all connected players in the room. It
// expects r.mu to be held.
func (r *Room) broadcast(ctx context.Context, message any) {
	ctx, span := tracer.Start(ctx, "room.Broadcast", trace.WithAttributes(
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	for _, p := range r.Players {
		if p.Status == player.StatusConnected {
			r.send(ctx, p, message)
		}
	}
}

// send writes one message to p. It expects r.mu to be held.
func (r *Room) send(ctx context.Context, p *player.Player, message any) {
	span := trace.SpanFromContext(ctx)

	data, err := json.Marshal(message)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling message", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error marshalling message")
		return
	}
	if err := p.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.ErrorContext(ctx, "error writing message to player", "player.id", p.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error writing message to player")
	}
}

// ReadPump pumps messages from the websocket connection to the room's incomingMoves channel.
func (r *Room) ReadPump(p *player.Player) {
	ctx, span := tracer.Start(context.Background(), "room.ReadPump", trace.WithAttributes(
		attribute.String("player.id", p.ID),
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	defer r.handleDisconnect(ctx, p)

	for {
		_, msg, err := p.Conn.ReadMessage()
		if err != nil {
			slog.WarnContext(ctx, "Player connection error", "player.id", p.ID, "room.id", r.ID, "error", err)
			return
		}
		select {
		case r.incomingMoves <- &types.PlayerMove{Player: p, Message: msg}:
		case <-r.Done:
			return
		}
	}
}

func (r *Room) handleDisconnect(ctx context.Context, p *player.Player) {
	ctx, span := tracer.Start(ctx, "room.ReadPump.disconnectHandler", trace.WithAttributes(
		attribute.String("player.id", p.ID),
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	_ = p.Conn.Close()

	r.mu.Lock()
	p.MarkDisconnected(time.Now())
	current := r.hasPlayer(p)
	r.mu.Unlock()

	// A reconnect has already replaced this connection.
	if !current {
		return
	}

	if err := r.playerRepo.UpdateConnectionStatus(ctx, p.ID, player.StatusDisconnected); err != nil {
		slog.ErrorContext(ctx, "Failed to set player status to disconnected", "player.id", p.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to set player status to disconnected")
	}
	slog.InfoContext(ctx, "Player disconnected.", "player.id", p.ID, "room.id", r.ID)
}

// heartbeat pings connected players and reports whether the room has had
// no connected player for longer than the reconnection grace period.
func (r *Room) heartbeat(ctx context.Context, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	connected := false
	var lastSeen time.Time
	for _, p := range r.Players {
		if p.Status == player.StatusConnected {
			if err := p.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				slog.WarnContext(ctx, "Failed to send ping to player, assuming disconnect", "player.id", p.ID, "error", err)
				p.MarkDisconnected(now)
			} else {
				p.LastSeen = now
				connected = true
			}
		}
		if p.LastSeen.After(lastSeen) {
			lastSeen = p.LastSeen
		}
	}
	return !connected && now.Sub(lastSeen) > r.settings.ReconnectGrace
}
