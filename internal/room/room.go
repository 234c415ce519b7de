package room

import (
	"context"
	"ctchen222/Power-Tic-Tac-Toe/internal/bot"
	"ctchen222/Power-Tic-Tac-Toe/internal/hub/types"
	"ctchen222/Power-Tic-Tac-Toe/internal/player"
	"ctchen222/Power-Tic-Tac-Toe/internal/repository"
	"ctchen222/Power-Tic-Tac-Toe/internal/session"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	tracer = otel.Tracer("room")
	meter  = otel.Meter("room")

	moveCounter, _      = meter.Int64Counter("game.moves", metric.WithDescription("Accepted placements, by side"))
	roundCounter, _     = meter.Int64Counter("game.rounds", metric.WithDescription("Finished rounds, by outcome"))
	completedCounter, _ = meter.Int64Counter("game.completed", metric.WithDescription("Games that ended with a side out of health"))
)

// Settings holds the timing of a room.
type Settings struct {
	OpponentDelay  time.Duration
	Heartbeat      time.Duration
	ReconnectGrace time.Duration
}

// Room connects one client to one Session. All session access and all
// websocket writes happen under mu.
type Room struct {
	ID         string
	Difficulty bot.Difficulty
	Players    []*player.Player

	mu          sync.Mutex
	session     *session.Session
	sessionRepo repository.SessionRepository
	playerRepo  repository.PlayerRepository
	settings    Settings

	incomingMoves chan *types.PlayerMove
	opponentTimer *time.Timer
	Done          chan struct{}
	closeOnce     sync.Once
}

// NewRoom wraps sess, which must be built with session.WithDeferredOpponent
// so that the room can pace the computer's replies.
func NewRoom(id string, sess *session.Session, difficulty bot.Difficulty, sessionRepo repository.SessionRepository, playerRepo repository.PlayerRepository, settings Settings) *Room {
	timer := time.NewTimer(time.Hour)
	timer.Stop()

	return &Room{
		ID:            id,
		Difficulty:    difficulty,
		Players:       make([]*player.Player, 0, 1),
		session:       sess,
		sessionRepo:   sessionRepo,
		playerRepo:    playerRepo,
		settings:      settings,
		incomingMoves: make(chan *types.PlayerMove, 10),
		opponentTimer: timer,
		Done:          make(chan struct{}),
	}
}

// Start launches the read pumps of the current players and the room loop.
// When the room expires it sends itself on unregister.
func (r *Room) Start(ctx context.Context, unregister chan<- *Room) {
	r.mu.Lock()
	for _, p := range r.Players {
		go r.ReadPump(p)
	}
	r.mu.Unlock()

	go r.run(ctx, unregister)
}

// run is the main loop for the room.
func (r *Room) run(ctx context.Context, unregister chan<- *Room) {
	pingTicker := time.NewTicker(r.settings.Heartbeat)
	defer func() {
		pingTicker.Stop()
		r.opponentTimer.Stop()
	}()

	// A restored session may rest on the computer's turn.
	r.mu.Lock()
	r.scheduleOpponent()
	r.mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			r.Close()
			return

		case <-r.Done:
			slog.InfoContext(ctx, "Room run goroutine stopping.", "room.id", r.ID)
			return

		case move := <-r.incomingMoves:
			r.HandleMessage(move.Player, move.Message)

		case <-r.opponentTimer.C:
			r.handleOpponentTurn(ctx)

		case now := <-pingTicker.C:
			if !r.heartbeat(ctx, now) {
				continue
			}
			slog.InfoContext(ctx, "Room exceeded reconnection grace period. Closing.", "room.id", r.ID)
			r.release(ctx)
			r.Close()
			select {
			case unregister <- r:
			case <-ctx.Done():
			}
			return
		}
	}
}

// Close stops the room and closes every connection. It is safe to call more than once.
func (r *Room) Close() {
	r.closeOnce.Do(func() {
		close(r.Done)
		r.opponentTimer.Stop()

		r.mu.Lock()
		defer r.mu.Unlock()
		for _, p := range r.Players {
			if p.Conn != nil {
				_ = p.Conn.Close()
			}
		}
	})
}

// Closed reports whether the room has stopped.
func (r *Room) Closed() bool {
	select {
	case <-r.Done:
		return true
	default:
		return false
	}
}

// release clears the stored state of an expiring room. A finished game is
// forgotten; an unfinished one stays restorable until its snapshot expires.
func (r *Room) release(ctx context.Context) {
	r.mu.Lock()
	over := r.session.IsOver()
	players := make([]string, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, p.ID)
	}
	r.mu.Unlock()

	for _, id := range players {
		if err := r.playerRepo.SetOffline(ctx, id); err != nil {
			slog.ErrorContext(ctx, "Failed to set player offline", "player.id", id, "error", err)
		}
	}
	if over {
		if err := r.sessionRepo.Delete(ctx, r.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to delete finished session", "room.id", r.ID, "error", err)
		}
	}
}
