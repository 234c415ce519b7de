package hub

import (
	"context"
	"ctchen222/Power-Tic-Tac-Toe/internal/hub/types"
	"ctchen222/Power-Tic-Tac-Toe/internal/repository"
	"ctchen222/Power-Tic-Tac-Toe/internal/room"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("hub")

// Hub owns every live room of this process. The rooms map is only touched
// by the Run goroutine.
type Hub struct {
	rooms       map[string]*room.Room
	register    chan *types.RegistrationRequest
	unregister  chan *room.Room
	done        chan struct{}
	sessionRepo repository.SessionRepository
	playerRepo  repository.PlayerRepository
	settings    room.Settings

	newRoomID func() string
	newRand   func() *rand.Rand
}

func NewHub(sessionRepo repository.SessionRepository, playerRepo repository.PlayerRepository, settings room.Settings) *Hub {
	return &Hub{
		rooms:       make(map[string]*room.Room),
		register:    make(chan *types.RegistrationRequest),
		unregister:  make(chan *room.Room),
		done:        make(chan struct{}),
		sessionRepo: sessionRepo,
		playerRepo:  playerRepo,
		settings:    settings,
		newRoomID:   uuid.NewString,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
}

// Run serves registrations and room closures until ctx is done, then
// closes every room.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for id, r := range h.rooms {
				r.Close()
				delete(h.rooms, id)
			}
			slog.InfoContext(ctx, "Hub stopped")
			return

		case req := <-h.register:
			h.handleRegistration(ctx, req)

		case r := <-h.unregister:
			h.removeRoom(ctx, r)
		}
	}
}

func (h *Hub) removeRoom(ctx context.Context, r *room.Room) {
	if current, ok := h.rooms[r.ID]; ok && current == r {
		delete(h.rooms, r.ID)
		slog.InfoContext(ctx, "Room closed", "room.id", r.ID, "rooms.count", len(h.rooms))
	}
}

// Register returns the register channel.
func (h *Hub) Register() chan<- *types.RegistrationRequest {
	return h.register
}

// Done is closed once Run has returned. Nothing reads the register channel
// after that.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}
