package types

import (
	"context"
	"ctchen222/Power-Tic-Tac-Toe/internal/player"
)

// RegistrationRequest asks the hub to attach a client to a room.
type RegistrationRequest struct {
	Player     *player.Player
	RoomID     string // requested room, used to restore a stored session
	Mode       string // "pvp" or "computer"
	Difficulty string // "easy", "medium", "hard"
	Ctx        context.Context
}

// PlayerMove is a raw client message queued for a room.
type PlayerMove struct {
	Player  *player.Player
	Message []byte
}
