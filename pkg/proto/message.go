package proto

import (
	"ctchen222/Power-Tic-Tac-Toe/internal/game"
	"ctchen222/Power-Tic-Tac-Toe/internal/session"
)

// Client message types.
const (
	TypeMove     = "move"
	TypeWildCard = "wildcard"
	TypeReset    = "reset"
)

// Server message types.
const (
	TypeAssignment = "assignment"
	TypeUpdate     = "update"
	TypeError      = "error"
)

// ClientToServerMessage represents a message from the client to the server.
type ClientToServerMessage struct {
	Type     string `json:"type" validate:"required,oneof=move wildcard reset"`
	Position []int  `json:"position,omitempty" validate:"omitempty,len=2,dive,min=0,max=2"`
}

// PowerUp is one power-up square as sent to clients.
type PowerUp struct {
	Position    []int            `json:"position"`
	Kind        game.PowerUpKind `json:"kind"`
	Description string           `json:"description"`
}

// GameState is the client view of a session snapshot.
type GameState struct {
	Board    [][]game.Side       `json:"board"`
	PowerUps []PowerUp           `json:"powerUps"`
	Health   map[game.Side]int   `json:"health"`
	Turn     game.Side           `json:"turn"`
	Phase    session.Phase       `json:"phase"`
	WildCard []int               `json:"wildCard,omitempty"`
	Outcome  session.OutcomeKind `json:"outcome"`
	Winner   game.Side           `json:"winner,omitempty"`
}

// ServerToClientMessage represents a message from the server to the client.
type ServerToClientMessage struct {
	Type    string     `json:"type" validate:"required"`
	Reason  string     `json:"reason,omitempty"`
	Message string     `json:"message,omitempty"`
	State   *GameState `json:"state,omitempty"`
}

// PlayerAssignmentMessage tells a client which room it is in and which sides it controls.
type PlayerAssignmentMessage struct {
	Type       string       `json:"type"`
	PlayerID   string       `json:"playerId"`
	RoomID     string       `json:"roomId"`
	Mode       session.Mode `json:"mode"`
	Difficulty string       `json:"difficulty,omitempty"`
	Sides      []game.Side  `json:"sides"`
}
