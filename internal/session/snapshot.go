package session

import "ctchen222/Power-Tic-Tac-Toe/internal/game"

// Mode selects the pairing of sides.
type Mode string

const (
	PvP        Mode = "pvp"
	PvComputer Mode = "computer"
)

// ParseMode maps a query value to a Mode, defaulting to PvP.
func ParseMode(s string) Mode {
	if Mode(s) == PvComputer || s == "bot" {
		return PvComputer
	}
	return PvP
}

// Sides returns the pairing for the mode. The first side always opens a round.
func (m Mode) Sides() (first, second game.Side) {
	if m == PvComputer {
		return game.Human, game.Opponent
	}
	return game.PlayerOne, game.PlayerTwo
}

// Phase is the resting state of a session between operations.
type Phase string

const (
	AwaitingMove    Phase = "awaiting_move"
	WildCardPending Phase = "wildcard_pending"
	GameOver        Phase = "game_over"
)

// OutcomeKind describes how the last transition ended.
type OutcomeKind string

const (
	OutcomeNone     OutcomeKind = "none"
	OutcomeRoundWin OutcomeKind = "round_win"
	OutcomeDraw     OutcomeKind = "draw"
	OutcomeGameWin  OutcomeKind = "game_win"
)

// Outcome is reported with every snapshot. Winner is set for round and game wins.
type Outcome struct {
	Kind   OutcomeKind `json:"kind"`
	Winner game.Side   `json:"winner,omitempty"`
}

// Effect records a power-up that fired during the last transition.
type Effect struct {
	Kind     game.PowerUpKind `json:"kind"`
	Side     game.Side        `json:"side"`
	Position game.Position    `json:"position"`
	// Target is the converted cell for Steal. It is nil if nothing was stolen.
	Target *game.Position `json:"target,omitempty"`
}

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	Mode     Mode              `json:"mode"`
	Board    game.Board        `json:"board"`
	PowerUps game.PowerUps     `json:"power_ups"`
	Health   map[game.Side]int `json:"health"`
	Turn     game.Side         `json:"turn"`
	Phase    Phase             `json:"phase"`
	WildCard *game.Position    `json:"wild_card,omitempty"`
	Outcome  Outcome           `json:"outcome"`
	Effects  []Effect          `json:"effects,omitempty"`
}

// IsOver reports whether one side has run out of health.
func (s Snapshot) IsOver() bool {
	return s.Phase == GameOver
}
