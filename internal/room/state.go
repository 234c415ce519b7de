package room

import (
	"ctchen222/Power-Tic-Tac-Toe/internal/game"
	"ctchen222/Power-Tic-Tac-Toe/internal/session"
	"ctchen222/Power-Tic-Tac-Toe/pkg/proto"
	"fmt"
	"slices"
)

// NewGameState converts a snapshot into its wire form. Power-ups are listed
// in row-major order.
func NewGameState(snap session.Snapshot) *proto.GameState {
	state := &proto.GameState{
		Board:    snap.Board.Rows(),
		PowerUps: make([]proto.PowerUp, 0, len(snap.PowerUps)),
		Health:   snap.Health,
		Turn:     snap.Turn,
		Phase:    snap.Phase,
		Outcome:  snap.Outcome.Kind,
		Winner:   snap.Outcome.Winner,
	}

	for pos, kind := range snap.PowerUps {
		state.PowerUps = append(state.PowerUps, proto.PowerUp{
			Position:    []int{pos.Row, pos.Col},
			Kind:        kind,
			Description: kind.Description(),
		})
	}
	slices.SortFunc(state.PowerUps, func(a, b proto.PowerUp) int {
		return (a.Position[0]*game.Size + a.Position[1]) - (b.Position[0]*game.Size + b.Position[1])
	})

	if snap.WildCard != nil {
		state.WildCard = []int{snap.WildCard.Row, snap.WildCard.Col}
	}
	return state
}

// NewUpdateMessage wraps a snapshot and its notice in an update message.
func NewUpdateMessage(snap session.Snapshot) *proto.ServerToClientMessage {
	return &proto.ServerToClientMessage{
		Type:    proto.TypeUpdate,
		Message: Notice(snap),
		State:   NewGameState(snap),
	}
}

// Notice returns the text shown to the client for the last transition, or
// "" when nothing noteworthy happened. Round results take precedence over
// power-up notices.
func Notice(snap session.Snapshot) string {
	switch snap.Outcome.Kind {
	case session.OutcomeRoundWin:
		return fmt.Sprintf("%s won this round!", sideLabel(snap.Outcome.Winner))
	case session.OutcomeGameWin:
		return fmt.Sprintf("%s won the game!", sideLabel(snap.Outcome.Winner))
	case session.OutcomeDraw:
		return "It's a draw!"
	}

	if len(snap.Effects) == 0 {
		return ""
	}
	effect := snap.Effects[len(snap.Effects)-1]
	switch effect.Kind {
	case game.WildCard:
		if snap.Phase == session.WildCardPending {
			return "Wild Card: Select another square to place an extra mark!"
		}
		return fmt.Sprintf("Wild Card: %s placed an extra mark!", sideLabel(effect.Side))
	case game.Steal:
		if effect.Target == nil {
			return "Steal: nothing to steal!"
		}
		return fmt.Sprintf("Steal: %s took the square at %s!", sideLabel(effect.Side), effect.Target)
	case game.Reverse:
		return "Reverse: the move was undone!"
	}
	return ""
}

func sideLabel(side game.Side) string {
	if side == game.Human {
		return "You"
	}
	return side.DisplayName()
}

// controlledSides lists the sides a client plays in mode. A pvp client
// controls both marks on one device.
func controlledSides(mode session.Mode) []game.Side {
	if mode == session.PvComputer {
		return []game.Side{game.Human}
	}
	first, second := mode.Sides()
	return []game.Side{first, second}
}
