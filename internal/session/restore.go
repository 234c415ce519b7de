package session

import (
	"ctchen222/Power-Tic-Tac-Toe/internal/game"
	"fmt"
	"slices"
)

// Restore rebuilds a live session from a snapshot taken with Session.Snapshot.
func Restore(snap Snapshot, opts ...Option) (*Session, error) {
	if snap.Mode != PvP && snap.Mode != PvComputer {
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidSnapshot, snap.Mode)
	}

	s := newSession(snap.Mode, opts)
	if snap.Turn != s.first && snap.Turn != s.second {
		return nil, fmt.Errorf("%w: side %q cannot move in %s mode", ErrInvalidSnapshot, snap.Turn, snap.Mode)
	}

	for r := range game.Size {
		for c := range game.Size {
			if side := snap.Board[r][c]; side != game.Empty && side != s.first && side != s.second {
				return nil, fmt.Errorf("%w: cell %d,%d owned by %q", ErrInvalidSnapshot, r, c, side)
			}
		}
	}

	exhausted := false
	for _, side := range []game.Side{s.first, s.second} {
		h, ok := snap.Health[side]
		if !ok || h < 0 || h > InitialHealth {
			return nil, fmt.Errorf("%w: health of %q", ErrInvalidSnapshot, side)
		}
		s.health[side] = h
		exhausted = exhausted || h == 0
	}
	if exhausted != (snap.Phase == GameOver) {
		return nil, fmt.Errorf("%w: phase %q does not match health", ErrInvalidSnapshot, snap.Phase)
	}

	s.powerUps = snap.PowerUps.Clone()
	for pos := range s.powerUps {
		if !pos.Valid() || snap.Board.Get(pos) != game.Empty {
			return nil, fmt.Errorf("%w: power-up on cell %v", ErrInvalidSnapshot, pos)
		}
	}

	if snap.Phase != GameOver && snap.Board.IsFull() {
		return nil, fmt.Errorf("%w: full board in phase %q", ErrInvalidSnapshot, snap.Phase)
	}

	switch snap.Phase {
	case WildCardPending:
		if snap.WildCard == nil || s.isComputer(snap.Turn) {
			return nil, fmt.Errorf("%w: wild card without a human owner", ErrInvalidSnapshot)
		}
		if !snap.WildCard.Valid() || snap.Board.Get(*snap.WildCard) != snap.Turn {
			return nil, fmt.Errorf("%w: wild card origin %v is not held by %q", ErrInvalidSnapshot, *snap.WildCard, snap.Turn)
		}
		s.pending = &wildCard{side: snap.Turn, origin: *snap.WildCard}
	case AwaitingMove, GameOver:
	default:
		return nil, fmt.Errorf("%w: unknown phase %q", ErrInvalidSnapshot, snap.Phase)
	}

	s.board = snap.Board
	s.turn = snap.Turn
	s.gameOver = exhausted
	s.outcome = snap.Outcome
	if s.outcome.Kind == "" {
		s.outcome.Kind = OutcomeNone
	}
	s.effects = slices.Clone(snap.Effects)

	// A snapshot taken in deferred mode may rest on the computer's turn.
	if !s.gameOver && s.isComputer(s.turn) && !s.deferOpponent {
		s.begin()
		s.playComputer(s.turn)
	}
	return s, nil
}
