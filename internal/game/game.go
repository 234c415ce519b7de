package game

import (
	"errors"
	"fmt"
)

// Side identifies who owns a cell or who is to move.
type Side string

const (
	Empty     Side = ""
	PlayerOne Side = "player_one"
	PlayerTwo Side = "player_two"
	Human     Side = "human"
	Opponent  Side = "opponent"
)

// Board boundaries
const (
	BorderMin = 0
	BorderMax = 2
	Size      = BorderMax + 1
)

var ErrInvalidPosition = errors.New("invalid position")

// Symbol returns the mark drawn for the side on the board.
func (s Side) Symbol() string {
	switch s {
	case PlayerOne, Human:
		return "X"
	case PlayerTwo, Opponent:
		return "O"
	default:
		return ""
	}
}

// DisplayName returns the label shown for the side in messages.
func (s Side) DisplayName() string {
	switch s {
	case PlayerOne, Human:
		return "Player 1"
	case PlayerTwo:
		return "Player 2"
	case Opponent:
		return "Computer"
	default:
		return "None"
	}
}

// Position addresses a single cell.
type Position struct {
	Row, Col int
}

// Valid reports whether the position lies on the board.
func (p Position) Valid() bool {
	return p.Row >= BorderMin && p.Row <= BorderMax && p.Col >= BorderMin && p.Col <= BorderMax
}

func (p Position) String() string {
	return fmt.Sprintf("%d,%d", p.Row, p.Col)
}

// MarshalText encodes the position as "row,col" so it can key JSON objects.
func (p Position) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses the "row,col" form produced by MarshalText.
func (p *Position) UnmarshalText(text []byte) error {
	var row, col int
	if _, err := fmt.Sscanf(string(text), "%d,%d", &row, &col); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidPosition, text)
	}
	pos := Position{Row: row, Col: col}
	if !pos.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPosition, text)
	}
	*p = pos
	return nil
}
