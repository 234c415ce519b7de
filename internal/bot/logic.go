package bot

import (
	"ctchen222/Power-Tic-Tac-Toe/internal/game"
	"math/rand/v2"
	"strings"
)

// Difficulty selects how the bot picks its move.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ParseDifficulty maps a query value to a Difficulty, defaulting to Medium.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case Easy:
		return Easy
	case Hard:
		return Hard
	default:
		return Medium
	}
}

var (
	center  = game.Position{Row: 1, Col: 1}
	corners = []game.Position{{Row: 0, Col: 0}, {Row: 0, Col: 2}, {Row: 2, Col: 0}, {Row: 2, Col: 2}}
	edges   = []game.Position{{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 2}, {Row: 2, Col: 1}}
)

// ChooseMove picks a cell for self using the given difficulty.
// The board must have at least one empty cell.
func ChooseMove(board game.Board, self, opponent game.Side, difficulty Difficulty, rng *rand.Rand) game.Position {
	if board.IsFull() {
		panic("bot: ChooseMove called on a full board")
	}

	switch difficulty {
	case Easy:
		return easyMove(board, rng)
	case Hard:
		return hardMove(board, self, opponent, rng)
	default:
		return mediumMove(board, self, opponent, rng)
	}
}

// easyMove makes a completely random move.
func easyMove(board game.Board, rng *rand.Rand) game.Position {
	available := board.EmptyCells()
	return available[rng.IntN(len(available))]
}

// mediumMove will win if it can, block if it must, otherwise move randomly.
func mediumMove(board game.Board, self, opponent game.Side, rng *rand.Rand) game.Position {
	// 1. Win
	if pos, ok := findWinningMove(board, self); ok {
		return pos
	}

	// 2. Block
	if pos, ok := findWinningMove(board, opponent); ok {
		return pos
	}

	// 3. Random
	return easyMove(board, rng)
}

// hardMove adds a center, corner, edge preference after win and block.
func hardMove(board game.Board, self, opponent game.Side, rng *rand.Rand) game.Position {
	if pos, ok := findWinningMove(board, self); ok {
		return pos
	}
	if pos, ok := findWinningMove(board, opponent); ok {
		return pos
	}

	if board.Get(center) == game.Empty {
		return center
	}
	if pos, ok := randomFrom(board, corners, rng); ok {
		return pos
	}
	if pos, ok := randomFrom(board, edges, rng); ok {
		return pos
	}
	return easyMove(board, rng)
}

// findWinningMove scans empty cells in row-major order and returns the first
// one that completes a line for side.
func findWinningMove(board game.Board, side game.Side) (game.Position, bool) {
	for _, pos := range board.EmptyCells() {
		board.Set(pos, side)
		won := board.Winner(side)
		board.Set(pos, game.Empty)
		if won {
			return pos, true
		}
	}
	return game.Position{}, false
}

func randomFrom(board game.Board, candidates []game.Position, rng *rand.Rand) (game.Position, bool) {
	available := make([]game.Position, 0, len(candidates))
	for _, pos := range candidates {
		if board.Get(pos) == game.Empty {
			available = append(available, pos)
		}
	}
	if len(available) == 0 {
		return game.Position{}, false
	}
	return available[rng.IntN(len(available))], true
}
