package bot

import (
	"ctchen222/Power-Tic-Tac-Toe/internal/game"
	"math/rand/v2"
)

// Opponent is the computer player. It implements session.Strategy.
type Opponent struct {
	difficulty Difficulty
	rng        *rand.Rand
}

// NewOpponent creates a computer player. A nil rng falls back to an unseeded source.
func NewOpponent(difficulty Difficulty, rng *rand.Rand) *Opponent {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Opponent{
		difficulty: difficulty,
		rng:        rng,
	}
}

// ChooseMove proposes the cell self should play next.
func (o *Opponent) ChooseMove(board game.Board, self, opponent game.Side) game.Position {
	return ChooseMove(board, self, opponent, o.difficulty, o.rng)
}

// Difficulty returns the configured difficulty.
func (o *Opponent) Difficulty() Difficulty {
	return o.difficulty
}
