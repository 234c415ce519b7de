package bot

import (
	"ctchen222/Power-Tic-Tac-Toe/internal/game"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	H = game.Human
	O = game.Opponent
	E = game.Empty
)

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestFindWinningMove(t *testing.T) {
	tests := []struct {
		name      string
		board     game.Board
		side      game.Side
		want      game.Position
		wantFound bool
	}{
		{
			name:      "No winning move - empty board",
			board:     game.Board{},
			side:      O,
			wantFound: false,
		},
		{
			name: "Opponent can win - first row",
			board: game.Board{
				{O, O, E},
				{E, E, E},
				{E, E, E},
			},
			side:      O,
			want:      game.Position{Row: 0, Col: 2},
			wantFound: true,
		},
		{
			name: "Human can win - second column",
			board: game.Board{
				{O, H, E},
				{O, H, E},
				{E, E, E},
			},
			side:      H,
			want:      game.Position{Row: 2, Col: 1},
			wantFound: true,
		},
		{
			name: "Opponent can win - anti-diagonal",
			board: game.Board{
				{E, E, O},
				{E, O, E},
				{E, E, E},
			},
			side:      O,
			want:      game.Position{Row: 2, Col: 0},
			wantFound: true,
		},
		{
			name: "First winning cell in row-major order",
			board: game.Board{
				{H, E, E},
				{E, E, H},
				{H, E, H},
			},
			side: H,
			// (0,2) completes column 2 before (1,0) completes column 0.
			want:      game.Position{Row: 0, Col: 2},
			wantFound: true,
		},
		{
			name: "Full board, no win possible",
			board: game.Board{
				{H, O, H},
				{O, H, O},
				{O, H, O},
			},
			side:      H,
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := findWinningMove(tt.board, tt.side)
			if found != tt.wantFound || (found && got != tt.want) {
				t.Errorf("findWinningMove() got (%v, %v), want (%v, %v)", got, found, tt.want, tt.wantFound)
			}
		})
	}
}

func TestFindWinningMoveLeavesBoardUntouched(t *testing.T) {
	board := game.Board{
		{O, O, E},
		{E, E, E},
		{E, E, E},
	}
	before := board

	findWinningMove(board, O)

	assert.Equal(t, before, board)
}

func TestMediumMove(t *testing.T) {
	t.Run("Takes the win", func(t *testing.T) {
		board := game.Board{
			{O, O, E},
			{H, H, E},
			{H, E, E},
		}
		got := ChooseMove(board, O, H, Medium, newRand())
		assert.Equal(t, game.Position{Row: 0, Col: 2}, got)
	})

	t.Run("Win has priority over block", func(t *testing.T) {
		board := game.Board{
			{H, H, E},
			{O, O, E},
			{E, E, E},
		}
		got := ChooseMove(board, O, H, Medium, newRand())
		assert.Equal(t, game.Position{Row: 1, Col: 2}, got)
	})

	t.Run("Blocks the human threat", func(t *testing.T) {
		board := game.Board{
			{H, E, E},
			{E, H, E},
			{O, E, E},
		}
		got := ChooseMove(board, O, H, Medium, newRand())
		assert.Equal(t, game.Position{Row: 2, Col: 2}, got)
	})

	t.Run("Random fallback picks an empty cell", func(t *testing.T) {
		board := game.Board{
			{H, E, E},
			{E, O, E},
			{E, E, E},
		}
		rng := newRand()
		for range 50 {
			got := ChooseMove(board, O, H, Medium, rng)
			assert.Equal(t, game.Empty, board.Get(got))
		}
	})

	t.Run("Does not prefer the center without a threat", func(t *testing.T) {
		rng := newRand()
		seen := map[game.Position]bool{}
		for range 200 {
			seen[ChooseMove(game.Board{}, O, H, Medium, rng)] = true
		}
		assert.Greater(t, len(seen), 1)
	})
}

func TestEasyMove(t *testing.T) {
	t.Run("Only one spot left", func(t *testing.T) {
		board := game.Board{
			{H, O, H},
			{O, H, O},
			{H, E, O},
		}
		got := easyMove(board, newRand())
		assert.Equal(t, game.Position{Row: 2, Col: 1}, got)
	})

	t.Run("Ignores winning cells", func(t *testing.T) {
		board := game.Board{
			{O, O, E},
			{H, H, E},
			{H, E, E},
		}
		rng := newRand()
		seen := map[game.Position]bool{}
		for range 200 {
			seen[ChooseMove(board, O, H, Easy, rng)] = true
		}
		assert.Greater(t, len(seen), 1)
	})
}

func TestHardMove(t *testing.T) {
	t.Run("Takes the center when no threat", func(t *testing.T) {
		board := game.Board{
			{H, E, E},
			{E, E, E},
			{E, E, E},
		}
		got := ChooseMove(board, O, H, Hard, newRand())
		assert.Equal(t, game.Position{Row: 1, Col: 1}, got)
	})

	t.Run("Takes a corner when center is taken", func(t *testing.T) {
		board := game.Board{
			{E, E, E},
			{E, H, E},
			{E, E, E},
		}
		got := ChooseMove(board, O, H, Hard, newRand())
		assert.Contains(t, corners, got)
	})

	t.Run("Takes an edge when only edges remain", func(t *testing.T) {
		board := game.Board{
			{O, H, O},
			{E, H, E},
			{H, O, H},
		}
		got := ChooseMove(board, O, H, Hard, newRand())
		assert.Contains(t, edges, got)
	})
}

func TestChooseMovePanicsOnFullBoard(t *testing.T) {
	board := game.Board{
		{H, O, H},
		{O, H, O},
		{O, H, O},
	}
	assert.Panics(t, func() { ChooseMove(board, O, H, Medium, newRand()) })
}

func TestParseDifficulty(t *testing.T) {
	assert.Equal(t, Easy, ParseDifficulty("easy"))
	assert.Equal(t, Hard, ParseDifficulty(" HARD "))
	assert.Equal(t, Medium, ParseDifficulty("medium"))
	assert.Equal(t, Medium, ParseDifficulty(""))
	assert.Equal(t, Medium, ParseDifficulty("impossible"))
}

func TestOpponentImplementsStrategy(t *testing.T) {
	o := NewOpponent(Medium, newRand())
	board := game.Board{
		{O, O, E},
		{E, E, E},
		{E, E, E},
	}
	assert.Equal(t, game.Position{Row: 0, Col: 2}, o.ChooseMove(board, O, H))
	assert.Equal(t, Medium, o.Difficulty())
}
