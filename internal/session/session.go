package session

import (
	"ctchen222/Power-Tic-Tac-Toe/internal/bot"
	"ctchen222/Power-Tic-Tac-Toe/internal/game"
	"fmt"
	"math/rand/v2"
	"slices"
)

// InitialHealth is the number of rounds a side may lose before the game ends.
const InitialHealth = 3

// Strategy proposes the next cell for a computer-controlled side.
type Strategy interface {
	ChooseMove(board game.Board, self, opponent game.Side) game.Position
}

// PowerUpPlacer builds the power-up registry for a fresh round.
type PowerUpPlacer func(board game.Board, rng *rand.Rand) game.PowerUps

// Option configures a Session.
type Option func(*Session)

// WithRand sets the random source used for power-up placement and, unless
// WithStrategy is given, for the computer's random moves.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) {
		s.rng = rng
	}
}

// WithStrategy replaces the computer opponent.
func WithStrategy(strategy Strategy) Option {
	return func(s *Session) {
		s.strategy = strategy
	}
}

// WithPowerUpPlacer replaces the per-round power-up placement.
func WithPowerUpPlacer(placer PowerUpPlacer) Option {
	return func(s *Session) {
		s.placer = placer
	}
}

// WithDeferredOpponent leaves the computer's turn to an explicit PlayOpponent
// call instead of playing it inside the human's move.
func WithDeferredOpponent() Option {
	return func(s *Session) {
		s.deferOpponent = true
	}
}

type wildCard struct {
	side   game.Side
	origin game.Position
}

// Session owns one game: the board, power-ups, turn and health of both sides.
// It is not safe for concurrent use.
type Session struct {
	mode          Mode
	first, second game.Side

	board    game.Board
	powerUps game.PowerUps
	turn     game.Side
	health   map[game.Side]int
	gameOver bool
	pending  *wildCard
	outcome  Outcome
	effects  []Effect

	rng           *rand.Rand
	strategy      Strategy
	placer        PowerUpPlacer
	deferOpponent bool
}

// New starts a session with full health and a fresh round.
func New(mode Mode, opts ...Option) *Session {
	s := newSession(mode, opts)
	s.resetHealth()
	s.resetBoard()
	return s
}

func newSession(mode Mode, opts []Option) *Session {
	if mode != PvComputer {
		mode = PvP
	}
	first, second := mode.Sides()
	s := &Session{
		mode:    mode,
		first:   first,
		second:  second,
		health:  make(map[game.Side]int, 2),
		outcome: Outcome{Kind: OutcomeNone},
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if s.placer == nil {
		s.placer = game.RegeneratePowerUps
	}
	if s.strategy == nil {
		s.strategy = bot.NewOpponent(bot.Medium, s.rng)
	}
	return s
}

// Mode returns the session's pairing.
func (s *Session) Mode() Mode {
	return s.mode
}

// Turn returns the side to move.
func (s *Session) Turn() game.Side {
	return s.turn
}

// Health returns the remaining health of side.
func (s *Session) Health(side game.Side) int {
	return s.health[side]
}

// IsOver reports whether the game has ended.
func (s *Session) IsOver() bool {
	return s.gameOver
}

// PlayAt places the mark of the side to move at pos. While a wild card is
// pending the call places the bonus mark instead.
func (s *Session) PlayAt(pos game.Position) (Snapshot, error) {
	if s.gameOver {
		return Snapshot{}, fmt.Errorf("%w: game is over", ErrInvalidMove)
	}
	if s.pending != nil {
		return s.CompleteWildCardMove(pos)
	}
	if !pos.Valid() {
		return Snapshot{}, fmt.Errorf("%w: position %v out of range", ErrInvalidMove, pos)
	}
	if s.isComputer(s.turn) {
		return Snapshot{}, fmt.Errorf("%w: not your turn", ErrInvalidMove)
	}
	if s.board.Get(pos) != game.Empty {
		return Snapshot{}, fmt.Errorf("%w: cell %v occupied", ErrInvalidMove, pos)
	}

	s.begin()
	s.place(s.turn, pos)
	return s.Snapshot(), nil
}

// CompleteWildCardMove places the extra mark granted by a wild card.
func (s *Session) CompleteWildCardMove(pos game.Position) (Snapshot, error) {
	if s.pending == nil {
		return Snapshot{}, fmt.Errorf("%w: no wild card pending", ErrIllegalWildCardTarget)
	}
	if !pos.Valid() {
		return Snapshot{}, fmt.Errorf("%w: position %v out of range", ErrIllegalWildCardTarget, pos)
	}
	if s.board.Get(pos) != game.Empty {
		return Snapshot{}, fmt.Errorf("%w: cell %v occupied", ErrIllegalWildCardTarget, pos)
	}

	side := s.pending.side
	s.begin()
	s.pending = nil
	s.place(side, pos)
	return s.Snapshot(), nil
}

// PlayOpponent plays the computer's turn. It is only needed with WithDeferredOpponent.
func (s *Session) PlayOpponent() (Snapshot, error) {
	if s.gameOver {
		return Snapshot{}, fmt.Errorf("%w: game is over", ErrInvalidMove)
	}
	if s.pending != nil || !s.isComputer(s.turn) {
		return Snapshot{}, fmt.Errorf("%w: not the opponent's turn", ErrInvalidMove)
	}

	s.begin()
	s.playComputer(s.turn)
	return s.Snapshot(), nil
}

// ResetGame restores full health and starts a fresh round.
func (s *Session) ResetGame() Snapshot {
	s.begin()
	s.gameOver = false
	s.resetHealth()
	s.resetBoard()
	return s.Snapshot()
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Mode:     s.mode,
		Board:    s.board,
		PowerUps: s.powerUps.Clone(),
		Health:   map[game.Side]int{s.first: s.health[s.first], s.second: s.health[s.second]},
		Turn:     s.turn,
		Phase:    s.phase(),
		Outcome:  s.outcome,
		Effects:  slices.Clone(s.effects),
	}
	if s.pending != nil {
		origin := s.pending.origin
		snap.WildCard = &origin
	}
	return snap
}

func (s *Session) phase() Phase {
	switch {
	case s.gameOver:
		return GameOver
	case s.pending != nil:
		return WildCardPending
	default:
		return AwaitingMove
	}
}

func (s *Session) begin() {
	s.outcome = Outcome{Kind: OutcomeNone}
	s.effects = nil
}

// place puts side's mark on an empty cell and resolves everything that follows:
// the power-up on the cell, the round result and the turn hand-over.
func (s *Session) place(side game.Side, pos game.Position) {
	s.board.Set(pos, side)

	bonus := false
	if kind, ok := s.powerUps.TakeAt(pos); ok {
		bonus = s.applyPowerUp(kind, side, pos)
	}

	if s.board.Winner(side) {
		s.winRound(side)
		return
	}
	if s.board.IsFull() {
		s.drawRound()
		return
	}

	if bonus {
		if s.isComputer(side) {
			s.playComputer(side)
			return
		}
		s.pending = &wildCard{side: side, origin: pos}
		return
	}

	s.advance(side)
}

// applyPowerUp resolves kind for side and reports whether a bonus placement is owed.
func (s *Session) applyPowerUp(kind game.PowerUpKind, side game.Side, pos game.Position) bool {
	effect := Effect{Kind: kind, Side: side, Position: pos}
	defer func() {
		s.effects = append(s.effects, effect)
	}()

	switch kind {
	case game.WildCard:
		return true
	case game.Steal:
		if target, ok := s.board.FirstOwnedBy(s.other(side)); ok {
			s.board.Set(target, side)
			effect.Target = &target
		}
	case game.Reverse:
		s.board.Set(pos, game.Empty)
	}
	return false
}

func (s *Session) advance(from game.Side) {
	s.turn = s.other(from)
	if s.isComputer(s.turn) && !s.deferOpponent {
		s.playComputer(s.turn)
	}
}

func (s *Session) playComputer(side game.Side) {
	pos := s.strategy.ChooseMove(s.board, side, s.other(side))
	s.place(side, pos)
}

func (s *Session) winRound(winner game.Side) {
	loser := s.other(winner)
	s.health[loser] = max(0, s.health[loser]-1)

	if s.health[loser] == 0 {
		s.gameOver = true
		s.pending = nil
		s.turn = winner
		s.outcome = Outcome{Kind: OutcomeGameWin, Winner: winner}
		return
	}

	s.outcome = Outcome{Kind: OutcomeRoundWin, Winner: winner}
	s.resetBoard()
}

func (s *Session) drawRound() {
	s.outcome = Outcome{Kind: OutcomeDraw}
	s.resetBoard()
}

// resetBoard starts a new round. Health is kept and the mode's first side opens.
func (s *Session) resetBoard() {
	s.board = game.Board{}
	s.pending = nil
	s.turn = s.first
	s.powerUps = s.placer(s.board, s.rng)
	if s.powerUps == nil {
		s.powerUps = game.PowerUps{}
	}
}

func (s *Session) resetHealth() {
	s.health[s.first] = InitialHealth
	s.health[s.second] = InitialHealth
}

func (s *Session) other(side game.Side) game.Side {
	if side == s.first {
		return s.second
	}
	return s.first
}

func (s *Session) isComputer(side game.Side) bool {
	return s.mode == PvComputer && side == game.Opponent
}
