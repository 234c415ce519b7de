package game

import "math/rand/v2"

// PowerUpKind is the effect carried by a power-up square.
type PowerUpKind string

const (
	WildCard PowerUpKind = "wild_card"
	Steal    PowerUpKind = "steal"
	Reverse  PowerUpKind = "reverse"
)

// PowerUpKinds lists every kind, in declaration order.
var PowerUpKinds = []PowerUpKind{WildCard, Steal, Reverse}

// Description returns the label shown to players.
func (k PowerUpKind) Description() string {
	switch k {
	case WildCard:
		return "Wild Card"
	case Steal:
		return "Steal"
	case Reverse:
		return "Reverse"
	default:
		return string(k)
	}
}

// PowerUps maps power-up squares to their kind. Each square is single-use.
type PowerUps map[Position]PowerUpKind

// RegeneratePowerUps places one or two power-ups on distinct empty cells of board.
func RegeneratePowerUps(board Board, rng *rand.Rand) PowerUps {
	empty := board.EmptyCells()
	want := 1 + rng.IntN(2)
	if want > len(empty) {
		want = len(empty)
	}

	powerUps := make(PowerUps, want)
	for len(powerUps) < want {
		pos := empty[rng.IntN(len(empty))]
		if _, taken := powerUps[pos]; taken {
			continue
		}
		powerUps[pos] = PowerUpKinds[rng.IntN(len(PowerUpKinds))]
	}
	return powerUps
}

// TakeAt removes and returns the power-up at pos, if any.
func (p PowerUps) TakeAt(pos Position) (PowerUpKind, bool) {
	kind, ok := p[pos]
	if ok {
		delete(p, pos)
	}
	return kind, ok
}

// Clone returns an independent copy.
func (p PowerUps) Clone() PowerUps {
	out := make(PowerUps, len(p))
	for pos, kind := range p {
		out[pos] = kind
	}
	return out
}
