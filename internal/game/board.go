package game

// lines holds every row, column and diagonal of the board.
var lines = [8][3]Position{
	// rows
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	// columns
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	// diagonals
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Board is the 3x3 grid of cell owners. The zero value is an empty board.
type Board [Size][Size]Side

// Get returns the owner of the cell at pos.
func (b Board) Get(pos Position) Side {
	return b[pos.Row][pos.Col]
}

// Set assigns the cell at pos. Callers are responsible for the placement rules.
func (b *Board) Set(pos Position, side Side) {
	b[pos.Row][pos.Col] = side
}

// IsFull reports whether no cell is empty.
func (b Board) IsFull() bool {
	for r := range Size {
		for c := range Size {
			if b[r][c] == Empty {
				return false
			}
		}
	}
	return true
}

// Winner reports whether side owns an entire row, column or diagonal.
func (b Board) Winner(side Side) bool {
	if side == Empty {
		return false
	}
	for _, line := range lines {
		if b.Get(line[0]) == side && b.Get(line[1]) == side && b.Get(line[2]) == side {
			return true
		}
	}
	return false
}

// EmptyCells lists the empty cells in row-major order.
func (b Board) EmptyCells() []Position {
	cells := make([]Position, 0, Size*Size)
	for r := range Size {
		for c := range Size {
			if b[r][c] == Empty {
				cells = append(cells, Position{Row: r, Col: c})
			}
		}
	}
	return cells
}

// FirstOwnedBy returns the first cell owned by side in row-major order.
func (b Board) FirstOwnedBy(side Side) (Position, bool) {
	for r := range Size {
		for c := range Size {
			if b[r][c] == side {
				return Position{Row: r, Col: c}, true
			}
		}
	}
	return Position{}, false
}

// Rows converts the board to a slice of slices for wire encoding.
func (b Board) Rows() [][]Side {
	rows := make([][]Side, Size)
	for r := range Size {
		rows[r] = make([]Side, Size)
		copy(rows[r], b[r][:])
	}
	return rows
}
