package game

// Board dimensions for standard gomoku.
const (
	Size      = 15
	WinLength = 5
)

// Cell is the tri-state content of one intersection.
type Cell uint8

const (
	Empty Cell = iota
	Black
	White
)

func (c Cell) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "empty"
	}
}

// Valid reports whether c is one of the three defined cell states.
func (c Cell) Valid() bool {
	return c <= White
}

// Opponent returns the other side. The opponent of Empty is Empty.
func (c Cell) Opponent() Cell {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

// Move addresses one intersection, 0-indexed from the top-left corner.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Center is the opening move on an empty board.
var Center = Move{Row: Size / 2, Col: Size / 2}

func (m Move) InBounds() bool {
	return m.Row >= 0 && m.Row < Size && m.Col >= 0 && m.Col < Size
}

// Axes are the four line directions a run can form along: vertical,
// horizontal, diagonal and anti-diagonal. The opposite directions are
// covered by walking each axis both ways.
var Axes = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

// Board is a plain value: assignment copies the whole grid, which is what
// search snapshots rely on. Callers own turn alternation; the engine only
// reads and copies.
type Board [Size][Size]Cell

func (b *Board) At(m Move) Cell {
	return b[m.Row][m.Col]
}

func (b *Board) Place(m Move, c Cell) {
	b[m.Row][m.Col] = c
}

func (b *Board) Remove(m Move) {
	b[m.Row][m.Col] = Empty
}

func (b *Board) Occupied(m Move) bool {
	return b[m.Row][m.Col] != Empty
}

// StoneCount returns the number of non-empty cells.
func (b *Board) StoneCount() int {
	n := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] != Empty {
				n++
			}
		}
	}
	return n
}
