package game

// CandidateRadius bounds plausible moves to a Chebyshev neighborhood of the
// stones already on the board.
const CandidateRadius = 2

// Candidates returns every empty cell within CandidateRadius of an existing
// stone, in row-major order. On an empty board it returns just the center.
// The result has set semantics: no duplicates, order carries no meaning.
func Candidates(b *Board) []Move {
	var seen [Size][Size]bool
	any := false
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] == Empty {
				continue
			}
			any = true
			for dr := -CandidateRadius; dr <= CandidateRadius; dr++ {
				for dc := -CandidateRadius; dc <= CandidateRadius; dc++ {
					m := Move{Row: r + dr, Col: c + dc}
					if m.InBounds() && b[m.Row][m.Col] == Empty {
						seen[m.Row][m.Col] = true
					}
				}
			}
		}
	}
	if !any {
		return []Move{Center}
	}

	var moves []Move
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if seen[r][c] {
				moves = append(moves, Move{Row: r, Col: c})
			}
		}
	}
	return moves
}
