package game

// IsWinningMove reports whether a stone of side at m completes a run of five
// or more on any axis. The stone at m is counted whether or not it has been
// placed on the board yet, so the check works for hypothetical placements
// and for just-played moves alike.
func IsWinningMove(b *Board, m Move, side Cell) bool {
	for _, axis := range Axes {
		count := 1
		count += runLength(b, m, side, axis[0], axis[1])
		count += runLength(b, m, side, -axis[0], -axis[1])
		if count >= WinLength {
			return true
		}
	}
	return false
}

// runLength counts contiguous side stones from m (exclusive) along (dr,dc).
func runLength(b *Board, m Move, side Cell, dr, dc int) int {
	n := 0
	r, c := m.Row+dr, m.Col+dc
	for r >= 0 && r < Size && c >= 0 && c < Size && b[r][c] == side {
		n++
		r += dr
		c += dc
	}
	return n
}
