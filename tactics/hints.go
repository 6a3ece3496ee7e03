package tactics

import "gomoku/game"

// Hints is an advisory annotation feed for a UI layer. The decision engine
// never consults it.
type Hints struct {
	// Opportunities are cells where the side to move would create an open
	// three or stronger threat.
	Opportunities []game.Move
	// Threats are cells where the opponent would do the same if they played
	// there instead.
	Threats []game.Move
	// Scores carries the weighted tactical score of every candidate cell.
	Scores map[game.Move]int
}

// Annotate scans the candidate cells from sideToMove's perspective.
func Annotate(b *game.Board, sideToMove game.Cell) Hints {
	opponent := sideToMove.Opponent()
	candidates := game.Candidates(b)

	h := Hints{Scores: make(map[game.Move]int, len(candidates))}
	for _, m := range candidates {
		mine := Classify(b, m, sideToMove)
		theirs := Classify(b, m, opponent)
		h.Scores[m] = mine.weighted() + theirs.weighted()

		if mine.Has(Five) || mine.FourClass() > 0 || mine.ThreeClass() > 0 {
			h.Opportunities = append(h.Opportunities, m)
		}
		if theirs.Has(Five) || theirs.FourClass() > 0 || theirs.ThreeClass() > 0 {
			h.Threats = append(h.Threats, m)
		}
	}
	return h
}
