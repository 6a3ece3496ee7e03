package tactics

import "gomoku/game"

// weights order the threat kinds for candidate scoring. Only the ranking
// matters: a completed five dwarfs everything, fours beat threes beat twos.
var weights = [numPatternKinds]int{
	Five:         100000,
	OpenFour:     10000,
	FourGap:      4000,
	ClosedFour:   2000,
	OpenThree:    1000,
	OpenThreeGap: 400,
	OpenTwo:      40,
	OpenTwoGap:   10,
}

func (v PatternVector) weighted() int {
	total := 0
	for k, n := range v {
		total += weights[k] * n
	}
	return total
}

// ForcedMoves runs the tactical ladder over candidates for side. The result
// is the set of moves tactics mandate, strongest rung first:
//
//  1. a candidate completing the mover's five wins outright;
//  2. a candidate completing the opponent's five must be blocked;
//  3. a mover open four beats any lesser defense;
//  4. an opponent open four or double-four-class threat must be answered,
//     together with any mover four-class counter;
//  5. an opponent double open three likewise, together with mover three- and
//     four-class counters.
//
// An empty result means no rung fired and the caller is free to choose by
// search. When calcScore is set the second result maps every candidate to a
// weighted sum of its mover and opponent pattern counts.
func ForcedMoves(b *game.Board, candidates []game.Move, side game.Cell, calcScore bool) ([]game.Move, map[game.Move]int) {
	opponent := side.Opponent()

	var (
		moverFive, oppFive []game.Move
		moverOpenFour      []game.Move
		oppFourThreat      []game.Move
		moverFourClass     []game.Move
		oppDoubleThree     []game.Move
		moverThreeOrBetter []game.Move
		scores             map[game.Move]int
	)
	if calcScore {
		scores = make(map[game.Move]int, len(candidates))
	}

	for _, m := range candidates {
		mine := Classify(b, m, side)
		theirs := Classify(b, m, opponent)
		if calcScore {
			scores[m] = mine.weighted() + theirs.weighted()
		}

		if mine.Has(Five) {
			moverFive = append(moverFive, m)
			continue
		}
		if theirs.Has(Five) {
			oppFive = append(oppFive, m)
		}
		if mine.Has(OpenFour) {
			moverOpenFour = append(moverOpenFour, m)
		}
		if theirs.Has(OpenFour) || theirs.FourClass() >= 2 {
			oppFourThreat = append(oppFourThreat, m)
		}
		if mine.FourClass() > 0 {
			moverFourClass = append(moverFourClass, m)
		}
		if theirs.ThreeClass() >= 2 {
			oppDoubleThree = append(oppDoubleThree, m)
		}
		if mine.FourClass() > 0 || mine.ThreeClass() > 0 {
			moverThreeOrBetter = append(moverThreeOrBetter, m)
		}
	}

	switch {
	case len(moverFive) > 0:
		return moverFive, scores
	case len(oppFive) > 0:
		return oppFive, scores
	case len(moverOpenFour) > 0:
		return moverOpenFour, scores
	case len(oppFourThreat) > 0:
		return union(oppFourThreat, moverFourClass), scores
	case len(oppDoubleThree) > 0:
		return union(oppDoubleThree, moverThreeOrBetter), scores
	}
	return nil, scores
}

// GoodMoves bounds the branching factor for tree expansion: forced moves if
// any exist, otherwise the candidates relevant to some current threat, with
// the unfiltered set as a last resort so expansion never starves.
func GoodMoves(b *game.Board, side game.Cell) []game.Move {
	candidates := game.Candidates(b)
	forced, scores := ForcedMoves(b, candidates, side, true)
	if len(forced) > 0 {
		return forced
	}

	var kept []game.Move
	for _, m := range candidates {
		if scores[m] > 0 {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		return candidates
	}
	return kept
}

// union merges move sets preserving first-seen order.
func union(sets ...[]game.Move) []game.Move {
	seen := make(map[game.Move]struct{})
	var out []game.Move
	for _, set := range sets {
		for _, m := range set {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	return out
}
